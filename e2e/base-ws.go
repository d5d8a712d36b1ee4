package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"playroom/protocol"
)

type BaseWsSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests. The
// whole suite is skipped when no server address is provided.
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end to end suite")
	}
}

func (s *BaseWsSuite) Banner(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Register creates an account over HTTP and returns its bearer token.
func (s *BaseWsSuite) Register(email, password, displayName string) string {
	body, err := json.Marshal(map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	})
	s.Require().NoError(err)

	resp, err := http.Post(
		fmt.Sprintf("http://%s/auth/register", s.Config.ServerAddr),
		"application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var tokenBody struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&tokenBody))
	s.Require().NotEmpty(tokenBody.Token)
	return tokenBody.Token
}

// Dial opens an authenticated websocket session.
func (s *BaseWsSuite) Dial(token string) *websocket.Conn {
	u := url.URL{
		Scheme:   "ws",
		Host:     s.Config.ServerAddr,
		Path:     "/ws",
		RawQuery: "token=" + url.QueryEscape(token),
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	s.Require().NoError(err, "Failed to connect to "+u.String())
	return conn
}

// SendEnvelope writes one frame, logging the body when E2E_DEBUG_JSON is on.
func (s *BaseWsSuite) SendEnvelope(conn *websocket.Conn, env protocol.Envelope) {
	if s.Config.DebugJSON {
		data, _ := json.MarshalIndent(env, "", "  ")
		s.T().Logf("SEND:\n%s", data)
	}
	s.Require().NoError(conn.WriteJSON(env))
}

// ReadEnvelope blocks for the next frame with a deadline.
func (s *BaseWsSuite) ReadEnvelope(conn *websocket.Conn, timeout time.Duration) protocol.Envelope {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(timeout)))
	var env protocol.Envelope
	s.Require().NoError(conn.ReadJSON(&env))
	if s.Config.DebugJSON {
		data, _ := json.MarshalIndent(env, "", "  ")
		s.T().Logf("RECV:\n%s", data)
	}
	return env
}
