package e2e

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"playroom/domain"
	"playroom/protocol"
)

type testChatScenarioSuite struct {
	BaseWsSuite
}

func TestChatScenarioSuite(t *testing.T) {
	suite.Run(t, &testChatScenarioSuite{})
}

// userID reads the subject out of a token without verifying it. Good enough
// for a test client that just received the token from the server.
func (s *testChatScenarioSuite) userID(token string) string {
	var claims jwt.MapClaims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	s.Require().NoError(err)
	id, _ := claims["user_id"].(string)
	s.Require().NotEmpty(id)
	return id
}

func (s *testChatScenarioSuite) TestChatDeliveryBetweenTwoParticipants() {
	suffix := uuid.New().String()[:8]
	password := "Sup3r-Secret-Pass!"

	// --- STEP 0: ACCOUNTS ---
	s.Banner("Registering two accounts")
	aliceToken := s.Register(fmt.Sprintf("alice-%s@example.com", suffix), password, "Alice")
	bobToken := s.Register(fmt.Sprintf("bob-%s@example.com", suffix), password, "Bob")
	bobID := s.userID(bobToken)

	// --- STEP 1: CONNECT ---
	s.Banner("Opening both websocket sessions")
	alice := s.Dial(aliceToken)
	defer alice.Close()
	bob := s.Dial(bobToken)
	defer bob.Close()

	// --- STEP 2: CHAT ---
	s.Run("Step 2: Alice sends, Bob receives, Alice gets the echo", func() {
		s.SendEnvelope(alice, protocol.Envelope{
			Type: protocol.KindChat,
			Payload: protocol.ChatPayload{
				Content:     "hello from the e2e suite",
				ReceiverID:  bobID,
				MessageKind: domain.MessageText,
			},
			UserID:    "ignored-by-server",
			Timestamp: time.Now().UTC(),
		})

		received := s.ReadEnvelope(bob, 5*time.Second)
		s.Require().Equal(protocol.KindChat, received.Type)
		payload, err := protocol.DecodePayload[protocol.ChatPayload](received.Payload)
		s.Require().NoError(err)
		s.Require().Equal("hello from the e2e suite", payload.Content)
		s.Require().Equal(bobID, payload.ReceiverID)
		s.Require().NotEmpty(received.MessageID)

		echo := s.ReadEnvelope(alice, 5*time.Second)
		s.Require().Equal(protocol.KindChat, echo.Type)
		s.Require().Equal(received.MessageID, echo.MessageID)
	})
}
