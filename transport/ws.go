package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"playroom/auth"
	"playroom/protocol"
	"playroom/runtime"
	"playroom/services"
)

type Server struct {
	log      *slog.Logger
	auth     *auth.Authenticator
	accounts services.IAccountService
	registry *runtime.Registry
	hub      *runtime.Hub
	upgrader websocket.Upgrader
}

func NewServer(log *slog.Logger, authenticator *auth.Authenticator,
	accounts services.IAccountService,
	registry *runtime.Registry, hub *runtime.Hub) *Server {
	return &Server{
		log:      log,
		auth:     authenticator,
		accounts: accounts,
		registry: registry,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("POST /auth/register", s.HandleRegister)
	mux.HandleFunc("POST /auth/login", s.HandleLogin)
	return mux
}

// HandleWS authenticates the token carried in the connection URL, upgrades
// the request and registers the connection. The identity stays bound to the
// socket: every inbound frame is stamped with it regardless of what the
// client claims in userId.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := auth.ExtractToken(r.URL.String())
	identity, err := s.auth.ValidateToken(r.Context(), token)
	if err != nil {
		s.log.Warn("Websocket authentication failed", slog.String("error", err.Error()))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	conn := newWSConnection(socket)
	if prev := s.registry.Register(identity.ID, conn); prev != nil {
		_ = prev.Close()
	}
	defer func() {
		s.registry.Unregister(identity.ID, conn)
		_ = conn.Close()
	}()

	s.log.Info("Participant connected", slog.String("user_id", identity.ID))

	for {
		_, data, err := socket.ReadMessage()
		if err != nil {
			s.log.Info("Participant disconnected", slog.String("user_id", identity.ID))
			return
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			s.reject(r, conn, identity.ID, []string{"envelope: must be valid JSON"})
			continue
		}

		if violations := protocol.ValidateEnvelope(raw); !violations.OK() {
			s.reject(r, conn, identity.ID, violations.Strings())
			continue
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.reject(r, conn, identity.ID, []string{"envelope: must be valid JSON"})
			continue
		}
		env.UserID = identity.ID

		violations, err := s.hub.Dispatch(r.Context(), identity, env)
		if err != nil {
			s.log.Error("Dispatch failed",
				slog.String("user_id", identity.ID),
				slog.String("type", string(env.Type)),
				slog.String("error", err.Error()))
			s.reject(r, conn, identity.ID, []string{"envelope: internal error"})
			continue
		}
		if !violations.OK() {
			s.reject(r, conn, identity.ID, violations.Strings())
		}
	}
}

// reject reports a refused frame back to its sender only. Nothing is
// persisted or forwarded for a rejected frame.
func (s *Server) reject(r *http.Request, conn *wsConnection, userID string, violations []string) {
	env := protocol.Envelope{
		Type: protocol.KindConnectionStatus,
		Payload: protocol.ErrorPayload{
			Status:     "rejected",
			Violations: violations,
		},
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
	if err := conn.Send(r.Context(), env); err != nil {
		s.log.Warn("Rejection notice not delivered", slog.String("user_id", userID))
	}
}
