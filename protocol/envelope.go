// Package protocol defines the wire-level message envelope exchanged over a
// live connection, its validator and the record<->envelope transformer.
package protocol

import (
	"encoding/json"
	"time"

	"playroom/domain"
)

type Kind string

const (
	KindChat             Kind = "chat"
	KindGameMove         Kind = "game_move"
	KindGameInvite       Kind = "game_invite"
	KindGameAccept       Kind = "game_accept"
	KindGameComplete     Kind = "game_complete"
	KindFriendRequest    Kind = "friend_request"
	KindFriendAccept     Kind = "friend_accept"
	KindPresenceUpdate   Kind = "presence_update"
	KindTypingIndicator  Kind = "typing_indicator"
	KindConnectionStatus Kind = "connection_status"
)

func IsKind(k Kind) bool {
	switch k {
	case KindChat, KindGameMove, KindGameInvite, KindGameAccept,
		KindGameComplete, KindFriendRequest, KindFriendAccept,
		KindPresenceUpdate, KindTypingIndicator, KindConnectionStatus:
		return true
	}
	return false
}

// Envelope is the self-contained wire message, one JSON object per frame.
// Timestamp marshals as an ISO-8601 instant (RFC 3339).
type Envelope struct {
	Type      Kind      `json:"type"`
	Payload   any       `json:"payload"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	MessageID string    `json:"messageId,omitempty"`
}

type ChatPayload struct {
	Content     string             `json:"content"`
	ReceiverID  string             `json:"receiverId"`
	MessageKind domain.MessageKind `json:"messageKind"`
}

type InvitePayload struct {
	InvitedID string          `json:"invitedUserId"`
	GameKind  domain.GameKind `json:"gameKind"`
}

type MoveData struct {
	Position   int      `json:"position"`
	Player     string   `json:"player"`
	BoardState []string `json:"boardState"`
}

type MovePayload struct {
	SessionID string          `json:"sessionId"`
	GameKind  domain.GameKind `json:"gameKind"`
	MoveData  MoveData        `json:"moveData"`
}

type FriendRequestPayload struct {
	TargetID      string `json:"targetUserId"`
	RequesterName string `json:"requesterName"`
}

// SessionRefPayload points at an existing session (game_accept).
type SessionRefPayload struct {
	SessionID string `json:"sessionId"`
}

// CompletePayload closes a session, optionally naming the winner.
type CompletePayload struct {
	SessionID string `json:"sessionId"`
	WinnerID  string `json:"winnerId,omitempty"`
}

// NoticePayload carries forward-only state notices (presence, typing,
// connection status) to one receiver.
type NoticePayload struct {
	ReceiverID string `json:"receiverId"`
	Status     string `json:"status,omitempty"`
}

// ErrorPayload reports a rejected frame back to its sender with the full
// violation list.
type ErrorPayload struct {
	Status     string   `json:"status"`
	Violations []string `json:"violations"`
}

// DecodePayload re-marshals a generic payload (as decoded from a frame) into
// its typed shape. Unknown fields are dropped, known fields keep their JSON
// names.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
