package protocol

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"playroom/domain"
)

func fixedTransformer(instant time.Time) Transformer {
	return Transformer{Now: func() time.Time { return instant }}
}

func TestTransformer_Chat_Round_Trip(t *testing.T) {
	req := require.New(t)
	tr := NewTransformer()
	createdAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	stored := domain.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   "alice",
		ReceiverID: "bob",
		Content:    "see you at nine",
		Kind:       domain.MessageText,
		CreatedAt:  createdAt,
	}

	// When the record goes onto the wire and comes back as a draft
	env := tr.ChatToEnvelope(stored)
	draft := tr.ChatDraft(env, stored.ID)

	// Then nothing meaningful is lost
	req.Equal(KindChat, env.Type)
	req.Equal(stored.SenderID, env.UserID)
	req.Equal(createdAt, env.Timestamp)
	req.Equal(stored.ID, env.MessageID)

	req.Equal(stored.ID, draft.ID)
	req.Equal(stored.SenderID, draft.SenderID)
	req.Equal(stored.ReceiverID, draft.ReceiverID)
	req.Equal(stored.Content, draft.Content)
	req.Equal(stored.Kind, draft.Kind)
	req.True(draft.CreatedAt.IsZero())
	req.Nil(draft.ReadAt)
}

func TestTransformer_InviteEnvelope(t *testing.T) {
	req := require.New(t)
	createdAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	session := domain.GameSession{
		ID:        uuid.NewString(),
		Player1ID: "alice",
		Player2ID: "bob",
		Kind:      domain.GameTicTacToe,
		Status:    domain.SessionInvited,
		CreatedAt: createdAt,
	}

	env := fixedTransformer(createdAt.Add(time.Hour)).InviteEnvelope(session)

	req.Equal(KindGameInvite, env.Type)
	req.Equal("alice", env.UserID)
	req.Equal(session.ID, env.MessageID)
	// The record has a creation instant, so the clock is not read
	req.Equal(createdAt, env.Timestamp)

	payload, ok := env.Payload.(InvitePayload)
	req.True(ok)
	req.Equal("bob", payload.InvitedID)
	req.Equal(domain.GameTicTacToe, payload.GameKind)
}

func TestTransformer_InviteEnvelope_Falls_Back_To_Clock(t *testing.T) {
	req := require.New(t)
	instant := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	session := domain.GameSession{
		ID:        uuid.NewString(),
		Player1ID: "alice",
		Player2ID: "bob",
		Kind:      domain.GameTicTacToe,
		Status:    domain.SessionInvited,
	}

	env := fixedTransformer(instant).InviteEnvelope(session)

	req.Equal(instant, env.Timestamp)
}

func TestTransformer_MoveEnvelope(t *testing.T) {
	req := require.New(t)
	instant := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	board := domain.BoardState{
		SessionID:     uuid.NewString(),
		Cells:         []string{"X", "", "", "", "", "", "", "", ""},
		CurrentTurnID: "bob",
	}

	env := fixedTransformer(instant).MoveEnvelope(board, 0)

	req.Equal(KindGameMove, env.Type)
	req.Equal("bob", env.UserID)
	req.Equal(instant, env.Timestamp)

	payload, ok := env.Payload.(MovePayload)
	req.True(ok)
	req.Equal(board.SessionID, payload.SessionID)
	req.Equal(0, payload.MoveData.Position)
	req.Equal(board.Cells, payload.MoveData.BoardState)
}

func TestTransformer_FriendRequestEnvelope_Targets_The_Other_Side(t *testing.T) {
	req := require.New(t)
	tr := NewTransformer()
	friendship := domain.Friendship{
		User1ID: "alice",
		User2ID: "bob",
		Status:  domain.FriendshipPending,
	}
	requester := domain.UserProfile{ID: "bob", DisplayName: "Bob"}

	env := tr.FriendRequestEnvelope(friendship, requester)

	req.Equal(KindFriendRequest, env.Type)
	req.Equal("bob", env.UserID)

	payload, ok := env.Payload.(FriendRequestPayload)
	req.True(ok)
	req.Equal("alice", payload.TargetID)
	req.Equal("Bob", payload.RequesterName)
}

func TestDecodePayload_From_Wire_Map(t *testing.T) {
	req := require.New(t)

	// Wire payloads arrive as map[string]any after JSON decoding
	raw := map[string]any{
		"content":     "hello",
		"receiverId":  "bob",
		"messageKind": "text",
	}

	payload, err := DecodePayload[ChatPayload](raw)

	req.NoError(err)
	req.Equal("hello", payload.Content)
	req.Equal("bob", payload.ReceiverID)
	req.Equal(domain.MessageText, payload.MessageKind)
}
