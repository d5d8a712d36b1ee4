package protocol

import (
	"time"

	"playroom/domain"
)

// Transformer maps persisted records to wire envelopes and back. Transforms
// are deterministic; the only side effect allowed is reading the clock when
// a record has no natural source timestamp. Inputs must already have passed
// the corresponding validator — transforming unvalidated data is a
// programmer error with unspecified output, not a reported failure.
type Transformer struct {
	Now func() time.Time
}

func NewTransformer() Transformer { return Transformer{Now: time.Now} }

// ChatToEnvelope carries a stored chat message onto the wire. The envelope
// is attributed to the sender, timestamped with the record's creation
// instant, and correlated through the record id.
func (t Transformer) ChatToEnvelope(m domain.ChatMessage) Envelope {
	return Envelope{
		Type: KindChat,
		Payload: ChatPayload{
			Content:     m.Content,
			ReceiverID:  m.ReceiverID,
			MessageKind: m.Kind,
		},
		UserID:    m.SenderID,
		Timestamp: m.CreatedAt,
		MessageID: m.ID,
	}
}

// ChatDraft builds the persistable part of a chat message from a validated
// inbound chat envelope. CreatedAt and ReadAt are left zero; the store fills
// them in.
func (t Transformer) ChatDraft(env Envelope, generatedID string) domain.ChatMessage {
	p, _ := env.Payload.(ChatPayload)
	return domain.ChatMessage{
		ID:         generatedID,
		SenderID:   env.UserID,
		ReceiverID: p.ReceiverID,
		Content:    p.Content,
		Kind:       p.MessageKind,
	}
}

// InviteEnvelope announces a freshly created session to the invited player.
func (t Transformer) InviteEnvelope(s domain.GameSession) Envelope {
	ts := s.CreatedAt
	if ts.IsZero() {
		ts = t.Now().UTC()
	}
	return Envelope{
		Type: KindGameInvite,
		Payload: InvitePayload{
			InvitedID: s.Player2ID,
			GameKind:  s.Kind,
		},
		UserID:    s.Player1ID,
		Timestamp: ts,
		MessageID: s.ID,
	}
}

// MoveEnvelope announces the move that produced board state b. A live board
// has no natural timestamp, so the clock is read here.
func (t Transformer) MoveEnvelope(b domain.BoardState, lastPosition int) Envelope {
	return Envelope{
		Type: KindGameMove,
		Payload: MovePayload{
			SessionID: b.SessionID,
			GameKind:  domain.GameTicTacToe,
			MoveData: MoveData{
				Position:   lastPosition,
				Player:     b.CurrentTurnID,
				BoardState: b.Cells,
			},
		},
		UserID:    b.CurrentTurnID,
		Timestamp: t.Now().UTC(),
	}
}

// FriendRequestEnvelope announces a pending friendship to the side of the
// pair that did not initiate it.
func (t Transformer) FriendRequestEnvelope(f domain.Friendship, requester domain.UserProfile) Envelope {
	ts := f.CreatedAt
	if ts.IsZero() {
		ts = t.Now().UTC()
	}
	return Envelope{
		Type: KindFriendRequest,
		Payload: FriendRequestPayload{
			TargetID:      f.Other(requester.ID),
			RequesterName: requester.DisplayName,
		},
		UserID:    requester.ID,
		Timestamp: ts,
	}
}
