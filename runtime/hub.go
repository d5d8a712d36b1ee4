package runtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"playroom/contract"
	"playroom/domain"
	"playroom/moderation"
	perrors "playroom/errors"
	"playroom/protocol"
	"playroom/repositories"
)

// Hub routes validated inbound envelopes between live connections and the
// persistence layer. It decides nothing about game legality; when a rules
// engine capability is configured, completion verdicts come from it,
// otherwise moves are persisted and forwarded as reported.
type Hub struct {
	log         *slog.Logger
	registry    *Registry
	transformer protocol.Transformer
	moderator   *moderation.Moderator
	messages    repositories.IMessageRepository
	friendships repositories.IFriendshipRepository
	sessions    repositories.ISessionRepository
	profiles    repositories.IProfileRepository
	rules       contract.RulesEngine
	sendTimeout time.Duration
}

func NewHub(log *slog.Logger, registry *Registry, transformer protocol.Transformer,
	moderator *moderation.Moderator,
	messages repositories.IMessageRepository,
	friendships repositories.IFriendshipRepository,
	sessions repositories.ISessionRepository,
	profiles repositories.IProfileRepository,
	rules contract.RulesEngine,
	sendTimeout time.Duration) *Hub {
	return &Hub{
		log:         log,
		registry:    registry,
		transformer: transformer,
		moderator:   moderator,
		messages:    messages,
		friendships: friendships,
		sessions:    sessions,
		profiles:    profiles,
		rules:       rules,
		sendTimeout: sendTimeout,
	}
}

// Dispatch routes one inbound envelope that already passed
// protocol.ValidateEnvelope. env.UserID is the authenticated sender, stamped
// by the transport; the client-supplied userId is never trusted for routing.
// Record-level violations go back to the sender as the complete list; an
// error return is internal and not the sender's fault.
func (h *Hub) Dispatch(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	switch env.Type {
	case protocol.KindChat:
		return h.dispatchChat(ctx, env)
	case protocol.KindGameInvite:
		return h.dispatchInvite(ctx, sender, env)
	case protocol.KindGameAccept:
		return h.dispatchAccept(ctx, sender, env)
	case protocol.KindGameMove:
		return h.dispatchMove(ctx, sender, env)
	case protocol.KindGameComplete:
		return h.dispatchComplete(ctx, sender, env)
	case protocol.KindFriendRequest:
		return h.dispatchFriendRequest(ctx, sender, env)
	case protocol.KindFriendAccept:
		return h.dispatchFriendAccept(ctx, sender, env)
	case protocol.KindPresenceUpdate, protocol.KindTypingIndicator, protocol.KindConnectionStatus:
		return nil, h.dispatchNotice(ctx, env)
	}
	return nil, nil
}

// dispatchChat follows an asynchronous echo pattern: the sender receives its
// own message back through its connection like any other participant, so
// there is a single source of truth for ordering, timestamps and censoring.
func (h *Hub) dispatchChat(ctx context.Context, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.ChatPayload](env.Payload)
	if err != nil {
		return nil, err
	}
	if h.moderator != nil {
		p.Content = h.moderator.Censor(p.Content)
	}
	env.Payload = p

	draft := h.transformer.ChatDraft(env, uuid.NewString())
	if vs := domain.ValidateChatMessage(draft); !vs.OK() {
		return vs, nil
	}

	stored, err := h.messages.Store(draft)
	if err != nil {
		return nil, err
	}

	out := h.transformer.ChatToEnvelope(stored)
	h.deliver(ctx, stored.ReceiverID, out)
	h.deliver(ctx, stored.SenderID, out)
	return nil, nil
}

func (h *Hub) dispatchInvite(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.InvitePayload](env.Payload)
	if err != nil {
		return nil, err
	}
	if p.GameKind == "" {
		p.GameKind = domain.GameTicTacToe
	}

	session := domain.GameSession{
		ID:        uuid.NewString(),
		Player1ID: sender.ID,
		Player2ID: p.InvitedID,
		Kind:      p.GameKind,
		Status:    domain.SessionInvited,
	}
	if vs := domain.ValidateSession(session); !vs.OK() {
		return vs, nil
	}

	created, err := h.sessions.Create(session)
	if err != nil {
		return nil, err
	}
	h.deliver(ctx, created.Player2ID, h.transformer.InviteEnvelope(created))
	return nil, nil
}

func (h *Hub) dispatchAccept(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.SessionRefPayload](env.Payload)
	if err != nil {
		return nil, err
	}
	session, err := h.sessions.Get(p.SessionID)
	if err != nil {
		return nil, err
	}

	session.Status = domain.SessionInProgress
	if err := h.sessions.Update(session); err != nil {
		return nil, err
	}

	// The invited player accepts; the inviter opens.
	board := domain.BoardState{
		SessionID:     session.ID,
		Cells:         make([]string, domain.BoardCells),
		CurrentTurnID: session.Player1ID,
	}
	if err := h.sessions.SaveBoard(board); err != nil {
		return nil, err
	}

	h.deliver(ctx, session.Opponent(sender.ID), protocol.Envelope{
		Type:      protocol.KindGameAccept,
		Payload:   protocol.SessionRefPayload{SessionID: session.ID},
		UserID:    sender.ID,
		Timestamp: h.transformer.Now().UTC(),
		MessageID: session.ID,
	})
	return nil, nil
}

func (h *Hub) dispatchMove(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.MovePayload](env.Payload)
	if err != nil {
		return nil, err
	}
	session, err := h.sessions.Get(p.SessionID)
	if err != nil {
		return nil, err
	}

	state := domain.BoardState{
		SessionID:     p.SessionID,
		Cells:         p.MoveData.BoardState,
		CurrentTurnID: session.Opponent(sender.ID),
	}
	if vs := domain.ValidateBoardState(state); !vs.OK() {
		return vs, nil
	}

	if h.rules != nil {
		outcome, err := h.rules.ApplyMove(ctx, state, p.MoveData.Position, sender.ID)
		if err != nil {
			return nil, err
		}
		state = outcome.State
		if outcome.Completed {
			return nil, h.completeSession(ctx, session, state, p.MoveData.Position, sender.ID, outcome.WinnerID)
		}
	}

	if err := h.sessions.SaveBoard(state); err != nil {
		return nil, err
	}
	h.deliver(ctx, session.Opponent(sender.ID), h.transformer.MoveEnvelope(state, p.MoveData.Position))
	return nil, nil
}

func (h *Hub) completeSession(ctx context.Context, session domain.GameSession, state domain.BoardState, lastPosition int, senderID, winnerID string) error {
	now := h.transformer.Now().UTC()
	session.Status = domain.SessionCompleted
	session.CompletedAt = &now
	if winnerID != "" {
		session.WinnerID = &winnerID
	}
	if err := h.sessions.Update(session); err != nil {
		return err
	}
	if err := h.sessions.SaveBoard(state); err != nil {
		return err
	}

	h.deliver(ctx, session.Opponent(senderID), h.transformer.MoveEnvelope(state, lastPosition))

	complete := protocol.Envelope{
		Type:      protocol.KindGameComplete,
		Payload:   protocol.CompletePayload{SessionID: session.ID, WinnerID: winnerID},
		UserID:    senderID,
		Timestamp: now,
		MessageID: session.ID,
	}
	h.deliver(ctx, session.Player1ID, complete)
	h.deliver(ctx, session.Player2ID, complete)
	return nil
}

// dispatchComplete handles a client-initiated completion, e.g. a
// resignation.
func (h *Hub) dispatchComplete(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.CompletePayload](env.Payload)
	if err != nil {
		return nil, err
	}
	session, err := h.sessions.Get(p.SessionID)
	if err != nil {
		return nil, err
	}

	now := h.transformer.Now().UTC()
	session.Status = domain.SessionCompleted
	session.CompletedAt = &now
	if p.WinnerID != "" {
		session.WinnerID = &p.WinnerID
	}
	if vs := domain.ValidateSession(session); !vs.OK() {
		return vs, nil
	}
	if err := h.sessions.Update(session); err != nil {
		return nil, err
	}

	h.deliver(ctx, session.Opponent(sender.ID), protocol.Envelope{
		Type:      protocol.KindGameComplete,
		Payload:   p,
		UserID:    sender.ID,
		Timestamp: now,
		MessageID: session.ID,
	})
	return nil, nil
}

func (h *Hub) dispatchFriendRequest(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.FriendRequestPayload](env.Payload)
	if err != nil {
		return nil, err
	}

	friendship := domain.Friendship{Status: domain.FriendshipPending}
	friendship.User1ID, friendship.User2ID = domain.CanonicalPair(sender.ID, p.TargetID)
	if vs := domain.ValidateFriendship(friendship); !vs.OK() {
		return vs, nil
	}

	created, err := h.friendships.Create(friendship)
	if errors.Is(err, perrors.ErrFriendshipExists) {
		var vs domain.Violations
		vs.Add("payload.targetUserId", "friendship already exists for this pair")
		return vs, nil
	}
	if err != nil {
		return nil, err
	}

	requester, err := h.profiles.Get(sender.ID)
	if err != nil {
		// A missing profile should not block the request; fall back to the
		// identity we do have.
		requester = domain.UserProfile{ID: sender.ID, DisplayName: sender.Email}
	}
	h.deliver(ctx, p.TargetID, h.transformer.FriendRequestEnvelope(created, requester))
	return nil, nil
}

func (h *Hub) dispatchFriendAccept(ctx context.Context, sender domain.Identity, env protocol.Envelope) (domain.Violations, error) {
	p, err := protocol.DecodePayload[protocol.FriendRequestPayload](env.Payload)
	if err != nil {
		return nil, err
	}

	_, err = h.friendships.UpdateStatus(sender.ID, p.TargetID, domain.FriendshipAccepted)
	if errors.Is(err, perrors.ErrNotFound) {
		var vs domain.Violations
		vs.Add("payload.targetUserId", "no pending friendship for this pair")
		return vs, nil
	}
	if err != nil {
		return nil, err
	}

	h.deliver(ctx, p.TargetID, protocol.Envelope{
		Type:      protocol.KindFriendAccept,
		Payload:   protocol.FriendRequestPayload{TargetID: p.TargetID},
		UserID:    sender.ID,
		Timestamp: h.transformer.Now().UTC(),
	})
	return nil, nil
}

// dispatchNotice forwards presence, typing and connection-status frames
// without persisting anything. A notice with no receiver is dropped.
func (h *Hub) dispatchNotice(ctx context.Context, env protocol.Envelope) error {
	p, err := protocol.DecodePayload[protocol.NoticePayload](env.Payload)
	if err != nil {
		return err
	}
	if p.ReceiverID == "" {
		return nil
	}
	h.deliver(ctx, p.ReceiverID, env)
	return nil
}

// deliver pushes an envelope to one user's live connection, if any. Offline
// receivers are not an error: persisted records are their catch-up path.
func (h *Hub) deliver(ctx context.Context, userID string, env protocol.Envelope) {
	conn, ok := h.registry.Lookup(userID)
	if !ok {
		return
	}
	sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()
	if err := conn.Send(sendCtx, env); err != nil {
		h.log.Warn("failed to push envelope",
			"user_id", userID,
			"type", string(env.Type),
			"error", err)
	}
}
