package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"playroom/domain"
	"playroom/errors"
)

type ISessionRepository interface {
	Create(s domain.GameSession) (domain.GameSession, error)
	Get(id string) (domain.GameSession, error)
	Update(s domain.GameSession) error
	SaveBoard(b domain.BoardState) error
	GetBoard(sessionID string) (domain.BoardState, error)
}

// SessionRepository stores game sessions and their per-kind board state.
type SessionRepository struct {
	db *badger.DB
}

func NewSessionRepository(db *badger.DB) SessionRepository {
	return SessionRepository{db: db}
}

type diskSession struct {
	ID          string     `json:"id"`
	Player1ID   string     `json:"player1_id"`
	Player2ID   string     `json:"player2_id"`
	Kind        string     `json:"game_kind"`
	Status      string     `json:"status"`
	WinnerID    *string    `json:"winner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type diskBoard struct {
	SessionID     string   `json:"session_id"`
	Cells         []string `json:"cells"`
	CurrentTurnID string   `json:"current_turn"`
}

func sessionKey(id string) []byte { return []byte("session:" + id) }
func boardKey(id string) []byte   { return []byte("board:" + id) }

func (r SessionRepository) Create(s domain.GameSession) (domain.GameSession, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if vs := domain.ValidateSession(s); !vs.OK() {
		return s, fmt.Errorf("invalid session: %s", strings.Join(vs.Strings(), "; "))
	}
	return s, r.write(sessionKey(s.ID), fromSession(s))
}

func (r SessionRepository) Get(id string) (domain.GameSession, error) {
	var ds diskSession
	if err := r.read(sessionKey(id), &ds); err != nil {
		return domain.GameSession{}, err
	}
	return toSession(ds), nil
}

func (r SessionRepository) Update(s domain.GameSession) error {
	if vs := domain.ValidateSession(s); !vs.OK() {
		return fmt.Errorf("invalid session: %s", strings.Join(vs.Strings(), "; "))
	}
	return r.write(sessionKey(s.ID), fromSession(s))
}

func (r SessionRepository) SaveBoard(b domain.BoardState) error {
	if vs := domain.ValidateBoardState(b); !vs.OK() {
		return fmt.Errorf("invalid board state: %s", strings.Join(vs.Strings(), "; "))
	}
	return r.write(boardKey(b.SessionID), diskBoard{
		SessionID:     b.SessionID,
		Cells:         b.Cells,
		CurrentTurnID: b.CurrentTurnID,
	})
}

func (r SessionRepository) GetBoard(sessionID string) (domain.BoardState, error) {
	var db diskBoard
	if err := r.read(boardKey(sessionID), &db); err != nil {
		return domain.BoardState{}, err
	}
	return domain.BoardState{
		SessionID:     db.SessionID,
		Cells:         db.Cells,
		CurrentTurnID: db.CurrentTurnID,
	}, nil
}

func (r SessionRepository) write(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (r SessionRepository) read(key []byte, out any) error {
	return r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, out)
		})
	})
}

func fromSession(s domain.GameSession) diskSession {
	return diskSession{
		ID:          s.ID,
		Player1ID:   s.Player1ID,
		Player2ID:   s.Player2ID,
		Kind:        string(s.Kind),
		Status:      string(s.Status),
		WinnerID:    s.WinnerID,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
	}
}

func toSession(ds diskSession) domain.GameSession {
	return domain.GameSession{
		ID:          ds.ID,
		Player1ID:   ds.Player1ID,
		Player2ID:   ds.Player2ID,
		Kind:        domain.GameKind(ds.Kind),
		Status:      domain.SessionStatus(ds.Status),
		WinnerID:    ds.WinnerID,
		CreatedAt:   ds.CreatedAt,
		CompletedAt: ds.CompletedAt,
	}
}
