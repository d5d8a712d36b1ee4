package domain

import (
	"strconv"
	"time"
)

type GameKind string

// The platform currently ships a single board game.
const GameTicTacToe GameKind = "tic_tac_toe"

func IsGameKind(k GameKind) bool { return k == GameTicTacToe }

type SessionStatus string

const (
	SessionInvited    SessionStatus = "invited"
	SessionAccepted   SessionStatus = "accepted"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

func IsSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionInvited, SessionAccepted, SessionInProgress, SessionCompleted:
		return true
	}
	return false
}

type GameSession struct {
	ID          string
	Player1ID   string
	Player2ID   string
	Kind        GameKind
	Status      SessionStatus
	WinnerID    *string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Opponent returns the player of the session that is not userID.
func (s GameSession) Opponent(userID string) string {
	if s.Player1ID == userID {
		return s.Player2ID
	}
	return s.Player1ID
}

func ValidateSession(s GameSession) Violations {
	var vs Violations
	if !IsIdentifier(s.ID) {
		vs.Add("id", "must be a well-formed identifier")
	}
	if !IsIdentifier(s.Player1ID) {
		vs.Add("player1_id", "must be a well-formed identifier")
	}
	if !IsIdentifier(s.Player2ID) {
		vs.Add("player2_id", "must be a well-formed identifier")
	}
	if s.Player1ID == s.Player2ID {
		vs.Add("player2_id", "players cannot play against themselves")
	}
	if !IsGameKind(s.Kind) {
		vs.Add("game_kind", "must be a supported game kind")
	}
	if !IsSessionStatus(s.Status) {
		vs.Add("status", "must be one of invited, accepted, in_progress, completed")
	}
	if s.WinnerID != nil && *s.WinnerID != s.Player1ID && *s.WinnerID != s.Player2ID {
		vs.Add("winner_id", "winner must be one of the two players")
	}
	if s.Status == SessionCompleted && s.CompletedAt == nil {
		vs.Add("completed_at", "is required when status is completed")
	}
	if s.Status != SessionCompleted && s.CompletedAt != nil {
		vs.Add("completed_at", "must be empty unless status is completed")
	}
	return vs
}

// BoardCells is the tic-tac-toe grid size.
const BoardCells = 9

type BoardState struct {
	SessionID     string
	Cells         []string
	CurrentTurnID string
}

func ValidateBoardState(b BoardState) Violations {
	var vs Violations
	if !IsIdentifier(b.SessionID) {
		vs.Add("session_id", "must be a well-formed identifier")
	}
	if len(b.Cells) != BoardCells {
		vs.Add("cells", "board must have exactly 9 cells")
	} else {
		for i, cell := range b.Cells {
			switch cell {
			case "X", "O", "":
			default:
				vs.Add("cells", "cell "+strconv.Itoa(i)+` must be "X", "O" or empty`)
			}
		}
	}
	if !IsIdentifier(b.CurrentTurnID) {
		vs.Add("current_turn", "must be a well-formed identifier")
	}
	return vs
}
