//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"playroom/domain"
	"playroom/protocol"
)

// IdentityProvider verifies a bearer token against the platform's identity
// backend. The realtime layer consumes it as a capability and has no
// compile-time dependency on the chosen technology.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// Connection is the opaque transport handle held by the registry for the
// lifetime of one live session. Implementations must be comparable (pointer
// receivers) so the registry can remove entries by connection identity.
type Connection interface {
	Send(ctx context.Context, env protocol.Envelope) error
	Close() error
}

// MoveOutcome is the rules engine's verdict on one applied move.
type MoveOutcome struct {
	State     domain.BoardState
	Completed bool
	WinnerID  string // empty while the game is running, and on a draw
}

// RulesEngine applies a validated move to a board state and decides
// completion and winner. No game logic lives in this repository.
type RulesEngine interface {
	ApplyMove(ctx context.Context, state domain.BoardState, position int, player string) (MoveOutcome, error)
}

// Worker doesn't protect itself; supervision handles restarts.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker for
// logging and supervision, avoiding a manual naming method on Worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
