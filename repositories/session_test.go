package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"playroom/domain"
	"playroom/errors"
)

func testSession() domain.GameSession {
	return domain.GameSession{
		ID:        uuid.NewString(),
		Player1ID: "alice",
		Player2ID: "bob",
		Kind:      domain.GameTicTacToe,
		Status:    domain.SessionInvited,
	}
}

func TestSessionRepository_Create_And_Get(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))

	created, err := repo.Create(testSession())
	req.NoError(err)
	req.False(created.CreatedAt.IsZero())

	found, err := repo.Get(created.ID)
	req.NoError(err)
	req.Equal(created.ID, found.ID)
	req.Equal(domain.SessionInvited, found.Status)
	req.Nil(found.WinnerID)
}

func TestSessionRepository_Get_Unknown_Session(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))

	_, err := repo.Get(uuid.NewString())

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestSessionRepository_Update_Full_Lifecycle(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))

	created, err := repo.Create(testSession())
	req.NoError(err)

	created.Status = domain.SessionInProgress
	req.NoError(repo.Update(created))

	now := time.Now().UTC()
	winner := "bob"
	created.Status = domain.SessionCompleted
	created.CompletedAt = &now
	created.WinnerID = &winner
	req.NoError(repo.Update(created))

	found, err := repo.Get(created.ID)
	req.NoError(err)
	req.Equal(domain.SessionCompleted, found.Status)
	req.Equal("bob", *found.WinnerID)
	req.NotNil(found.CompletedAt)
}

func TestSessionRepository_Update_Rejects_Invalid_Records(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))

	created, err := repo.Create(testSession())
	req.NoError(err)

	// Completed without a completion instant
	created.Status = domain.SessionCompleted
	req.Error(repo.Update(created))
}

func TestSessionRepository_Board_Round_Trip(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))
	sessionID := uuid.NewString()

	board := domain.BoardState{
		SessionID:     sessionID,
		Cells:         []string{"X", "O", "", "", "X", "", "", "", ""},
		CurrentTurnID: "bob",
	}
	req.NoError(repo.SaveBoard(board))

	found, err := repo.GetBoard(sessionID)
	req.NoError(err)
	req.Equal(board, found)

	_, err = repo.GetBoard(uuid.NewString())
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestSessionRepository_SaveBoard_Rejects_Bad_Boards(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(openTestDB(t))

	err := repo.SaveBoard(domain.BoardState{
		SessionID:     uuid.NewString(),
		Cells:         []string{"X"},
		CurrentTurnID: "alice",
	})

	req.Error(err)
}

func TestProfileRepository_Upsert_And_Get(t *testing.T) {
	req := require.New(t)
	repo := NewProfileRepository(openTestDB(t))
	id := uuid.NewString()

	created, err := repo.Upsert(domain.UserProfile{
		ID:          id,
		Email:       "alice@example.com",
		DisplayName: "Alice",
	})
	req.NoError(err)
	req.False(created.CreatedAt.IsZero())

	// An update keeps the creation instant and moves the update instant
	time.Sleep(5 * time.Millisecond)
	updated, err := repo.Upsert(domain.UserProfile{
		ID:          id,
		Email:       "alice@example.com",
		DisplayName: "Alice In Chains",
		CreatedAt:   created.CreatedAt,
	})
	req.NoError(err)
	req.Equal(created.CreatedAt, updated.CreatedAt)
	req.True(updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	found, err := repo.Get(id)
	req.NoError(err)
	req.Equal("Alice In Chains", found.DisplayName)

	_, err = repo.Get(uuid.NewString())
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestUserRepository_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	id, err := repo.CreateUser("alice@example.com", "Alice", "hash-1")
	req.NoError(err)
	req.NotEmpty(id)

	_, err = repo.CreateUser("alice@example.com", "Imposter", "hash-2")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)

	user, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(id, user.ID)
	req.Equal("Alice", user.DisplayName)
	req.Equal([]string{"user"}, user.Roles)

	_, err = repo.GetUserByEmail("nobody@example.com")
	req.ErrorIs(err, errors.ErrNotFound)
}
