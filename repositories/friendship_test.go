package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"playroom/domain"
	"playroom/errors"
)

func TestFriendshipRepository_Create_Canonicalizes_The_Pair(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	// Given a request arriving in reverse order
	created, err := repo.Create(domain.Friendship{
		User1ID: "bob",
		User2ID: "alice",
		Status:  domain.FriendshipPending,
	})

	req.NoError(err)
	req.Equal("alice", created.User1ID)
	req.Equal("bob", created.User2ID)
	req.False(created.CreatedAt.IsZero())
}

func TestFriendshipRepository_Create_Rejects_Duplicates_In_Either_Order(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	_, err := repo.Create(domain.Friendship{
		User1ID: "alice", User2ID: "bob", Status: domain.FriendshipPending,
	})
	req.NoError(err)

	// When the same pair is requested again, from either side
	_, err = repo.Create(domain.Friendship{
		User1ID: "alice", User2ID: "bob", Status: domain.FriendshipPending,
	})
	req.ErrorIs(err, errors.ErrFriendshipExists)

	_, err = repo.Create(domain.Friendship{
		User1ID: "bob", User2ID: "alice", Status: domain.FriendshipPending,
	})
	req.ErrorIs(err, errors.ErrFriendshipExists)
}

func TestFriendshipRepository_Create_Rejects_Self_Friendship(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	_, err := repo.Create(domain.Friendship{
		User1ID: "alice", User2ID: "alice", Status: domain.FriendshipPending,
	})

	req.Error(err)
}

func TestFriendshipRepository_Get_Works_In_Both_Orders(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	_, err := repo.Create(domain.Friendship{
		User1ID: "alice", User2ID: "bob", Status: domain.FriendshipPending,
	})
	req.NoError(err)

	first, err := repo.Get("alice", "bob")
	req.NoError(err)
	second, err := repo.Get("bob", "alice")
	req.NoError(err)
	req.Equal(first, second)

	_, err = repo.Get("alice", "carol")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestFriendshipRepository_UpdateStatus_Maintains_AcceptedAt(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	_, err := repo.Create(domain.Friendship{
		User1ID: "alice", User2ID: "bob", Status: domain.FriendshipPending,
	})
	req.NoError(err)

	// When the pair is accepted
	accepted, err := repo.UpdateStatus("bob", "alice", domain.FriendshipAccepted)
	req.NoError(err)
	req.Equal(domain.FriendshipAccepted, accepted.Status)
	req.NotNil(accepted.AcceptedAt)

	// And later blocked
	blocked, err := repo.UpdateStatus("alice", "bob", domain.FriendshipBlocked)
	req.NoError(err)
	req.Equal(domain.FriendshipBlocked, blocked.Status)
	req.Nil(blocked.AcceptedAt)
}

func TestFriendshipRepository_UpdateStatus_Unknown_Pair(t *testing.T) {
	req := require.New(t)
	repo := NewFriendshipRepository(openTestDB(t))

	_, err := repo.UpdateStatus("ghost", "phantom", domain.FriendshipAccepted)

	req.ErrorIs(err, errors.ErrNotFound)
}
