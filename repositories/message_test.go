package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"playroom/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestMessageRepository(t *testing.T) MessageRepository {
	t.Helper()
	index, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return NewMessageRepository(openTestDB(t), index, slog.New(slog.DiscardHandler))
}

func message(sender, receiver, content string, at time.Time) domain.ChatMessage {
	return domain.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		Kind:       domain.MessageText,
		CreatedAt:  at,
	}
}

func TestMessageRepository_Store_Stamps_Draft_Timestamps(t *testing.T) {
	req := require.New(t)
	repo := newTestMessageRepository(t)

	draft := message("alice", "bob", "hello", time.Time{})
	stored, err := repo.Store(draft)

	req.NoError(err)
	req.False(stored.CreatedAt.IsZero())
}

func TestMessageRepository_History_Is_One_Thread_Per_Pair(t *testing.T) {
	req := require.New(t)
	repo := newTestMessageRepository(t)
	base := time.Now().UTC()

	// Given messages flowing in both directions, plus an unrelated pair
	_, err := repo.Store(message("alice", "bob", "first", base))
	req.NoError(err)
	_, err = repo.Store(message("bob", "alice", "second", base.Add(time.Second)))
	req.NoError(err)
	_, err = repo.Store(message("alice", "carol", "other thread", base))
	req.NoError(err)

	// When history is read from either side of the pair
	fromAlice, err := repo.History("alice", "bob", 10)
	req.NoError(err)
	fromBob, err := repo.History("bob", "alice", 10)
	req.NoError(err)

	// Then both directions land in one thread, newest first
	req.Len(fromAlice, 2)
	req.Equal(fromAlice, fromBob)
	req.Equal("second", fromAlice[0].Content)
	req.Equal("first", fromAlice[1].Content)
}

func TestMessageRepository_History_Honors_The_Limit(t *testing.T) {
	req := require.New(t)
	repo := newTestMessageRepository(t)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_, err := repo.Store(message("alice", "bob",
			fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Second)))
		req.NoError(err)
	}

	history, err := repo.History("alice", "bob", 3)

	req.NoError(err)
	req.Len(history, 3)
	req.Equal("message 4", history[0].Content)
}

func TestMessageRepository_Search_Finds_By_Content(t *testing.T) {
	req := require.New(t)
	repo := newTestMessageRepository(t)
	now := time.Now().UTC()

	_, err := repo.Store(message("alice", "bob", "the quick brown fox", now))
	req.NoError(err)
	_, err = repo.Store(message("alice", "bob", "an unrelated note", now))
	req.NoError(err)
	req.NoError(repo.Flush())

	results, err := repo.Search(context.Background(), "fox", 10)

	req.NoError(err)
	req.Len(results, 1)
	req.Equal("the quick brown fox", results[0].Content)
	req.Equal("alice", results[0].SenderID)
	req.Equal("bob", results[0].ReceiverID)
}

func TestMessageRepository_Search_No_Match(t *testing.T) {
	req := require.New(t)
	repo := newTestMessageRepository(t)

	_, err := repo.Store(message("alice", "bob", "hello there", time.Now().UTC()))
	req.NoError(err)
	req.NoError(repo.Flush())

	results, err := repo.Search(context.Background(), "zebra", 10)

	req.NoError(err)
	req.Empty(results)
}
