//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"

	"playroom/domain"
)

type IMessageRepository interface {
	Store(m domain.ChatMessage) (domain.ChatMessage, error)
	History(userA, userB string, limit int) ([]domain.ChatMessage, error)
	Search(ctx context.Context, query string, limit int) ([]domain.ChatMessage, error)
	Flush() error
}

// MessageRepository persists chat messages in BadgerDB and maintains a Bluge
// full-text index over their content for history search.
type MessageRepository struct {
	db    *badger.DB
	index *bluge.Writer
	log   *slog.Logger
}

func NewMessageRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, index: index, log: log}
}

type diskMessage struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	Kind       string     `json:"kind"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// Store persists a message and indexes its content. A draft with a zero
// CreatedAt is stamped here; drafts omit the created instant and the store
// fills it in.
// The key is "msg:{lo}:{hi}:{timestamp_padded}:{id}" so that one canonical
// conversation thread sorts chronologically under a single prefix, whichever
// side sent the message. The 19-digit zero padding keeps lexicographical and
// chronological order aligned; the id disambiguates same-nanosecond arrivals.
func (r MessageRepository) Store(m domain.ChatMessage) (domain.ChatMessage, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	low, high := domain.CanonicalPair(m.SenderID, m.ReceiverID)
	key := fmt.Sprintf("msg:%s:%s:%019d:%s", low, high, m.CreatedAt.UnixNano(), m.ID)

	data, err := json.Marshal(fromChatMessage(m))
	if err != nil {
		return m, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return m, err
	}

	doc := bluge.NewDocument(m.ID).
		AddField(bluge.NewTextField("content", m.Content).StoreValue()).
		AddField(bluge.NewKeywordField("sender", m.SenderID).StoreValue()).
		AddField(bluge.NewKeywordField("receiver", m.ReceiverID).StoreValue()).
		AddField(bluge.NewKeywordField("kind", string(m.Kind)).StoreValue()).
		AddField(bluge.NewKeywordField("at", m.CreatedAt.Format(time.RFC3339Nano)).StoreValue())
	if err := r.index.Update(doc.ID(), doc); err != nil {
		r.log.Error("failed to index message", "message_id", m.ID, "error", err)
	}
	return m, nil
}

// History returns the most recent messages of one conversation, newest
// first. The padded timestamp in the key makes the reverse prefix scan come
// out already sorted.
func (r MessageRepository) History(userA, userB string, limit int) ([]domain.ChatMessage, error) {
	low, high := domain.CanonicalPair(userA, userB)
	prefix := []byte(fmt.Sprintf("msg:%s:%s:", low, high))

	var messages []domain.ChatMessage
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key of the prefix, then walk back.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				return nil
			}
			err := it.Item().Value(func(v []byte) error {
				var dm diskMessage
				if err := json.Unmarshal(v, &dm); err != nil {
					return err
				}
				messages = append(messages, toChatMessage(dm))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// Search runs a full-text query over message content. Results are rebuilt
// from the stored index fields.
func (r MessageRepository) Search(ctx context.Context, query string, limit int) ([]domain.ChatMessage, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	match := bluge.NewMatchQuery(query)
	match.SetField("content")
	request := bluge.NewTopNSearch(limit, match)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var messages []domain.ChatMessage
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return messages, nil
		}

		var m domain.ChatMessage
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				m.ID = string(value)
			case "content":
				m.Content = string(value)
			case "sender":
				m.SenderID = string(value)
			case "receiver":
				m.ReceiverID = string(value)
			case "kind":
				m.Kind = domain.MessageKind(value)
			case "at":
				if at, err := time.Parse(time.RFC3339Nano, string(value)); err == nil {
					m.CreatedAt = at
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
}

// Flush makes recent index updates visible to new readers.
func (r MessageRepository) Flush() error {
	// Bluge batches internally; opening a reader forces a flush point.
	reader, err := r.index.Reader()
	if err != nil {
		return err
	}
	return reader.Close()
}

func fromChatMessage(m domain.ChatMessage) diskMessage {
	return diskMessage{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Kind:       string(m.Kind),
		CreatedAt:  m.CreatedAt,
		ReadAt:     m.ReadAt,
	}
}

func toChatMessage(dm diskMessage) domain.ChatMessage {
	return domain.ChatMessage{
		ID:         dm.ID,
		SenderID:   dm.SenderID,
		ReceiverID: dm.ReceiverID,
		Content:    dm.Content,
		Kind:       domain.MessageKind(dm.Kind),
		CreatedAt:  dm.CreatedAt,
		ReadAt:     dm.ReadAt,
	}
}
