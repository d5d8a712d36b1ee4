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

type IFriendshipRepository interface {
	Create(f domain.Friendship) (domain.Friendship, error)
	Get(userA, userB string) (domain.Friendship, error)
	UpdateStatus(userA, userB string, status domain.FriendshipStatus) (domain.Friendship, error)
}

// FriendshipRepository stores one row per unordered pair, keyed in canonical
// order. The database no longer enforces pair ordering, so the duplicate
// check walks both permutations before inserting.
type FriendshipRepository struct {
	db *badger.DB
}

func NewFriendshipRepository(db *badger.DB) FriendshipRepository {
	return FriendshipRepository{db: db}
}

type diskFriendship struct {
	User1ID    string     `json:"user1_id"`
	User2ID    string     `json:"user2_id"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

func friendKey(low, high string) []byte {
	return []byte(fmt.Sprintf("friend:%s:%s", low, high))
}

func (r FriendshipRepository) Create(f domain.Friendship) (domain.Friendship, error) {
	f.User1ID, f.User2ID = domain.CanonicalPair(f.User1ID, f.User2ID)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if vs := domain.ValidateFriendship(f); !vs.OK() {
		return f, fmt.Errorf("invalid friendship: %s", strings.Join(vs.Strings(), "; "))
	}

	data, err := json.Marshal(fromFriendship(f))
	if err != nil {
		return f, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		for _, pair := range domain.PairPermutations(f.User1ID, f.User2ID) {
			if _, err := txn.Get(friendKey(pair[0], pair[1])); err == nil {
				return errors.ErrFriendshipExists
			}
		}
		return txn.Set(friendKey(f.User1ID, f.User2ID), data)
	})
	return f, err
}

// Get finds the pair's row irrespective of storage order.
func (r FriendshipRepository) Get(userA, userB string) (domain.Friendship, error) {
	var found domain.Friendship
	err := r.db.View(func(txn *badger.Txn) error {
		for _, pair := range domain.PairPermutations(userA, userB) {
			item, err := txn.Get(friendKey(pair[0], pair[1]))
			if err != nil {
				continue
			}
			return item.Value(func(v []byte) error {
				var df diskFriendship
				if err := json.Unmarshal(v, &df); err != nil {
					return err
				}
				found = toFriendship(df)
				return nil
			})
		}
		return errors.ErrNotFound
	})
	return found, err
}

// UpdateStatus transitions the pair's status. The accepted instant is set
// when entering accepted and cleared on any other status, keeping the
// accepted_at-iff-accepted invariant true on disk.
func (r FriendshipRepository) UpdateStatus(userA, userB string, status domain.FriendshipStatus) (domain.Friendship, error) {
	f, err := r.Get(userA, userB)
	if err != nil {
		return f, err
	}

	f.Status = status
	if status == domain.FriendshipAccepted {
		now := time.Now().UTC()
		f.AcceptedAt = &now
	} else {
		f.AcceptedAt = nil
	}
	if vs := domain.ValidateFriendship(f); !vs.OK() {
		return f, fmt.Errorf("invalid friendship: %s", strings.Join(vs.Strings(), "; "))
	}

	data, err := json.Marshal(fromFriendship(f))
	if err != nil {
		return f, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(friendKey(f.User1ID, f.User2ID), data)
	})
	return f, err
}

func fromFriendship(f domain.Friendship) diskFriendship {
	return diskFriendship{
		User1ID:    f.User1ID,
		User2ID:    f.User2ID,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt,
		AcceptedAt: f.AcceptedAt,
	}
}

func toFriendship(df diskFriendship) domain.Friendship {
	return domain.Friendship{
		User1ID:    df.User1ID,
		User2ID:    df.User2ID,
		Status:     domain.FriendshipStatus(df.Status),
		CreatedAt:  df.CreatedAt,
		AcceptedAt: df.AcceptedAt,
	}
}
