//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
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

type IProfileRepository interface {
	Upsert(p domain.UserProfile) (domain.UserProfile, error)
	Get(id string) (domain.UserProfile, error)
}

type ProfileRepository struct {
	db *badger.DB
}

func NewProfileRepository(db *badger.DB) ProfileRepository {
	return ProfileRepository{db: db}
}

type diskProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func profileKey(id string) []byte { return []byte("profile:" + id) }

func (r ProfileRepository) Upsert(p domain.UserProfile) (domain.UserProfile, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if vs := domain.ValidateProfile(p); !vs.OK() {
		return p, fmt.Errorf("invalid profile: %s", strings.Join(vs.Strings(), "; "))
	}

	data, err := json.Marshal(diskProfile{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return p, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.ID), data)
	})
	return p, err
}

func (r ProfileRepository) Get(id string) (domain.UserProfile, error) {
	var dp diskProfile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &dp)
		})
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return domain.UserProfile{
		ID:          dp.ID,
		Email:       dp.Email,
		DisplayName: dp.DisplayName,
		AvatarURL:   dp.AvatarURL,
		CreatedAt:   dp.CreatedAt,
		UpdatedAt:   dp.UpdatedAt,
	}, nil
}
