package boltstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/philly/quillpost/internal/users/domain"
	"github.com/philly/quillpost/internal/users/ports"
	bolt "go.etcd.io/bbolt"
)

type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepository keeps user documents keyed by ID plus an email -> ID index.
// Bolt serializes writers, so the index check and both puts are atomic.
type UserRepository struct {
	db *bolt.DB
}

func NewUserRepository(db *bolt.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	rec := userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(usersEmailBucket)
		if index.Get([]byte(user.Email)) != nil {
			return ports.ErrEmailTaken
		}
		key := user.ID[:]
		if err := tx.Bucket(usersBucket).Put(key, buf); err != nil {
			return err
		}
		return index.Put([]byte(user.Email), key)
	})
	if err != nil {
		if errors.Is(err, ports.ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(usersEmailBucket).Get([]byte(email))
		if id == nil {
			return nil
		}
		v := tx.Bucket(usersBucket).Get(id)
		if v == nil {
			return fmt.Errorf("email index points at missing user %x", id)
		}
		var rec userRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		user = &domain.User{
			ID:           rec.ID,
			Email:        rec.Email,
			PasswordHash: rec.PasswordHash,
			CreatedAt:    rec.CreatedAt.UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
