package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/philly/quillpost/internal/users/domain"
	"github.com/philly/quillpost/internal/users/ports"
)

type UserRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, sb: builder()}
}

// Create relies on the UNIQUE email column to reject duplicates
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := r.sb.
		Insert("users").
		Columns("id", "email", "password_hash", "created_at").
		Values(user.ID.String(), user.Email, user.PasswordHash, formatTime(user.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Create: build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ports.ErrEmailTaken
		}
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := r.sb.
		Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByEmail: build query: %w", err)
	}

	var (
		user      domain.User
		id        string
		createdAt string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}

	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("UserRepository.FindByEmail: bad id %q: %w", id, err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}
	return &user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
