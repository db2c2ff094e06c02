package postgres_test

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/philly/quillpost/internal/platform/postgres"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: postgres.UniqueViolation, ConstraintName: "users_email_key"}

	assert.True(t, postgres.IsUniqueViolation(dup, "users_email_key"))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("insert: %w", dup), ""))
	assert.False(t, postgres.IsUniqueViolation(dup, "posts_pkey"))
	assert.False(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, postgres.IsUniqueViolation(fmt.Errorf("plain"), ""))
}

func TestBaseRepositoryUsesDollarPlaceholders(t *testing.T) {
	base := postgres.NewBaseRepository(nil)

	query, args, err := base.SB.Select("id").From("posts").Where("id = ?", 3).ToSql()

	assert.NoError(t, err)
	assert.Equal(t, "SELECT id FROM posts WHERE id = $1", query)
	assert.Equal(t, []any{3}, args)
}
