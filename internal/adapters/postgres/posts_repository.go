package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/philly/quillpost/internal/platform/postgres"
	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
)

var postColumns = []string{"id", "title", "content", "author", "date"}

// PostRepository implements ports.PostRepository using PostgreSQL
type PostRepository struct {
	postgres.BaseRepository
}

// NewPostRepository creates a new PostgreSQL posts repository
func NewPostRepository(db postgres.Querier) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new post and stores the generated ID on post
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Insert("posts").
		Columns("title", "content", "author", "date").
		Values(post.Title, post.Content, post.Author, post.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Create: build query: %w", err)
	}

	if err := r.DB.QueryRow(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}

	return nil
}

// Update sets only the supplied columns in a single statement
func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	qb := r.SB.Update("posts").Where(sq.Eq{"id": id})
	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		qb = qb.Set("content", *patch.Content)
	}
	if patch.Author != nil {
		qb = qb.Set("author", *patch.Author)
	}

	query, args, err := qb.Suffix("RETURNING id, title, content, author, date").ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.Update: build query: %w", err)
	}

	post, err := scanPost(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.Update: %w", err)
	}

	return post, nil
}

// Delete removes a post from the database
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.SB.
		Delete("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	query, args, err := r.SB.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindByID: build query: %w", err)
	}

	post, err := scanPost(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}

	return post, nil
}

// List retrieves every post ordered by ID
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	query, args, err := r.SB.
		Select(postColumns...).
		From("posts").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("PostRepository.List: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.List: rows error: %w", err)
	}

	return posts, nil
}

// Count returns the total number of posts
func (r *PostRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.SB.Select("COUNT(*)").From("posts").ToSql()
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: build query: %w", err)
	}

	var count int
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("PostRepository.Count: %w", err)
	}

	return count, nil
}

// scanPost scans a single post; pgx.Rows satisfies pgx.Row
func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &post.Date); err != nil {
		return nil, err
	}
	post.Date = post.Date.UTC()
	return &post, nil
}

var _ ports.PostRepository = (*PostRepository)(nil)
