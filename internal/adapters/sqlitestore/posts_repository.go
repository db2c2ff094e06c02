package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
)

var postColumns = []string{"id", "title", "content", "author", "date"}

type PostRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db, sb: builder()}
}

// Ping reports whether the database file can still be queried
func (r *PostRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts the post; AUTOINCREMENT keeps ids of deleted rows retired
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query, args, err := r.sb.
		Insert("posts").
		Columns("title", "content", "author", "date").
		Values(post.Title, post.Content, post.Author, formatTime(post.Date)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Create: build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	qb := r.sb.Update("posts").Where(sq.Eq{"id": id})
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

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.Update: %w", err)
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}
	if n == 0 {
		return ports.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	query, args, err := r.sb.Select(postColumns...).From("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindByID: build query: %w", err)
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	query, args, err := r.sb.Select(postColumns...).From("posts").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("posts").ToSql()
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: build query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("PostRepository.Count: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		post domain.Post
		date string
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &date); err != nil {
		return nil, err
	}
	t, err := parseTime(date)
	if err != nil {
		return nil, err
	}
	post.Date = t
	return &post, nil
}

var _ ports.PostRepository = (*PostRepository)(nil)
