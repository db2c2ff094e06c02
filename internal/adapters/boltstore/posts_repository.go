package boltstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
	bolt "go.etcd.io/bbolt"
)

type postRecord struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

func toPostRecord(p *domain.Post) postRecord {
	return postRecord{ID: p.ID, Title: p.Title, Content: p.Content, Author: p.Author, Date: p.Date}
}

func (r postRecord) toDomain() *domain.Post {
	return &domain.Post{ID: r.ID, Title: r.Title, Content: r.Content, Author: r.Author, Date: r.Date.UTC()}
}

// PostRepository stores posts in the posts bucket.
type PostRepository struct {
	db *bolt.DB
}

func NewPostRepository(db *bolt.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	posts := []*domain.Post{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(postsBucket).ForEach(func(_, v []byte) error {
			var rec postRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			posts = append(posts, rec.toDomain())
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var post *domain.Post
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		post, err = getPost(tx.Bucket(postsBucket), id)
		return err
	})
	if err != nil {
		return nil, wrapPostErr("PostRepository.FindByID", err)
	}
	return post, nil
}

// Create takes the next bucket sequence as the ID, so IDs are never reused.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		rec := toPostRecord(post)
		rec.ID = int64(seq)
		if err := putPost(b, rec); err != nil {
			return err
		}
		post.ID = rec.ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	var post *domain.Post
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		current, err := getPost(b, id)
		if err != nil {
			return err
		}
		patch.Apply(current)
		post = current
		return putPost(b, toPostRecord(current))
	})
	if err != nil {
		return nil, wrapPostErr("PostRepository.Update", err)
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		if b.Get(itob(id)) == nil {
			return ports.ErrPostNotFound
		}
		return b.Delete(itob(id))
	})
	return wrapPostErr("PostRepository.Delete", err)
}

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(postsBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: %w", err)
	}
	return n, nil
}

// Ping checks that the database file is still open.
func (r *PostRepository) Ping(ctx context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error { return nil })
}

func getPost(b *bolt.Bucket, id int64) (*domain.Post, error) {
	v := b.Get(itob(id))
	if v == nil {
		return nil, ports.ErrPostNotFound
	}
	var rec postRecord
	if err := json.Unmarshal(v, &rec); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func putPost(b *bolt.Bucket, rec postRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return b.Put(itob(rec.ID), buf)
}

// wrapPostErr passes not-found through untouched so callers can match it.
func wrapPostErr(op string, err error) error {
	if err == nil || errors.Is(err, ports.ErrPostNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ ports.PostRepository = (*PostRepository)(nil)
