package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID      int64     `bson:"_id"`
	Title   string    `bson:"title"`
	Content string    `bson:"content"`
	Author  string    `bson:"author"`
	Date    time.Time `bson:"date"`
}

func (d postDocument) toDomain() *domain.Post {
	return &domain.Post{ID: d.ID, Title: d.Title, Content: d.Content, Author: d.Author, Date: d.Date.UTC()}
}

type PostRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{db: db, coll: db.Collection(postsCollection)}
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: %w", err)
	}
	defer cur.Close(ctx)

	posts := []*domain.Post{}
	for cur.Next(ctx) {
		var doc postDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("PostRepository.List: decode: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.List: cursor: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var doc postDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	id, err := nextSequence(ctx, r.db, postsCollection)
	if err != nil {
		return fmt.Errorf("PostRepository.Create: next id: %w", err)
	}

	doc := postDocument{ID: id, Title: post.Title, Content: post.Content, Author: post.Author, Date: post.Date}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}
	post.ID = id
	return nil
}

// Update applies the patch with a single $set and returns the new document.
func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}

	var doc postDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.Update: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ports.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: %w", err)
	}
	return int(n), nil
}

// Ping reaches the primary.
func (r *PostRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

var _ ports.PostRepository = (*PostRepository)(nil)
