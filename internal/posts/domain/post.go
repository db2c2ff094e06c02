package domain

import (
	"errors"
	"time"
)

// Post represents a blog post in the domain
type Post struct {
	ID      int64 // assigned by storage on creation, immutable afterwards
	Title   string
	Content string
	Author  string
	Date    time.Time
}

// Validation errors
var (
	ErrInvalidTitle   = errors.New("title is required")
	ErrInvalidContent = errors.New("content is required")
	ErrInvalidAuthor  = errors.New("author is required")
)

// NewPost validates a post that has not been stored yet. A zero date
// defaults to now.
func NewPost(title, content, author string, date time.Time) (*Post, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}

	return &Post{
		Title:   title,
		Content: content,
		Author:  author,
		Date:    date.UTC(),
	}, nil
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
	Author  *string
}

// Validate checks that every supplied field is non-empty.
func (p Patch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validateContent(*p.Content); err != nil {
			return err
		}
	}
	if p.Author != nil {
		if err := validateAuthor(*p.Author); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch supplies no field at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Author == nil
}

// Fields lists the supplied field names in a fixed order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.Author != nil {
		fields = append(fields, "author")
	}
	return fields
}

// Apply copies the supplied fields onto post.
func (p Patch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
}

func validateTitle(title string) error {
	if title == "" {
		return ErrInvalidTitle
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return ErrInvalidContent
	}
	return nil
}

func validateAuthor(author string) error {
	if author == "" {
		return ErrInvalidAuthor
	}
	return nil
}
