package rest

import (
	"fmt"
	"net/url"
	"time"

	"github.com/philly/quillpost/internal/posts/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

// postResponse is the wire shape of a post
type postResponse struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

func domainPostToAPI(post *domain.Post) postResponse {
	return postResponse{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		Author:  post.Author,
		Date:    post.Date,
	}
}

func domainPostsToAPI(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, domainPostToAPI(p))
	}
	return out
}

// postRequest is used for both create and patch. Pointers distinguish an
// absent field from an empty one.
type postRequest struct {
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Author  *string    `json:"author"`
	Date    *time.Time `json:"date"`
}

func (p *postRequest) fromForm(form url.Values) error {
	p.Title = formValue(form, "title")
	p.Content = formValue(form, "content")
	p.Author = formValue(form, "author")

	if raw := form.Get("date"); raw != "" {
		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", raw, err)
		}
		p.Date = &date
	}
	return nil
}

func (p postRequest) patch() domain.Patch {
	return domain.Patch{Title: p.Title, Content: p.Content, Author: p.Author}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *credentialsRequest) fromForm(form url.Values) error {
	c.Email = form.Get("email")
	c.Password = form.Get("password")
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
