package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/philly/quillpost/internal/platform/eventbus"
)

// Event topics
const (
	PostCreatedTopic    eventbus.Topic = "posts.created"
	PostUpdatedTopic    eventbus.Topic = "posts.updated"
	PostDeletedTopic    eventbus.Topic = "posts.deleted"
	UserRegisteredTopic eventbus.Topic = "users.registered"
)

// PostCreatedEvent is published when a new post is created
type PostCreatedEvent struct {
	PostID     int64
	Title      string
	Author     string
	OccurredAt time.Time
}

// PostUpdatedEvent is published when a post is updated. Fields lists the
// attributes the request supplied.
type PostUpdatedEvent struct {
	PostID     int64
	Fields     []string
	OccurredAt time.Time
}

// PostDeletedEvent is published when a post is deleted
type PostDeletedEvent struct {
	PostID     int64
	OccurredAt time.Time
}

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID     uuid.UUID
	OccurredAt time.Time
}
