package events

import (
	"context"
	"fmt"

	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/logger"
)

// AuditLog writes every post and user lifecycle event to the logger.
type AuditLog struct {
	logger logger.Logger
}

// NewAuditLog subscribes an AuditLog to all lifecycle topics on bus.
func NewAuditLog(bus *eventbus.Bus, log logger.Logger) *AuditLog {
	a := &AuditLog{logger: log}
	for _, topic := range []eventbus.Topic{
		PostCreatedTopic,
		PostUpdatedTopic,
		PostDeletedTopic,
		UserRegisteredTopic,
	} {
		bus.Subscribe(topic, a.handle)
	}
	return a
}

func (a *AuditLog) handle(ctx context.Context, event eventbus.Event) error {
	switch p := event.Payload.(type) {
	case PostCreatedEvent:
		a.logger.Info(ctx, "audit", "topic", event.Topic, "post_id", p.PostID, "author", p.Author, "at", p.OccurredAt)
	case PostUpdatedEvent:
		a.logger.Info(ctx, "audit", "topic", event.Topic, "post_id", p.PostID, "fields", p.Fields, "at", p.OccurredAt)
	case PostDeletedEvent:
		a.logger.Info(ctx, "audit", "topic", event.Topic, "post_id", p.PostID, "at", p.OccurredAt)
	case UserRegisteredEvent:
		a.logger.Info(ctx, "audit", "topic", event.Topic, "user_id", p.UserID, "at", p.OccurredAt)
	default:
		return fmt.Errorf("audit: unexpected payload %T on %s", event.Payload, event.Topic)
	}
	return nil
}
