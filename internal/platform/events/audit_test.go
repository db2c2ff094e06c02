package events_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	errs  []string
}

func (r *recordingLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (r *recordingLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (r *recordingLogger) Info(ctx context.Context, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, string(args[1].(eventbus.Topic)))
}
func (r *recordingLogger) Error(ctx context.Context, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, msg)
}

func TestAuditLogRecordsLifecycleEvents(t *testing.T) {
	log := &recordingLogger{}
	bus := eventbus.NewBus(log)
	events.NewAuditLog(bus, log)

	ctx := context.Background()
	now := time.Now()
	bus.Publish(ctx, eventbus.Event{Topic: events.PostCreatedTopic, Payload: events.PostCreatedEvent{PostID: 1, Author: "C", OccurredAt: now}})
	bus.Publish(ctx, eventbus.Event{Topic: events.PostUpdatedTopic, Payload: events.PostUpdatedEvent{PostID: 1, Fields: []string{"title"}, OccurredAt: now}})
	bus.Publish(ctx, eventbus.Event{Topic: events.PostDeletedTopic, Payload: events.PostDeletedEvent{PostID: 1, OccurredAt: now}})
	bus.Wait()

	assert.ElementsMatch(t, []string{"posts.created", "posts.updated", "posts.deleted"}, log.infos)
	assert.Empty(t, log.errs)
}

func TestAuditLogRejectsUnknownPayload(t *testing.T) {
	log := &recordingLogger{}
	bus := eventbus.NewBus(log)
	events.NewAuditLog(bus, log)

	bus.Publish(context.Background(), eventbus.Event{Topic: events.PostCreatedTopic, Payload: "oops"})
	bus.Wait()

	assert.Equal(t, []string{"event handler failed"}, log.errs)
}
