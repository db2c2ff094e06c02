package eventbus

import (
	"context"
	"sync"

	"github.com/philly/quillpost/internal/platform/logger"
)

// delivery is one handler invocation waiting in the queue
type delivery struct {
	ctx     context.Context
	event   Event
	handler Handler
}

// Bus manages subscriptions and event dispatching. Deliveries run off the
// publishing goroutine but in publish order, one at a time.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map

	qmu      sync.Mutex // Protects queue and draining
	queue    []delivery
	draining bool

	inflight sync.WaitGroup
	logger   logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish queues the event for every subscriber of its topic and returns
// without waiting. Handlers outlive the publishing request, so they receive
// a context detached from its cancellation.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.subscriptions[event.Topic]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	hctx := context.WithoutCancel(ctx)

	b.qmu.Lock()
	defer b.qmu.Unlock()
	for _, h := range handlers {
		b.inflight.Add(1)
		b.queue = append(b.queue, delivery{ctx: hctx, event: event, handler: h})
	}
	if !b.draining {
		b.draining = true
		go b.drain()
	}
}

// drain runs queued deliveries until the queue is empty. A handler may
// publish; its events join the back of the queue.
func (b *Bus) drain() {
	for {
		b.qmu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.qmu.Unlock()
			return
		}
		d := b.queue[0]
		b.queue[0] = delivery{}
		b.queue = b.queue[1:]
		b.qmu.Unlock()

		b.deliver(d)
	}
}

func (b *Bus) deliver(d delivery) {
	defer b.inflight.Done()
	if err := d.handler(d.ctx, d.event); err != nil {
		b.logger.Error(d.ctx, "event handler failed", "topic", d.event.Topic, "error", err)
	}
}

// Wait blocks until every queued delivery has run.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
