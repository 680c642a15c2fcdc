package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

const DefaultBuffer = 64

// Broadcaster fans events out to topic subscribers. Delivery is at-most-once:
// a subscriber whose buffer is full misses the event and Publish moves on.
type Broadcaster struct {
	mu      sync.RWMutex
	topics  map[string]map[*Subscription]struct{}
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

func New(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Broadcaster{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Publish delivers event to every current subscriber of topic without
// blocking, and returns the number of subscribers that received it.
func (b *Broadcaster) Publish(topic string, event domain.Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for sub := range b.topics[topic] {
		select {
		case sub.events <- event:
			delivered++
		default:
			b.dropped.Add(1)
			zap.L().Debug("dropped event for slow subscriber",
				zap.String("topic", topic),
				zap.String("subscriber", sub.id),
				zap.String("type", string(event.Type)),
			)
		}
	}

	return delivered
}

// Subscribe registers a new subscriber for the given topics. The caller must
// Close the subscription when done.
func (b *Broadcaster) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		id:     uuid.NewString(),
		topics: topics,
		events: make(chan domain.Event, b.buffer),
		b:      b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.events)
		sub.done = true
		return sub
	}

	for _, topic := range topics {
		subs, ok := b.topics[topic]
		if !ok {
			subs = make(map[*Subscription]struct{})
			b.topics[topic] = subs
		}
		subs[sub] = struct{}{}
	}

	return sub
}

// Subscribers returns the number of live subscriptions on topic.
func (b *Broadcaster) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.topics[topic])
}

// Dropped returns how many deliveries were skipped because a buffer was full.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Close ends every subscription. Later Subscribe calls get a closed channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, subs := range b.topics {
		for sub := range subs {
			if !sub.done {
				sub.done = true
				close(sub.events)
			}
		}
	}
	b.topics = make(map[string]map[*Subscription]struct{})
}

func (b *Broadcaster) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.done {
		return
	}
	sub.done = true

	for _, topic := range sub.topics {
		subs := b.topics[topic]
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
	}
	close(sub.events)
}

type Subscription struct {
	id     string
	topics []string
	events chan domain.Event
	b      *Broadcaster

	// done is guarded by b.mu.
	done bool
}

func (s *Subscription) ID() string {
	return s.id
}

// Events is closed once the subscription ends.
func (s *Subscription) Events() <-chan domain.Event {
	return s.events
}

func (s *Subscription) Close() {
	s.b.unsubscribe(s)
}
