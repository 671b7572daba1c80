package channels

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber holds a channel and its send timeout configuration.
type subscriber[T any] struct {
	ch       chan<- T
	timeout  *time.Duration // nil means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return
	}
	var err error
	if s.timeout != nil {
		err = SendWithTimeout(s.ch, msg, *s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}
	if err != nil {
		// if channel is closed, mark inactive
		// otherwise just count dropped messages
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
	}
}

// Broadcaster delivers published messages to a dynamic set of subscriber
// channels. Subscribers may attach and detach at any time, including while
// other goroutines publish.
//
// Messages are sent to each subscriber using its configured send strategy:
// - Non-blocking (default): the message is dropped if the channel is full
// - With timeout: the message is dropped if the send times out
//
// A slow or full subscriber never blocks the publisher beyond its own
// timeout and never affects delivery to other subscribers.
type Broadcaster[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber[T]
}

// NewBroadcaster creates a Broadcaster with no subscribers.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[int]*subscriber[T]),
	}
}

// Subscribe adds a channel to receive published messages in non-blocking
// mode and returns the subscription id for Unsubscribe.
func (b *Broadcaster[T]) Subscribe(ch chan<- T) (int, error) {
	if ch == nil {
		return 0, fmt.Errorf("subscriber channel cannot be nil")
	}
	return b.add(&subscriber[T]{ch: ch}), nil
}

// SubscribeWithTimeout adds a channel to receive published messages with a
// send timeout and returns the subscription id for Unsubscribe.
func (b *Broadcaster[T]) SubscribeWithTimeout(ch chan<- T, timeout time.Duration) (int, error) {
	if ch == nil {
		return 0, fmt.Errorf("subscriber channel cannot be nil")
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("send timeout must be positive")
	}
	return b.add(&subscriber[T]{ch: ch, timeout: &timeout}), nil
}

func (b *Broadcaster[T]) add(sub *subscriber[T]) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[b.nextID] = sub
	return b.nextID
}

// Unsubscribe removes a subscription. The channel is not closed; that stays
// with its owner. Unknown ids are ignored.
func (b *Broadcaster[T]) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, id)
}

// Publish delivers msg to every current subscriber. It never blocks longer
// than the slowest per-subscriber timeout and is safe for concurrent use.
func (b *Broadcaster[T]) Publish(msg T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		sub.send(msg)
	}
}

// Len returns the number of current subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// SubscriberStats reports delivery health for one subscription.
type SubscriberStats struct {
	Dropped  int
	Inactive bool
}

// Stats returns delivery stats keyed by subscription id.
func (b *Broadcaster[T]) Stats() map[int]SubscriberStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := make(map[int]SubscriberStats, len(b.subs))
	for id, sub := range b.subs {
		stats[id] = SubscriberStats{
			Dropped:  int(sub.dropped.Load()),
			Inactive: sub.inactive.Load(),
		}
	}
	return stats
}
