package utils

import "sync"

// PubSubChannel fans one stream of messages out to every subscriber.
// The feedback pipeline publishes reports through one of these so the
// persistence writer and the metrics recorder each get their own copy.
type PubSubChannel[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	closed bool
}

func NewPubSubChannel[T any]() *PubSubChannel[T] {
	return &PubSubChannel[T]{
		subs: make([]chan T, 0, 2),
	}
}

// Publish delivers msg to all subscribers. Blocks until every
// subscriber has received it; slow subscribers slow everyone down.
func (b *PubSubChannel[T]) Publish(msg T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		ch <- msg
	}
}

// Subscribe registers a new subscriber. Returns nil after Close.
func (b *PubSubChannel[T]) Subscribe() <-chan T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	ch := make(chan T)
	b.subs = append(b.subs, ch)
	return ch
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *PubSubChannel[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subs {
		close(ch)
	}
}
