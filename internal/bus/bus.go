// Package bus is a typed observer registry keyed by topic name. The
// registry is owned by the application root and passed by reference to
// producers and consumers; there is deliberately no package-level
// default instance.
package bus

import "sync"

// Bus routes published values to the subscribers of a topic, in
// subscription order, synchronously on the publisher's goroutine.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID int
	topics map[string][]subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{topics: make(map[string][]subscriber[T])}
}

// Subscribe registers fn for a topic and returns its cancel function.
// Cancel is idempotent.
func (b *Bus[T]) Subscribe(topic string, fn func(T)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscriber[T]{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.topics[topic]
		for i, s := range subs {
			if s.id == id {
				b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every subscriber of the topic. Publishing to a
// topic with no subscribers is a no-op.
func (b *Bus[T]) Publish(topic string, v T) {
	b.mu.Lock()
	subs := make([]subscriber[T], len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len reports the number of subscribers on a topic.
func (b *Bus[T]) Len(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}
