// internal/core/store/slot.go

// Package store provides the named slot each entity collection lives in.
// A slot holds the current value of one durable record: the loaded (or
// defaulted) value at startup, then the result of the last successful
// mutation. Persistence and metrics recomputation attach as subscribers,
// so a write to a slot is what drives both.
package store

import "context"

// Slot is a single named record holder. It performs no locking of its
// own: the owning ledger serializes all access under its write lock.
type Slot[T any] struct {
	name  string
	value T
	subs  []func(context.Context, T)
}

// New creates a slot seeded with its default value.
func New[T any](name string, def T) *Slot[T] {
	return &Slot[T]{name: name, value: def}
}

// Name returns the durable record key this slot is stored under.
func (s *Slot[T]) Name() string {
	return s.name
}

// Get returns the current value.
func (s *Slot[T]) Get() T {
	return s.value
}

// Set assigns a new value and notifies subscribers in registration order.
func (s *Slot[T]) Set(ctx context.Context, v T) {
	s.value = v
	for _, fn := range s.subs {
		fn(ctx, v)
	}
}

// Subscribe registers fn to run synchronously after every Set.
func (s *Slot[T]) Subscribe(fn func(context.Context, T)) {
	s.subs = append(s.subs, fn)
}
