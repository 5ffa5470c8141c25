// Package state provides an observable value guarded by a mutex.
package state

import "sync"

// Container holds a value of type T and notifies subscribers after every update.
// Observers run synchronously, outside the lock, in subscription order.
//
// Update functions must replace slices and maps rather than mutate them in place:
// a snapshot handed to an observer shares backing storage with the held value.
type Container[T any] struct {
	mu        sync.Mutex
	value     T
	observers []observer[T]
	nextID    int
}

type observer[T any] struct {
	id int
	fn func(T)
}

// NewContainer returns a container holding initial.
func NewContainer[T any](initial T) *Container[T] {
	return &Container[T]{value: initial}
}

// Get returns the current value.
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Update applies fn to the held value and notifies observers with the result.
func (c *Container[T]) Update(fn func(*T)) T {
	c.mu.Lock()
	fn(&c.value)
	snapshot := c.value
	observers := make([]observer[T], len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, o := range observers {
		o.fn(snapshot)
	}
	return snapshot
}

// Set replaces the held value.
func (c *Container[T]) Set(v T) T {
	return c.Update(func(cur *T) { *cur = v })
}

// Subscribe registers fn and returns a function that removes it.
func (c *Container[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}
