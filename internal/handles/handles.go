// Package handles keeps Go values behind opaque integer handles so that
// callers on the far side of a binding boundary never hold a pointer.
package handles

import "sync"

// Handle is an opaque identifier issued by a Registry. The zero value is never
// issued and always denotes "no object".
type Handle uint64

// Null is the invalid sentinel handle.
const Null Handle = 0

// Registry maps handles to values. Handles are issued monotonically and never
// reused, so a stale handle cannot alias a value registered later.
type Registry[T any] struct {
	mu   sync.Mutex
	next Handle
	reg  map[Handle]T
}

func New[T any]() *Registry[T] {
	return &Registry[T]{next: 1, reg: make(map[Handle]T)}
}

// Put stores v and returns its handle.
func (r *Registry[T]) Put(v T) Handle {
	r.mu.Lock()
	h := r.next
	r.next++
	r.reg[h] = v
	r.mu.Unlock()
	return h
}

// Get returns the value registered under h.
func (r *Registry[T]) Get(h Handle) (T, bool) {
	r.mu.Lock()
	v, ok := r.reg[h]
	r.mu.Unlock()
	return v, ok
}

// Take removes h from the registry and returns its value. Only one caller
// observes ok == true for a given handle.
func (r *Registry[T]) Take(h Handle) (T, bool) {
	r.mu.Lock()
	v, ok := r.reg[h]
	if ok {
		delete(r.reg, h)
	}
	r.mu.Unlock()
	return v, ok
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reg)
}
