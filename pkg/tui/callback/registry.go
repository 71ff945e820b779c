// ABOUTME: Ordered multi-subscriber callback list keyed by an owner token
// ABOUTME: Callbacks run synchronously, in registration order, on the caller's goroutine

package callback

import "sync"

// Func is a callback receiving one argument.
type Func[A any] func(A)

type entry[A any] struct {
	fn    Func[A]
	owner any
}

// Registry holds callbacks in the order they were added. Owner tokens must be
// comparable; they are only used to find an entry again in Remove.
type Registry[A any] struct {
	mu      sync.Mutex
	entries []entry[A]
}

// Add appends fn under owner. The same owner may register several callbacks.
func (r *Registry[A]) Add(fn Func[A], owner any) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry[A]{fn: fn, owner: owner})
	r.mu.Unlock()
}

// Remove deletes the first entry registered by owner.
// Returns false if owner has no entry.
func (r *Registry[A]) Remove(owner any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.owner == owner {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Call invokes every callback with arg. The list is snapshotted first so a
// callback may add or remove entries without deadlocking.
func (r *Registry[A]) Call(arg A) {
	r.mu.Lock()
	snapshot := make([]Func[A], len(r.entries))
	for i, e := range r.entries {
		snapshot[i] = e.fn
	}
	r.mu.Unlock()

	for _, fn := range snapshot {
		fn(arg)
	}
}

// Len returns the number of registered callbacks.
func (r *Registry[A]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
