// Package ref provides reference-counted strong and weak handles for sharing
// objects that hold releasable resources, such as content handlers that have
// adopted an external stream.
//
// Go's garbage collector reclaims memory just fine, cycles included, so these
// handles are not about memory. They are about deterministic release: an
// object wrapped in a Strong handle is finalized exactly when the last strong
// claim on it is released, no matter how many holders shared it or in what
// order they let go. A Weak handle observes the object without extending its
// life and reports destruction instead of dangling.
package ref

import (
	"sync"
)

// cell is the shared control block behind all handles to one object.
type cell[T any] struct {
	mu       sync.Mutex
	count    int
	val      *T
	finalize func(*T)
}

// release drops one strong claim and finalizes the object if it was the last.
func (c *cell[T]) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count--
	if c.count > 0 {
		return
	}

	if c.finalize != nil && c.val != nil {
		c.finalize(c.val)
	}
	c.val = nil
}

// Strong is an owning handle. The object lives exactly as long as at least
// one strong handle holds a claim on it. Cloning a Strong duplicates the
// ownership claim, not the object.
//
// A Strong handle is not safe for concurrent use by multiple goroutines, but
// distinct handles to the same object are.
type Strong[T any] struct {
	c        *cell[T]
	released bool
}

// New wraps v in a fresh Strong handle with a single claim and no finalizer.
func New[T any](v *T) *Strong[T] {
	return NewWithFinalizer(v, nil)
}

// NewWithFinalizer wraps v in a fresh Strong handle. When the last strong
// claim is released, finalize is called once with the object before it
// becomes unreachable through any handle.
func NewWithFinalizer[T any](v *T, finalize func(*T)) *Strong[T] {
	return &Strong[T]{c: &cell[T]{count: 1, val: v, finalize: finalize}}
}

// Get returns the held object or nil if this handle has been released. A
// nil handle behaves like a released one.
func (s *Strong[T]) Get() *T {
	if s == nil || s.released {
		return nil
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.val
}

// Clone adds an ownership claim and returns a new handle sharing the object.
// Cloning a nil or released handle returns nil, which itself behaves like a
// released handle.
func (s *Strong[T]) Clone() *Strong[T] {
	if s == nil || s.released {
		return nil
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.count++
	return &Strong[T]{c: s.c}
}

// Release drops this handle's claim. The first Release on the last live
// handle finalizes the object. Further calls on the same handle are no-ops,
// so deferring Release is always safe.
func (s *Strong[T]) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.c.release()
}

// Weak returns a non-owning observer of the same object. On a nil handle it
// returns a Weak that reports destroyed.
func (s *Strong[T]) Weak() *Weak[T] {
	if s == nil {
		return nil
	}
	return &Weak[T]{c: s.c}
}

// Weak is a non-owning handle. It never extends the object's lifetime.
// Dereferencing a Weak whose target has been destroyed fails observably
// rather than returning a dangling object.
type Weak[T any] struct {
	c *cell[T]
}

// Get returns the object and true while it is alive, or nil and false once
// the last strong claim has been released. The nil Weak reports destroyed.
func (w *Weak[T]) Get() (*T, bool) {
	if w == nil || w.c == nil {
		return nil, false
	}
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	if w.c.val == nil {
		return nil, false
	}
	return w.c.val, true
}

// Upgrade attempts to add a strong claim on the object. It returns a new
// Strong handle and true if the object is still alive, or nil and false if it
// has already been destroyed.
func (w *Weak[T]) Upgrade() (*Strong[T], bool) {
	if w == nil || w.c == nil {
		return nil, false
	}
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	if w.c.val == nil {
		return nil, false
	}
	w.c.count++
	return &Strong[T]{c: w.c}, true
}
