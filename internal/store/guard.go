package store

import (
	"sync"

	"github.com/elchemista/vettore/internal/verrors"
)

// GuardedCollection serializes access to a Collection with a reader/writer
// discipline and reproduces Rust's RwLock poisoning: if a write critical
// section panics, the guard is marked poisoned and every later access,
// read or write, fails with ErrCollectionLockPoisoned instead of running.
type GuardedCollection struct {
	mu       sync.RWMutex
	col      *Collection
	poisoned bool
}

// NewGuarded wraps col with a reader/writer guard.
func NewGuarded(col *Collection) *GuardedCollection {
	return &GuardedCollection{col: col}
}

// Read runs fn with a read lock held. fn must not mutate the collection.
func (g *GuardedCollection) Read(fn func(*Collection) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.poisoned {
		return verrors.ErrCollectionLockPoisoned
	}
	return fn(g.col)
}

// Write runs fn with a write lock held. A panic inside fn is recovered,
// poisons the guard, and is reported as ErrCollectionLockPoisoned both for
// this call and every subsequent one.
func (g *GuardedCollection) Write(fn func(*Collection) error) (err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.poisoned {
		return verrors.ErrCollectionLockPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			g.poisoned = true
			g.col.log.Debug("collection guard poisoned by panic", "panic", r)
			err = verrors.ErrCollectionLockPoisoned
		}
	}()
	return fn(g.col)
}

// Poisoned reports whether a prior write panic poisoned this guard.
func (g *GuardedCollection) Poisoned() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.poisoned
}
