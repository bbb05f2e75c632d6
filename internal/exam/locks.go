package exam

import "sync"

// userLocks serializes message handling per user id while leaving distinct
// users free to proceed in parallel. Entries are refcounted and removed once
// the last holder releases, so the map does not grow with user history.
type userLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the caller holds the lock for the id and returns the
// matching release func.
func (l *userLocks) acquire(id string) func() {
	l.mu.Lock()
	entry := l.entries[id]
	if entry == nil {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}
