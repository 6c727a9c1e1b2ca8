// Package keymutex provides per-key mutual exclusion. Operations on the
// same key are serialized in strict acquisition order; operations on
// different keys never block each other.
package keymutex

import (
	"context"
	"sync"
)

type waiter chan struct{}

type entry struct {
	locked bool
	// queue holds pending acquisitions in FIFO order. The head waiter
	// is granted the lock on release.
	queue []waiter
}

// KeyMutex is a set of mutexes addressed by string key. Entries are
// created lazily on first use and kept for the lifetime of the KeyMutex.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is available or
// ctx is done. When ctx is cancelled mid-wait the waiter is removed
// from the queue without disturbing the current or next holder.
func (m *KeyMutex) Lock(ctx context.Context, key string) error {
	m.mu.Lock()
	e := m.entries[key]
	if e == nil {
		e = &entry{}
		m.entries[key] = e
	}
	if !e.locked {
		e.locked = true
		m.mu.Unlock()
		return nil
	}

	w := make(waiter)
	e.queue = append(e.queue, w)
	m.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		select {
		case <-w:
			// The lock was handed to us while we were cancelling.
			// Pass it straight on so it is not lost.
			m.grantNext(e)
			m.mu.Unlock()
			return ctx.Err()
		default:
		}
		for i, qw := range e.queue {
			if qw == w {
				e.queue = append(e.queue[:i], e.queue[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		return ctx.Err()
	}
}

// Unlock releases the mutex for key, waking the longest-waiting
// acquirer if any. Unlocking a key that is not held panics.
func (m *KeyMutex) Unlock(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	if e == nil || !e.locked {
		panic("keymutex: unlock of unlocked key " + key)
	}
	m.grantNext(e)
}

// grantNext hands the lock to the head of the queue, or marks the entry
// free when nobody is waiting. Callers must hold m.mu.
func (m *KeyMutex) grantNext(e *entry) {
	if len(e.queue) == 0 {
		e.locked = false
		return
	}
	w := e.queue[0]
	e.queue = e.queue[1:]
	close(w)
}
