package lock

import (
	"context"
	"sync"
)

// KeyLocker hands out one lock per key. Entries are reference counted and
// removed once nobody holds or waits on them, so the map only grows with the
// number of keys in flight.
type KeyLocker struct {
	mapMutex sync.Mutex
	keys     map[string]*keyMutex
}

// keyMutex is a one slot semaphore so a waiter can give up on ctx.
type keyMutex struct {
	ch   chan struct{}
	refs int
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{
		keys: make(map[string]*keyMutex),
	}
}

func (l *KeyLocker) AcquireLock(key string) {
	_ = l.AcquireLockContext(context.Background(), key)
}

// AcquireLockContext waits for the lock on key until ctx is done. On error
// the lock is not held and ReleaseLock must not be called.
func (l *KeyLocker) AcquireLockContext(ctx context.Context, key string) error {
	l.mapMutex.Lock()
	m, ok := l.keys[key]
	if !ok {
		m = &keyMutex{ch: make(chan struct{}, 1)}
		l.keys[key] = m
	}
	m.refs++
	l.mapMutex.Unlock()

	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mapMutex.Lock()
		l.unref(key, m)
		l.mapMutex.Unlock()
		return ctx.Err()
	}
}

func (l *KeyLocker) ReleaseLock(key string) {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()

	m, ok := l.keys[key]
	if !ok {
		panic("lock: ReleaseLock called on key with no mutex: " + key)
	}

	l.unref(key, m)
	<-m.ch
}

// unref must be called with mapMutex held.
func (l *KeyLocker) unref(key string, m *keyMutex) {
	m.refs--
	if m.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *KeyLocker) WithLock(key string, f func() error) error {
	return l.WithLockContext(context.Background(), key, f)
}

// WithLockContext runs f holding the lock on key, or returns ctx.Err() if ctx
// is done before the lock is acquired.
func (l *KeyLocker) WithLockContext(ctx context.Context, key string, f func() error) error {
	if err := l.AcquireLockContext(ctx, key); err != nil {
		return err
	}
	defer l.ReleaseLock(key)
	return f()
}

// Len returns the number of keys currently held or waited on.
func (l *KeyLocker) Len() int {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()
	return len(l.keys)
}
