package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLockSerializesSameKey(t *testing.T) {
	l := NewKeyLocker()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock("same", func() error {
				n := atomic.AddInt32(&inside, 1)
				for {
					seen := atomic.LoadInt32(&maxSeen)
					if n <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, n) {
						break
					}
				}
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, 0, l.Len())
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	l := NewKeyLocker()
	l.AcquireLock("a")

	done := make(chan struct{})
	go func() {
		_ = l.WithLock("b", func() error { return nil })
		close(done)
	}()

	<-done
	assert.Equal(t, 1, l.Len())
	l.ReleaseLock("a")
	assert.Equal(t, 0, l.Len())
}

func TestWithLockReturnsError(t *testing.T) {
	l := NewKeyLocker()
	err := l.WithLock("k", func() error { return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
}

func TestWithLockContextGivesUpWhenCancelled(t *testing.T) {
	l := NewKeyLocker()
	l.AcquireLock("k")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	called := false
	err := l.WithLockContext(ctx, "k", func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
	assert.Equal(t, 1, l.Len())

	l.ReleaseLock("k")
	assert.Equal(t, 0, l.Len())

	// The key is usable again once the holder is gone.
	require.NoError(t, l.WithLockContext(context.Background(), "k", func() error { return nil }))
	assert.Equal(t, 0, l.Len())
}
