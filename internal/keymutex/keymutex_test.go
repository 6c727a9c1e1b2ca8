package keymutex

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))
	m.Unlock("u1")
	require.NoError(t, m.Lock(context.Background(), "u1"))
	m.Unlock("u1")
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := m.Lock(context.Background(), "u2"); err != nil {
			t.Error(err)
			return
		}
		m.Unlock("u2")
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different key blocked")
	}
	m.Unlock("u1")
}

func TestSameKeySerializes(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))

	acquired := make(chan struct{})
	go func() {
		if err := m.Lock(context.Background(), "u1"); err != nil {
			t.Error(err)
			return
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquisition succeeded while lock was held")
	case <-time.After(100 * time.Millisecond):
	}

	m.Unlock("u1")

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second acquisition never granted after release")
	}
	m.Unlock("u1")
}

func TestFIFOOrdering(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))

	const waiters = 10
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	started := make(chan struct{})
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-started
			// Stagger enqueue so arrival order is deterministic.
			time.Sleep(time.Duration(n) * 20 * time.Millisecond)
			if err := m.Lock(context.Background(), "u1"); err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			m.Unlock("u1")
		}(i)
	}

	close(started)
	// Let every waiter enqueue before the first release.
	time.Sleep(time.Duration(waiters)*20*time.Millisecond + 200*time.Millisecond)
	m.Unlock("u1")
	wg.Wait()

	require.Len(t, order, waiters)
	for i, n := range order {
		assert.Equal(t, i, n, "waiters granted out of acquisition order")
	}
}

func TestCancelledWaitDoesNotCorruptLock(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Lock(ctx, "u1")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	// The holder can still release and the key stays usable.
	m.Unlock("u1")
	require.NoError(t, m.Lock(context.Background(), "u1"))
	m.Unlock("u1")
}

func TestCancelledWaiterSkippedInQueue(t *testing.T) {
	m := New()
	require.NoError(t, m.Lock(context.Background(), "u1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancelledErr := make(chan error, 1)
	go func() {
		cancelledErr <- m.Lock(ctx, "u1")
	}()
	time.Sleep(50 * time.Millisecond)

	granted := make(chan struct{})
	go func() {
		if err := m.Lock(context.Background(), "u1"); err != nil {
			t.Error(err)
			return
		}
		close(granted)
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.Error(t, <-cancelledErr)

	m.Unlock("u1")
	select {
	case <-granted:
	case <-time.After(2 * time.Second):
		t.Fatal("lock not handed past a cancelled waiter")
	}
	m.Unlock("u1")
}

func TestUnlockOfUnlockedKeyPanics(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.Unlock("nope") })
}
