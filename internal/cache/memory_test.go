package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	val, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryDeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, UserGameRatingKey("u1", 1), []byte("a"), 0))
	require.NoError(t, m.Set(ctx, UserRatingsPageKey("u1", 1, 20), []byte("b"), 0))
	require.NoError(t, m.Set(ctx, UserRatingsPageKey("u2", 1, 20), []byte("c"), 0))

	for _, p := range UserPrefix("u1") {
		require.NoError(t, m.DeletePrefix(ctx, p))
	}

	_, ok, _ := m.Get(ctx, UserGameRatingKey("u1", 1))
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, UserRatingsPageKey("u1", 1, 20))
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, UserRatingsPageKey("u2", 1, 20))
	assert.True(t, ok, "other user's entries must survive")
}
