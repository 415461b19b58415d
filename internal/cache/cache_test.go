package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetcher(calls *atomic.Int64, value any) Fetcher {
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	opts := Options{StaleTime: time.Minute, CacheTime: time.Hour}

	t.Run("miss fetches synchronously", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64

		value, err := store.Read(ctx, NewKey("agents"), countingFetcher(&calls, "v1"), opts)
		require.NoError(t, err)
		assert.Equal(t, "v1", value)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("fresh entry served without refetch", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("agents")

		store.Read(ctx, key, countingFetcher(&calls, "v1"), opts)
		value, err := store.Read(ctx, key, countingFetcher(&calls, "v2"), opts)
		require.NoError(t, err)
		assert.Equal(t, "v1", value)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("stale entry returns cached value and refetches in background", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("agents")

		now := time.Now()
		store.now = func() time.Time { return now }

		store.Read(ctx, key, countingFetcher(&calls, "v1"), opts)

		now = now.Add(2 * time.Minute)
		value, err := store.Read(ctx, key, countingFetcher(&calls, "v2"), opts)
		require.NoError(t, err)
		assert.Equal(t, "v1", value, "stale read must not block on the refetch")

		assert.Eventually(t, func() bool {
			v, _ := store.Peek(key)
			return v == "v2"
		}, time.Second, time.Millisecond)
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("two stale reads trigger one refetch", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("agents")

		now := time.Now()
		store.now = func() time.Time { return now }
		store.Read(ctx, key, countingFetcher(&calls, "v1"), opts)

		now = now.Add(2 * time.Minute)
		release := make(chan struct{})
		slow := func(ctx context.Context) (any, error) {
			calls.Add(1)
			<-release
			return "v2", nil
		}
		store.Read(ctx, key, slow, opts)
		store.Read(ctx, key, slow, opts)
		close(release)

		assert.Eventually(t, func() bool {
			v, _ := store.Peek(key)
			return v == "v2"
		}, time.Second, time.Millisecond)
		assert.Equal(t, int64(2), calls.Load(), "initial fetch plus exactly one refetch")
	})

	t.Run("concurrent misses coalesce onto one fetch", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("leads")

		started := make(chan struct{})
		release := make(chan struct{})
		slow := func(ctx context.Context) (any, error) {
			calls.Add(1)
			close(started)
			<-release
			return "v1", nil
		}

		var wg sync.WaitGroup
		results := make([]any, 2)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[0], _ = store.Read(ctx, key, slow, opts)
		}()

		<-started
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[1], _ = store.Read(ctx, key, slow, opts)
		}()

		// Give the second reader a moment to join the in-flight request.
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int64(1), calls.Load())
		assert.Equal(t, "v1", results[0])
		assert.Equal(t, "v1", results[1])
	})

	t.Run("entries unused past cache time are evicted", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("agents")

		now := time.Now()
		store.now = func() time.Time { return now }
		store.Read(ctx, key, countingFetcher(&calls, "v1"), opts)

		now = now.Add(2 * time.Hour)
		value, err := store.Read(ctx, key, countingFetcher(&calls, "v2"), opts)
		require.NoError(t, err)
		assert.Equal(t, "v2", value, "evicted entry refetches synchronously")
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("failed background refetch keeps stale value", func(t *testing.T) {
		store := NewStore(opts)
		key := NewKey("agents")

		now := time.Now()
		store.now = func() time.Time { return now }
		store.Read(ctx, key, func(ctx context.Context) (any, error) { return "v1", nil }, opts)

		now = now.Add(2 * time.Minute)
		var failed atomic.Bool
		value, err := store.Read(ctx, key, func(ctx context.Context) (any, error) {
			failed.Store(true)
			return nil, assert.AnError
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, "v1", value)

		assert.Eventually(t, func() bool { return failed.Load() }, time.Second, time.Millisecond)
		v, ok := store.Peek(key)
		assert.True(t, ok)
		assert.Equal(t, "v1", v)
	})
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	opts := Options{StaleTime: time.Minute, CacheTime: time.Hour}

	t.Run("keeps value visible and refetches in background", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64
		key := NewKey("leads")

		store.Read(ctx, key, countingFetcher(&calls, "v1"), opts)
		store.Invalidate(key)

		v, ok := store.Peek(key)
		assert.True(t, ok, "invalidation must never drop the entry synchronously")
		assert.NotNil(t, v)

		assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		store := NewStore(opts)
		store.Invalidate(NewKey("nothing"))
	})

	t.Run("resource invalidation spans filters", func(t *testing.T) {
		store := NewStore(opts)
		var calls atomic.Int64

		store.Read(ctx, NewKey("leads", "agent-1"), countingFetcher(&calls, "a"), opts)
		store.Read(ctx, NewKey("leads", "agent-2"), countingFetcher(&calls, "b"), opts)
		store.Read(ctx, NewKey("agents"), countingFetcher(&calls, "c"), opts)

		store.InvalidateResource("leads")

		assert.Eventually(t, func() bool { return calls.Load() == 5 }, time.Second, time.Millisecond)
		// Agents entry untouched.
		assert.Equal(t, int64(5), calls.Load())
	})
}

func TestTypedRead(t *testing.T) {
	ctx := context.Background()
	opts := Options{StaleTime: time.Minute, CacheTime: time.Hour}
	store := NewStore(opts)

	names, err := Read(ctx, store, NewKey("voices"), opts, func(ctx context.Context) ([]string, error) {
		return []string{"nova", "atlas"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nova", "atlas"}, names)
}
