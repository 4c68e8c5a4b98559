package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/siteinv/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	// First push should succeed
	ok := f.Push("https://example.com/docs/page1")
	assert.True(t, ok, "first push should succeed")

	// Second push of same URL should be rejected
	ok = f.Push("https://example.com/docs/page1")
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Pop_returns_URLs_in_push_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push("https://example.com/c")
	f.Push("https://example.com/a")
	f.Push("https://example.com/b")

	for _, want := range []string{"https://example.com/c", "https://example.com/a", "https://example.com/b"} {
		got, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "empty frontier should report no URL")
}

func TestFrontier_Pop_keeps_order_across_compaction(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const n = 3000
	for i := range n {
		f.Push(fmt.Sprintf("https://example.com/%d", i))
	}
	for i := range n {
		got, ok := f.Pop()
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("https://example.com/%d", i), got)
		// Interleave pushes so the queue grows while it is drained.
		if i%3 == 0 {
			f.Push(fmt.Sprintf("https://example.com/extra/%d", i))
		}
	}
	assert.Equal(t, n/3, f.Len())
	got, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/extra/0", got)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len())

	f.Push("https://example.com/1")
	assert.Equal(t, 1, f.Len())

	f.Push("https://example.com/2")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_MarkVisited(t *testing.T) {
	t.Parallel()

	t.Run("returns false for an already visited URL", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		assert.True(t, f.MarkVisited("https://example.com/"))
		assert.False(t, f.MarkVisited("https://example.com/"))
		assert.Equal(t, 1, f.VisitedCount())
	})

	t.Run("rejects a later push of a visited URL", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		f.MarkVisited("https://example.com/")

		assert.True(t, f.Visited("https://example.com/"))
		assert.False(t, f.Push("https://example.com/"))
		assert.Equal(t, 0, f.Len())
	})

	t.Run("does not treat queued URLs as visited", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		f.Push("https://example.com/queued")

		assert.False(t, f.Visited("https://example.com/queued"))
		assert.True(t, f.MarkVisited("https://example.com/queued"))
	})
}

func TestFrontier_HasCapacity(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.HasCapacity(2))
	f.MarkVisited("https://example.com/1")
	assert.True(t, f.HasCapacity(2))
	f.MarkVisited("https://example.com/2")
	assert.False(t, f.HasCapacity(2))
	assert.False(t, f.HasCapacity(0))
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	var mu sync.Mutex
	popped := make(map[string]int)

	// Start pushers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(fmt.Sprintf("https://example.com/%d/%d", id, j))
			}
		}(i)
	}

	// Start poppers
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				if u, ok := f.Pop(); ok && f.MarkVisited(u) {
					mu.Lock()
					popped[u]++
					mu.Unlock()
				}
				f.Len()
			}
		}()
	}

	wg.Wait()

	// Drain whatever the poppers missed.
	for {
		u, ok := f.Pop()
		if !ok {
			break
		}
		if f.MarkVisited(u) {
			popped[u]++
		}
	}

	assert.Len(t, popped, numGoroutines*numOpsPerGoroutine)
	for u, n := range popped {
		assert.Equal(t, 1, n, "URL %s should be visited once", u)
	}
	assert.Equal(t, numGoroutines*numOpsPerGoroutine, f.VisitedCount())
}
