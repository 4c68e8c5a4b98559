package crawl

import (
	"sync"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/bloom"
)

// Compile-time interface verification.
var _ siteinv.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with a visited set.
// Exact maps decide membership; a Bloom filter answers the common
// "never seen" case without touching them.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	filter  *bloom.Filter
	seen    map[string]struct{} // queued or visited
	visited map[string]struct{}
	queue   []string
	head    int
}

// NewFrontier creates a new Frontier whose Bloom prefilter is sized for n
// expected URLs with the given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		filter:  bloom.NewFilter(n, fpRate),
		seen:    make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

// Push appends url to the back of the queue.
// Returns false if the URL is already queued or visited.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.checkSeen(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return "", false
	}
	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 1024 && f.head*2 > len(f.queue) {
		f.queue = append([]string(nil), f.queue[f.head:]...)
		f.head = 0
	}
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// MarkVisited adds url to the visited set.
// Returns false if it was already there.
func (f *Frontier) MarkVisited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[url]; ok {
		return false
	}
	f.visited[url] = struct{}{}
	f.checkSeen(url)
	return true
}

// Visited returns true if url has been marked visited.
func (f *Frontier) Visited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.visited[url]
	return ok
}

// VisitedCount returns the number of visited URLs.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// HasCapacity reports whether the visited count is below maxPages.
func (f *Frontier) HasCapacity(maxPages int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited) < maxPages
}

// checkSeen reports whether url was already queued or visited and marks it
// seen. Must be called with mu held.
func (f *Frontier) checkSeen(url string) bool {
	if !f.filter.TestAndAdd(url) {
		f.seen[url] = struct{}{}
		return false
	}
	if _, ok := f.seen[url]; ok {
		return true
	}
	f.seen[url] = struct{}{}
	return false
}
