package siteinv

// URLFrontier manages the breadth-first crawl queue and the visited set.
// It stores URLs as given; callers push only normalized, in-scope URLs.
type URLFrontier interface {
	// Push appends url to the queue.
	// Returns false if the URL is already queued or visited.
	Push(url string) bool

	// Pop returns the oldest queued URL.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// MarkVisited records url as consumed. The membership check and the
	// insert happen atomically. Returns false if url was already visited.
	MarkVisited(url string) bool

	// Visited returns true if url has been consumed.
	Visited(url string) bool

	// VisitedCount returns the size of the visited set.
	VisitedCount() int

	// HasCapacity reports whether another URL may be visited under maxPages.
	HasCapacity(maxPages int) bool
}
