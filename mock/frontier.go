package mock

import "github.com/fwojciec/siteinv"

var _ siteinv.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of siteinv.URLFrontier.
type URLFrontier struct {
	PushFn         func(url string) bool
	PopFn          func() (string, bool)
	LenFn          func() int
	MarkVisitedFn  func(url string) bool
	VisitedFn      func(url string) bool
	VisitedCountFn func() int
	HasCapacityFn  func(maxPages int) bool
}

func (f *URLFrontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) MarkVisited(url string) bool {
	return f.MarkVisitedFn(url)
}

func (f *URLFrontier) Visited(url string) bool {
	return f.VisitedFn(url)
}

func (f *URLFrontier) VisitedCount() int {
	return f.VisitedCountFn()
}

func (f *URLFrontier) HasCapacity(maxPages int) bool {
	return f.HasCapacityFn(maxPages)
}
