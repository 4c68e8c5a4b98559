package mock

import (
	"context"

	"github.com/fwojciec/siteinv"
)

var _ siteinv.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of siteinv.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*siteinv.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*siteinv.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
