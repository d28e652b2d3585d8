package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Page is one window of a listing plus the total number of matching rows.
type Page[T any] struct {
	Items []T
	Total int64
}

// fetchPage runs list and count concurrently under ctx. The first failure
// cancels the other; no transaction spans the two.
func fetchPage[T any](
	ctx context.Context,
	list func(context.Context) ([]T, error),
	count func(context.Context) (int64, error),
) (*Page[T], error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Total: total}, nil
}
