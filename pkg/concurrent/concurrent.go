package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every element of in on at most limit goroutines and
// returns the results in input order. The first error cancels the context
// handed to the remaining calls and is returned. limit <= 0 means unbounded.
func Map[T any, R any](ctx context.Context, in []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for idx, value := range in {
		g.Go(func() error {
			r, err := fn(ctx, value)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Range is Map over the indices [0, n).
func Range[R any](ctx context.Context, n, limit int, fn func(context.Context, int) (R, error)) ([]R, error) {
	idx := make([]int, max(n, 0))
	for i := range idx {
		idx[i] = i
	}
	return Map(ctx, idx, limit, fn)
}
