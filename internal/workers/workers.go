// Package workers runs indexed jobs on a bounded number of goroutines.
package workers

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Run calls fn for every index in [0, n) using at most jobs goroutines.
// If jobs is not positive, the number of CPUs is used.
//
// The first error cancels the context passed to the rest of the calls and is returned.
func Run(ctx context.Context, jobs, n int, fn func(ctx context.Context, i int) error) error {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(jobs))
	for i := 0; i < n; i++ {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			defer sem.Release(1)
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
