// Package utils contains helpers shared by the decoder packages.
package utils

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

// SimpleFunc is for RunInParallel.
type SimpleFunc func(ctx context.Context) error

// RunInParallel runs all functions in parallel, at most ParallelFactor at a time, starting them in
// slice order. It waits for every started function to return. The returned error is the first
// one observed; the context handed to the remaining functions is canceled at that point. A panic
// inside a function is returned as an error. The return is elapsed time and an error.
func RunInParallel(ctx context.Context, fs []SimpleFunc) (time.Duration, error) {
	start := time.Now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(ParallelFactor)

	for idx, f := range fs {
		group.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = errors.Errorf("got panic running function %d in parallel: %v", idx, thePanic)
				}
			}()
			return f(groupCtx)
		})
	}

	err := group.Wait()
	return time.Since(start), err
}
