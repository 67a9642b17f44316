package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestRunInParallel(t *testing.T) {
	wait100ms := func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-time.After(100 * time.Millisecond):
		}
		return ctx.Err()
	}

	prevFactor := ParallelFactor
	ParallelFactor = 4
	defer func() { ParallelFactor = prevFactor }()

	elapsed, err := RunInParallel(context.Background(), []SimpleFunc{wait100ms, wait100ms})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, elapsed, test.ShouldBeLessThan, 190*time.Millisecond)
	test.That(t, elapsed, test.ShouldBeGreaterThan, 90*time.Millisecond)

	errBad := errors.New("bad")
	errFunc := func(ctx context.Context) error {
		return errBad
	}

	elapsed, err = RunInParallel(context.Background(), []SimpleFunc{wait100ms, wait100ms, errFunc})
	test.That(t, errors.Is(err, errBad), test.ShouldBeTrue)
	test.That(t, elapsed, test.ShouldBeLessThan, 90*time.Millisecond)

	panicFunc := func(ctx context.Context) error {
		panic(1)
	}

	_, err = RunInParallel(context.Background(), []SimpleFunc{panicFunc})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "panic")

	_, err = RunInParallel(context.Background(), nil)
	test.That(t, err, test.ShouldBeNil)
}

func TestRunInParallelWaitsForAll(t *testing.T) {
	var (
		mu       sync.Mutex
		finished int
	)
	slow := func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		finished++
		mu.Unlock()
		return nil
	}
	errFunc := func(ctx context.Context) error {
		return errors.New("first")
	}

	_, err := RunInParallel(context.Background(), []SimpleFunc{slow, errFunc, slow, slow})
	test.That(t, err, test.ShouldNotBeNil)
	mu.Lock()
	test.That(t, finished, test.ShouldEqual, 3)
	mu.Unlock()
}

func TestRunInParallelLimit(t *testing.T) {
	prevFactor := ParallelFactor
	ParallelFactor = 1
	defer func() { ParallelFactor = prevFactor }()

	var order []int
	fs := make([]SimpleFunc, 0, 5)
	for i := 0; i < 5; i++ {
		fs = append(fs, func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}
	_, err := RunInParallel(context.Background(), fs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, order, test.ShouldResemble, []int{0, 1, 2, 3, 4})
}
