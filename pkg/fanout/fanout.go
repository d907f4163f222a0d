// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fanout provides a parallel-join primitive with an explicit failure policy.

Every branch is started before any is awaited, and [Run] returns only once every
branch has finished. Results are written into index-addressed slots, so branches
never share mutable state and callers get them back in submission order.

Policies:

  - FailFast: the first error cancels the sibling context and is returned.
  - CollectPartial: errors are recorded per branch and never abort siblings.

The policy is chosen at each call site instead of being implied by the runtime.
*/
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Policy decides how a failing branch affects the rest of the join.
type Policy int

const (
	// FailFast aborts the join on the first branch error.
	FailFast Policy = iota

	// CollectPartial lets every branch finish and reports errors per branch.
	CollectPartial
)

// String returns the policy name used in logs.
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case CollectPartial:
		return "collect_partial"
	default:
		return "unknown"
	}
}

// Options configures one join.
type Options struct {
	Policy Policy

	// Limit caps the number of branches running at once. Zero means unbounded.
	Limit int
}

// Task is one branch of the join. index is the branch position in [0, n).
type Task[T any] func(ctx context.Context, index int) (T, error)

// Result is the outcome of a single branch.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes n branches of task concurrently and waits for all of them.
//
// Under [FailFast] the returned error is the first branch error and the result
// slice is nil. Under [CollectPartial] the returned error is always nil and each
// [Result] carries its own Err.
func Run[T any](ctx context.Context, n int, opts Options, task Task[T]) ([]Result[T], error) {
	if n <= 0 {
		return nil, nil
	}

	results := make([]Result[T], n)

	var group *errgroup.Group
	groupCtx := ctx
	if opts.Policy == FailFast {
		group, groupCtx = errgroup.WithContext(ctx)
	} else {
		group = &errgroup.Group{}
	}

	if opts.Limit > 0 {
		group.SetLimit(opts.Limit)
	}

	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			value, err := task(groupCtx, i)
			results[i] = Result[T]{Value: value, Err: err}
			if opts.Policy == FailFast {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Values extracts the branch values in order, dropping failed branches.
func Values[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, result := range results {
		if result.Err == nil {
			values = append(values, result.Value)
		}
	}
	return values
}
