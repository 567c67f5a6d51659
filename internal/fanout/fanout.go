// Package fanout provides the concurrent fetch helpers shared by the search
// aggregator, the recommendation engines and the bestseller pipeline.
//
// Two policies exist and are deliberately distinct: Pages propagates the
// first failure (used where the user asked for exactly one provider and
// deserves to know it failed), Gather treats each failure as an empty
// contribution (used where one provider's outage should not blank an
// otherwise valid result set).
package fanout

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pages fetches pages from..to concurrently and concatenates the results in
// page order. Any single page failure fails the whole fetch.
func Pages[T any](ctx context.Context, from, to int, fetch func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	if to < from {
		return nil, nil
	}

	pages := make([][]T, to-from+1)
	g, gctx := errgroup.WithContext(ctx)
	for page := from; page <= to; page++ {
		g.Go(func() error {
			items, err := fetch(gctx, page)
			if err != nil {
				return err
			}
			pages[page-from] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []T
	for _, page := range pages {
		all = append(all, page...)
	}
	return all, nil
}

// Gather runs every task concurrently and waits for all of them to settle.
// A failed task contributes its zero value; the error is logged, never
// surfaced. Results keep the task order.
func Gather[R any](ctx context.Context, logger *slog.Logger, op string, tasks []func(ctx context.Context) (R, error)) []R {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]R, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := task(ctx)
			if err != nil {
				logger.Warn("fan-out task failed", "op", op, "index", i, "error", err)
				return
			}
			results[i] = r
		}()
	}
	wg.Wait()

	return results
}
