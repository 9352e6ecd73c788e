// Package batch runs work over a list in fixed-size concurrent batches.
package batch

import (
	"context"
	"sync"
)

// DefaultSize is the number of items processed at once.
const DefaultSize = 3

// ProgressFunc is called after each item finishes.
// completed is the number of items done so far, total is the total count.
type ProgressFunc func(completed, total int)

// Run calls fn for every item, size items at a time. Each batch runs
// concurrently and must finish completely before the next one starts.
// Cancelling ctx stops new batches from starting; running calls are not
// interrupted by Run itself.
func Run[T any](ctx context.Context, items []T, size int, fn func(context.Context, T), onProgress ProgressFunc) error {
	if size <= 0 {
		size = DefaultSize
	}

	var progressMu sync.Mutex
	completed := 0

	for _, chunk := range Partition(items, size) {
		if err := ctx.Err(); err != nil {
			return err
		}

		var wg sync.WaitGroup
		for _, item := range chunk {
			wg.Add(1)
			go func(item T) {
				defer wg.Done()
				fn(ctx, item)

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(items))
					progressMu.Unlock()
				}
			}(item)
		}
		wg.Wait()
	}
	return nil
}

// Partition splits items into consecutive batches of at most size.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}
