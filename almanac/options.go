package almanac

import "context"

type optionKey string

const workerOptionKey optionKey = "worker_options"

type workerOptions struct {
	maxCount int
}

// WithWorkers returns a context that limits MinRange to n concurrent
// range translations. n < 1 means one.
func WithWorkers(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, workerOptionKey, workerOptions{maxCount: max(n, 1)})
}

// Workers returns the worker limit carried by ctx, or def.
func Workers(ctx context.Context, def int) int {
	if o, ok := ctx.Value(workerOptionKey).(workerOptions); ok {
		return o.maxCount
	}
	return def
}
