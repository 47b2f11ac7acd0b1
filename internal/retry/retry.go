// Package retry wraps whole operation invocations with bounded backoff.
// Callers apply it only to read-only or whole-transaction operations: a
// retried transaction either fully committed or fully rolled back, so the
// retry cannot duplicate side effects.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Classifier decides whether an error is worth retrying.
type Classifier func(error) bool

// Options bound the retry loop.
type Options struct {
	Attempts int           // total attempts, including the first
	BaseWait time.Duration // first backoff; doubles per attempt
	MaxWait  time.Duration // backoff ceiling
}

// DefaultOptions matches the engine defaults: 3 attempts, 100ms base, 2s cap.
func DefaultOptions() Options {
	return Options{Attempts: 3, BaseWait: 100 * time.Millisecond, MaxWait: 2 * time.Second}
}

// Do runs fn, retrying with exponential backoff plus jitter while retryable
// returns true, up to opts.Attempts. The last error is returned. Context
// cancellation stops the loop between attempts.
func Do(ctx context.Context, opts Options, retryable Classifier, fn func(ctx context.Context) error) error {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	wait := opts.BaseWait

	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil || retryable == nil || !retryable(err) || attempt >= opts.Attempts {
			return err
		}
		// full jitter over the current window
		sleep := time.Duration(rand.Int63n(int64(wait) + 1))
		select {
		case <-ctx.Done():
			return err
		case <-time.After(sleep):
		}
		wait *= 2
		if opts.MaxWait > 0 && wait > opts.MaxWait {
			wait = opts.MaxWait
		}
	}
}
