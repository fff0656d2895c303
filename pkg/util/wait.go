package util

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type RetryOptions struct {
	// Immediate when true runs the condition first & then waits
	// if required
	Immediate bool
	Interval  time.Duration

	// Timeout bounds the overall retry duration; a zero Timeout
	// retries forever i.e. until the condition is met or the
	// context is cancelled
	Timeout time.Duration

	// Sleep when set replaces time.Sleep between attempts; lets
	// tests simulate convergence without real delays
	Sleep func(d time.Duration)
}

// Retry will execute the condition repeatedly in intervals till this
// condition returns true, the timeout elapses or the context is
// cancelled
//
// Note: It is valid for a condition to return true with error
// Note: Original error thrown by the condition is preserved
func Retry(ctx context.Context, opts RetryOptions, cond func() (bool, error)) error {
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var count int = 1
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "retry aborted")
		}
		if !opts.Immediate {
			// first wait then run the condition
			sleep(opts.Interval)
		}
		done, err := cond()
		if done {
			// this may or may not be nil
			return err
		}
		elapsed := time.Since(start)
		if opts.Timeout > 0 && elapsed > opts.Timeout {
			return errors.Errorf("timed out after %s with %d retries: %v", elapsed, count, err)
		}
		count++
		if opts.Immediate {
			// first run the condition then wait
			sleep(opts.Interval)
		}
	}
}
