// Package retry provides a bounded, fixed-interval retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Default polling bounds for credential report generation.
const (
	DefaultMaxAttempts = 11
	DefaultInterval    = 2 * time.Second
)

// ErrExhausted is returned when every attempt finished without success.
var ErrExhausted = errors.New("retry attempts exhausted")

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// AttemptFunc is called once per attempt, starting at 1. It returns done=true
// to stop successfully. A non-nil error stops immediately and is returned.
type AttemptFunc func(ctx context.Context, attempt int) (done bool, err error)

// Policy retries an operation a bounded number of times with a fixed delay.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration

	// Sleep overrides the wait between attempts. Nil uses a timer.
	Sleep SleepFunc
}

// DefaultPolicy returns 11 attempts spaced 2 seconds apart.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
	}
}

// Validate reports whether the policy bounds are usable.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", p.Interval)
	}
	return nil
}

// Do runs fn until it reports done, returns an error, or MaxAttempts is reached.
// There is no wait after the final attempt.
func (p Policy) Do(ctx context.Context, fn AttemptFunc) error {
	if err := p.Validate(); err != nil {
		return err
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		done, err := fn(ctx, attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := sleep(ctx, p.Interval); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts", ErrExhausted, p.MaxAttempts)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
