package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingSleep counts waits without blocking.
type recordingSleep struct {
	calls     int
	durations []time.Duration
	err       error
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.calls++
	r.durations = append(r.durations, d)
	return r.err
}

func TestDoStopsOnCompletion(t *testing.T) {
	rec := &recordingSleep{}
	p := Policy{MaxAttempts: 11, Interval: 2 * time.Second, Sleep: rec.sleep}

	var attempts []int
	err := p.Do(context.Background(), func(_ context.Context, attempt int) (bool, error) {
		attempts = append(attempts, attempt)
		return attempt == 3, nil
	})

	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, attempts)
	require.Equal(t, 2, rec.calls)
	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, rec.durations)
}

func TestDoExhausts(t *testing.T) {
	rec := &recordingSleep{}
	p := Policy{MaxAttempts: 11, Interval: 2 * time.Second, Sleep: rec.sleep}

	calls := 0
	err := p.Do(context.Background(), func(context.Context, int) (bool, error) {
		calls++
		return false, nil
	})

	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 11, calls)
	require.Equal(t, 10, rec.calls, "no wait after the final attempt")
}

func TestDoCompletesOnLastAttempt(t *testing.T) {
	p := Policy{MaxAttempts: 11, Sleep: (&recordingSleep{}).sleep}

	err := p.Do(context.Background(), func(_ context.Context, attempt int) (bool, error) {
		return attempt == 11, nil
	})
	require.NoError(t, err)
}

func TestDoReturnsAttemptError(t *testing.T) {
	rec := &recordingSleep{}
	p := Policy{MaxAttempts: 5, Interval: time.Second, Sleep: rec.sleep}
	boom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), func(context.Context, int) (bool, error) {
		calls++
		return false, boom
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
	require.Zero(t, rec.calls)
}

func TestDoReturnsSleepError(t *testing.T) {
	rec := &recordingSleep{err: context.Canceled}
	p := Policy{MaxAttempts: 5, Interval: time.Second, Sleep: rec.sleep}

	calls := 0
	err := p.Do(context.Background(), func(context.Context, int) (bool, error) {
		calls++
		return false, nil
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestDoHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Policy{MaxAttempts: 3, Interval: time.Hour}
	err := p.Do(ctx, func(context.Context, int) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())
	require.Error(t, Policy{MaxAttempts: 0}.Validate())
	require.Error(t, Policy{MaxAttempts: 1, Interval: -time.Second}.Validate())

	err := Policy{}.Do(context.Background(), func(context.Context, int) (bool, error) {
		t.Fatalf("attempt must not run with an invalid policy")
		return false, nil
	})
	require.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.Equal(t, 11, p.MaxAttempts)
	require.Equal(t, 2*time.Second, p.Interval)
}
