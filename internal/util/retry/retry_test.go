package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() Option {
	return WithDelay(time.Millisecond, 2*time.Millisecond)
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	t.Parallel()
	calls := 0

	err := Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, fast())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterTransientErrors(t *testing.T) {
	t.Parallel()
	calls := 0
	var retried []int

	err := Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, fast(), WithOnRetry(func(attempt int, _ error) { retried = append(retried, attempt) }))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_GivesUp(t *testing.T) {
	t.Parallel()
	cause := errors.New("503 service unavailable")
	calls := 0

	err := Do(context.Background(), func(context.Context) error {
		calls++
		return cause
	}, fast(), WithAttempts(4))

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "giving up after 4 attempts")
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	t.Parallel()
	cause := errors.New("400 bad request")
	calls := 0

	err := Do(context.Background(), func(context.Context) error {
		calls++
		return Permanent(cause)
	}, fast())

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("timeout")
	}, WithDelay(time.Hour, time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "timeout")
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	t.Parallel()
	calls := 0

	_ = Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("x")
	}, WithAttempts(0))

	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(errors.New("plain")))

	wrapped := Permanent(errors.New("inner"))
	assert.Equal(t, "inner", wrapped.Error())
	assert.True(t, IsPermanent(errors.Join(errors.New("outer"), wrapped)))
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()
	p := DefaultPolicy()

	assert.Equal(t, 3, p.Attempts)
	assert.Equal(t, 500*time.Millisecond, p.InitialDelay)
	assert.InDelta(t, 2.0, p.Multiplier, 0)
}
