package retrylimit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&StatusError{Code: 429}))
	assert.True(t, Retryable(&StatusError{Code: 500}))
	assert.True(t, Retryable(&StatusError{Code: 503}))
	assert.False(t, Retryable(&StatusError{Code: 404}))
	assert.False(t, Retryable(&StatusError{Code: 400}))
	assert.False(t, Retryable(errors.New("plain")))
	assert.False(t, Retryable(nil))
}

func TestAdaptiveLimiterAdjusts(t *testing.T) {
	lim := NewAdaptiveLimiter(10, 1, 20, 1, 0.5)

	lim.RateLimited()
	assert.InDelta(t, 5, lim.CurrentLimit(), 0.01)

	lim.RateLimited()
	lim.RateLimited()
	lim.RateLimited()
	assert.GreaterOrEqual(t, lim.CurrentLimit(), 1.0, "never drops below the floor")

	for i := 0; i < 100; i++ {
		lim.Success()
	}
	assert.LessOrEqual(t, lim.CurrentLimit(), 20.0, "never exceeds the ceiling")
}

func TestWithRetrySucceedsAfterTransientError(t *testing.T) {
	lim := NewAdaptiveLimiter(1000, 1, 1000, 1, 0.5)

	calls := 0
	err := WithRetry(context.Background(), lim, 5, func() error {
		calls++
		if calls < 3 {
			return &StatusError{Code: 503}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	lim := NewAdaptiveLimiter(1000, 1, 1000, 1, 0.5)

	calls := 0
	err := WithRetry(context.Background(), lim, 5, func() error {
		calls++
		return &StatusError{Code: 404}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "non-retryable errors fail immediately")
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	lim := NewAdaptiveLimiter(1000, 1, 1000, 1, 0.5)

	calls := 0
	err := WithRetry(context.Background(), lim, 3, func() error {
		calls++
		return &StatusError{Code: 429}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
