package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return errors.New("persistent")
		})
		require.Error(t, err)
		assert.Equal(t, "persistent", err.Error())
		assert.Equal(t, 3, calls)
	})

	t.Run("context cancels the wait", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		calls := 0
		err := Retry(cancelCtx, 3, time.Minute, func() error {
			calls++
			return errors.New("transient")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("non-positive attempts still run once", func(t *testing.T) {
		calls := 0
		_ = Retry(ctx, 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		assert.Equal(t, 1, calls)
	})
}

func TestLamportsToSol(t *testing.T) {
	assert.Equal(t, 1.0, LamportsToSol(1_000_000_000))
	assert.Equal(t, 2.5, LamportsToSol(2_500_000_000))
	assert.Equal(t, 0.0, LamportsToSol(0))
	assert.Equal(t, 0.000000001, LamportsToSol(1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 123.46, RoundTo(123.456789, 2))
	assert.Equal(t, 123.457, RoundTo(123.456789, 3))
	assert.Equal(t, 123.0, RoundTo(123.456789, 0))
	assert.Equal(t, 1.234567891, RoundTo(1.234567891, 9))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOLFOLIO_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("SOLFOLIO_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SOLFOLIO_TEST_KEY_UNSET", "fallback"))
}
