package cmd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutorOnce(t *testing.T) {
	calls := 0
	exec := func(context.Context, *contract.Config, contract.Source) error {
		calls++
		return errors.New("single run error")
	}

	err := runExecutor(context.Background(), exec, &contract.Config{}, nil)
	require.EqualError(t, err, "single run error")
	assert.Equal(t, 1, calls)
}

func TestPollLoopStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	exec := func(context.Context, *contract.Config, contract.Source) error {
		if calls.Add(1) >= 3 {
			cancel()
		}
		return errors.New("poll errors are not fatal")
	}

	done := make(chan error, 1)
	go func() {
		done <- pollLoop(ctx, exec, &contract.Config{Every: time.Millisecond}, nil, time.NewTicker(time.Millisecond))
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poll loop did not stop")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}
