package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	const n = 100
	var (
		seen    [n]int32
		running int32
		peak    int32
	)
	err := Run(context.Background(), 3, n, func(ctx context.Context, i int) error {
		cur := atomic.AddInt32(&running, 1)
		defer atomic.AddInt32(&running, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	require.NoError(t, err)
	for i := range seen {
		require.Equal(t, int32(1), seen[i], "index %d", i)
	}
	require.True(t, peak <= 3, "peak %d", peak)
}

func TestRunError(t *testing.T) {
	errFail := errors.New("fail")
	err := Run(context.Background(), 2, 50, func(ctx context.Context, i int) error {
		if i == 10 {
			return errFail
		}
		return nil
	})
	require.Equal(t, errFail, err)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, 1, 10, func(ctx context.Context, i int) error {
		return nil
	})
	require.Equal(t, context.Canceled, err)
}
