package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
	"github.com/cwbudde/algo-sigexplore/explorer"
)

func TestLoopPreservesOrder(t *testing.T) {
	ctrl, err := explorer.New(core.DefaultGrid(), explorer.WithSeed(1))
	require.NoError(t, err)

	var (
		got    []float64
		failed int
	)
	loop := New(ctrl, func(st explorer.State, v explorer.Views, err error) {
		if err != nil || len(v.Pure) != 1000 {
			failed++
		}
		got = append(got, st.Signal.Amplitude)
	}, WithBuffer(2))

	g, ctx := errgroup.WithContext(t.Context())
	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error {
		defer loop.Close()
		for i := range 20 {
			st := explorer.DefaultState()
			st.Signal.Amplitude = float64(i)
			if err := loop.Submit(ctx, st); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	require.Zero(t, failed)
	require.Len(t, got, 20)
	for i, amp := range got {
		require.Equal(t, float64(i), amp)
	}
}

func TestLoopReportsErrors(t *testing.T) {
	ctrl, err := explorer.New(core.DefaultGrid())
	require.NoError(t, err)

	var errs []error
	loop := New(ctrl, func(_ explorer.State, _ explorer.Views, err error) {
		errs = append(errs, err)
	})

	bad := explorer.DefaultState()
	bad.Noise.Variance = -1
	good := explorer.DefaultState()
	good.Selection = bank.Selection{FilterEnabled: true}

	require.NoError(t, loop.Submit(t.Context(), bad))
	require.NoError(t, loop.Submit(t.Context(), good))
	loop.Close()

	require.NoError(t, loop.Run(t.Context()))
	require.Len(t, errs, 2)
	require.ErrorIs(t, errs[0], core.ErrInvalidParameter)
	require.NoError(t, errs[1])
}

func TestSubmitAfterClose(t *testing.T) {
	loop := New(nil, nil)
	loop.Close()
	loop.Close()

	err := loop.Submit(t.Context(), explorer.DefaultState())
	require.True(t, errors.Is(err, ErrClosed))
}

func TestSubmitHonoursContext(t *testing.T) {
	loop := New(nil, nil, WithBuffer(1))
	require.NoError(t, loop.Submit(t.Context(), explorer.DefaultState()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	err := loop.Submit(ctx, explorer.DefaultState())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunStopsOnCancel(t *testing.T) {
	loop := New(nil, nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)
}

func TestCloseReleasesBlockedSubmit(t *testing.T) {
	loop := New(nil, nil, WithBuffer(1))
	require.NoError(t, loop.Submit(t.Context(), explorer.DefaultState()))

	// No Run and no deadline: only Close can end this Submit.
	submitted := make(chan error, 1)
	go func() {
		submitted <- loop.Submit(context.Background(), explorer.DefaultState())
	}()

	closed := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		loop.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked behind a pending Submit")
	}
	select {
	case err := <-submitted:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Submit not released by Close")
	}
}
