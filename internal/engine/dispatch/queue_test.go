package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/engine/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestQueue_RunsInSubmissionOrder(t *testing.T) {
	q := dispatch.New(0, 0)

	release := make(chan struct{})
	started := make(chan struct{})

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Do(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		require.Eventually(t, func() bool { return q.Len() == i+1 }, time.Second, time.Millisecond)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_RunsOneAtATime(t *testing.T) {
	q := dispatch.New(0, 0)

	var mu sync.Mutex
	running, peak := 0, 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				running++
				peak = max(peak, running)
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, peak)
}

func TestQueue_Spacing(t *testing.T) {
	const spacing = 20 * time.Millisecond
	q := dispatch.New(spacing, 0)

	var starts []time.Time
	for range 4 {
		err := q.Do(context.Background(), func(context.Context) error {
			starts = append(starts, time.Now())
			return nil
		})
		require.NoError(t, err)
	}

	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), spacing-2*time.Millisecond)
	}
}

func TestQueue_BackoffAfterError(t *testing.T) {
	const backoff = 40 * time.Millisecond
	q := dispatch.New(0, backoff)

	boom := errors.New("connection reset")

	var failedAt time.Time
	err := q.Do(context.Background(), func(context.Context) error {
		failedAt = time.Now()
		return boom
	})
	require.ErrorIs(t, err, boom)

	var nextAt time.Time
	require.NoError(t, q.Do(context.Background(), func(context.Context) error {
		nextAt = time.Now()
		return nil
	}))

	assert.GreaterOrEqual(t, nextAt.Sub(failedAt), backoff)
}

func TestQueue_NotFoundDoesNotBackOff(t *testing.T) {
	q := dispatch.New(0, time.Hour)

	err := q.Do(context.Background(), func(context.Context) error {
		return zerr.Wrap(domain.ErrNotFound, "compare")
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ran := false
	require.NoError(t, q.Do(ctx, func(context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestQueue_CancelledWhileQueued(t *testing.T) {
	q := dispatch.New(0, 0)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{}, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Do(ctx, func(context.Context) error {
			ran <- struct{}{}
			return nil
		})
	}()
	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, time.Millisecond)

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)

	select {
	case <-ran:
		t.Fatal("cancelled call must not run")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestQueue_RejectsDoneContext(t *testing.T) {
	q := dispatch.New(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Do(ctx, func(context.Context) error {
		t.Fatal("must not run")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
