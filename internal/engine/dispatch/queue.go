// Package dispatch serializes calls to the code host through a paced FIFO queue.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"golang.org/x/time/rate"
)

// Queue runs submitted calls one at a time in submission order.
//
// Consecutive calls start at least spacing apart. After a call fails with
// anything other than a not-found answer, the next call waits at least backoff.
// A worker goroutine exists only while calls are pending.
type Queue struct {
	mu      sync.Mutex
	pending []*job
	active  bool

	limiter  *rate.Limiter
	backoff  time.Duration
	coolDown time.Time

	metrics ports.Metrics
	now     func() time.Time
}

type job struct {
	ctx      context.Context
	fn       func(context.Context) error
	done     chan error
	enqueued time.Time
}

// Option configures a Queue.
type Option func(*Queue)

// WithMetrics records queue wait times.
func WithMetrics(m ports.Metrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

// WithClock replaces the wall clock used for backoff bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// New creates a Queue with the given pacing.
func New(spacing, backoff time.Duration, opts ...Option) *Queue {
	limit := rate.Inf
	if spacing > 0 {
		limit = rate.Every(spacing)
	}

	q := &Queue{
		limiter: rate.NewLimiter(limit, 1),
		backoff: backoff,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Do enqueues fn and blocks until it has run, returning its error.
// If ctx ends first, Do returns ctx.Err() and fn is skipped when its turn comes.
func (q *Queue) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j := &job{
		ctx:      ctx,
		fn:       fn,
		done:     make(chan error, 1),
		enqueued: q.now(),
	}

	q.mu.Lock()
	q.pending = append(q.pending, j)
	if !q.active {
		q.active = true
		go q.drain()
	}
	q.mu.Unlock()

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of calls waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.active = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		j.done <- q.run(j)
	}
}

func (q *Queue) run(j *job) error {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	if err := q.pace(j.ctx); err != nil {
		return err
	}

	if q.metrics != nil {
		q.metrics.QueueWait(q.now().Sub(j.enqueued))
	}

	err := j.fn(j.ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, context.Canceled) {
		q.coolDown = q.now().Add(q.backoff)
	}
	return err
}

func (q *Queue) pace(ctx context.Context) error {
	if wait := q.coolDown.Sub(q.now()); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return q.limiter.Wait(ctx)
}
