package inclusion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
)

// Oracle answers inclusion questions with a read-through cache in front of the
// code host comparison. Comparisons run through the dispatcher.
type Oracle struct {
	comparer ports.Comparer
	queue    ports.Dispatcher
	cache    ports.InclusionCache
	ttl      time.Duration
	metrics  ports.Metrics
	logger   ports.Logger
}

// NewOracle creates an Oracle. A nil cache disables caching.
func NewOracle(
	comparer ports.Comparer,
	queue ports.Dispatcher,
	cache ports.InclusionCache,
	ttl time.Duration,
	metrics ports.Metrics,
	logger ports.Logger,
) *Oracle {
	return &Oracle{
		comparer: comparer,
		queue:    queue,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
	}
}

// IsIncluded reports whether the build at target contains subject.
//
// The comparison is base=subject, head=target: the answer is true when target is
// identical to subject or ahead of it. A comparison the host cannot find is false.
func (o *Oracle) IsIncluded(ctx context.Context, subject, target string) (bool, error) {
	subject = strings.ToLower(subject)
	target = strings.ToLower(target)

	if included, ok := o.lookup(ctx, subject, target); ok {
		return included, nil
	}

	var status domain.CompareStatus
	err := o.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		status, err = o.comparer.Compare(ctx, subject, target)
		return err
	})

	var included bool
	switch {
	case errors.Is(err, domain.ErrNotFound):
		o.logger.Debug(fmt.Sprintf("compare %s...%s not found, treating as not included", short(subject), short(target)))
		included = false
	case err != nil:
		return false, err
	default:
		included = status.Includes()
		o.logger.Debug(fmt.Sprintf("compare %s...%s is %s", short(subject), short(target), status))
	}

	o.store(ctx, subject, target, included)
	return included, nil
}

func (o *Oracle) lookup(ctx context.Context, subject, target string) (bool, bool) {
	if o.cache == nil {
		return false, false
	}

	included, found, err := o.cache.Get(ctx, subject, target)
	switch {
	case err != nil:
		o.logger.Warn(fmt.Sprintf("inclusion cache read failed: %v", err))
		o.metrics.CacheLookup("error")
		return false, false
	case found:
		o.metrics.CacheLookup("hit")
		return included, true
	default:
		o.metrics.CacheLookup("miss")
		return false, false
	}
}

func (o *Oracle) store(ctx context.Context, subject, target string, included bool) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Put(ctx, subject, target, included, o.ttl); err != nil {
		o.logger.Warn(fmt.Sprintf("inclusion cache write failed: %v", err))
	}
}

func short(sha string) string {
	if len(sha) > 10 {
		return sha[:10]
	}
	return sha
}
