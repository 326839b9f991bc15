package ports

import (
	"context"
	"net/http"
	"time"
)

// Tracer starts spans around units of work.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Start begins a span and returns a context carrying it.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a single traced operation.
type Span interface {
	// End completes the span.
	End()
	// SetAttribute records a key/value pair on the span.
	SetAttribute(key string, value any)
	// RecordError marks the span as failed.
	RecordError(err error)
}

// Metrics records operational counters.
type Metrics interface {
	// RemoteCall records one call to the code host.
	RemoteCall(endpoint, outcome string, elapsed time.Duration)
	// CacheLookup records a cache hit or miss.
	CacheLookup(outcome string)
	// QueueWait records the time a call spent queued.
	QueueWait(elapsed time.Duration)
	// Resolution records a resolved query by reference kind.
	Resolution(kind string)
	// Handler exposes the metrics for scraping.
	Handler() http.Handler
}
