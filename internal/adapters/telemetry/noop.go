package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End() {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}

// NoOpMetrics is a no-op implementation of ports.Metrics.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RemoteCall does nothing.
func (m *NoOpMetrics) RemoteCall(_, _ string, _ time.Duration) {}

// CacheLookup does nothing.
func (m *NoOpMetrics) CacheLookup(_ string) {}

// QueueWait does nothing.
func (m *NoOpMetrics) QueueWait(_ time.Duration) {}

// Resolution does nothing.
func (m *NoOpMetrics) Resolution(_ string) {}

// Handler returns a handler that answers 404.
func (m *NoOpMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}
