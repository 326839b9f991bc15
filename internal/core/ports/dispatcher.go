package ports

import "context"

// Dispatcher serializes remote calls.
//
//go:generate mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks
type Dispatcher interface {
	// Do runs fn once it reaches the front of the queue and returns its error.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
