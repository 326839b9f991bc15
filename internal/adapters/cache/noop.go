package cache

import (
	"context"
	"time"
)

// NoOp never stores anything; every lookup is a miss.
type NoOp struct{}

// Get always misses.
func (NoOp) Get(context.Context, string, string) (included, found bool, err error) {
	return false, false, nil
}

// Put discards the answer.
func (NoOp) Put(context.Context, string, string, bool, time.Duration) error {
	return nil
}

// Clear does nothing.
func (NoOp) Clear(context.Context) error {
	return nil
}

// Close does nothing.
func (NoOp) Close() error {
	return nil
}
