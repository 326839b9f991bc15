package ports

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
)

// SnapshotSource loads the release snapshot.
//
//go:generate mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type SnapshotSource interface {
	// Load returns the snapshot or an error wrapping domain.ErrNoReleaseData when none is available.
	Load(ctx context.Context) (*domain.Snapshot, error)
}
