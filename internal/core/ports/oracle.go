package ports

import "context"

// InclusionOracle answers whether a build contains a commit.
//
//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type InclusionOracle interface {
	// IsIncluded reports whether the build at target contains subject.
	IsIncluded(ctx context.Context, subject, target string) (bool, error)
}
