package domain_test

import (
	"testing"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

// A comparison is always base=fix commit, head=release build. The release
// contains the fix only when it is the same commit or descends from it.
func TestCompareStatus_Includes(t *testing.T) {
	tests := []struct {
		status   domain.CompareStatus
		included bool
	}{
		{status: domain.CompareAhead, included: true},
		{status: domain.CompareIdentical, included: true},
		{status: domain.CompareBehind, included: false},
		{status: domain.CompareDiverged, included: false},
		{status: "", included: false},
		{status: "something-new", included: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.included, tt.status.Includes())
		})
	}
}
