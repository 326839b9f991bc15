package domain_test

import (
	"testing"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReleasesAgo(t *testing.T) {
	first := 5
	latest := 9
	assert.Equal(t, "4", domain.ReleasesAgo(latest, &first))

	same := 9
	assert.Equal(t, "0", domain.ReleasesAgo(latest, &same))

	assert.Equal(t, "—", domain.ReleasesAgo(latest, nil))
}

func TestChannelStatus_ReleasesAgoLabel(t *testing.T) {
	ago := 3
	assert.Equal(t, "3", domain.ChannelStatus{ReleasesAgo: &ago}.ReleasesAgoLabel())
	assert.Equal(t, domain.NoReleasesAgo, domain.ChannelStatus{}.ReleasesAgoLabel())
}

func TestTimeline(t *testing.T) {
	events := []domain.TimelineEvent{
		{Event: "labeled"},
		{Event: domain.EventCrossReferenced, SourceNumber: 10, SourceIsPullRequest: true},
		{Event: domain.EventCrossReferenced, SourceNumber: 11},
		{Event: domain.EventClosed},
		{Event: domain.EventCrossReferenced, SourceNumber: 12, SourceIsPullRequest: true},
		{Event: domain.EventCrossReferenced, SourceNumber: 10, SourceIsPullRequest: true},
		{Event: domain.EventClosed, CommitID: "abc1234"},
		{Event: domain.EventClosed, CommitID: "def5678"},
	}

	commit, ok := domain.ClosingCommit(events)
	assert.True(t, ok)
	assert.Equal(t, "abc1234", commit)

	assert.Equal(t, []int{10, 12}, domain.LinkedPullRequests(events))

	_, ok = domain.ClosingCommit(events[:4])
	assert.False(t, ok)
}
