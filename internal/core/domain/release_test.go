package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_ChannelOrder(t *testing.T) {
	raw := `{
		"generated_at": "2024-05-01T10:00:00.000Z",
		"source": "releases_linux.json",
		"channels": {
			"stable": [{"version": "3.19.0", "released": "2024-02-15", "framework_sha": "bae5e49bc2a867403c43b2aae2de8f8c33b037e4"}],
			"beta":   [],
			"dev":    [{"version": "3.21.0-0.0.pre", "released": "2024-03-01", "framework_sha": "0123456"}]
		}
	}`

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	require.Len(t, snap.Channels, 3)
	assert.Equal(t, "stable", snap.Channels[0].Name)
	assert.Equal(t, "beta", snap.Channels[1].Name)
	assert.Equal(t, "dev", snap.Channels[2].Name)
	assert.Equal(t, "releases_linux.json", snap.Source)
	assert.False(t, snap.Empty())

	latest, ok := snap.Channels[0].Latest()
	require.True(t, ok)
	assert.Equal(t, "3.19.0", latest.Version)

	_, ok = snap.Channels[1].Latest()
	assert.False(t, ok)

	dev, ok := snap.Channel("dev")
	require.True(t, ok)
	assert.Equal(t, "0123456", dev.Releases[0].FrameworkSHA)

	out, err := json.Marshal(snap.Channels)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"stable": [{"version": "3.19.0", "released": "2024-02-15", "framework_sha": "bae5e49bc2a867403c43b2aae2de8f8c33b037e4"}],
		"beta": [],
		"dev": [{"version": "3.21.0-0.0.pre", "released": "2024-03-01", "framework_sha": "0123456"}]
	}`, string(out))
}

func TestSnapshot_RejectsNonObjectChannels(t *testing.T) {
	var snap domain.Snapshot
	err := json.Unmarshal([]byte(`{"channels": []}`), &snap)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotParseFailed)
}

func TestSnapshot_Empty(t *testing.T) {
	var nilSnap *domain.Snapshot
	assert.True(t, nilSnap.Empty())
	assert.True(t, (&domain.Snapshot{}).Empty())
}
