package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gmackall/flutter-fix-status/internal/adapters/cache"
	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/adapters/telemetry"
	"github.com/gmackall/flutter-fix-status/internal/app"
	"github.com/gmackall/flutter-fix-status/internal/build"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newComponents(ctrl *gomock.Controller, logger *mocks.MockLogger) *app.Components {
	cfg := domain.DefaultConfig()
	application := app.Build(
		cfg,
		mocks.NewMockPlatform(ctrl),
		mocks.NewMockComparer(ctrl),
		cache.NewMemory(nil),
		mocks.NewMockSnapshotSource(ctrl),
		telemetry.NewNoOpMetrics(),
		logger,
		telemetry.NewNoOpTracer(),
	)
	return app.NewComponents(application, logger, cfg)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(ctrl, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "fixstatus version "+build.Version)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}).Times(1)
	components := newComponents(ctrl, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"resolve", "   "}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_GlobalFlags verifies that global flags reach the configuration node through the context.
func TestRun_GlobalFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(ctrl, mockLogger)

	var repo, cacheBackend string
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		flags := config.FlagsFrom(ctx)
		require.NotNil(t, flags)
		repo, _ = flags.GetString("repo")
		cacheBackend, _ = flags.GetString("cache")
		return components, func() {}, nil
	}

	args := []string{"--repo", "octo/widgets", "version", "--cache=memory"}
	exitCode := run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "octo/widgets", repo)
	assert.Equal(t, "memory", cacheBackend)
}

// TestRun_CleanupCalled verifies that the provider's cleanup runs after execution.
func TestRun_CleanupCalled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(ctrl, mockLogger)

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}
