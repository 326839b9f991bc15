// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/cache"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/config"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/credential"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/github"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/logger"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/snapshot"
	_ "github.com/gmackall/flutter-fix-status/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/gmackall/flutter-fix-status/internal/app"
)
