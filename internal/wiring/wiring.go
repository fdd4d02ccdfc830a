// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/navy/internal/adapters/compose"
	_ "go.trai.ch/navy/internal/adapters/config"
	_ "go.trai.ch/navy/internal/adapters/docker"
	_ "go.trai.ch/navy/internal/adapters/logger"
	_ "go.trai.ch/navy/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/navy/internal/app"
	_ "go.trai.ch/navy/internal/engine/environment"
)
