// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wheelwright/internal/adapters/config"
	_ "go.trai.ch/wheelwright/internal/adapters/logger"
	_ "go.trai.ch/wheelwright/internal/adapters/manifest"
	_ "go.trai.ch/wheelwright/internal/adapters/packager"
	_ "go.trai.ch/wheelwright/internal/adapters/python"
	_ "go.trai.ch/wheelwright/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/wheelwright/internal/app"
)
