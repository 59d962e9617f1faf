package ui

import "github.com/dgnsrekt/taper/recorder"

// Config contains TUI-specific configuration.
type Config struct {
	HomeDir     string `env:"HOME"`
	EnableMouse bool   `env:"TAPER_ENABLE_MOUSE"`

	// Recorder settings resolved from the config file.
	Recorder recorder.Config
}
