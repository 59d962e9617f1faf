package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog routes logging to the file named by TAPER_LOGFILE, or discards
// it. Log output must never hit the terminal: the session screen and the
// TUI both own it.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	logFile := os.Getenv("TAPER_LOGFILE")
	if logFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return f.Close, nil
}
