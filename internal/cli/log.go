// Package cli implements the arcview command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - serve: Load a graph and serve the browser explorer
//   - inspect: Print a summary of a graph without serving it
//   - export: Write the payload as JSON or a static DOT/SVG/PNG/PDF snapshot
//   - pick: Choose the node color from the terminal
//   - walks: Plot one walk of a random-walk log as a stem plot
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Flags may be preset in a TOML file given with --config or found at
// $XDG_CONFIG_HOME/arcview/config.toml. Flags given on the command line win.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 3 vertices, 2 edges (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
