// Package cli implements the blockpack command-line interface.
//
// The CLI reads block lists (CSV, XLSX, DXF) or job files (TOML, JSON),
// packs them with the engine and writes the layout as PDF, strip PDF,
// QR labels, XLSX or JSON.
//
// # Commands
//
//   - pack: Pack a job or block list and export the result
//   - generate: Write a generated block list
//   - compare: Pack the same blocks under several scenarios
//   - verify: Re-check a saved result snapshot
//   - config: Show or initialize the configuration and bin presets
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes every bin growth and every bin opened by the engine. Loggers are
// passed through context.Context.
package cli

import (
	"context"
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
// Example output: "Packed 42 blocks into 3 bin(s) (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
