package engine

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a packer.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sends packing events to l. Growth steps and bin boundaries are
// logged at debug level, unplaceable blocks at warn level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}
