package labelwatch

import (
	"github.com/benbjohnson/clock"

	logAdapter "github.com/bft-labs/labelwatch/internal/adapters/log"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// Option configures optional behavior of a Watcher.
type Option func(*options)

type options struct {
	logger  ports.Logger
	clock   clock.Clock
	printer ports.Printer
	source  ports.EventSource
	renamer ports.Renamer
}

func defaultOptions() options {
	return options{
		logger: logAdapter.NewNoopLogger(),
		clock:  clock.New(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock driving the group grace period.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clock = clk
		}
	}
}

// WithPrinter replaces the external print command.
func WithPrinter(p Printer) Option {
	return func(o *options) {
		o.printer = p
	}
}

// WithEventSource replaces the fsnotify folder watcher. The Watcher takes
// ownership and closes it when Run returns.
func WithEventSource(src EventSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithRenamer replaces os.Rename for marking printed files.
func WithRenamer(r Renamer) Option {
	return func(o *options) {
		o.renamer = r
	}
}
