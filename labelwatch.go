// Package labelwatch watches a folder for label images and prints them in
// groups through an external label printer command.
//
// Files whose names share a prefix before the group separator are printed as
// one uncut strip; the last label of a group is cut. Each printed file is
// renamed with a done or error suffix.
//
// Example usage:
//
//	cfg := labelwatch.DefaultConfig()
//	cfg.WatchFolder = "/srv/labels"
//	cfg.PrintArgs = []string{"-l", "62"}
//	w, err := labelwatch.New(cfg, labelwatch.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package labelwatch

import (
	"context"
	"fmt"

	"github.com/bft-labs/labelwatch/internal/adapters/exec"
	"github.com/bft-labs/labelwatch/internal/adapters/fs"
	"github.com/bft-labs/labelwatch/internal/app"
	"github.com/bft-labs/labelwatch/internal/cliconfig"
	"github.com/bft-labs/labelwatch/internal/domain"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// Config holds the configuration of a label watcher.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with default values. WatchFolder must be set.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Re-exported domain types for custom printers and event sources.
type (
	PrintJob    = domain.PrintJob
	PrintResult = domain.PrintResult
	Outcome     = domain.Outcome
	GroupKey    = domain.GroupKey
	Logger      = ports.Logger
	LogField    = ports.Field
	Printer     = ports.Printer
	EventSource = ports.EventSource
	Renamer     = ports.Renamer
)

// State represents the lifecycle state of a Watcher.
type State = app.State

// Lifecycle states.
const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// Print outcomes.
const (
	OutcomeSuccess          = domain.OutcomeSuccess
	OutcomeExitFailure      = domain.OutcomeExitFailure
	OutcomeTimeout          = domain.OutcomeTimeout
	OutcomeUnexpected       = domain.OutcomeUnexpected
	OutcomeEnvironmentFatal = domain.OutcomeEnvironmentFatal
)

// Errors returned by a Watcher. Check them with errors.Is.
var (
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrCommandNotFound = domain.ErrCommandNotFound
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
)

// Watcher prints label files as they appear in a folder.
type Watcher struct {
	config  Config
	logger  ports.Logger
	service *app.Service
}

// New validates cfg and creates a Watcher in StateStopped.
// Unless WithEventSource is given, the watch folder is subscribed to here.
func New(cfg Config, opts ...Option) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	source := o.source
	if source == nil {
		dw, err := fs.NewDirWatcher(cfg.WatchFolder, o.logger)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", cfg.WatchFolder, err)
		}
		source = dw
	}

	printer := o.printer
	if printer == nil {
		printer = exec.NewCommandPrinter(cfg.Command, o.logger)
	}

	renamer := o.renamer
	if renamer == nil {
		renamer = fs.NewOSRenamer()
	}

	svcCfg := app.ServiceConfig{
		Extension: cfg.Extension,
		Accumulator: app.AccumulatorConfig{
			GracePeriod:    cfg.GracePeriod,
			Separator:      cfg.GroupSeparator,
			MergeUngrouped: cfg.MergeUngrouped,
			ModTime:        fs.ModTime,
			Template: domain.PrintJob{
				GlobalArgs:  cfg.GlobalArgs,
				PrintArgs:   cfg.PrintArgs,
				ErrorSuffix: cfg.ErrorSuffix,
				DoneSuffix:  cfg.DoneSuffix,
				Timeout:     cfg.Timeout,
			},
		},
	}

	return &Watcher{
		config:  cfg,
		logger:  o.logger,
		service: app.NewService(svcCfg, source, printer, renamer, o.logger, o.clock),
	}, nil
}

// Run watches the folder until ctx is canceled or Stop is called, then
// drains already queued print jobs and returns nil. It returns an error
// wrapping ErrCommandNotFound as soon as the print command is missing.
// A Watcher runs once.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watching for labels",
		ports.String("folder", w.config.WatchFolder),
		ports.String("extension", w.config.Extension),
		ports.String("command", w.config.Command),
		ports.Duration("grace_period", w.config.GracePeriod),
		ports.Duration("timeout", w.config.Timeout),
	)
	return w.service.Run(ctx)
}

// Stop requests a graceful shutdown of a running Watcher.
func (w *Watcher) Stop() error {
	return w.service.Stop()
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return w.service.State()
}

// Config returns the validated configuration.
func (w *Watcher) Config() Config {
	return w.config
}

// Run creates a Watcher for cfg and runs it until ctx is canceled.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	w, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
