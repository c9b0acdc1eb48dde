package app

import (
	"context"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"github.com/bft-labs/labelwatch/internal/domain"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// ServiceConfig contains configuration for the watch service.
type ServiceConfig struct {
	// Extension selects which created files are printed (case-insensitive).
	Extension string

	Accumulator AccumulatorConfig
}

// Service wires an event source to the accumulator and runs the print worker.
type Service struct {
	cfg       ServiceConfig
	source    ports.EventSource
	logger    ports.Logger
	lifecycle *Lifecycle
	ran       atomic.Bool
	queue     *PrintQueue
	acc       *Accumulator
	worker    *Worker
}

// NewService creates a stopped service. The service owns source and closes
// it when Run returns.
func NewService(
	cfg ServiceConfig,
	source ports.EventSource,
	printer ports.Printer,
	renamer ports.Renamer,
	logger ports.Logger,
	clk clock.Clock,
) *Service {
	queue := NewPrintQueue()
	return &Service{
		cfg:       cfg,
		source:    source,
		logger:    logger,
		lifecycle: NewLifecycle(logger),
		queue:     queue,
		acc:       NewAccumulator(cfg.Accumulator, queue, clk, logger),
		worker:    NewWorker(queue, printer, renamer, logger),
	}
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	return s.lifecycle.State()
}

// Stop requests a graceful shutdown of a running service.
func (s *Service) Stop() error {
	if !s.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	s.lifecycle.Cancel()
	return nil
}

// Run blocks until ctx is canceled, Stop is called, the event source closes
// or the print command turns out to be missing.
//
// On a graceful stop the event source is closed first, any open group is
// abandoned, and the worker drains the jobs already queued before Run returns
// nil. When the print command is missing Run returns immediately with an error
// wrapping domain.ErrCommandNotFound and queued jobs are not printed.
//
// A Service runs once; later calls return domain.ErrAlreadyRunning.
func (s *Service) Run(ctx context.Context) error {
	if !s.lifecycle.CanStart() || !s.ran.CompareAndSwap(false, true) {
		return domain.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lifecycle.SetCancel(cancel)

	if err := s.lifecycle.TransitionTo(StateStarting, "Run() called"); err != nil {
		return err
	}

	// the worker outlives ctx so it can drain the queue
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	workerErr := make(chan error, 1)
	go func() { workerErr <- s.worker.Run(workerCtx) }()

	if err := s.lifecycle.TransitionTo(StateRunning, "worker started"); err != nil {
		return err
	}

	errs := s.source.Errors()
	for {
		select {
		case <-ctx.Done():
			return s.shutdown(workerErr, "context canceled")

		case path, ok := <-s.source.Created():
			if !ok {
				return s.shutdown(workerErr, "event source closed")
			}
			s.handleCreated(path)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.Warn("watch error", ports.Err(err))

		case err := <-workerErr:
			// the worker only stops early on a fatal error
			s.source.Close()
			s.acc.Stop()
			_ = s.lifecycle.TransitionTo(StateCrashed, "worker failed")
			return err
		}
	}
}

func (s *Service) handleCreated(path string) {
	if !MatchesExtension(path, s.cfg.Extension) {
		s.logger.Debug("ignoring file", ports.String("path", path))
		return
	}
	s.acc.Add(path)
}

func (s *Service) shutdown(workerErr <-chan error, reason string) error {
	_ = s.lifecycle.TransitionTo(StateStopping, reason)
	s.logger.Info("stopping watcher", ports.String("reason", reason))

	if err := s.source.Close(); err != nil {
		s.logger.Warn("closing event source", ports.Err(err))
	}
	s.acc.Stop()
	s.queue.Close()

	if pending := s.queue.Len(); pending > 0 {
		s.logger.Info("draining print queue", ports.Int("jobs", pending))
	}
	if err := <-workerErr; err != nil {
		_ = s.lifecycle.TransitionTo(StateCrashed, "worker failed during drain")
		return err
	}

	s.logger.Info("watcher stopped",
		ports.Int("printed", int(s.worker.Printed())),
		ports.Int("failed", int(s.worker.Failed())),
	)
	return s.lifecycle.TransitionTo(StateStopped, "shutdown complete")
}
