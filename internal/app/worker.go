package app

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/bft-labs/labelwatch/internal/domain"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// Dequeuer is the consumer side of the print queue.
type Dequeuer interface {
	Pop(ctx context.Context) (domain.PrintJob, error)
}

// Worker is the single consumer of the print queue. Jobs run strictly one
// at a time in FIFO order.
type Worker struct {
	queue   Dequeuer
	printer ports.Printer
	renamer ports.Renamer
	logger  ports.Logger

	printed atomic.Int64
	failed  atomic.Int64
}

// NewWorker creates a print worker.
func NewWorker(queue Dequeuer, printer ports.Printer, renamer ports.Renamer, logger ports.Logger) *Worker {
	return &Worker{
		queue:   queue,
		printer: printer,
		renamer: renamer,
		logger:  logger,
	}
}

// Run processes jobs until the stop sentinel is reached (returns nil), ctx is
// canceled (returns ctx.Err()) or the print command is missing (returns an
// error wrapping domain.ErrCommandNotFound). Cancelling ctx never interrupts
// a print already in progress.
func (w *Worker) Run(ctx context.Context) error {
	for {
		job, err := w.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrQueueClosed) {
				return nil
			}
			return err
		}
		if err := w.process(ctx, job); err != nil {
			return err
		}
	}
}

// Printed returns the number of labels printed successfully.
func (w *Worker) Printed() int64 { return w.printed.Load() }

// Failed returns the number of labels marked with the error suffix.
func (w *Worker) Failed() int64 { return w.failed.Load() }

func (w *Worker) process(ctx context.Context, job domain.PrintJob) error {
	res := w.printer.Print(context.WithoutCancel(ctx), job)

	switch res.Outcome {
	case domain.OutcomeEnvironmentFatal:
		w.logger.Error("print command not found, is it installed and on PATH?",
			ports.String("job", job.ID),
			ports.Err(res.Err),
		)
		return res.Err

	case domain.OutcomeSuccess:
		w.logger.Info("printed label",
			ports.String("job", job.ID),
			ports.String("path", job.Path),
			ports.Bool("no_cut", job.NoCut),
			ports.Duration("duration", res.Duration),
		)
		w.printed.Add(1)
		w.mark(job, job.DonePath())
		return nil

	case domain.OutcomeTimeout:
		w.logger.Warn("print timed out, skipping",
			ports.String("job", job.ID),
			ports.String("path", job.Path),
			ports.Duration("timeout", job.Timeout),
		)

	case domain.OutcomeExitFailure:
		w.logger.Error("print failed",
			ports.String("job", job.ID),
			ports.String("path", job.Path),
			ports.Int("exit_code", res.ExitCode),
			ports.String("stderr", res.Stderr),
		)

	default:
		w.logger.Error("unexpected error while printing",
			ports.String("job", job.ID),
			ports.String("path", job.Path),
			ports.Err(res.Err),
		)
	}

	w.failed.Add(1)
	w.mark(job, job.ErrorPath())
	return nil
}

func (w *Worker) mark(job domain.PrintJob, target string) {
	if err := w.renamer.Rename(job.Path, target); err != nil {
		w.logger.Error("failed to rename label",
			ports.String("job", job.ID),
			ports.String("from", job.Path),
			ports.String("to", target),
			ports.Err(err),
		)
	}
}
