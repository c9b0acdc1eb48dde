// Package exec runs the external label print command as a child process.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/bft-labs/labelwatch/internal/domain"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// DefaultCommand is the print driver invoked when none is configured.
const DefaultCommand = "brother_ql"

// PrintSubcommand separates global arguments from print arguments.
const PrintSubcommand = "print"

// NoCutFlag is passed for every label except the last one of a group.
const NoCutFlag = "--no-cut"

// waitDelay bounds how long Wait blocks on inherited pipes after a kill.
const waitDelay = 2 * time.Second

// CommandPrinter implements ports.Printer by running a command line
// of the form: <command> <global...> print <print...> [--no-cut] <path>.
type CommandPrinter struct {
	command string
	logger  ports.Logger
}

// NewCommandPrinter creates a printer for the given binary name or path.
func NewCommandPrinter(command string, logger ports.Logger) *CommandPrinter {
	if command == "" {
		command = DefaultCommand
	}
	return &CommandPrinter{command: command, logger: logger}
}

// Command returns the configured binary.
func (p *CommandPrinter) Command() string {
	return p.command
}

// Args builds the argument list (excluding the binary) for a job.
func Args(job domain.PrintJob) []string {
	args := make([]string, 0, len(job.GlobalArgs)+len(job.PrintArgs)+3)
	args = append(args, job.GlobalArgs...)
	args = append(args, PrintSubcommand)
	args = append(args, job.PrintArgs...)
	if job.NoCut {
		args = append(args, NoCutFlag)
	}
	return append(args, job.Path)
}

// Print runs the command and waits up to job.Timeout for it to exit.
func (p *CommandPrinter) Print(ctx context.Context, job domain.PrintJob) domain.PrintResult {
	args := Args(job)
	p.logger.Info("running print command",
		ports.String("job", job.ID),
		ports.String("command", p.command+" "+strings.Join(args, " ")),
	)

	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	res := domain.PrintResult{
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case err == nil:
		res.Outcome = domain.OutcomeSuccess
	case notFound(err):
		res.Outcome = domain.OutcomeEnvironmentFatal
		res.Err = fmt.Errorf("%w: %s: %v", domain.ErrCommandNotFound, p.command, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Outcome = domain.OutcomeTimeout
		res.Err = fmt.Errorf("print timed out after %s", job.Timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Outcome = domain.OutcomeExitFailure
			res.Err = fmt.Errorf("print command exited with status %d", res.ExitCode)
		} else {
			res.Outcome = domain.OutcomeUnexpected
			res.Err = err
		}
	}
	return res
}

// notFound reports whether err means the binary itself could not be located.
func notFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var pathErr *iofs.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, iofs.ErrNotExist)
}
