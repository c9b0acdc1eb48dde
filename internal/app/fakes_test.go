package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/labelwatch/internal/domain"
)

// fakePrinter returns scripted results keyed by job path; unknown paths succeed.
type fakePrinter struct {
	mu      sync.Mutex
	results map[string]domain.PrintResult
	jobs    []domain.PrintJob
	printed chan domain.PrintJob

	// block, when set, is received from before returning
	block chan struct{}
	ctxs  []context.Context
}

func newFakePrinter() *fakePrinter {
	return &fakePrinter{
		results: make(map[string]domain.PrintResult),
		printed: make(chan domain.PrintJob, 64),
	}
}

func (p *fakePrinter) set(path string, res domain.PrintResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[path] = res
}

func (p *fakePrinter) Print(ctx context.Context, job domain.PrintJob) domain.PrintResult {
	p.mu.Lock()
	p.jobs = append(p.jobs, job)
	p.ctxs = append(p.ctxs, ctx)
	res, ok := p.results[job.Path]
	block := p.block
	p.mu.Unlock()

	if block != nil {
		<-block
	}
	p.printed <- job
	if !ok {
		return domain.PrintResult{Outcome: domain.OutcomeSuccess}
	}
	return res
}

func (p *fakePrinter) Jobs() []domain.PrintJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.PrintJob{}, p.jobs...)
}

// fakeRenamer records renames; paths listed in fail return an error.
type fakeRenamer struct {
	mu      sync.Mutex
	renames map[string]string
	fail    map[string]bool
}

func newFakeRenamer() *fakeRenamer {
	return &fakeRenamer{renames: make(map[string]string), fail: make(map[string]bool)}
}

func (r *fakeRenamer) Rename(oldPath, newPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[oldPath] {
		return errors.New("rename: permission denied")
	}
	r.renames[oldPath] = newPath
	return nil
}

func (r *fakeRenamer) Target(path string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.renames[path]
	return t, ok
}

// fakeSource is an in-memory ports.EventSource.
type fakeSource struct {
	created   chan string
	errs      chan error
	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		created: make(chan string, 64),
		errs:    make(chan error, 8),
		closed:  make(chan struct{}),
	}
}

func (s *fakeSource) Created() <-chan string { return s.created }
func (s *fakeSource) Errors() <-chan error   { return s.errs }

func (s *fakeSource) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeSource) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}
