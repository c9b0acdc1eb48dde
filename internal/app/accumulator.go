package app

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/bft-labs/labelwatch/internal/domain"
	"github.com/bft-labs/labelwatch/internal/ports"
)

// DefaultGracePeriod is the debounce window after the last arrival in a group.
const DefaultGracePeriod = 250 * time.Millisecond

// GroupState is the state of the accumulator.
type GroupState int

const (
	// StateIdle means no group is open
	StateIdle GroupState = iota
	// StateAccumulating means a group is open and its timer is running
	StateAccumulating
)

// String returns a human-readable representation of the state.
func (s GroupState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAccumulating:
		return "Accumulating"
	default:
		return "Unknown"
	}
}

// Enqueuer receives flushed jobs in order. Push must not block.
type Enqueuer interface {
	Push(job domain.PrintJob)
}

// AccumulatorConfig contains configuration for the group accumulator.
type AccumulatorConfig struct {
	GracePeriod time.Duration
	Separator   string

	// MergeUngrouped treats consecutive ungrouped files as one group.
	// When false every ungrouped file is flushed on its own.
	MergeUngrouped bool

	// Template supplies args, suffixes and timeout for every job.
	Template domain.PrintJob

	// ModTime reports a file's modification time for ordering.
	// When nil, or when it fails, the observed time is used.
	ModTime func(path string) (time.Time, error)
}

// Accumulator collects files of the currently open print group and flushes
// them to the queue when the group changes or its grace period elapses.
// Event arrival and timer expiry are serialized by one mutex, and a
// generation counter makes stale timer callbacks no-ops, so a group is
// flushed at most once.
type Accumulator struct {
	cfg    AccumulatorConfig
	queue  Enqueuer
	clock  clock.Clock
	logger ports.Logger
	newID  func() string

	mu        sync.Mutex
	state     GroupState
	key       domain.GroupKey
	pending   []domain.WatchedFile
	timer     *clock.Timer
	gen       uint64
	processed map[string]struct{}
	stopped   bool
}

// NewAccumulator creates an idle accumulator.
func NewAccumulator(cfg AccumulatorConfig, queue Enqueuer, clk clock.Clock, logger ports.Logger) *Accumulator {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultGracePeriod
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Accumulator{
		cfg:       cfg,
		queue:     queue,
		clock:     clk,
		logger:    logger,
		newID:     uuid.NewString,
		state:     StateIdle,
		processed: make(map[string]struct{}),
	}
}

// Add records a newly created file. It returns false when the file was
// already seen or the accumulator is stopped.
func (a *Accumulator) Add(path string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return false
	}
	if _, seen := a.processed[path]; seen {
		a.logger.Debug("ignoring duplicate create event", ports.String("path", path))
		return false
	}
	a.processed[path] = struct{}{}

	file := domain.WatchedFile{
		Path:       path,
		Group:      Classify(path, a.cfg.Separator),
		ObservedAt: a.clock.Now(),
	}
	a.logger.Info("new label detected",
		ports.String("path", path),
		ports.String("group", file.Group.String()),
	)

	switch a.state {
	case StateIdle:
		a.openLocked(file)
	case StateAccumulating:
		if a.sameGroupLocked(file.Group) {
			a.pending = append(a.pending, file)
			a.armLocked()
			return true
		}
		a.flushLocked("group changed")
		a.openLocked(file)
	}
	return true
}

// Stop cancels the timer and abandons any open group. Subsequent Adds are ignored.
func (a *Accumulator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	a.stopped = true
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if len(a.pending) > 0 {
		a.logger.Warn("abandoning unflushed group",
			ports.String("group", a.key.String()),
			ports.Int("files", len(a.pending)),
		)
	}
	a.pending = nil
	a.state = StateIdle
}

// State returns the current accumulator state.
func (a *Accumulator) State() GroupState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Pending returns the number of files in the open group.
func (a *Accumulator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func (a *Accumulator) sameGroupLocked(k domain.GroupKey) bool {
	if !k.Grouped && !a.key.Grouped {
		return a.cfg.MergeUngrouped
	}
	return k == a.key
}

func (a *Accumulator) openLocked(file domain.WatchedFile) {
	a.key = file.Group
	a.pending = []domain.WatchedFile{file}
	a.state = StateAccumulating
	a.armLocked()
	a.logger.Debug("group opened", ports.String("group", a.key.String()))
}

// armLocked starts a fresh grace window, invalidating any earlier timer.
func (a *Accumulator) armLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.cfg.GracePeriod, func() { a.expire(gen) })
}

func (a *Accumulator) expire(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped || a.state != StateAccumulating || gen != a.gen {
		return
	}
	a.flushLocked("grace period elapsed")
}

// flushLocked orders the open group by modification time and enqueues one job
// per file; every label but the last is printed without a cut.
func (a *Accumulator) flushLocked(reason string) {
	files := a.pending
	key := a.key

	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.state = StateIdle

	for i := range files {
		files[i].ModTime = a.modTime(files[i])
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	a.logger.Info("flushing group",
		ports.String("group", key.String()),
		ports.Int("files", len(files)),
		ports.String("reason", reason),
	)

	for i, f := range files {
		job := a.cfg.Template
		job.ID = a.newID()
		job.Path = f.Path
		job.Group = key
		job.NoCut = i < len(files)-1
		a.queue.Push(job)
	}
}

func (a *Accumulator) modTime(f domain.WatchedFile) time.Time {
	if a.cfg.ModTime == nil {
		return f.ObservedAt
	}
	t, err := a.cfg.ModTime(f.Path)
	if err != nil {
		a.logger.Warn("stat failed, ordering by arrival",
			ports.String("path", f.Path),
			ports.Err(err),
		)
		return f.ObservedAt
	}
	return t
}
