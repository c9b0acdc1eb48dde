package app

import (
	"context"
	"sync"

	"github.com/bft-labs/labelwatch/internal/domain"
)

// PrintQueue is an unbounded FIFO hand-off between the accumulator and the
// print worker. Push never blocks. Close appends a stop sentinel; jobs pushed
// before it are still delivered, and Pop reports domain.ErrQueueClosed once
// the sentinel is reached.
//
// The queue supports a single consumer.
type PrintQueue struct {
	mu      sync.Mutex
	items   []queueItem
	drained bool
	notify  chan struct{}
}

type queueItem struct {
	job  domain.PrintJob
	stop bool
}

// NewPrintQueue creates an empty queue.
func NewPrintQueue() *PrintQueue {
	return &PrintQueue{notify: make(chan struct{}, 1)}
}

// Push appends a job.
func (q *PrintQueue) Push(job domain.PrintJob) {
	q.put(queueItem{job: job})
}

// Close appends the stop sentinel.
func (q *PrintQueue) Close() {
	q.put(queueItem{stop: true})
}

func (q *PrintQueue) put(it queueItem) {
	q.mu.Lock()
	q.items = append(q.items, it)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pop blocks until a job is available, the sentinel is reached or ctx is done.
func (q *PrintQueue) Pop(ctx context.Context) (domain.PrintJob, error) {
	for {
		q.mu.Lock()
		if q.drained {
			q.mu.Unlock()
			return domain.PrintJob{}, domain.ErrQueueClosed
		}
		if len(q.items) > 0 {
			it := q.items[0]
			q.items[0] = queueItem{}
			q.items = q.items[1:]
			if it.stop {
				q.drained = true
			}
			q.mu.Unlock()

			if it.stop {
				return domain.PrintJob{}, domain.ErrQueueClosed
			}
			return it.job, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.PrintJob{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of queued jobs, not counting the sentinel.
func (q *PrintQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, it := range q.items {
		if !it.stop {
			n++
		}
	}
	return n
}
