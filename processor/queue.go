package processor

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"whichx/model"
)

const MAX_PARALLEL = 10
const MAX_RETRY = 5

var RETRY_DELAY = 5 * time.Second

// Queue buffers examples and trains a model with them in capped batches,
// syncing the model to its store after each batch.
type Queue struct {
	m        *model.Model
	interval time.Duration

	mu      sync.Mutex
	pending []*Example
}

func NewQueue(m *model.Model, interval time.Duration) *Queue {
	return &Queue{
		m:        m,
		interval: interval,
	}
}

// Push queues examples for the next drain.
func (q *Queue) Push(e ...*Example) {
	q.mu.Lock()
	q.pending = append(q.pending, e...)
	q.mu.Unlock()
}

// Len returns the number of examples waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain trains the model with up to MAX_PARALLEL pending examples and syncs it.
func (q *Queue) Drain(ctx context.Context) int {
	q.mu.Lock()
	capAt := len(q.pending)
	if capAt > MAX_PARALLEL {
		capAt = MAX_PARALLEL
	}
	cappedQ, newq := q.pending[:capAt], q.pending[capAt:]
	q.pending = newq
	q.mu.Unlock()

	learned := processExamples(q.m, cappedQ)
	q.sync(ctx)
	return learned
}

// sync retries failed saves, the learned state stays in memory meanwhile
func (q *Queue) sync(ctx context.Context) {
	for i := 0; i < MAX_RETRY; i++ {
		err := q.m.Sync(ctx)
		if err == nil {
			return
		}
		if i == MAX_RETRY-1 {
			log.WithField("model", q.m.Name).Errorf("Failed to sync too many times, aborting ... | ERR: %s", err.Error())
			return
		}
		log.WithField("model", q.m.Name).Warnf("Failed to sync, retrying ... | ERR: %s", err.Error())
		select {
		case <-ctx.Done():
			return
		case <-time.After(RETRY_DELAY):
		}
	}
}

// Run drains pending examples every interval until ctx is cancelled.
// Whatever is still pending on shutdown is drained before returning.
func (q *Queue) Run(ctx context.Context) {
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			for q.Len() > 0 {
				q.Drain(context.Background())
			}
			return
		case <-ticker.C:
			if n := q.Len(); n > 0 {
				log.Debugf("Current Queue Length: %d", n)
				q.Drain(ctx)
			} else if q.m.Dirty() {
				// labels and direct training
				q.sync(ctx)
			}
		}
	}
}
