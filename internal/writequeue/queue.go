// Package writequeue runs persistence work off the caller's goroutine on a
// single consumer, so tasks execute one at a time in submission order.
package writequeue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/logger"
)

// Task is a unit of persistence work. Tasks must not submit to the queue that
// runs them.
type Task func()

// Queue is a bounded FIFO drained by one goroutine. When the buffer is full the
// submitting goroutine runs the task itself instead of dropping it.
type Queue struct {
	tasks   chan Task
	closing chan struct{}
	done    chan struct{}

	// runMu serializes execution between the consumer and caller-run tasks
	runMu sync.Mutex

	closeMu sync.RWMutex
	closed  bool

	pendMu    sync.Mutex
	pendCond  *sync.Cond
	pending   int
	callerRan atomic.Int64
	drainMax  time.Duration
}

// New starts a queue with room for size buffered tasks.
func New(size int) *Queue {
	if size <= 0 {
		size = constants.WriteQueueSize
	}
	q := &Queue{
		tasks:    make(chan Task, size),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
		drainMax: constants.WriteQueueDrainMax,
	}
	q.pendCond = sync.NewCond(&q.pendMu)
	go q.consume()
	return q
}

func (q *Queue) consume() {
	defer close(q.done)
	for {
		select {
		case task := <-q.tasks:
			q.run(task)
		case <-q.closing:
			// Drain what was accepted before Close
			for {
				select {
				case task := <-q.tasks:
					q.run(task)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) run(task Task) {
	defer q.markDone()
	q.runMu.Lock()
	defer q.runMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Write task panicked", "panic", r)
		}
	}()
	task()
}

// Submit enqueues task. It never blocks on a full buffer: the task runs on the
// calling goroutine instead. After Close, tasks run inline as well.
func (q *Queue) Submit(task Task) {
	if task == nil {
		return
	}

	q.closeMu.RLock()
	defer q.closeMu.RUnlock()

	q.pendMu.Lock()
	q.pending++
	q.pendMu.Unlock()
	if q.closed {
		q.run(task)
		return
	}

	select {
	case q.tasks <- task:
	default:
		q.callerRan.Add(1)
		logger.Debug("Write queue saturated, running on caller", "depth", len(q.tasks))
		q.run(task)
	}
}

func (q *Queue) markDone() {
	q.pendMu.Lock()
	q.pending--
	if q.pending == 0 {
		q.pendCond.Broadcast()
	}
	q.pendMu.Unlock()
}

// Flush blocks until no submitted task is outstanding.
func (q *Queue) Flush() {
	q.pendMu.Lock()
	for q.pending > 0 {
		q.pendCond.Wait()
	}
	q.pendMu.Unlock()
}

// Len reports the number of buffered tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// CallerRuns reports how many tasks ran on a submitting goroutine because the
// buffer was full.
func (q *Queue) CallerRuns() int64 {
	return q.callerRan.Load()
}

// Close stops accepting queued work, drains the buffer and waits for the
// consumer to exit, up to the drain limit.
func (q *Queue) Close() error {
	q.closeMu.Lock()
	if q.closed {
		q.closeMu.Unlock()
		return nil
	}
	q.closed = true
	q.closeMu.Unlock()

	close(q.closing)

	select {
	case <-q.done:
		return nil
	case <-time.After(q.drainMax):
		logger.Warn("Timeout waiting for write queue to drain", "remaining", len(q.tasks))
		return nil
	}
}
