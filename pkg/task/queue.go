package task

import (
	"fmt"
	"sync"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

const (
	NonPositiveCapacityErr ConstError = "queue capacity must be positive"

	// DefaultQueueDepth is the backpressure point between the command reader
	// and the worker pool.
	DefaultQueueDepth = 64
)

// Queue is a bounded FIFO of tasks shared between one producer and the
// worker pool. Enqueue blocks while the buffer is full; Dequeue blocks while
// it is empty, unless the queue has been shut down. Both waits are
// condition-checked loops, so spurious wakes are harmless.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	buf      ring[Task]
	shutdown bool
}

func NewQueue(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, fmt.Errorf(
			"capacity `%d`: %w",
			capacity,
			NonPositiveCapacityErr,
		)
	}
	q := &Queue{buf: newRing[Task](capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.len()
}

// Enqueue appends the task and wakes one waiting consumer. Enqueueing after
// shutdown drops the task and reports false.
func (q *Queue) Enqueue(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.shutdown && !q.buf.pushBack(t) {
		q.notFull.Wait()
	}
	if q.shutdown {
		return false
	}
	q.notEmpty.Signal()
	return true
}

// Dequeue blocks until a task is available or the queue has been shut down
// and drained; the second return is false only in the latter case.
func (q *Queue) Dequeue() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if t, ok := q.buf.popFront(); ok {
			q.notFull.Signal()
			return t, true
		}
		if q.shutdown {
			return Task{}, false
		}
		q.notEmpty.Wait()
	}
}

// Shutdown marks the queue closed and wakes every waiter. Tasks already
// queued still drain; new enqueues are refused.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shutdown = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
