// Package worker runs the consumer side of the task queue: a fixed pool of
// executors that serialize against the filesystem and render results onto a
// shared output stream.
package worker

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/watsonliu1/disk-simulator-v2/pkg/disk"
	"github.com/watsonliu1/disk-simulator-v2/pkg/task"
)

// Pool is a fixed-size set of workers draining one queue. Every handler body
// runs under the filesystem-wide lock; result output is serialized
// separately so interleaved writes cannot shear a result line.
type Pool struct {
	fs      *disk.FileSystem
	queue   *task.Queue
	out     io.Writer
	outMu   sync.Mutex
	prompt  string
	size    int
	running atomic.Bool
	wg      sync.WaitGroup
	logger  log.FieldLogger
}

type PoolParams struct {
	FileSystem *disk.FileSystem
	Queue      *task.Queue
	Out        io.Writer
	Prompt     string
	Size       int
	Logger     log.FieldLogger
}

func NewPool(params *PoolParams) *Pool {
	size := params.Size
	if size < 1 {
		size = runtime.NumCPU()
	}
	logger := params.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	pool := &Pool{
		fs:     params.FileSystem,
		queue:  params.Queue,
		out:    params.Out,
		prompt: params.Prompt,
		size:   size,
		logger: logger,
	}
	pool.running.Store(true)
	return pool
}

// Start launches the workers. They exit once the queue is shut down and
// drained.
func (pool *Pool) Start() {
	for i := 0; i < pool.size; i++ {
		pool.wg.Add(1)
		go pool.run(i)
	}
}

// Wait blocks until every worker has exited.
func (pool *Pool) Wait() { pool.wg.Wait() }

// Running reports true until a shutdown has been requested through Stop.
func (pool *Pool) Running() bool { return pool.running.Load() }

// Stop signals shutdown: queued tasks still drain, then the workers exit.
func (pool *Pool) Stop() {
	pool.running.Store(false)
	pool.queue.Shutdown()
}

func (pool *Pool) run(id int) {
	defer pool.wg.Done()
	logger := pool.logger.WithField("worker", id)

	for {
		t, ok := pool.queue.Dequeue()
		if !ok {
			logger.Debug("queue shut down; worker exiting")
			return
		}

		logger.WithFields(log.Fields{
			"task": t.ID,
			"kind": t.Kind.String(),
		}).Debug("executing task")

		pool.fs.Lock()
		pool.execute(&t)
		pool.fs.Unlock()

		t.Completed = true
		pool.emit(&t)
	}
}

// execute dispatches on the command kind. A panicking handler is reported as
// a generic execution error; the worker itself keeps going.
func (pool *Pool) execute(t *task.Task) {
	defer func() {
		if r := recover(); r != nil {
			pool.logger.WithFields(log.Fields{
				"task":  t.ID,
				"kind":  t.Kind.String(),
				"panic": r,
			}).Error("command handler panicked")
			t.Result = "command execution error\n"
		}
	}()

	switch t.Kind {
	case task.KindLS:
		t.Result = pool.handleList()
	case task.KindCat:
		t.Result = pool.handleCat(t.Args)
	case task.KindRM:
		t.Result = pool.handleRemove(t.Args)
	case task.KindCopy:
		t.Result = pool.handleCopy(t.Args)
	case task.KindWrite:
		t.Result = pool.handleWrite(t.Args)
	case task.KindTouch:
		t.Result = pool.handleTouch(t.Args)
	case task.KindExit:
		t.Result = "bye\n"
		pool.Stop()
	case task.KindEmpty:
		t.Result = ""
	default:
		t.Result = "unknown command; type help for the command list\n"
	}
}

func (pool *Pool) emit(t *task.Task) {
	pool.outMu.Lock()
	defer pool.outMu.Unlock()
	if t.Result != "" {
		fmt.Fprintf(pool.out, "\n%s%s", t.Result, pool.prompt)
	}
}
