// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Executor runs submitted tasks in the background. Submit must not block
// for long; Close waits for running tasks to return.
type Executor interface {
	Submit(task func()) error
	Close() error
}

// ExecutorFactory builds an executor with the given number of workers.
type ExecutorFactory func(workers int) (Executor, error)

// NewPool is the default ExecutorFactory. At most workers tasks run at the
// same time; the rest wait on a weighted semaphore.
func NewPool(workers int) (Executor, error) {
	if workers < 1 {
		workers = 1
	}

	return &pool{sem: semaphore.NewWeighted(int64(workers))}, nil
}

type pool struct {
	sem *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func (p *pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrExecutorClosed
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		// The context never ends; cancellation is the task's business.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		task()
	}()

	return nil
}

func (p *pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()

	return nil
}
