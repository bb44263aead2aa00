package worker

import (
	"context"
	"sync"
)

// Job is a unit of extraction work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed set of worker goroutines
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given number of workers. Jobs observe the
// caller's ctx, so a deadline or cancellation stops the run.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Results returns the channel job outcomes are delivered on. Callers must
// drain it concurrently with Submit: the channel buffer is small, and a full
// buffer blocks the workers.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait closes the queue, waits for the workers to finish and then closes the
// results channel, ending the caller's drain loop.
func (p *Pool) Wait() {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
}

// Shutdown cancels outstanding work immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
