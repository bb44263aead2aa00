package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

// runPool drains results concurrently while submitting, the way callers must.
func runPool(pool *Pool, jobs []Job) []Result {
	pool.Start()

	collected := make(chan []Result, 1)
	go func() {
		var results []Result
		for result := range pool.Results() {
			results = append(results, result)
		}
		collected <- results
	}()

	for _, job := range jobs {
		pool.Submit(job)
	}

	pool.Wait()
	return <-collected
}

func TestNewPool(t *testing.T) {
	ctx := context.Background()

	p1 := NewPool(ctx, 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(ctx, 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(ctx, -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_Execution(t *testing.T) {
	var executed int32
	count := 10

	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = &mockJob{executed: &executed}
	}

	results := runPool(NewPool(context.Background(), 2), jobs)

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}

	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

func TestPool_ManyMoreJobsThanBuffers(t *testing.T) {
	// Far more jobs than the workers*2 channel buffers; must not deadlock.
	var executed int32
	count := 200

	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = &mockJob{executed: &executed}
	}

	results := runPool(NewPool(context.Background(), 2), jobs)

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

func TestPool_ErrorsSurfaceInResults(t *testing.T) {
	results := runPool(NewPool(context.Background(), 2), []Job{
		&mockJob{shouldErr: true},
		&mockJob{},
	})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errCount := 0
	for _, res := range results {
		if res.GetError() != nil {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("expected exactly 1 failed job, got %d", errCount)
	}
}

func TestPool_CallerContextCancelsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 1)
	pool.Start()

	done := make(chan struct{})
	go func() {
		for range pool.Results() {
		}
		close(done)
	}()

	// Submit must not block on a cancelled pool.
	pool.Submit(&mockJob{duration: time.Second})
	pool.Wait()
	<-done
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	pool.Submit(&mockJob{duration: time.Second})
	pool.Shutdown()

	// Shutdown must return promptly without waiting out the job duration;
	// reaching this point without a test timeout is the assertion.
}
