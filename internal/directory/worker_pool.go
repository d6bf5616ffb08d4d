package directory

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs import tasks with bounded concurrency and an optional
// shared rate limit, so a directory site never sees a request burst.
type WorkerPool struct {
	workers int
	tasks   chan Task

	wg     sync.WaitGroup
	mu     sync.RWMutex
	ticker *time.Ticker
	rate   <-chan time.Time
}

func NewWorkerPool(workers, buffer, rps int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
	if rps > 0 {
		p.ticker = time.NewTicker(time.Second / time.Duration(rps))
		p.rate = p.ticker.C
	}
	return p
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close stops intake and lifts the rate limit so already-queued tasks
// drain instead of waiting on the ticker. The ticker itself keeps
// running until the workers exit, so a worker already parked on it is
// released by the next tick rather than hanging. Run's result channel
// closes once the queue empties.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.rate = nil
	p.mu.Unlock()
	close(p.tasks)
}

func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers*64)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					// Re-read under the lock so a Close between tasks
					// releases workers from the limiter.
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if p.ticker != nil {
			p.ticker.Stop()
		}
		close(out)
	}()

	return out
}
