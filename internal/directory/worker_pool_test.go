package directory

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_DrainsQueueAfterClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool := NewWorkerPool(2, 8, 2)
	results := pool.Run(ctx)

	var ran int32
	const tasks = 6
	for i := 0; i < tasks; i++ {
		pool.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}
	pool.Close()

	got := 0
	for range results {
		got++
	}
	if got != tasks {
		t.Fatalf("expected %d results, got %d", tasks, got)
	}
	if n := atomic.LoadInt32(&ran); n != tasks {
		t.Fatalf("expected %d tasks to run, got %d", tasks, n)
	}
	if ctx.Err() != nil {
		t.Fatalf("queue only drained via context cancellation: %v", ctx.Err())
	}
}

func TestWorkerPool_ReportsTaskErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool := NewWorkerPool(1, 4, 0)
	results := pool.Run(ctx)

	pool.Submit(func(ctx context.Context) error { return nil })
	pool.Submit(func(ctx context.Context) error { return fmt.Errorf("upsert refused") })
	pool.Close()

	var failed, done int
	for res := range results {
		if res.Err != nil {
			failed++
		} else {
			done++
		}
	}
	if done != 1 || failed != 1 {
		t.Fatalf("expected 1 success and 1 failure, got done=%d failed=%d", done, failed)
	}
}
