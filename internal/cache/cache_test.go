package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLatchSingleFlight(t *testing.T) {
	latch := NewMemoryLatch()
	ctx := context.Background()

	if !latch.TryAcquire(ctx, "feed:u1:all", time.Second) {
		t.Fatal("first acquire should succeed")
	}
	if latch.TryAcquire(ctx, "feed:u1:all", time.Second) {
		t.Error("second acquire inside the window should report busy")
	}

	// a different key is an independent latch
	if !latch.TryAcquire(ctx, "feed:u1:events", time.Second) {
		t.Error("acquire on a different key should succeed")
	}
	if !latch.TryAcquire(ctx, "feed:u2:all", time.Second) {
		t.Error("acquire for a different viewer should succeed")
	}
}

func TestMemoryLatchExpiry(t *testing.T) {
	latch := NewMemoryLatch()
	ctx := context.Background()

	if !latch.TryAcquire(ctx, "like:p1:post1", 10*time.Millisecond) {
		t.Fatal("first acquire should succeed")
	}

	time.Sleep(20 * time.Millisecond)

	if !latch.TryAcquire(ctx, "like:p1:post1", 10*time.Millisecond) {
		t.Error("acquire after the window should succeed")
	}
}

func TestMemoryLatchRelease(t *testing.T) {
	latch := NewMemoryLatch()
	ctx := context.Background()

	latch.TryAcquire(ctx, "k", time.Minute)
	latch.Release(ctx, "k")

	if !latch.TryAcquire(ctx, "k", time.Minute) {
		t.Error("acquire after release should succeed")
	}
}

func TestMemoryLatchConcurrentAcquire(t *testing.T) {
	latch := NewMemoryLatch()
	ctx := context.Background()

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if latch.TryAcquire(ctx, "contended", time.Second) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if won != 1 {
		t.Errorf("exactly one goroutine should win the latch, got %d", won)
	}
}

func TestCacheWithoutRedisUsesLocalLatch(t *testing.T) {
	c := New("")
	ctx := context.Background()

	if !c.TryAcquire(ctx, "x", time.Second) {
		t.Fatal("first acquire should succeed")
	}
	if c.TryAcquire(ctx, "x", time.Second) {
		t.Error("duplicate acquire should report busy")
	}

	// counters are a no-op without redis, must not panic
	c.IncrCounter(ctx, "post_likes:abc", 1)
	c.Close()
}
