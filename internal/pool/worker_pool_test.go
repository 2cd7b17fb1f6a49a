package pool

import (
	"sync"
	"testing"
)

func TestNewWorkerPool(t *testing.T) {
	if pool := NewWorkerPool(4); pool == nil {
		t.Fatal("Expected non-nil worker pool")
	}
}

func TestNewWorkerPool_ZeroWorkersDefaults(t *testing.T) {
	// Non-positive counts default to the CPU count.
	if pool := NewWorkerPool(0); pool == nil {
		t.Error("Expected non-nil worker pool")
	}
}

func TestWorkerPool_SubmitAndWait(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Close()

	var counter int
	var mu sync.Mutex

	for i := 0; i < 5; i++ {
		pool.Submit(func() {
			mu.Lock()
			counter++
			mu.Unlock()
		})
	}
	pool.Wait()

	if counter != 5 {
		t.Errorf("Expected counter to be 5, got %d", counter)
	}
}

func TestWorkerPool_ConcurrentJobs(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Close()

	var results []int
	var mu sync.Mutex

	for i := 0; i < 10; i++ {
		value := i
		pool.Submit(func() {
			mu.Lock()
			results = append(results, value*2)
			mu.Unlock()
		})
	}
	pool.Wait()

	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
}

func TestWorkerPool_StartIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Start()
	defer pool.Close()

	done := false
	var mu sync.Mutex
	pool.Submit(func() {
		mu.Lock()
		done = true
		mu.Unlock()
	})
	pool.Wait()

	if !done {
		t.Error("Expected job to run after repeated Start calls")
	}
}
