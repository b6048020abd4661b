package helpers

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// GoroutineSnapshot captures the state of goroutines at a point in time
type GoroutineSnapshot struct {
	Count     int
	Timestamp time.Time
}

// TakeGoroutineSnapshot captures current goroutine count
func TakeGoroutineSnapshot() *GoroutineSnapshot {
	return &GoroutineSnapshot{
		Count:     runtime.NumGoroutine(),
		Timestamp: time.Now(),
	}
}

// WaitForGoroutineCleanup waits for goroutines to clean up, retrying with GC
func WaitForGoroutineCleanup(maxWait time.Duration, targetCount int, tolerance int) (int, error) {
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		current := runtime.NumGoroutine()
		if current-targetCount <= tolerance {
			return current, nil
		}

		runtime.GC()
		time.Sleep(50 * time.Millisecond)
	}

	final := runtime.NumGoroutine()
	return final, fmt.Errorf("goroutines did not clean up within %v: expected %d±%d, got %d",
		maxWait, targetCount, tolerance, final)
}

// DeadlockDetector fails a function that does not return within timeout
type DeadlockDetector struct {
	timeout time.Duration
}

// NewDeadlockDetector creates a detector with the given timeout
func NewDeadlockDetector(timeout time.Duration) *DeadlockDetector {
	return &DeadlockDetector{timeout: timeout}
}

// Run executes fn and returns its error, or a deadlock error on timeout
func (dd *DeadlockDetector) Run(fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(dd.timeout):
		return fmt.Errorf("possible deadlock: operation did not complete within %v", dd.timeout)
	}
}

// RunConcurrently starts n goroutines running fn at the same moment and
// collects their errors.
func RunConcurrently(n int, fn func(id int) error) []error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		errs  []error
		start = make(chan struct{})
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id int) {
			defer wg.Done()
			<-start
			if err := fn(id); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("goroutine %d: %w", id, err))
				mu.Unlock()
			}
		}(i)
	}

	close(start)
	wg.Wait()
	return errs
}
