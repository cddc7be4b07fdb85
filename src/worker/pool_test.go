package worker

import (
	"sync"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	p := New(4)

	var mu sync.Mutex
	seen := make(map[int]bool)
	for i := 0; i < 32; i++ {
		i := i
		p.Submit(func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		})
	}
	p.Close()

	if len(seen) != 32 {
		t.Errorf("Expected 32 jobs to run, got %d", len(seen))
	}
}

func TestPoolDefaultSize(t *testing.T) {
	p := New(0)
	done := make(chan struct{})
	p.Submit(func() { close(done) })
	<-done
	p.Close()
}
