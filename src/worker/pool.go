package worker

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size worker pool used to acquire per-display pixel
// buffers in parallel. Unlike a back-pressured request pool, every
// submitted job must run, so Submit blocks when all workers are busy.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

// New creates a worker pool. Size defaults to NumCPU when size<=0.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan func(), size)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
}

// Submit enqueues a job, blocking until a queue slot is free.
func (p *Pool) Submit(job func()) {
	p.jobs <- job
}

// Close stops the pool after draining queued work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
