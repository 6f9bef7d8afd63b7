// Package parallel runs independent carrier scans on a bounded number of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool hands jobs to a fixed set of workers. A pool of one worker runs every
// job inline on the caller's goroutine.
type Pool struct {
	jobs  chan func()
	wg    sync.WaitGroup
	close func()
}

// Start launches numWorkers workers, or GOMAXPROCS when numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for job := range pool.jobs {
				job()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.jobs) })
	return pool
}

// Do queues job, blocking while every worker is busy. Do must not be called
// after Wait.
func (p *Pool) Do(job func()) {
	if p.jobs == nil {
		job()
		return
	}
	p.jobs <- job
}

// Wait stops accepting jobs and blocks until the queued ones have run.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
