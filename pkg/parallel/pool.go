// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type Pool struct {
	wg   sync.WaitGroup
	jobs chan func()
	stop func()
}

// Start launches workers goroutines. With workers < 1 it uses
// runtime.GOMAXPROCS(0). A single-worker pool runs jobs on the caller's
// goroutine.
func Start(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{stop: func() {}}
	if workers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), workers)
	pool.wg.Add(workers)
	for range workers {
		go func() {
			defer pool.wg.Done()
			for f := range pool.jobs {
				f()
			}
		}()
	}
	pool.stop = sync.OnceFunc(func() { close(pool.jobs) })

	return pool
}

// Do runs f, possibly concurrently with other jobs. Do must not be called
// after Wait.
func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.jobs <- f
}

// Wait blocks until every job passed to Do has returned.
func (p *Pool) Wait() {
	p.stop()
	p.wg.Wait()
}
