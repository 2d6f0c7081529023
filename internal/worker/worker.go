package worker

import (
	"context"
	"sync"
)

// Pool fans submitted jobs out over a fixed set of goroutines. Used for
// batch estimation requests and catalog ingestion; the estimation engine
// itself is pure and needs no pool of its own.
type Pool struct {
	numWorkers int
	jobs       chan func(ctx context.Context)
	wg         sync.WaitGroup
}

func NewPool(numWorkers, bufferSize int) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan func(ctx context.Context), bufferSize),
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			job(ctx)
		}
	}
}

// Submit enqueues a job. Blocks when the buffer is full.
func (p *Pool) Submit(job func(ctx context.Context)) {
	p.jobs <- job
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
