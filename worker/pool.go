// Package worker runs blocking capture jobs off the GUI and event-loop
// goroutines. Admission is gated by run slots, one per worker: a job is
// accepted whenever a slot is free, including immediately after construction,
// and dropped rather than queued while every slot is taken.
package worker

import (
	"context"
	"log"
	"sync"
)

// Job is one unit of blocking work.
type Job func(ctx context.Context)

type job struct {
	ctx context.Context
	fn  Job
}

// Pool is a fixed-size job runner with strict drop-on-busy semantics.
type Pool struct {
	jobs  chan job
	slots chan struct{}
	wg    sync.WaitGroup
}

// New creates a pool. Size defaults to 1 when size<=0; the capture pipeline
// needs exactly one.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		jobs:  make(chan job, size),
		slots: make(chan struct{}, size),
	}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in worker job: %v", r)
						}
					}()
					j.fn(j.ctx)
				}()
				<-p.slots
			}
		}()
	}
}

// Submit hands a job to the pool. Returns false if every run slot is taken;
// the job is dropped, never queued. Acceptance does not depend on a worker
// goroutine already being parked on the channel.
func (p *Pool) Submit(ctx context.Context, fn Job) bool {
	select {
	case p.slots <- struct{}{}:
	default:
		return false
	}
	// The jobs buffer matches the slot count, so this send cannot block.
	p.jobs <- job{ctx: ctx, fn: fn}
	return true
}

// Close stops the pool after the accepted jobs finish.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
