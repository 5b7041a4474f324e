package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobreeze/breeze/profile"
)

// Fetcher retrieves one person's full profile. *breeze.Client
// satisfies it.
type Fetcher interface {
	PersonDetails(ctx context.Context, personID string) (*profile.Raw, error)
}

// Result is the outcome of one profile fetch.
type Result struct {
	PersonID string
	Profile  *profile.Raw
	Err      error
	Duration time.Duration
}

// Pool runs profile fetches on a fixed number of goroutines. Submit
// queues person ids; Results delivers outcomes as they complete, in no
// particular order. A Pool must be finished with Close or
// CloseAndWait.
type Pool struct {
	workers int
	fetcher Fetcher
	jobs    chan string
	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// NewPool starts a pool of the given size. A size of zero or less
// defaults to runtime.NumCPU.
func NewPool(ctx context.Context, fetcher Fetcher, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)

	p := &Pool{
		workers: workers,
		fetcher: fetcher,
		jobs:    make(chan string, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues one person id, blocking while the queue is full.
// It reports false once the pool is closed or its context canceled.
func (p *Pool) Submit(personID string) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- personID:
		p.submitted.Add(1)
		return true
	}
}

// Results returns the channel fetch outcomes arrive on. It is closed
// after Close or CloseAndWait completes.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting work, discards undelivered results and waits
// for the workers to exit.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		for range p.results {
		}
		close(done)
	}()
	p.wg.Wait()
	p.cancel()
	close(p.results)
	<-done
}

// CloseAndWait stops accepting work and collects every remaining
// result, keyed by person id.
func (p *Pool) CloseAndWait() map[string]Result {
	out := make(map[string]Result)
	if p.closed.Swap(true) {
		return out
	}
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		p.cancel()
		close(p.results)
		close(done)
	}()
	for r := range p.results {
		out[r.PersonID] = r
	}
	<-done
	return out
}

// Stats reports the pool's counters.
type Stats struct {
	Workers   int
	Submitted uint64
	Completed uint64
	Failed    uint64
}

// Stats returns a point-in-time copy of the counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workers,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for id := range p.jobs {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		raw, err := p.fetcher.PersonDetails(p.ctx, id)
		r := Result{
			PersonID: id,
			Profile:  raw,
			Err:      err,
			Duration: time.Since(start),
		}
		p.completed.Add(1)
		if err != nil {
			p.failed.Add(1)
		}

		select {
		case <-p.ctx.Done():
			return
		case p.results <- r:
		}
	}
}

// FetchAll fetches the given person ids on a temporary pool and
// returns the results in input order. Failed fetches keep their slot
// with Err set.
func FetchAll(ctx context.Context, fetcher Fetcher, personIDs []string, workers int) []Result {
	if len(personIDs) == 0 {
		return nil
	}

	p := NewPool(ctx, fetcher, workers)
	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for _, id := range personIDs {
			if !p.Submit(id) {
				return
			}
		}
	}()

	byID := make(map[string]Result, len(personIDs))
loop:
	for i := 0; i < len(personIDs); i++ {
		select {
		case <-ctx.Done():
			break loop
		case r, ok := <-p.Results():
			if !ok {
				break loop
			}
			byID[r.PersonID] = r
		}
	}
	// The submitter must be done before Close closes the job channel.
	<-submitted
	p.Close()

	out := make([]Result, 0, len(personIDs))
	for _, id := range personIDs {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		} else {
			out = append(out, Result{PersonID: id, Err: ctx.Err()})
		}
	}
	return out
}
