package crawl

import (
	"context"
	"sync"

	scraper "github.com/NakaSato/datadog-scraper"
)

// State describes what a Runner is doing.
type State string

// Runner states.
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Status is a point-in-time snapshot of a Runner. Result and Err are set
// only in the done and failed states respectively.
type Status struct {
	State  State
	Result *Result
	Err    error
}

// Runner triggers crawls in the background while guaranteeing that only
// one session is active at a time. A second trigger while one is running
// is rejected with ECONFLICT, never queued or merged. Callers poll
// Status or block on Wait.
type Runner struct {
	crawler *Crawler

	mu     sync.Mutex
	state  State
	result *Result
	err    error
	done   chan struct{}
}

// NewRunner creates an idle Runner around the given Crawler.
func NewRunner(c *Crawler) *Runner {
	return &Runner{crawler: c, state: StateIdle}
}

// Trigger starts a crawl in the background. Returns ECONFLICT if a
// session is already running.
func (r *Runner) Trigger(ctx context.Context, cfg Config) error {
	r.mu.Lock()
	if r.state == StateRunning {
		r.mu.Unlock()
		return scraper.Errorf(scraper.ECONFLICT, "a crawl session is already active")
	}
	r.state = StateRunning
	r.result = nil
	r.err = nil
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go func() {
		result, err := r.crawler.Crawl(ctx, cfg)

		r.mu.Lock()
		if err != nil {
			r.state = StateFailed
			r.err = err
		} else {
			r.state = StateDone
			r.result = result
		}
		r.mu.Unlock()
		close(done)
	}()

	return nil
}

// Status returns the Runner's current state and, when finished, the
// result or error of the last session.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{State: r.state, Result: r.result, Err: r.err}
}

// Wait blocks until the current session finishes and returns its
// outcome. Waiting on an idle Runner returns immediately.
func (r *Runner) Wait() (*Result, error) {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done != nil {
		<-done
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.err
}
