package tournament

import (
	"context"
	"sync"
)

// Runner owns the single active tournament. Only one may run at a time:
// starting a new one supersedes (cancels) whichever is active, and Stop
// is idempotent, so stopping with nothing active is a no-op. The handle
// is passed explicitly to the transport layer rather than living in
// package state.
type Runner struct {
	sched *Scheduler

	mu     sync.Mutex
	active *activeRun
}

type activeRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner wraps a scheduler in an active-run handle.
func NewRunner(sched *Scheduler) *Runner {
	return &Runner{sched: sched}
}

// Start launches a tournament in the background, cancelling any prior
// one first. It waits for the superseded run's goroutine to exit before
// the new one begins, so the store never sees two writers: a superseded
// match whose final turn is already in flight gets to persist (or abort)
// before the new schedule touches the manifest. onDone receives the
// scheduler's terminal outcome exactly once: nil for clean completion
// (including cancellation), non-nil for a scheduling failure.
func (r *Runner) Start(opts Options, onDone func(error)) {
	ctx, cancel := context.WithCancel(context.Background())
	run := &activeRun{cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	prev := r.active
	r.active = run
	r.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	go func() {
		defer close(run.done)
		defer cancel()
		err := r.sched.Run(ctx, opts)

		r.mu.Lock()
		if r.active == run {
			r.active = nil
		}
		r.mu.Unlock()

		if onDone != nil {
			onDone(err)
		}
	}()
}

// Stop cancels the active tournament, if any. The run clears itself
// once its goroutine winds down, so a Start right after Stop still
// waits for it.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.cancel()
	}
}

// Active reports whether a tournament is currently running.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}
