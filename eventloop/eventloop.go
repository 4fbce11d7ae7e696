// Package eventloop is the single-threaded coordinator between the input
// listeners and the rest of the application. Intents arrive on a buffered
// channel from listener and timer goroutines; the loop dispatches them one
// at a time, so dispatch order matches arrival order.
package eventloop

import (
	"context"
	"log"

	"screen-reader-solver/chord"
	"screen-reader-solver/overlay"
	"screen-reader-solver/worker"
)

// CaptureRunner executes one capture run; false means the request was
// dropped because a run was already in flight.
type CaptureRunner interface {
	Run(ctx context.Context) bool
}

// Loop owns intent dispatch.
type Loop struct {
	presenter overlay.Presenter
	runner    CaptureRunner
	pool      *worker.Pool
	quit      func()
	intents   chan chord.Intent
}

// New creates the loop. quit is invoked once on the exit intent; it must
// stop the GUI and cancel the run context.
func New(presenter overlay.Presenter, runner CaptureRunner, pool *worker.Pool, quit func()) *Loop {
	return &Loop{
		presenter: presenter,
		runner:    runner,
		pool:      pool,
		quit:      quit,
		intents:   make(chan chord.Intent, 16),
	}
}

// Post delivers an intent to the loop without blocking; when the buffer is
// full the intent is dropped. Safe to call from any goroutine, including
// debounce-timer callbacks.
func (l *Loop) Post(in chord.Intent) {
	select {
	case l.intents <- in:
	default:
		log.Printf("Intent buffer full, dropping %v", in.Kind)
	}
}

// Run dispatches intents until the exit intent arrives or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-l.intents:
			if exit := l.dispatch(ctx, in); exit {
				return nil
			}
		}
	}
}

func (l *Loop) dispatch(ctx context.Context, in chord.Intent) (exit bool) {
	switch in.Kind {
	case chord.IntentCapture:
		if !l.pool.Submit(ctx, func(jobCtx context.Context) { l.runner.Run(jobCtx) }) {
			log.Printf("Capture worker busy, request dropped")
		}
	case chord.IntentToggle:
		l.presenter.ToggleVisible()
	case chord.IntentScroll:
		l.presenter.Scroll(in.Direction)
	case chord.IntentExit:
		log.Printf("Exit intent received, shutting down")
		l.quit()
		return true
	}
	return false
}
