package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"screen-reader-solver/chord"
	"screen-reader-solver/worker"
)

type stubPresenter struct {
	mu      sync.Mutex
	toggles int
	scrolls []int
}

func (s *stubPresenter) AppendText(string) {}
func (s *stubPresenter) SetEnabled(bool)   {}
func (s *stubPresenter) SetVisible(bool)   {}
func (s *stubPresenter) ToggleVisible() {
	s.mu.Lock()
	s.toggles++
	s.mu.Unlock()
}
func (s *stubPresenter) Scroll(dir int) {
	s.mu.Lock()
	s.scrolls = append(s.scrolls, dir)
	s.mu.Unlock()
}

type stubRunner struct {
	entries atomic.Int32
	block   chan struct{}
}

func (r *stubRunner) Run(context.Context) bool {
	r.entries.Add(1)
	if r.block != nil {
		<-r.block
	}
	return true
}

func startLoop(t *testing.T, runner CaptureRunner) (*Loop, *stubPresenter, func()) {
	t.Helper()
	p := &stubPresenter{}
	pool := worker.New(1)
	ctx, cancel := context.WithCancel(context.Background())
	l := New(p, runner, pool, cancel)
	go func() { _ = l.Run(ctx) }()
	return l, p, func() {
		cancel()
		pool.Close()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition never met")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestToggleAndScrollDispatch(t *testing.T) {
	l, p, stop := startLoop(t, &stubRunner{})
	defer stop()

	l.Post(chord.Intent{Kind: chord.IntentToggle})
	l.Post(chord.Intent{Kind: chord.IntentScroll, Direction: -1})
	l.Post(chord.Intent{Kind: chord.IntentScroll, Direction: +1})

	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.toggles == 1 && len(p.scrolls) == 2
	})
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.scrolls[0] != -1 || p.scrolls[1] != +1 {
		t.Errorf("scrolls = %v, want [-1 1]", p.scrolls)
	}
}

func TestCaptureSubmitsToRunner(t *testing.T) {
	r := &stubRunner{}
	l, _, stop := startLoop(t, r)
	defer stop()

	l.Post(chord.Intent{Kind: chord.IntentCapture})
	waitFor(t, func() bool { return r.entries.Load() == 1 })
}

func TestCaptureDroppedWhileRunnerBusy(t *testing.T) {
	r := &stubRunner{block: make(chan struct{})}
	l, _, stop := startLoop(t, r)
	defer stop()

	l.Post(chord.Intent{Kind: chord.IntentCapture})
	waitFor(t, func() bool { return r.entries.Load() == 1 })

	// Worker is parked inside the first run; these must be dropped.
	l.Post(chord.Intent{Kind: chord.IntentCapture})
	l.Post(chord.Intent{Kind: chord.IntentCapture})
	time.Sleep(20 * time.Millisecond)
	if got := r.entries.Load(); got != 1 {
		t.Errorf("pipeline entries = %d, want 1 while busy", got)
	}
	close(r.block)
}

func TestExitIntentInvokesQuitAndStops(t *testing.T) {
	p := &stubPresenter{}
	pool := worker.New(1)
	defer pool.Close()

	var quitCalls atomic.Int32
	l := New(p, &stubRunner{}, pool, func() { quitCalls.Add(1) })

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	l.Post(chord.Intent{Kind: chord.IntentExit})
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil on exit intent", err)
		}
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on exit intent")
	}
	if quitCalls.Load() != 1 {
		t.Errorf("quit called %d times, want 1", quitCalls.Load())
	}
}
