package pipeline

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakePresenter records presenter calls in order.
type fakePresenter struct {
	mu      sync.Mutex
	texts   []string
	enabled []bool
	visible []bool
}

func (f *fakePresenter) AppendText(text string) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
}
func (f *fakePresenter) SetEnabled(e bool) {
	f.mu.Lock()
	f.enabled = append(f.enabled, e)
	f.mu.Unlock()
}
func (f *fakePresenter) SetVisible(v bool) {
	f.mu.Lock()
	f.visible = append(f.visible, v)
	f.mu.Unlock()
}
func (f *fakePresenter) ToggleVisible() {}
func (f *fakePresenter) Scroll(dir int) {}

func (f *fakePresenter) allText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.texts, "")
}

func testImage() (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func newTestRunner(p *fakePresenter, recognize RecognizeFunc, complete CompleteFunc) *Runner {
	return New(Options{
		Capture:   testImage,
		Recognize: recognize,
		Complete:  complete,
		Presenter: p,
		Settle:    time.Millisecond,
	})
}

func TestRunDeliversResponseAndStoresIt(t *testing.T) {
	p := &fakePresenter{}
	r := newTestRunner(p,
		func(image.Image) (string, error) { return "2+2=?", nil },
		func(_ context.Context, system, user string) (string, error) {
			if user != "2+2=?" {
				t.Errorf("model received %q, want OCR text", user)
			}
			if !strings.Contains(system, "IGNORE any previous conversation context") {
				t.Errorf("system prompt missing fresh-context instruction: %q", system)
			}
			return "4", nil
		})

	if !r.Run(context.Background()) {
		t.Fatal("Run returned false with no other run in flight")
	}
	if got := r.LastResponse(); got != "4" {
		t.Errorf("LastResponse = %q, want 4", got)
	}
	out := p.allText()
	if !strings.HasPrefix(out, "4\n") || !strings.Contains(out, strings.Repeat("=", 40)) {
		t.Errorf("delivered text = %q", out)
	}
}

func TestRunEmptyOCRShortCircuits(t *testing.T) {
	modelCalled := atomic.Bool{}
	p := &fakePresenter{}
	r := newTestRunner(p,
		func(image.Image) (string, error) { return "   \n\t ", nil },
		func(context.Context, string, string) (string, error) {
			modelCalled.Store(true)
			return "", nil
		})

	r.Run(context.Background())
	if modelCalled.Load() {
		t.Error("model invoked despite whitespace-only OCR text")
	}
	if !strings.Contains(p.allText(), NoTextMessage) {
		t.Errorf("missing fixed no-text message, got %q", p.allText())
	}
	if got := r.LastResponse(); got != "" {
		t.Errorf("LastResponse = %q, want empty", got)
	}
}

func TestRunErrorPrefixes(t *testing.T) {
	t.Run("ocr error", func(t *testing.T) {
		p := &fakePresenter{}
		r := newTestRunner(p,
			func(image.Image) (string, error) { return "", errors.New("boom") },
			nil)
		r.Run(context.Background())
		if !strings.HasPrefix(p.allText(), "Error: boom") {
			t.Errorf("got %q", p.allText())
		}
	})

	t.Run("model error", func(t *testing.T) {
		p := &fakePresenter{}
		r := newTestRunner(p,
			func(image.Image) (string, error) { return "text", nil },
			func(context.Context, string, string) (string, error) {
				return "", errors.New("connection refused")
			})
		r.Run(context.Background())
		if !strings.HasPrefix(p.allText(), "AI Error: connection refused") {
			t.Errorf("got %q", p.allText())
		}
	})

	t.Run("capture error", func(t *testing.T) {
		p := &fakePresenter{}
		r := New(Options{
			Capture:   func() (*image.RGBA, error) { return nil, errors.New("no display") },
			Recognize: func(image.Image) (string, error) { return "", nil },
			Presenter: p,
			Settle:    time.Millisecond,
		})
		r.Run(context.Background())
		if !strings.HasPrefix(p.allText(), "Error: no display") {
			t.Errorf("got %q", p.allText())
		}
	})
}

func TestPresenterReenabledOnAllPaths(t *testing.T) {
	p := &fakePresenter{}
	r := newTestRunner(p,
		func(image.Image) (string, error) { return "", errors.New("boom") },
		nil)
	r.Run(context.Background())

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.enabled) != 2 || p.enabled[0] != false || p.enabled[1] != true {
		t.Errorf("enabled sequence = %v, want [false true]", p.enabled)
	}
	if len(p.visible) != 2 || p.visible[0] != false || p.visible[1] != true {
		t.Errorf("visible sequence = %v, want [false true]", p.visible)
	}
}

func TestSingleFlightDropsConcurrentRun(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var entries atomic.Int32

	p := &fakePresenter{}
	r := newTestRunner(p,
		func(image.Image) (string, error) {
			entries.Add(1)
			close(entered)
			<-release
			return "text", nil
		},
		func(context.Context, string, string) (string, error) { return "ok", nil })

	done := make(chan bool)
	go func() { done <- r.Run(context.Background()) }()
	<-entered

	if r.Run(context.Background()) {
		t.Error("second Run accepted while first is in flight")
	}
	if got := entries.Load(); got != 1 {
		t.Errorf("pipeline entered %d times, want 1", got)
	}

	close(release)
	if !<-done {
		t.Error("first Run reported dropped")
	}
}
