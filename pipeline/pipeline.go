// Package pipeline orchestrates one capture run: hide overlay, screenshot,
// OCR, model query, deliver. At most one run is in flight; extra requests
// are dropped, not queued.
package pipeline

import (
	"context"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"screen-reader-solver/llm"
	"screen-reader-solver/overlay"
)

// NoTextMessage is delivered when OCR finds nothing; the model is not called.
const NoTextMessage = "No suggestion (no text detected)."

var separator = strings.Repeat("=", 40)

// CaptureFunc grabs the primary display's full frame.
type CaptureFunc func() (*image.RGBA, error)

// RecognizeFunc extracts text from a captured frame.
type RecognizeFunc func(img image.Image) (string, error)

// CompleteFunc queries the language model with a system instruction and the
// extracted text.
type CompleteFunc func(ctx context.Context, system, user string) (string, error)

// Options wires the runner's collaborators. Capture, Recognize, Complete and
// Presenter are required; CopyText is optional.
type Options struct {
	Capture   CaptureFunc
	Recognize RecognizeFunc
	Complete  CompleteFunc
	Presenter overlay.Presenter
	// CopyText receives each successful answer (clipboard side output).
	CopyText func(text string) error
	// Settle is the wait between hiding the overlay and the screenshot.
	Settle time.Duration
}

// Runner executes capture runs. The zero value is not usable; build with New.
type Runner struct {
	opts Options

	// captureMu is the single-flight lock; TryLock'd per run.
	captureMu sync.Mutex

	respMu       sync.Mutex
	lastResponse string
}

func New(opts Options) *Runner {
	if opts.Settle <= 0 {
		opts.Settle = 80 * time.Millisecond
	}
	return &Runner{opts: opts}
}

// LastResponse returns the most recent successful model answer, or "" if no
// run has completed yet.
func (r *Runner) LastResponse() string {
	r.respMu.Lock()
	defer r.respMu.Unlock()
	return r.lastResponse
}

// Run performs one capture run. Returns false immediately if another run is
// already in flight (the request is dropped). All blocking work happens on
// the calling goroutine; never call from the GUI thread.
func (r *Runner) Run(ctx context.Context) bool {
	if !r.captureMu.TryLock() {
		log.Printf("Capture already in flight, dropping request")
		return false
	}
	defer r.captureMu.Unlock()

	p := r.opts.Presenter
	p.SetEnabled(false)
	defer p.SetEnabled(true)

	// The overlay's own pixels must not end up in the screenshot.
	p.SetVisible(false)
	time.Sleep(r.opts.Settle)
	img, err := r.opts.Capture()
	p.SetVisible(true)
	if err != nil {
		r.deliver("Error: " + err.Error() + "\n")
		return true
	}

	text, err := r.opts.Recognize(img)
	if err != nil {
		r.deliver("Error: " + err.Error() + "\n")
		return true
	}
	if strings.TrimSpace(text) == "" {
		r.deliver(NoTextMessage + "\n" + separator + "\n")
		return true
	}

	response, err := r.opts.Complete(ctx, llm.SystemPrompt, text)
	if err != nil {
		r.deliver("AI Error: " + err.Error() + "\n")
		return true
	}

	r.respMu.Lock()
	r.lastResponse = response
	r.respMu.Unlock()

	if r.opts.CopyText != nil {
		if err := r.opts.CopyText(response); err != nil {
			log.Printf("Clipboard write failed: %v", err)
		}
	}
	r.deliver(response + "\n" + separator + "\n")
	return true
}

func (r *Runner) deliver(text string) {
	r.opts.Presenter.AppendText(text)
}
