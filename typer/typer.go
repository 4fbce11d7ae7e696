// Package typer replays fenced code blocks from the last model answer as
// synthetic keystrokes into whatever window has input focus.
package typer

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractCodeBlocks returns the bodies of all fenced code regions in source,
// in document order. Language tags are ignored; indented code blocks are not
// considered fenced.
func ExtractCodeBlocks(source string) []string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Payload joins all fenced code bodies with a blank line. Empty when source
// has no fenced regions.
func Payload(source string) string {
	return strings.Join(ExtractCodeBlocks(source), "\n\n")
}

// Dispatcher types the code payload of the last response on demand.
type Dispatcher struct {
	source func() string // last model response
	delay  time.Duration // click-focus settle before typing starts

	mu sync.Mutex // single flight; re-triggers while typing are dropped

	// typeText is swapped out in tests; default emits real keystrokes.
	typeText func(string)
}

// NewDispatcher builds a dispatcher reading the response through source.
func NewDispatcher(source func() string, delay time.Duration) *Dispatcher {
	return &Dispatcher{
		source:   source,
		delay:    delay,
		typeText: func(s string) { robotgo.TypeStr(s) },
	}
}

// Trigger extracts the code payload and types it after the settle delay.
// No-op if the last response is empty or has no fenced code. Blocking; run
// off the listener and GUI threads.
func (d *Dispatcher) Trigger() {
	if !d.mu.TryLock() {
		log.Printf("Typing already in progress, dropping trigger")
		return
	}
	defer d.mu.Unlock()

	payload := Payload(d.source())
	if payload == "" {
		return
	}
	// Let the user's click settle focus on the target input field.
	time.Sleep(d.delay)
	log.Printf("Typing %d chars into focused window", len(payload))
	d.typeText(payload)
}
