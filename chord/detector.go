// Package chord turns raw key-down/key-up events for the designated arrow
// keys into high-level intents. A LEFT+RIGHT chord requests a capture; RIGHT
// held alone exits; LEFT held alone toggles the overlay; UP/DOWN scroll.
//
// Because LEFT and RIGHT rarely register in the same event tick, a single
// key press is not committed until a short debounce interval elapses. If the
// other designated key arrives in time the pending single-key action is
// cancelled and the pair is treated as one chord.
package chord

import (
	"sync"
	"time"
)

// Key identifies one of the designated keys.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

// IntentKind classifies a high-level command produced by the detector.
type IntentKind int

const (
	// IntentCapture requests one screenshot-OCR-model run (LEFT+RIGHT chord).
	IntentCapture IntentKind = iota
	// IntentToggle flips overlay visibility (LEFT held alone past debounce).
	IntentToggle
	// IntentExit terminates the application (RIGHT held alone past debounce).
	IntentExit
	// IntentScroll scrolls the overlay; Direction is -1 (up) or +1 (down).
	IntentScroll
)

// Intent is one command emitted by the detector.
type Intent struct {
	Kind      IntentKind
	Direction int
}

// DefaultDebounce is the interval used to disambiguate a single-key hold
// from the first half of a chord.
const DefaultDebounce = 140 * time.Millisecond

// Detector is the chord state machine. All shared state (held keys, pending
// timers, chord flag) is guarded by one mutex, which the timer-fire handlers
// also take, so a firing single-key timer and an in-progress chord detection
// can never both commit.
type Detector struct {
	debounce time.Duration
	emit     func(Intent)

	mu          sync.Mutex
	held        map[Key]bool
	chordActive bool
	exitArmed   bool
	toggleArmed bool
	exitTimer   Timer
	toggleTimer Timer
}

// NewDetector creates a detector emitting intents through emit. The emit
// function runs on listener and timer goroutines and must not block.
func NewDetector(debounce time.Duration, emit func(Intent)) *Detector {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Detector{
		debounce: debounce,
		emit:     emit,
		held:     make(map[Key]bool),
	}
}

// KeyDown feeds one key-press event into the state machine.
func (d *Detector) KeyDown(k Key) {
	switch k {
	case KeyUp:
		d.emit(Intent{Kind: IntentScroll, Direction: -1})
		return
	case KeyDown:
		d.emit(Intent{Kind: IntentScroll, Direction: +1})
		return
	}

	d.mu.Lock()
	repeat := d.held[k]
	d.held[k] = true

	// Auto-repeat events for a key that is already down must not re-arm its
	// timer, or a repeat rate faster than the debounce would starve it.
	switch {
	case k == KeyRight && !repeat:
		if !d.held[KeyLeft] {
			d.exitTimer.Cancel()
			d.exitArmed = true
			d.exitTimer.Schedule(d.debounce, d.fireExit)
		}
	case k == KeyLeft && !repeat:
		if !d.held[KeyRight] {
			d.toggleTimer.Cancel()
			d.toggleArmed = true
			d.toggleTimer.Schedule(d.debounce, d.fireToggle)
		}
	}

	capture := false
	if d.held[KeyLeft] && d.held[KeyRight] && !d.chordActive {
		d.exitTimer.Cancel()
		d.exitArmed = false
		d.toggleTimer.Cancel()
		d.toggleArmed = false
		d.chordActive = true
		capture = true
	}
	d.mu.Unlock()

	if capture {
		d.emit(Intent{Kind: IntentCapture})
	}
}

// KeyUp feeds one key-release event into the state machine. Releasing a key
// before its debounce elapses withdraws the pending single-key action, and
// breaking the pair re-arms chord detection for the next engagement.
func (d *Detector) KeyUp(k Key) {
	if k != KeyLeft && k != KeyRight {
		return
	}
	d.mu.Lock()
	delete(d.held, k)
	switch k {
	case KeyRight:
		d.exitTimer.Cancel()
		d.exitArmed = false
	case KeyLeft:
		d.toggleTimer.Cancel()
		d.toggleArmed = false
	}
	if !(d.held[KeyLeft] && d.held[KeyRight]) {
		d.chordActive = false
	}
	d.mu.Unlock()
}

// fireExit runs on the exit timer's goroutine. The armed flag is re-checked
// under the detector mutex: a chord or a release that beat the timer to the
// lock has already disarmed it.
func (d *Detector) fireExit() {
	d.mu.Lock()
	fire := d.exitArmed
	d.exitArmed = false
	d.mu.Unlock()
	if fire {
		d.emit(Intent{Kind: IntentExit})
	}
}

func (d *Detector) fireToggle() {
	d.mu.Lock()
	fire := d.toggleArmed
	d.toggleArmed = false
	d.mu.Unlock()
	if fire {
		d.emit(Intent{Kind: IntentToggle})
	}
}
