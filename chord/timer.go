package chord

import (
	"sync"
	"time"
)

// Timer is a cancellable one-shot delayed callback.
//
// Schedule arms the callback; Cancel disarms it. Cancel is idempotent and
// safe to call after the callback has fired or when nothing was ever
// scheduled. Once Cancel returns, the callback will not run. Callers that
// re-arm a pending timer must Cancel first; Schedule stops a previous
// handle defensively but does not otherwise coordinate with it.
type Timer struct {
	mu  sync.Mutex
	gen uint64
	t   *time.Timer
}

// Schedule arms fn to run once after delay.
func (tm *Timer) Schedule(delay time.Duration, fn func()) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.t != nil {
		tm.t.Stop()
	}
	tm.gen++
	gen := tm.gen
	tm.t = time.AfterFunc(delay, func() {
		tm.mu.Lock()
		live := gen == tm.gen
		if live {
			tm.t = nil
		}
		tm.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Cancel disarms the timer if it has not fired yet.
func (tm *Timer) Cancel() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.gen++
	if tm.t != nil {
		tm.t.Stop()
		tm.t = nil
	}
}

// Pending reports whether a callback is armed and has not fired.
func (tm *Timer) Pending() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.t != nil
}
