// Package overlay presents pipeline results in a small always-available
// window. Background goroutines talk to it through the Presenter interface;
// every GUI mutation is marshaled onto the fyne event thread, so calls are
// asynchronous, ordered and non-blocking.
package overlay

// Presenter is the surface the rest of the application renders into. All
// methods are safe to call from any goroutine and never block.
type Presenter interface {
	// AppendText appends a block of markdown-formatted text to the output.
	AppendText(text string)
	// SetEnabled toggles the processing indicator; the overlay is disabled
	// while a capture run is in flight.
	SetEnabled(enabled bool)
	// SetVisible shows or hides the window (hidden during screenshots so the
	// overlay's own pixels stay out of the frame).
	SetVisible(visible bool)
	// ToggleVisible flips visibility.
	ToggleVisible()
	// Scroll moves the output by a page fraction; direction is -1 (up) or +1 (down).
	Scroll(direction int)
}
