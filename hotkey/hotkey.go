// Package hotkey listens to global keyboard and mouse events and feeds the
// designated keys into the chord detector. Everything else passes through
// untouched.
package hotkey

import (
	"log"

	gohook "github.com/robotn/gohook"

	"screen-reader-solver/chord"
)

// middleButton is libuiohook's button code for the middle mouse button
// (1=left, 2=right, 3=middle).
const middleButton = 3

// Listen starts the global hook goroutine. Key events for the arrow keys go
// to the detector; a middle mouse click invokes onMiddleClick on its own
// goroutine. Listener failures are logged, never fatal.
func Listen(detector *chord.Detector, onMiddleClick func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}
		log.Printf("Global input hook started")

		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				if key, ok := keyFromRawcode(ev.Rawcode); ok {
					detector.KeyDown(key)
				}
			case gohook.KeyUp:
				if key, ok := keyFromRawcode(ev.Rawcode); ok {
					detector.KeyUp(key)
				}
			case gohook.MouseDown:
				if ev.Button == middleButton && onMiddleClick != nil {
					// Typing blocks; keep the hook loop responsive.
					go onMiddleClick()
				}
			}
		}
		log.Printf("Event channel closed")
	}()
}

// Stop tears down the global hook.
func Stop() {
	gohook.End()
}
