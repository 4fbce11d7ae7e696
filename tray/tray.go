// Package tray exposes the core intents through a system tray menu, for when
// the keyboard is busy with the application under inspection.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Handlers receive menu clicks; each runs on the tray goroutine and must not
// block.
type Handlers struct {
	OnCapture func()
	OnToggle  func()
	OnQuit    func()
}

// Run starts the tray loop. Blocks; run on its own goroutine.
func Run(h Handlers) {
	systray.Run(func() { onReady(h) }, onExit)
}

// Quit removes the tray icon and stops the tray loop.
func Quit() {
	systray.Quit()
}

func onReady(h Handlers) {
	systray.SetTitle("Screen Reader & Solver")
	systray.SetTooltip("Screen Reader & Solver")

	mCapture := systray.AddMenuItem("Capture Screen", "Capture, OCR and solve")
	mToggle := systray.AddMenuItem("Toggle Overlay", "Show or hide the answer overlay")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				if h.OnCapture != nil {
					h.OnCapture()
				}
			case <-mToggle.ClickedCh:
				if h.OnToggle != nil {
					h.OnToggle()
				}
			case <-mQuit.ClickedCh:
				if h.OnQuit != nil {
					h.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func onExit() {
	log.Printf("Tray exited")
}
