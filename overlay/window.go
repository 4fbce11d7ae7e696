package overlay

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowTitle = "Screen Reader & Solver"
	fixedWidth  = 420
	minHeight   = 160
	maxHeight   = 640
	scrollStep  = 0.15 // page fraction per scroll intent
)

// Window is the fyne-backed Presenter.
type Window struct {
	win      fyne.Window
	rich     *widget.RichText
	scroll   *container.Scroll
	progress *widget.ProgressBarInfinite

	// GUI-thread state: only touched inside fyne.Do closures.
	buf     strings.Builder
	visible bool
}

// New builds the overlay window on the given app. Call ShowAndRun from the
// main goroutine afterwards.
func New(a fyne.App) *Window {
	w := a.NewWindow(windowTitle)

	rich := widget.NewRichTextFromMarkdown("")
	rich.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(rich)

	progress := widget.NewProgressBarInfinite()
	progress.Hide()

	w.SetContent(container.NewBorder(nil, progress, nil, nil, scroll))
	w.Resize(fyne.NewSize(fixedWidth, minHeight))

	return &Window{
		win:      w,
		rich:     rich,
		scroll:   scroll,
		progress: progress,
		visible:  true,
	}
}

// ShowAndRun shows the window and runs the fyne event loop. Blocks until the
// application quits; must be called from the main goroutine.
func (o *Window) ShowAndRun() {
	o.win.ShowAndRun()
}

func (o *Window) AppendText(text string) {
	fyne.Do(func() {
		o.buf.WriteString(text)
		o.rich.ParseMarkdown(o.buf.String())
		o.adjustSize()
		o.scroll.ScrollToBottom()
	})
}

func (o *Window) SetEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			o.progress.Hide()
		} else {
			o.progress.Show()
		}
	})
}

func (o *Window) SetVisible(visible bool) {
	fyne.Do(func() { o.applyVisible(visible) })
}

func (o *Window) ToggleVisible() {
	fyne.Do(func() { o.applyVisible(!o.visible) })
}

func (o *Window) Scroll(direction int) {
	fyne.Do(func() {
		step := o.scroll.Size().Height * scrollStep
		off := o.scroll.Offset
		off.Y += float32(direction) * step
		if off.Y < 0 {
			off.Y = 0
		}
		if max := o.scroll.Content.MinSize().Height - o.scroll.Size().Height; off.Y > max {
			if max < 0 {
				max = 0
			}
			off.Y = max
		}
		o.scroll.Offset = off
		o.scroll.Refresh()
	})
}

func (o *Window) applyVisible(visible bool) {
	o.visible = visible
	if visible {
		o.win.Show()
	} else {
		o.win.Hide()
	}
}

// adjustSize grows the window with its content up to a cap, so short answers
// stay compact and long ones scroll.
func (o *Window) adjustSize() {
	h := o.rich.MinSize().Height + 24
	if h < minHeight {
		h = minHeight
	}
	if h > maxHeight {
		h = maxHeight
	}
	o.win.Resize(fyne.NewSize(fixedWidth, h))
}
