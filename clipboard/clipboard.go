// Package clipboard copies model answers to the system clipboard so they can
// be pasted even when the typing dispatcher is not used.
package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"
)

var ready bool

// Init must be called once at startup; headless environments may fail, in
// which case Write becomes an error rather than a crash.
func Init() error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	ready = true
	return nil
}

// Write places text on the clipboard.
func Write(text string) error {
	if !ready {
		return fmt.Errorf("clipboard not initialized")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
