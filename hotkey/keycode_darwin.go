//go:build darwin

package hotkey

import "screen-reader-solver/chord"

// keyFromRawcode maps macOS virtual keycodes for the arrow keys.
func keyFromRawcode(raw uint16) (chord.Key, bool) {
	switch raw {
	case 123: // kVK_LeftArrow
		return chord.KeyLeft, true
	case 124: // kVK_RightArrow
		return chord.KeyRight, true
	case 125: // kVK_DownArrow
		return chord.KeyDown, true
	case 126: // kVK_UpArrow
		return chord.KeyUp, true
	}
	return 0, false
}
