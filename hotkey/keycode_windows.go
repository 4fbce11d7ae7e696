//go:build windows

package hotkey

import "screen-reader-solver/chord"

// keyFromRawcode maps Windows virtual-key codes for the arrow keys.
func keyFromRawcode(raw uint16) (chord.Key, bool) {
	switch raw {
	case 37: // VK_LEFT
		return chord.KeyLeft, true
	case 38: // VK_UP
		return chord.KeyUp, true
	case 39: // VK_RIGHT
		return chord.KeyRight, true
	case 40: // VK_DOWN
		return chord.KeyDown, true
	}
	return 0, false
}
