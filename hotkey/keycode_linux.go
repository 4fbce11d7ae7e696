//go:build linux

package hotkey

import "screen-reader-solver/chord"

// keyFromRawcode maps X11 keysyms for the arrow keys.
func keyFromRawcode(raw uint16) (chord.Key, bool) {
	switch raw {
	case 65361: // XK_Left
		return chord.KeyLeft, true
	case 65362: // XK_Up
		return chord.KeyUp, true
	case 65363: // XK_Right
		return chord.KeyRight, true
	case 65364: // XK_Down
		return chord.KeyDown, true
	}
	return 0, false
}
