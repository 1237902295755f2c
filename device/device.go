// Package device is the input/capture transport the perception layer
// runs against: a current screen bitmap plus fire-and-forget gestures.
package device

import "image"

// Device abstracts the attached phone or emulator.
type Device interface {
	// Screencap grabs the current full screen frame.
	Screencap() (image.Image, error)
	// Tap injects a single tap at screen coordinates.
	Tap(x, y int) error
	// TripleTap taps three times in quick succession, used on training
	// buttons that need a confirm.
	TripleTap(x, y int) error
	// Swipe injects a press-move-release gesture over durationMs.
	Swipe(x1, y1, x2, y2, durationMs int) error
}
