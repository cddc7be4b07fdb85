// Package cursor resolves which display the pointer is on at invocation
// time, for targeted single-display overlay launches.
package cursor

import (
	"log"

	"snapoverlay/src/monitor"
)

// MonitorAtCursor returns the index of the display under the pointer.
// When the position cannot be read, or the pointer is on no detected
// display, it falls back to display 0.
func MonitorAtCursor(displays []monitor.Display) int {
	pos, err := Position()
	if err != nil {
		log.Printf("Cursor position unavailable (%v), defaulting to display 0", err)
		return 0
	}
	if idx, ok := monitor.DisplayAt(displays, pos); ok {
		log.Printf("Cursor at (%.0f, %.0f) is on display %d", pos.X, pos.Y, idx)
		return idx
	}
	log.Printf("Cursor at (%.0f, %.0f) is on no detected display, defaulting to display 0", pos.X, pos.Y)
	return 0
}
