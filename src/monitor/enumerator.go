package monitor

import (
	"github.com/kbinani/screenshot"
)

// platformEnumerator backs the resolver with kbinani/screenshot display
// enumeration. Per-display DPI scale comes from a platform-specific probe
// (Windows only; elsewhere the scale is 1.0).
type platformEnumerator struct{}

func (platformEnumerator) Displays() ([]RawDisplay, error) {
	n := screenshot.NumActiveDisplays()
	displays := make([]RawDisplay, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		displays = append(displays, RawDisplay{
			X:      b.Min.X,
			Y:      b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
			Scale:  scaleForPoint(b.Min.X, b.Min.Y),
		})
	}
	return displays, nil
}
