//go:build !windows

package monitor

// Non-Windows backends report logical bounds already matching capture
// pixels, so the scale probe is a no-op.
func scaleForPoint(x, y int) float64 {
	return 1.0
}
