//go:build windows

package monitor

import (
	"syscall"
	"unsafe"
)

const monitorDefaultToNearest = 2

// scaleForPoint queries the DPI scale of the monitor containing (x, y)
// via Shcore.GetScaleFactorForMonitor (Win 8.1+). Falls back to 1.0 when
// the API is unavailable so older systems still enumerate.
func scaleForPoint(x, y int) float64 {
	user32 := syscall.NewLazyDLL("user32.dll")
	monitorFromPoint := user32.NewProc("MonitorFromPoint")
	if err := monitorFromPoint.Find(); err != nil {
		return 1.0
	}

	type point struct{ x, y int32 }
	// MonitorFromPoint takes POINT by value: two int32 packed into the
	// first argument slots on amd64.
	pt := point{x: int32(x), y: int32(y)}
	hmon, _, _ := monitorFromPoint.Call(
		uintptr(*(*uint64)(unsafe.Pointer(&pt))),
		uintptr(monitorDefaultToNearest),
	)
	if hmon == 0 {
		return 1.0
	}

	shcore := syscall.NewLazyDLL("Shcore.dll")
	getScaleFactor := shcore.NewProc("GetScaleFactorForMonitor")
	if err := getScaleFactor.Find(); err != nil {
		return 1.0
	}

	var factor uint32
	ret, _, _ := getScaleFactor.Call(hmon, uintptr(unsafe.Pointer(&factor)))
	if ret != 0 || factor == 0 {
		return 1.0
	}
	// The API reports percent (100, 125, 150...).
	return float64(factor) / 100.0
}
