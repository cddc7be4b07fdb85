//go:build windows

package cursor

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"snapoverlay/src/geom"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

// Position reads the pointer position in virtual-desktop coordinates.
func Position() (geom.Point, error) {
	var pt struct{ x, y int32 }
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return geom.Point{}, fmt.Errorf("GetCursorPos failed: %v", err)
	}
	return geom.Pt(float64(pt.x), float64(pt.y)), nil
}
