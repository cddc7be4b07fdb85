//go:build !windows

package cursor

import (
	"errors"

	"snapoverlay/src/geom"
)

func Position() (geom.Point, error) {
	return geom.Point{}, errors.New("cursor position detection only supported on Windows")
}
