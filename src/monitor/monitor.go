package monitor

import (
	"errors"
	"log"
	"sort"

	"snapoverlay/src/geom"
)

// ErrNoDisplays is returned when the platform reports no active displays.
// It is the only topology failure that ends a capture session.
var ErrNoDisplays = errors.New("no active displays found")

// Display describes one physical display after index normalization.
// Index is assigned left-to-right by X position and is recomputed every
// session; it is never persisted across runs.
type Display struct {
	ImagePath string  `json:"image_path,omitempty"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Scale     float64 `json:"scale_factor"`
	Index     int     `json:"screen_index"`
}

// Bounds returns the display's logical rectangle in virtual-desktop
// coordinates.
func (d Display) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Pt(float64(d.X), float64(d.Y)),
		Max: geom.Pt(float64(d.X+d.Width), float64(d.Y+d.Height)),
	}
}

// RawDisplay is a display as enumerated by the platform, before ordering
// is normalized.
type RawDisplay struct {
	X      int
	Y      int
	Width  int
	Height int
	Scale  float64
}

// Enumerator yields raw display geometry from the platform.
type Enumerator interface {
	Displays() ([]RawDisplay, error)
}

// Resolver normalizes platform enumeration into a deterministic,
// left-to-right ordered display list.
type Resolver struct {
	Enum Enumerator
}

func NewResolver() *Resolver {
	return &Resolver{Enum: platformEnumerator{}}
}

// Resolve enumerates all displays and assigns stable indices sorted by X
// position. The raw platform order is logged and discarded; it is not
// trusted to be consistent between runs.
func (r *Resolver) Resolve() ([]Display, error) {
	raw, err := r.Enum.Displays()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoDisplays
	}

	log.Printf("Found %d display(s), raw platform order:", len(raw))
	for i, d := range raw {
		log.Printf("  RAW[%d]: pos=(%d, %d), size=%dx%d, scale=%.2f",
			i, d.X, d.Y, d.Width, d.Height, d.Scale)
	}

	sorted := make([]RawDisplay, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].X < sorted[b].X })

	displays := make([]Display, len(sorted))
	for i, d := range sorted {
		scale := d.Scale
		if scale <= 0 {
			scale = 1.0
		}
		displays[i] = Display{
			X:      d.X,
			Y:      d.Y,
			Width:  d.Width,
			Height: d.Height,
			Scale:  scale,
			Index:  i,
		}
		log.Printf("  SORTED[%d]: pos=(%d, %d), size=%dx%d, scale=%.2f",
			i, d.X, d.Y, d.Width, d.Height, scale)
	}

	return displays, nil
}

// VirtualBounds returns the minimal rectangle covering every display.
func VirtualBounds(displays []Display) geom.Rect {
	if len(displays) == 0 {
		return geom.Rect{}
	}
	bounds := displays[0].Bounds()
	for _, d := range displays[1:] {
		bounds = bounds.Union(d.Bounds())
	}
	return bounds
}

// VirtualScale returns the DPI scale at which a virtual-desktop-wide
// capture is rendered. The display at (0,0) is the reference; when no
// display sits at the origin the scale defaults to 1.0.
func VirtualScale(displays []Display) float64 {
	for _, d := range displays {
		if d.X == 0 && d.Y == 0 {
			return d.Scale
		}
	}
	return 1.0
}

// DisplayAt returns the index of the display containing p, or false when
// p lies on no display.
func DisplayAt(displays []Display, p geom.Point) (int, bool) {
	for _, d := range displays {
		if d.Bounds().Contains(p) {
			return d.Index, true
		}
	}
	return 0, false
}
