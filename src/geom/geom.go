package geom

import "fmt"

// Point is a position in virtual-desktop coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in virtual-desktop coordinates.
// Min is the top-left corner, Max the bottom-right; a valid Rect always
// has Min.X <= Max.X and Min.Y <= Max.Y.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromPoints builds the normalized rectangle spanned by two arbitrary
// corner points (min/max sorted per axis).
func FromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// MeetsMinSpan reports whether both axes reach the given span.
func (r Rect) MeetsMinSpan(span float64) bool {
	return r.Width() >= span && r.Height() >= span
}

// Union returns the minimal rectangle covering r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, other.Min.X), Y: min(r.Min.Y, other.Min.Y)},
		Max: Point{X: max(r.Max.X, other.Max.X), Y: max(r.Max.Y, other.Max.Y)},
	}
}

// Intersect returns the overlap of r and other. The second return value
// is false when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	out := Rect{
		Min: Point{X: max(r.Min.X, other.Min.X), Y: max(r.Min.Y, other.Min.Y)},
		Max: Point{X: min(r.Max.X, other.Max.X), Y: min(r.Max.Y, other.Max.Y)},
	}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}

// Contains reports whether p lies inside r (Min inclusive, Max exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.0f,%.0f)-(%.0f,%.0f)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
