// Package selection turns pointer input occurring in one overlay window
// into mutations of the shared selection channel. Each window runs its
// own machine; every transition is one read-modify-write cycle against
// the channel, and only the window under the pointer drives drag state
// at any instant.
package selection

import (
	"log"

	"snapoverlay/src/geom"
	"snapoverlay/src/state"
)

// Transform maps a window's local pixel space to virtual-desktop space.
// Origin is the display's top-left corner in virtual coordinates. Ratio
// is the presented-texture downscale factor (1.0 when the image fits the
// GPU texture cap); the window's placement and size are scaled by the
// same ratio, so dividing local coordinates by it keeps virtual
// coordinates origin- and scale-consistent across all windows.
type Transform struct {
	Origin geom.Point
	Ratio  float64
}

func (t Transform) ratio() float64 {
	if t.Ratio <= 0 {
		return 1.0
	}
	return t.Ratio
}

func (t Transform) LocalToVirtual(p geom.Point) geom.Point {
	r := t.ratio()
	return geom.Pt(t.Origin.X+p.X/r, t.Origin.Y+p.Y/r)
}

func (t Transform) VirtualToLocal(p geom.Point) geom.Point {
	r := t.ratio()
	return geom.Pt((p.X-t.Origin.X)*r, (p.Y-t.Origin.Y)*r)
}

// Machine is the per-window selection state machine. States follow the
// shared channel rather than local memory, so a window that did not
// start a drag still renders it: Idle -> Dragging -> Idle-with-selection,
// with cancellation terminal from anywhere.
type Machine struct {
	Transform Transform
	Channel   *state.Channel
	// MinSpan is the minimum selection size per axis; candidate
	// rectangles below it publish no selection at all.
	MinSpan float64

	closed bool
}

func NewMachine(transform Transform, ch *state.Channel, minSpan float64) *Machine {
	return &Machine{Transform: transform, Channel: ch, MinSpan: minSpan}
}

// Closed reports whether this machine has observed the close flag. A
// closed machine never writes again.
func (m *Machine) Closed() bool { return m.closed }

// observe reads the channel and latches the close flag. Callers must not
// write when the second return value is false.
func (m *Machine) observe() (state.SharedState, bool) {
	s := m.Channel.Read()
	if s.ShouldClose {
		m.closed = true
	}
	return s, !m.closed
}

// PointerDown starts a drag at the given local position.
func (m *Machine) PointerDown(local geom.Point) {
	s, ok := m.observe()
	if !ok {
		return
	}
	pos := m.Transform.LocalToVirtual(local)
	s.IsDragging = true
	s.SetStart(pos)
	s.SetRect(geom.FromPoints(pos, pos))
	m.Channel.Write(s)
	log.Printf("Started drag at virtual pos (%.0f, %.0f)", pos.X, pos.Y)
}

// PointerMove recomputes the candidate rectangle while a drag is in
// progress. Below-threshold candidates clear the published rectangle so
// the presentation layer renders no box.
func (m *Machine) PointerMove(local geom.Point) {
	s, ok := m.observe()
	if !ok || !s.IsDragging {
		return
	}
	start, ok := s.Start()
	if !ok {
		return
	}
	candidate := geom.FromPoints(start, m.Transform.LocalToVirtual(local))
	if candidate.MeetsMinSpan(m.MinSpan) {
		s.SetRect(candidate)
	} else {
		s.ClearRect()
	}
	m.Channel.Write(s)
}

// PointerUp ends the drag. The rectangle, if any, stays published as the
// finalized selection.
func (m *Machine) PointerUp(local geom.Point) {
	s, ok := m.observe()
	if !ok || !s.IsDragging {
		return
	}
	s.IsDragging = false
	m.Channel.Write(s)
	if rect, ok := s.Rect(); ok {
		log.Printf("Selection complete: %s [%dx%d]", rect, int(rect.Width()), int(rect.Height()))
	} else {
		log.Printf("Drag released below minimum span, no selection")
	}
}

// Cancel raises the close flag for every process, including this one.
func (m *Machine) Cancel() {
	if m.closed {
		return
	}
	log.Printf("Cancellation requested, signaling all windows to close")
	m.Channel.Update(func(s *state.SharedState) {
		s.ShouldClose = true
	})
	m.closed = true
}
