// Package state implements the file-backed selection channel shared by
// the parent and every overlay child process.
//
// The channel is a single JSON document, read and written whole on every
// access. There is deliberately no lock: concurrent writers race and the
// last writer wins at file granularity. In practice only the window under
// the pointer issues drag writes at any instant (the others just read),
// so the race is rare, but it is an accepted limitation of the protocol,
// not something this package serializes away.
package state

import (
	"encoding/json"
	"log"
	"os"

	"snapoverlay/src/geom"
)

// SharedState is the one mutable entity agreed on across processes.
// Vector fields use fixed-size arrays on the wire: selection_rect is
// [min_x, min_y, max_x, max_y], drag_start is [x, y].
type SharedState struct {
	SelectionRect *[4]float64 `json:"selection_rect"`
	IsDragging    bool        `json:"is_dragging"`
	DragStart     *[2]float64 `json:"drag_start"`
	ShouldClose   bool        `json:"should_close"`
}

// Rect returns the selection rectangle, if any.
func (s *SharedState) Rect() (geom.Rect, bool) {
	if s.SelectionRect == nil {
		return geom.Rect{}, false
	}
	v := *s.SelectionRect
	return geom.Rect{Min: geom.Pt(v[0], v[1]), Max: geom.Pt(v[2], v[3])}, true
}

func (s *SharedState) SetRect(r geom.Rect) {
	s.SelectionRect = &[4]float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}

func (s *SharedState) ClearRect() { s.SelectionRect = nil }

// Start returns the drag start point, if a drag is in progress.
func (s *SharedState) Start() (geom.Point, bool) {
	if s.DragStart == nil {
		return geom.Point{}, false
	}
	return geom.Pt(s.DragStart[0], s.DragStart[1]), true
}

func (s *SharedState) SetStart(p geom.Point) {
	s.DragStart = &[2]float64{p.X, p.Y}
}

func (s *SharedState) ClearStart() { s.DragStart = nil }

// Channel reads and writes the shared state file.
type Channel struct {
	Path string
}

func NewChannel(path string) *Channel {
	return &Channel{Path: path}
}

// Read returns the current shared state. A missing or malformed file
// reads as the zero state; Read never fails the caller.
func (c *Channel) Read() SharedState {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return SharedState{}
	}
	var s SharedState
	if err := json.Unmarshal(data, &s); err != nil {
		return SharedState{}
	}
	return s
}

// Write persists the whole document. Failures are logged and swallowed;
// the caller proceeds with its in-memory intent.
func (c *Channel) Write(s SharedState) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Failed to encode shared state: %v", err)
		return
	}
	if err := os.WriteFile(c.Path, data, 0o644); err != nil {
		log.Printf("Failed to write shared state: %v", err)
	}
}

// Reset overwrites the file with the zero state. Every child calls it on
// startup so a stale should_close flag from a previous session can never
// close a new one.
func (c *Channel) Reset() {
	c.Write(SharedState{})
}

// Update runs one read-modify-write cycle: read the current document,
// apply one mutation, write the whole document back.
func (c *Channel) Update(fn func(*SharedState)) SharedState {
	s := c.Read()
	fn(&s)
	c.Write(s)
	return s
}
