package overlay

import (
	"log"

	gohook "github.com/robotn/gohook"

	"snapoverlay/src/geom"
	"snapoverlay/src/monitor"
	"snapoverlay/src/selection"
)

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	CancelKey
)

// Event is one pointer or key event delivered to an overlay window, with
// the pointer position already translated to the window's local space.
type Event struct {
	Kind  EventKind
	Local geom.Point
}

const primaryButton = 1

// escapeRawcodes covers VK_ESCAPE (Windows) and the X11 Escape keysym.
var escapeRawcodes = []uint16{27, 65307}

// hookEvents adapts the global gohook stream into this window's event
// stream. Pointer events are delivered only while the pointer is on this
// window's display, which is what keeps drag writes single-writer by
// construction (the other windows only read). The cancellation key is
// delivered regardless of pointer position. The returned channel closes
// when the hook stream ends.
func hookEvents(d monitor.Display, tr selection.Transform) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in input hook goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel, overlay gets no input")
			return
		}

		bounds := d.Bounds()
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				if isEscape(ev.Rawcode) {
					out <- Event{Kind: CancelKey}
				}
			case gohook.MouseDown, gohook.MouseUp, gohook.MouseMove, gohook.MouseDrag:
				global := geom.Pt(float64(ev.X), float64(ev.Y))
				if !bounds.Contains(global) {
					continue
				}
				kind, ok := pointerKind(ev.Kind, ev.Button)
				if !ok {
					continue
				}
				out <- Event{Kind: kind, Local: tr.VirtualToLocal(global)}
			}
		}
	}()

	return out
}

func pointerKind(kind uint8, button uint16) (EventKind, bool) {
	switch kind {
	case gohook.MouseDown:
		if button != primaryButton {
			return 0, false
		}
		return PointerDown, true
	case gohook.MouseUp:
		if button != primaryButton {
			return 0, false
		}
		return PointerUp, true
	case gohook.MouseMove, gohook.MouseDrag:
		return PointerMove, true
	}
	return 0, false
}

func isEscape(rawcode uint16) bool {
	for _, rc := range escapeRawcodes {
		if rawcode == rc {
			return true
		}
	}
	return false
}

// stopHook tears down the global hook when the overlay loop exits.
func stopHook() {
	gohook.End()
}
