// Package overlay runs the per-display child process: it loads the
// session the parent persisted, resets the shared state file, and drives
// the selection state machine from pointer input until the selection is
// finished or cancelled. Each display needs its own OS process because
// the presentation toolkit ties its native event loop to process
// startup; that boundary is kept here even though this package does not
// draw anything itself.
package overlay

import (
	"fmt"
	"log"
	"time"

	"snapoverlay/src/config"
	"snapoverlay/src/geom"
	"snapoverlay/src/monitor"
	"snapoverlay/src/selection"
	"snapoverlay/src/session"
	"snapoverlay/src/state"
)

// Renderer consumes the selection state once per frame. Drawing is out
// of scope for the orchestrator; the presentation layer plugs in here.
type Renderer interface {
	Frame(tex *Texture, tr selection.Transform, s state.SharedState)
}

// logRenderer is the default consumer: it logs selection changes so a
// headless run of the loop stays observable.
type logRenderer struct {
	last string
}

func (r *logRenderer) Frame(tex *Texture, tr selection.Transform, s state.SharedState) {
	desc := "none"
	if rect, ok := s.Rect(); ok {
		desc = rect.String()
	}
	if desc != r.last {
		log.Printf("Selection now %s (dragging=%v)", desc, s.IsDragging)
		r.last = desc
	}
}

// Loop is the single-threaded render/input loop of one overlay window.
type Loop struct {
	Display  monitor.Display
	Bounds   geom.Rect
	Channel  *state.Channel
	Machine  *selection.Machine
	Texture  *Texture
	Renderer Renderer
	// PollInterval bounds how long a close signal raised by another
	// process can go unnoticed.
	PollInterval time.Duration
	Events       <-chan Event
}

// Run launches the overlay child for one display index. It blocks until
// the selection session ends.
func Run(cfg *config.Config, index int) error {
	sess := session.New(cfg.SessionDir)

	d, err := sess.Monitor(index)
	if err != nil {
		return err
	}
	bounds, err := sess.LoadBounds()
	if err != nil {
		return err
	}

	// Reset the shared state so a stale close flag from a previous
	// session cannot shut this one down instantly.
	ch := sess.Channel()
	ch.Reset()
	log.Printf("Child for display %d: reset shared state (cleared stale close flag)", index)

	tex, err := LoadTexture(d, cfg.MaxTextureSize)
	if err != nil {
		// A window with no screenshot is still usable for selecting.
		log.Printf("Child for display %d: no texture (%v), presenting at logical size", index, err)
		w, h, ratio := FitSize(d.Width, d.Height, cfg.MaxTextureSize)
		tex = &Texture{Width: w, Height: h, Ratio: ratio}
	}

	origin := geom.Pt(float64(d.X), float64(d.Y))
	tr := selection.Transform{Origin: origin, Ratio: tex.Ratio}
	log.Printf("Child for display %d: window at (%.0f, %.0f) size %dx%d (ratio %.3f), virtual desktop %s",
		index, origin.X*tex.Ratio, origin.Y*tex.Ratio, tex.Width, tex.Height, tex.Ratio, bounds)

	loop := &Loop{
		Display:      d,
		Bounds:       bounds,
		Channel:      ch,
		Machine:      selection.NewMachine(tr, ch, cfg.MinSelectionSpan),
		Texture:      tex,
		Renderer:     &logRenderer{},
		PollInterval: cfg.ClosePollInterval,
		Events:       hookEvents(d, tr),
	}
	defer stopHook()

	return loop.Run()
}

// Run drives the machine until the close flag is observed. It is
// single-threaded: one event or one poll tick at a time, no internal
// concurrency.
func (l *Loop) Run() error {
	if l.PollInterval <= 0 {
		l.PollInterval = config.DefaultClosePollInterval
	}
	ticker := time.NewTicker(l.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-l.Events:
			if !ok {
				return fmt.Errorf("input stream for display %d ended unexpectedly", l.Display.Index)
			}
			l.handle(ev)
		case <-ticker.C:
			if l.Channel.Read().ShouldClose {
				log.Printf("Display %d: received close signal, shutting down", l.Display.Index)
				return nil
			}
			l.Renderer.Frame(l.Texture, l.Machine.Transform, l.Channel.Read())
		}
		if l.Machine.Closed() {
			log.Printf("Display %d: closing", l.Display.Index)
			return nil
		}
	}
}

func (l *Loop) handle(ev Event) {
	switch ev.Kind {
	case PointerDown:
		l.Machine.PointerDown(ev.Local)
	case PointerMove:
		l.Machine.PointerMove(ev.Local)
	case PointerUp:
		l.Machine.PointerUp(ev.Local)
	case CancelKey:
		l.Machine.Cancel()
	}
}
