package overlay

import (
	"path/filepath"
	"testing"
	"time"

	"snapoverlay/src/geom"
	"snapoverlay/src/monitor"
	"snapoverlay/src/selection"
	"snapoverlay/src/state"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cap  int
		wantW      int
		wantH      int
		wantRatio  float64
		checkRatio bool
	}{
		{name: "fits", w: 1920, h: 1080, cap: 2048, wantW: 1920, wantH: 1080, wantRatio: 1.0, checkRatio: true},
		{name: "wide display clamped", w: 2560, h: 1440, cap: 2048, wantW: 2048, wantH: 1152, wantRatio: 0.8, checkRatio: true},
		{name: "tall display clamped", w: 1080, h: 3840, cap: 2048, wantW: 576, wantH: 2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ratio := FitSize(tt.w, tt.h, tt.cap)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
			if tt.checkRatio && ratio != tt.wantRatio {
				t.Errorf("Expected ratio %v, got %v", tt.wantRatio, ratio)
			}
			if w > tt.cap || h > tt.cap {
				t.Errorf("Presented size %dx%d exceeds cap %d", w, h, tt.cap)
			}
		})
	}
}

func newTestLoop(t *testing.T, events chan Event) (*Loop, *state.Channel) {
	t.Helper()
	ch := state.NewChannel(filepath.Join(t.TempDir(), "state.json"))
	d := monitor.Display{X: 0, Y: 0, Width: 1920, Height: 1080, Scale: 1.0, Index: 0}
	tr := selection.Transform{Origin: geom.Pt(0, 0), Ratio: 1.0}
	return &Loop{
		Display:      d,
		Bounds:       geom.FromPoints(geom.Pt(0, 0), geom.Pt(1920, 1080)),
		Channel:      ch,
		Machine:      selection.NewMachine(tr, ch, 5),
		Texture:      &Texture{Width: 1920, Height: 1080, Ratio: 1.0},
		Renderer:     &logRenderer{},
		PollInterval: 5 * time.Millisecond,
		Events:       events,
	}, ch
}

func TestLoopDragThenCancel(t *testing.T) {
	events := make(chan Event, 8)
	loop, ch := newTestLoop(t, events)

	events <- Event{Kind: PointerDown, Local: geom.Pt(100, 100)}
	events <- Event{Kind: PointerMove, Local: geom.Pt(400, 300)}
	events <- Event{Kind: PointerUp, Local: geom.Pt(400, 300)}
	events <- Event{Kind: CancelKey}

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Loop failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not exit after cancellation")
	}

	s := ch.Read()
	if !s.ShouldClose {
		t.Error("Expected should_close raised by the cancel key")
	}
	rect, ok := s.Rect()
	if !ok {
		t.Fatal("Expected the finalized selection retained")
	}
	want := geom.FromPoints(geom.Pt(100, 100), geom.Pt(400, 300))
	if rect != want {
		t.Errorf("Expected %s, got %s", want, rect)
	}
}

func TestLoopExitsOnExternalCloseWithinPollInterval(t *testing.T) {
	events := make(chan Event, 1)
	loop, ch := newTestLoop(t, events)

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	// Another process raises the flag; this loop must observe it within
	// one polling interval without any input event.
	ch.Update(func(s *state.SharedState) { s.ShouldClose = true })

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Loop failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not observe the external close flag")
	}
}

func TestLoopErrorsWhenInputStreamEnds(t *testing.T) {
	events := make(chan Event)
	loop, _ := newTestLoop(t, events)
	close(events)

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Expected an error when the input stream ends without a close signal")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not exit")
	}
}
