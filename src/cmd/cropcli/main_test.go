package main

import (
	"strings"
	"testing"

	"snapoverlay/src/geom"
	"snapoverlay/src/session"
	"snapoverlay/src/state"
)

func TestFormatResultPlain(t *testing.T) {
	out, err := formatResult("/tmp/x.png", geom.FromPoints(geom.Pt(0, 0), geom.Pt(10, 10)), false)
	if err != nil {
		t.Fatal(err)
	}
	if out != "/tmp/x.png" {
		t.Errorf("Expected plain path output, got %q", out)
	}
}

func TestFormatResultJSON(t *testing.T) {
	out, err := formatResult("/tmp/x.png", geom.FromPoints(geom.Pt(100, 50), geom.Pt(1970, 100)), true)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"path":"/tmp/x.png","rect":[100,50,1970,100]}`
	if out != want {
		t.Errorf("Expected %s, got %s", want, out)
	}
}

func TestRunFailsWithoutSelection(t *testing.T) {
	dir := t.TempDir()
	sess := session.New(dir)
	if err := sess.Prepare(); err != nil {
		t.Fatal(err)
	}
	// A session with a drag below threshold leaves no rectangle.
	sess.Channel().Write(state.SharedState{})

	err := run([]string{"--session-dir", dir})
	if err == nil {
		t.Fatal("Expected error when the session has no finalized selection")
	}
	if !strings.Contains(err.Error(), "no finalized selection") {
		t.Errorf("Unexpected error: %v", err)
	}
}
