// Package session owns the well-known directory a capture session lives
// in: display metadata, virtual-desktop bounds, the shared state file and
// the per-display image artifacts. The parent writes everything before
// spawning children; each child loads the same files independently,
// addressed only by its display index.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"snapoverlay/src/geom"
	"snapoverlay/src/monitor"
	"snapoverlay/src/state"
)

const (
	monitorsFile = "monitors.json"
	vdbFile      = "vdb.json"
	stateFile    = "state.json"
)

type Session struct {
	Dir string
}

func New(dir string) *Session {
	return &Session{Dir: dir}
}

// Prepare creates the session directory. Artifacts from a previous
// session are overwritten file by file rather than wiped, so a crashed
// run's diagnostics survive until the next capture of the same display.
func (s *Session) Prepare() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	return nil
}

func (s *Session) StatePath() string { return filepath.Join(s.Dir, stateFile) }

// Channel returns the shared selection channel backed by this session's
// state file.
func (s *Session) Channel() *state.Channel {
	return state.NewChannel(s.StatePath())
}

func (s *Session) SaveMonitors(displays []monitor.Display) error {
	data, err := json.Marshal(displays)
	if err != nil {
		return fmt.Errorf("failed to encode monitors: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, monitorsFile), data, 0o644)
}

func (s *Session) LoadMonitors() ([]monitor.Display, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, monitorsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read monitors: %w", err)
	}
	var displays []monitor.Display
	if err := json.Unmarshal(data, &displays); err != nil {
		return nil, fmt.Errorf("failed to decode monitors: %w", err)
	}
	return displays, nil
}

// SaveBounds persists the virtual-desktop bounds as the four-number
// array [min_x, min_y, max_x, max_y].
func (s *Session) SaveBounds(bounds geom.Rect) error {
	data, err := json.Marshal([4]float64{bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y})
	if err != nil {
		return fmt.Errorf("failed to encode bounds: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, vdbFile), data, 0o644)
}

func (s *Session) LoadBounds() (geom.Rect, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, vdbFile))
	if err != nil {
		return geom.Rect{}, fmt.Errorf("failed to read bounds: %w", err)
	}
	var v [4]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return geom.Rect{}, fmt.Errorf("failed to decode bounds: %w", err)
	}
	return geom.Rect{Min: geom.Pt(v[0], v[1]), Max: geom.Pt(v[2], v[3])}, nil
}

// Monitor returns the descriptor with the given index.
func (s *Session) Monitor(index int) (monitor.Display, error) {
	displays, err := s.LoadMonitors()
	if err != nil {
		return monitor.Display{}, err
	}
	for _, d := range displays {
		if d.Index == index {
			return d, nil
		}
	}
	return monitor.Display{}, fmt.Errorf("monitor index %d out of bounds (%d captured)", index, len(displays))
}

// Cleanup removes the whole session directory. Disabled by default in
// the orchestrator so artifacts stay around for diagnostics.
func (s *Session) Cleanup() error {
	return os.RemoveAll(s.Dir)
}
