// Package crop turns a finalized selection rectangle into a saved
// screenshot. The selected region may span several displays, so the
// result is composited from per-display captures of the overlapping
// sub-rectangles rather than one cross-display grab.
package crop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
	"golang.design/x/clipboard"

	"snapoverlay/src/geom"
	"snapoverlay/src/monitor"
)

// CaptureFunc acquires an absolute virtual-desktop rectangle.
type CaptureFunc func(r geom.Rect) (*image.RGBA, error)

func captureRect(r geom.Rect) (*image.RGBA, error) {
	return screenshot.CaptureRect(image.Rect(
		int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y)))
}

// Saver composites and persists final screenshots.
type Saver struct {
	Capture    CaptureFunc
	ScreensDir string
	// CopyToClipboard additionally places the PNG on the clipboard.
	CopyToClipboard bool
	// Now is injectable for deterministic file naming in tests.
	Now func() time.Time
}

func NewSaver(screensDir string, copyToClipboard bool) *Saver {
	return &Saver{
		Capture:         captureRect,
		ScreensDir:      screensDir,
		CopyToClipboard: copyToClipboard,
		Now:             time.Now,
	}
}

// Save captures the selected region and writes a timestamped PNG under
// ScreensDir, returning its path. Displays that fail to capture leave
// their part of the composite black; only a selection covering no
// display at all is an error.
func (s *Saver) Save(sel geom.Rect, displays []monitor.Display) (string, error) {
	if sel.Empty() {
		return "", fmt.Errorf("selection %s has no area", sel)
	}

	final := image.NewRGBA(image.Rect(0, 0, int(sel.Width()), int(sel.Height())))
	covered := false
	for _, d := range displays {
		inter, ok := sel.Intersect(d.Bounds())
		if !ok {
			continue
		}
		piece, err := s.Capture(inter)
		if err != nil {
			log.Printf("Display %d: failed to capture %s for composite: %v", d.Index, inter, err)
			continue
		}
		covered = true
		dst := image.Rect(
			int(inter.Min.X-sel.Min.X), int(inter.Min.Y-sel.Min.Y),
			int(inter.Max.X-sel.Min.X), int(inter.Max.Y-sel.Min.Y))
		draw.Draw(final, dst, piece, piece.Bounds().Min, draw.Src)
	}
	if !covered {
		return "", fmt.Errorf("selection %s overlaps no capturable display", sel)
	}

	if err := os.MkdirAll(s.ScreensDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screens dir: %w", err)
	}
	now := s.Now()
	path := filepath.Join(s.ScreensDir, fmt.Sprintf("screenshot_%s.png", now.Format("20060102_150405")))

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return "", fmt.Errorf("failed to encode image as PNG: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	log.Printf("Saved %dx%d screenshot to %s", final.Bounds().Dx(), final.Bounds().Dy(), path)

	if err := s.writeStore(path, now); err != nil {
		log.Printf("Failed to record last screenshot path: %v", err)
	}
	if s.CopyToClipboard {
		s.copyToClipboard(buf.Bytes())
	}
	return path, nil
}

// writeStore records the last screenshot for collaborators that only
// want "the most recent one" without scanning the directory.
func (s *Saver) writeStore(path string, now time.Time) error {
	data, err := json.MarshalIndent(map[string]string{
		"last_screenshot_path": path,
		"updated":              now.UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.StorePath(), data, 0o644)
}

// StorePath is the JSON file holding the last saved screenshot path.
func (s *Saver) StorePath() string {
	return filepath.Join(filepath.Dir(s.ScreensDir), "store.json")
}

// copyToClipboard is best effort: clipboard access needs a display
// server and may be unavailable in the environments children run in.
func (s *Saver) copyToClipboard(pngData []byte) {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, pngData)
	log.Printf("Copied screenshot to clipboard")
}
