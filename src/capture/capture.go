package capture

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/kbinani/screenshot"

	"snapoverlay/src/monitor"
	"snapoverlay/src/worker"
)

// defectRatio is the oversize threshold above which an acquired buffer is
// treated as an accidental virtual-desktop-wide capture instead of a
// single-display one. Minor DPI rounding stays well below it.
const defectRatio = 1.1

// Backend acquires the raw pixel buffer for one display.
type Backend interface {
	Acquire(d monitor.Display) (*image.RGBA, error)
}

type screenshotBackend struct{}

func (screenshotBackend) Acquire(d monitor.Display) (*image.RGBA, error) {
	return screenshot.CaptureRect(image.Rect(d.X, d.Y, d.X+d.Width, d.Y+d.Height))
}

// Engine captures one PNG artifact per display into a session directory.
type Engine struct {
	Backend Backend
	// Workers bounds parallel acquisition; <=0 means NumCPU.
	Workers int
}

func NewEngine() *Engine {
	return &Engine{Backend: screenshotBackend{}}
}

// Capture acquires every display and persists one artifact per display
// under dir, addressed by display index. A display whose acquisition or
// persistence fails is logged and skipped; the returned slice holds the
// surviving descriptors (ImagePath filled in), in index order. vdScale is
// the virtual desktop's own DPI scale, used to crop oversized buffers
// (the whole-desktop buffer is rendered at the primary display's density,
// not the target display's).
func (e *Engine) Capture(displays []monitor.Display, vdScale float64, dir string) []monitor.Display {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Failed to create session dir %s: %v", dir, err)
		return nil
	}

	results := make([]*monitor.Display, len(displays))
	var mu sync.Mutex

	pool := worker.New(e.Workers)
	for i, d := range displays {
		i, d := i, d
		pool.Submit(func() {
			captured, ok := e.captureOne(d, vdScale, dir)
			if !ok {
				return
			}
			mu.Lock()
			results[i] = &captured
			mu.Unlock()
		})
	}
	pool.Close()

	out := make([]monitor.Display, 0, len(displays))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (e *Engine) captureOne(d monitor.Display, vdScale float64, dir string) (monitor.Display, bool) {
	img, err := e.Backend.Acquire(d)
	if err != nil {
		log.Printf("Display %d: acquisition failed, skipping: %v", d.Index, err)
		return monitor.Display{}, false
	}

	physW := img.Bounds().Dx()
	physH := img.Bounds().Dy()
	expectedW := int(float64(d.Width) * d.Scale)
	expectedH := int(float64(d.Height) * d.Scale)
	log.Printf("Display %d: raw capture %dx%d (expected %dx%d at scale %.2f)",
		d.Index, physW, physH, expectedW, expectedH, d.Scale)

	final := img
	if isVirtualDesktopBuffer(physW, physH, expectedW, expectedH) {
		log.Printf("Display %d: dimension mismatch, buffer looks like a whole-desktop capture (%dx%d vs %dx%d)",
			d.Index, physW, physH, expectedW, expectedH)

		// Keep the oversized buffer for diagnostics before cropping.
		rawPath := filepath.Join(dir, fmt.Sprintf("monitor_%d_RAW.png", d.Index))
		if err := writePNG(rawPath, img); err != nil {
			log.Printf("Display %d: failed to save RAW diagnostic: %v", d.Index, err)
		} else {
			log.Printf("Display %d: saved RAW whole-desktop buffer to %s", d.Index, rawPath)
		}

		final = cropToDisplay(img, d, vdScale)
	}

	path := filepath.Join(dir, fmt.Sprintf("monitor_%d.png", d.Index))
	if err := writePNG(path, final); err != nil {
		log.Printf("Display %d: failed to save artifact, skipping: %v", d.Index, err)
		return monitor.Display{}, false
	}
	log.Printf("Display %d: saved %dx%d artifact to %s",
		d.Index, final.Bounds().Dx(), final.Bounds().Dy(), path)

	d.ImagePath = path
	return d, true
}

func isVirtualDesktopBuffer(physW, physH, expectedW, expectedH int) bool {
	if expectedW <= 0 || expectedH <= 0 {
		return false
	}
	return float64(physW)/float64(expectedW) > defectRatio ||
		float64(physH)/float64(expectedH) > defectRatio
}

// cropToDisplay cuts the display's region out of a whole-desktop buffer.
// The crop uses the VIRTUAL DESKTOP scale, not the display's own scale:
// the oversized buffer is rendered at the primary display's density, and
// cropping at the wrong scale silently yields an offset, stretched image.
// Invalid bounds degrade to the uncropped buffer, never to a failure.
func cropToDisplay(img *image.RGBA, d monitor.Display, vdScale float64) *image.RGBA {
	cropX := int(float64(d.X) * vdScale)
	cropY := int(float64(d.Y) * vdScale)
	cropW := int(float64(d.Width) * vdScale)
	cropH := int(float64(d.Height) * vdScale)

	physW := img.Bounds().Dx()
	physH := img.Bounds().Dy()
	if cropX < 0 || cropY < 0 || cropX+cropW > physW || cropY+cropH > physH {
		log.Printf("Display %d: invalid crop bounds (%d, %d) %dx%d for %dx%d buffer, using uncropped image",
			d.Index, cropX, cropY, cropW, cropH, physW, physH)
		return img
	}

	log.Printf("Display %d: cropping whole-desktop buffer at (%d, %d) size %dx%d (vd scale %.2f)",
		d.Index, cropX, cropY, cropW, cropH, vdScale)

	// Re-base onto a zero-origin buffer so the artifact carries no trace
	// of the source offset.
	min := img.Bounds().Min
	out := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		for x := 0; x < cropW; x++ {
			out.SetRGBA(x, y, img.RGBAAt(min.X+cropX+x, min.Y+cropY+y))
		}
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode image as PNG: %v", err)
	}
	return nil
}
