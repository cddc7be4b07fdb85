package overlay

import (
	"fmt"
	"image"
	"log"
	"os"

	_ "image/png"

	"github.com/nfnt/resize"

	"snapoverlay/src/monitor"
)

// Texture is the image an overlay window presents, downscaled when the
// display's logical size exceeds the GPU texture cap. Ratio is
// presented/logical; the window's placement, size and pointer mapping
// are all scaled by it.
type Texture struct {
	Image  image.Image
	Width  int
	Height int
	Ratio  float64
}

// FitSize clamps a logical size to maxSize, preserving aspect ratio.
// Returns the presented size and the applied ratio (1.0 when no
// downscale was needed).
func FitSize(logicalW, logicalH, maxSize int) (int, int, float64) {
	if logicalW <= maxSize && logicalH <= maxSize {
		return logicalW, logicalH, 1.0
	}
	longest := logicalW
	if logicalH > longest {
		longest = logicalH
	}
	ratio := float64(maxSize) / float64(longest)
	return int(float64(logicalW) * ratio), int(float64(logicalH) * ratio), ratio
}

// LoadTexture reads the display's image artifact and resizes it to the
// presented size. The artifact's physical size may differ from the
// display's logical size (DPI scaling), so the image is always brought
// to the final presented dimensions here.
func LoadTexture(d monitor.Display, maxSize int) (*Texture, error) {
	f, err := os.Open(d.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact %s: %w", d.ImagePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", d.ImagePath, err)
	}

	finalW, finalH, ratio := FitSize(d.Width, d.Height, maxSize)
	if ratio < 1.0 {
		log.Printf("Display %d: logical %dx%d exceeds texture cap %d, presenting %dx%d (ratio %.3f)",
			d.Index, d.Width, d.Height, maxSize, finalW, finalH, ratio)
	}
	if img.Bounds().Dx() != finalW || img.Bounds().Dy() != finalH {
		img = resize.Resize(uint(finalW), uint(finalH), img, resize.Lanczos3)
	}

	return &Texture{Image: img, Width: finalW, Height: finalH, Ratio: ratio}, nil
}
