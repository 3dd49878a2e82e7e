// Package loader provides image decoding for the crop tool. Decoding is
// the only asynchronous boundary in the application: LoadAsync delivers a
// completed Photo exactly once on success, and a decode failure never
// reaches the viewport core.
package loader

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"circlecrop/internal/viewport"
)

// Photo is a decoded image plus the metrics the viewport engine consumes.
// A Photo is immutable once created; loading a new image produces a new
// Photo rather than mutating the old one.
type Photo struct {
	Path  string
	Image *image.NRGBA
}

// Metrics returns the natural dimensions for the viewport engine.
func (p *Photo) Metrics() viewport.ImageSize {
	if p == nil || p.Image == nil {
		return viewport.ImageSize{}
	}
	b := p.Image.Bounds()
	return viewport.ImageSize{
		NaturalWidth:  float64(b.Dx()),
		NaturalHeight: float64(b.Dy()),
	}
}

// Load decodes an image file, honoring EXIF orientation.
func Load(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	photo, err := Open(f)
	if err != nil {
		return nil, err
	}
	photo.Path = path
	return photo, nil
}

// Open decodes an image from a reader, honoring EXIF orientation.
func Open(r io.Reader) (*Photo, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Photo{Image: imaging.Clone(img)}, nil
}

// LoadAsync decodes on a background goroutine. Exactly one of the
// callbacks is invoked, from that goroutine; whatever the callbacks
// touch must be safe to call off the UI thread.
func LoadAsync(path string, onDone func(*Photo), onErr func(error)) {
	go func() {
		photo, err := Load(path)
		if err != nil {
			log.Printf("loader: %s: %v", filepath.Base(path), err)
			if onErr != nil {
				onErr(err)
			}
			return
		}
		onDone(photo)
	}()
}

// SupportedExtensions returns the file extensions the loader accepts.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif", ".webp", ".bmp"}
}

// IsSupported checks whether the path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}
