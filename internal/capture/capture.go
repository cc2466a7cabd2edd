// Package capture saves the default framebuffer as PNG screenshots.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/regl/pkg/regl"
)

// ErrUnsupported is returned when the device cannot read back pixels.
var ErrUnsupported = errors.New("device cannot read pixels")

// Screenshots writes timestamped PNG files into a directory.
type Screenshots struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// New returns a Screenshots writing to dir with names starting with prefix.
func New(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.Prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// Capture reads the rectangle r from dev and saves it. dev must implement
// regl.PixelReader.
func (s *Screenshots) Capture(dev regl.Device, r regl.Rect) (string, error) {
	reader, ok := dev.(regl.PixelReader)
	if !ok {
		return "", ErrUnsupported
	}
	pixels, err := reader.ReadPixels(r)
	if err != nil {
		return "", fmt.Errorf("reading pixels: %w", err)
	}
	img, err := FromPixels(pixels, r.Width, r.Height)
	if err != nil {
		return "", err
	}
	return s.Save(img)
}

// Save writes img as PNG.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	filename := s.Filename()

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filename, nil
}

// FromPixels builds an image from bottom-up RGBA rows as returned by
// glReadPixels.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
