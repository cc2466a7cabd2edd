// Package imageio loads texture images from disk and converts them to the
// tightly packed RGBA8 layout the renderer uploads.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
)

// Load decodes the image at path. TGA files are recognised by extension,
// everything else by the registered decoders (PNG, JPEG, BMP).
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// ToRGBA returns img as an *image.RGBA with origin (0, 0) and no row padding.
// img is returned as is when it already has that layout.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Fit scales img down so neither side exceeds max, keeping the aspect
// ratio. Images already within bounds, or a non-positive max, are converted
// without scaling.
func Fit(img image.Image, max int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return ToRGBA(img)
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FlipY flips img vertically in place. OpenGL addresses texture and
// framebuffer rows bottom-up.
func FlipY(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, 4*img.Bounds().Dx())
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+len(row)]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+len(row)]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
