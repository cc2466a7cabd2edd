package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestLoadRegisteredFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	tests := []struct {
		name   string
		encode func(*os.File) error
	}{
		{"img.png", func(f *os.File) error { return png.Encode(f, src) }},
		{"img.bmp", func(f *os.File) error { return bmp.Encode(f, src) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, tt.encode(f))
			require.NoError(t, f.Close())

			img, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

			r, g, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
			r, g, b, _ = img.At(2, 1).RGBA()
			assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0644))
	_, err = Load(junk)
	assert.ErrorContains(t, err, "junk.png")

	badTGA := filepath.Join(dir, "bad.TGA")
	require.NoError(t, os.WriteFile(badTGA, []byte{0, 0, 2}, 0644))
	_, err = Load(badTGA)
	assert.ErrorContains(t, err, "tga")
}

func tgaHeader(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// Bottom-up 2x2, BGR: bottom row red, green; top row blue, white.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 1))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// Top-down 3x1 with alpha: a run of two then one raw pixel.
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 10, 20, 30, 128,
		0x00, 1, 2, 3, 4,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	want := color.NRGBA{R: 30, G: 20, B: 10, A: 128}
	assert.Equal(t, want, img.NRGBAAt(0, 0))
	assert.Equal(t, want, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 3, G: 2, B: 1, A: 4}, img.NRGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaTrueColor, 1, 1, 24, false); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, false)},
		{"16 bit", tgaHeader(tgaTrueColor, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeader(tgaTrueColor, 2, 1, 24, false), 1, 2, 3)},
		{"run overflow", append(tgaHeader(tgaTrueColorRLE, 1, 1, 24, false), 0x83, 1, 2, 3)},
		{"id past end", func() []byte { h := tgaHeader(tgaTrueColor, 1, 1, 24, false); h[0] = 10; return h }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestToRGBA(t *testing.T) {
	rgba := ToRGBA(testImage())
	assert.Equal(t, 12, rgba.Stride)
	assert.Equal(t, []byte{255, 0, 0, 255}, rgba.Pix[0:4])

	// Already packed images pass through.
	assert.Same(t, rgba, ToRGBA(rgba))

	sub := rgba.SubImage(image.Rect(1, 1, 3, 2))
	packed := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), packed.Bounds())
	assert.Equal(t, []byte{0, 0, 255, 255}, packed.Pix[4:8])
}

func TestFit(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 400, 100))

	assert.Equal(t, image.Rect(0, 0, 200, 50), Fit(big, 200).Bounds())
	assert.Equal(t, image.Rect(0, 0, 400, 100), Fit(big, 0).Bounds())
	assert.Equal(t, image.Rect(0, 0, 400, 100), Fit(big, 1000).Bounds())

	tall := image.NewRGBA(image.Rect(0, 0, 10, 40))
	assert.Equal(t, image.Rect(0, 0, 5, 20), Fit(tall, 20).Bounds())
}

func TestFlipY(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := range 3 {
		img.Pix[y*4] = byte(y)
	}

	FlipY(img)
	assert.Equal(t, byte(2), img.Pix[0])
	assert.Equal(t, byte(1), img.Pix[4])
	assert.Equal(t, byte(0), img.Pix[8])
}
