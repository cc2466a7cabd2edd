package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel. TGA has no magic number, so it is not registered with the image
// package and is selected by file extension in Load.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if tgaHeaderSize+idLength > len(data) {
		return nil, errTGATruncated
	}

	r := tgaReader{
		src:   data[tgaHeaderSize+idLength:],
		bytes: bpp / 8,
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	put := func(i int, c color.NRGBA) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetNRGBA(x, y, c)
	}

	total := width * height
	if imageType == tgaTrueColor {
		for i := range total {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			put(i, c)
		}
		return img, nil
	}

	for i := 0; i < total; {
		header, err := r.byte()
		if err != nil {
			return nil, err
		}
		count := int(header&0x7f) + 1
		if i+count > total {
			return nil, fmt.Errorf("tga: run of %d overflows image at pixel %d", count, i)
		}
		if header&0x80 != 0 {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			for range count {
				put(i, c)
				i++
			}
			continue
		}
		for range count {
			c, err := r.pixel()
			if err != nil {
				return nil, err
			}
			put(i, c)
			i++
		}
	}
	return img, nil
}

type tgaReader struct {
	src   []byte
	off   int
	bytes int
}

func (r *tgaReader) byte() (byte, error) {
	if r.off >= len(r.src) {
		return 0, errTGATruncated
	}
	b := r.src[r.off]
	r.off++
	return b, nil
}

// pixel reads one BGR(A) pixel.
func (r *tgaReader) pixel() (color.NRGBA, error) {
	if r.off+r.bytes > len(r.src) {
		return color.NRGBA{}, errTGATruncated
	}
	p := r.src[r.off : r.off+r.bytes]
	r.off += r.bytes
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytes == 4 {
		c.A = p[3]
	}
	return c, nil
}
