package texture

import (
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrInvalidTGA is returned for TGA data that cannot be decoded.
var ErrInvalidTGA = errors.New("invalid TGA data")

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE compressed 24/32-bit TGA image.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("header too short: %w", ErrInvalidTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped image: %w", ErrInvalidTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("image type %d: %w", imageType, ErrInvalidTGA)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("bit depth %d: %w", bpp, ErrInvalidTGA)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("truncated id field: %w", ErrInvalidTGA)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bytes:       bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.bytes {
			return nil, fmt.Errorf("pixel data truncated: %w", ErrInvalidTGA)
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.pixel(i*d.bytes))
		}
	} else {
		d.decodeRLE()
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	width       int
	height      int
	bytes       int
	topToBottom bool
}

// pixel reads one BGR(A) pixel at offset i of the source.
func (d *tgaDecoder) pixel(i int) stdcolor.RGBA {
	c := stdcolor.RGBA{R: d.src[i+2], G: d.src[i+1], B: d.src[i], A: 0xFF}
	if d.bytes == 4 {
		c.A = d.src[i+3]
	}
	return c
}

// put stores the n-th pixel in file order. Rows run bottom-up unless the
// descriptor says otherwise.
func (d *tgaDecoder) put(n int, c stdcolor.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

// decodeRLE expands RLE packets. Truncated data leaves the remaining pixels
// transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	n, i := 0, 0
	for n < total && i < len(d.src) {
		packet := d.src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+d.bytes > len(d.src) {
				return
			}
			c := d.pixel(i)
			i += d.bytes
			for ; count > 0 && n < total; count-- {
				d.put(n, c)
				n++
			}
			continue
		}

		for ; count > 0 && n < total; count-- {
			if i+d.bytes > len(d.src) {
				return
			}
			d.put(n, d.pixel(i))
			i += d.bytes
			n++
		}
	}
}
