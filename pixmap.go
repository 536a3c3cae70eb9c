package renskin

import (
	"image"
	"image/color"

	"github.com/thiccmc/renskin/internal/blend"
	skinimage "github.com/thiccmc/renskin/internal/image"
)

// Pixel is a straight (non-premultiplied) 8-bit RGBA value.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is the zero Pixel.
var Transparent = Pixel{}

// Blend composites overlay over base with straight alpha and truncating
// division. See the blend package for the exact formula.
func Blend(base, overlay Pixel) Pixel {
	r, g, b, a := blend.Over(overlay.R, overlay.G, overlay.B, overlay.A, base.R, base.G, base.B, base.A)
	return Pixel{R: r, G: g, B: b, A: a}
}

// Pixmap represents a rectangular straight-alpha RGBA pixel buffer.
// Rows are tightly packed: stride is 4*width.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a fully transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA, row-major).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Row returns the bytes of row y.
func (p *Pixmap) Row(y int) []uint8 {
	stride := p.width * 4
	return p.data[y*stride : (y+1)*stride]
}

// PixelAt returns the pixel at (x, y), or Transparent outside the bounds.
func (p *Pixmap) PixelAt(x, y int) Pixel {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Pixel{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetPixel sets a single pixel. Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c Pixel) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c Pixel) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// ToNRGBA converts the pixmap to a freshly allocated image.NRGBA.
func (p *Pixmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from any image. Colors are converted to straight
// alpha; NRGBA and paletted sources convert without loss.
func FromImage(img image.Image) *Pixmap {
	nrgba := skinimage.ToNRGBA(img)
	pm := NewPixmap(nrgba.Rect.Dx(), nrgba.Rect.Dy())
	for y := range pm.height {
		copy(pm.Row(y), nrgba.Pix[y*nrgba.Stride:])
	}
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	c := p.PixelAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
