// Package image decodes skin atlases and encodes rendered artifacts.
//
// Atlases arrive as PNG in practice; WebP and BMP are accepted as well through
// golang.org/x/image. Artifacts are always written as PNG.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the data is not a known image format.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

var encoder = png.Encoder{
	CompressionLevel: png.BestCompression,
	BufferPool:       &encoderPool{},
}

// Decode decodes data into a straight-alpha NRGBA image, auto-detecting the
// format. The returned format name is the one registered with image.Decode.
func Decode(data []byte) (*image.NRGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA returns img as an *image.NRGBA with its origin at (0, 0).
// NRGBA input with a zero origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return nrgba
	}

	width, height := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	// Fast path for NRGBA sub-images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*out.Stride:], nrgba.Pix[srcStart:srcStart+width*4])
		}
		return out
	}

	// Generic slow path; palette entries from PNG are already NRGBA
	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeOpaquePNG writes img as a 3-channel PNG. Alpha is discarded: the copy
// handed to the encoder is fully opaque, which makes the PNG writer pick the
// truecolor (RGB) color type.
func EncodeOpaquePNG(w io.Writer, img image.Image) error {
	src := ToNRGBA(img)
	opaque := image.NewNRGBA(src.Rect)
	copy(opaque.Pix, src.Pix)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	return EncodePNG(w, opaque)
}

// EncodeToBytes is EncodePNG or EncodeOpaquePNG into a fresh buffer.
func EncodeToBytes(img image.Image, opaque bool) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if opaque {
		err = EncodeOpaquePNG(&buf, img)
	} else {
		err = EncodePNG(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
