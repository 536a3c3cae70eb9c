package renskin

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"golang.org/x/image/draw"
)

func gradientFace() *Pixmap {
	face := NewPixmap(FaceSize, FaceSize)
	for y := range FaceSize {
		for x := range FaceSize {
			face.SetPixel(x, y, Pixel{R: uint8(x * 30), G: uint8(y * 30), B: uint8(x ^ y), A: 255})
		}
	}
	return face
}

func TestUpscaleBlocks(t *testing.T) {
	face := gradientFace()
	for _, s := range []int{2, 4, 8, 16} {
		got, err := Upscale(face, s)
		if err != nil {
			t.Fatalf("Upscale(%d) error = %v", s, err)
		}
		if got.Width() != 8*s || got.Height() != 8*s {
			t.Fatalf("Upscale(%d) size = %dx%d, want %dx%d", s, got.Width(), got.Height(), 8*s, 8*s)
		}
		for y := range got.Height() {
			for x := range got.Width() {
				if c, want := got.PixelAt(x, y), face.PixelAt(x/s, y/s); c != want {
					t.Fatalf("Upscale(%d) pixel (%d,%d) = %v, want %v", s, x, y, c, want)
				}
			}
		}
	}
}

// TestUpscaleMatchesXImageNearest cross-checks against x/image/draw, whose
// integer mapping is exact floor division for integer factors.
func TestUpscaleMatchesXImageNearest(t *testing.T) {
	face := gradientFace()
	for _, s := range []int{2, 4, 8, 16} {
		got, err := Upscale(face, s)
		if err != nil {
			t.Fatalf("Upscale(%d) error = %v", s, err)
		}

		want := image.NewNRGBA(image.Rect(0, 0, 8*s, 8*s))
		src := face.ToNRGBA()
		draw.NearestNeighbor.Scale(want, want.Bounds(), src, src.Bounds(), draw.Src, nil)

		if !bytes.Equal(got.Data(), want.Pix) {
			t.Errorf("Upscale(%d) differs from draw.NearestNeighbor", s)
		}
	}
}

func TestUpscaleOneCopies(t *testing.T) {
	face := gradientFace()
	got, err := Upscale(face, 1)
	if err != nil {
		t.Fatalf("Upscale(1) error = %v", err)
	}
	if !bytes.Equal(got.Data(), face.Data()) {
		t.Error("Upscale(1) changed pixels")
	}
	got.SetPixel(0, 0, Transparent)
	if face.PixelAt(0, 0) == Transparent {
		t.Error("Upscale(1) aliases the source")
	}
}

func TestUpscaleInvalid(t *testing.T) {
	for _, s := range []int{0, -2} {
		if _, err := Upscale(gradientFace(), s); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("Upscale(%d) error = %v, want ErrInvalidScale", s, err)
		}
	}
}
