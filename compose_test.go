package renskin

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/thiccmc/renskin/internal/blend"
)

// TestComposeGolden pins the exact output for a red face under a
// half-transparent blue hat.
func TestComposeGolden(t *testing.T) {
	atlas := newAtlas(AtlasWidth, AtlasHeight, Pixel{R: 255, A: 255}, Pixel{B: 255, A: 128})

	face, err := Compose(atlas)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	want := Pixel{R: 127, G: 0, B: 128, A: 255}
	for y := range FaceSize {
		for x := range FaceSize {
			if c := face.PixelAt(x, y); c != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestComposeForcesOpaque(t *testing.T) {
	atlas := newAtlas(AtlasWidth, AtlasHeight, Pixel{R: 200, G: 100, B: 50, A: 0}, Pixel{})

	face, err := Compose(atlas)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	// Transparent face over the black canvas stays black.
	if c := face.PixelAt(0, 0); c != (Pixel{A: 255}) {
		t.Errorf("pixel = %v, want opaque black", c)
	}
}

func TestComposeLegacyAtlasIsBareFace(t *testing.T) {
	skin := Pixel{R: 180, G: 140, B: 110, A: 255}
	atlas := newAtlas(AtlasWidth, LegacyAtlasHeight, skin, Pixel{B: 255, A: 255})

	face, err := Compose(atlas)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if c := face.PixelAt(4, 4); c != skin {
		t.Errorf("pixel = %v, want %v", c, skin)
	}
}

func TestComposeNarrowAtlas(t *testing.T) {
	_, err := Compose(NewPixmap(16, 16))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Compose() error = %v, want ErrOutOfBounds", err)
	}
}

func randomAtlas(seed int64) *Pixmap {
	atlas := NewPixmap(AtlasWidth, AtlasHeight)
	rand.New(rand.NewSource(seed)).Read(atlas.Data())
	return atlas
}

func TestComposeDeterministic(t *testing.T) {
	atlas := randomAtlas(3)

	first, err := Compose(atlas)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for i := range 10 {
		again, err := Compose(atlas.Clone())
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if !bytes.Equal(first.Data(), again.Data()) {
			t.Fatalf("run %d produced different pixels", i)
		}
	}
}

// TestComposeStrategiesAgree renders random atlases with both strategies.
func TestComposeStrategiesAgree(t *testing.T) {
	scalar := NewCompositor(WithBlender(blend.Scalar{}))
	batch := NewCompositor(WithBlender(blend.Batch{}))

	for seed := range int64(50) {
		atlas := randomAtlas(seed)
		a, err := scalar.Compose(atlas)
		if err != nil {
			t.Fatalf("scalar Compose() error = %v", err)
		}
		b, err := batch.Compose(atlas)
		if err != nil {
			t.Fatalf("batch Compose() error = %v", err)
		}
		if !bytes.Equal(a.Data(), b.Data()) {
			t.Fatalf("seed %d: scalar and batch differ", seed)
		}
	}
}

// TestComposeMatchesPixelBlend checks the two over-operations per pixel.
func TestComposeMatchesPixelBlend(t *testing.T) {
	atlas := randomAtlas(99)
	face, err := Compose(atlas)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for y := range FaceSize {
		for x := range FaceSize {
			c := Blend(Pixel{A: 255}, atlas.PixelAt(FaceRegion.Min.X+x, FaceRegion.Min.Y+y))
			c = Blend(c, atlas.PixelAt(OverlayRegion.Min.X+x, OverlayRegion.Min.Y+y))
			c.A = 255
			if got := face.PixelAt(x, y); got != c {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestWithBlenderNilKeepsDefault(t *testing.T) {
	c := NewCompositor(WithBlender(nil))
	if c.Blender() == nil {
		t.Fatal("Blender() = nil")
	}
	if c.Blender().Name() != blend.Default().Name() {
		t.Errorf("Blender() = %q, want default", c.Blender().Name())
	}
}

func BenchmarkCompose(b *testing.B) {
	atlas := randomAtlas(1)
	for _, bl := range []blend.Blender{blend.Scalar{}, blend.Batch{}} {
		c := NewCompositor(WithBlender(bl))
		b.Run(bl.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = c.Compose(atlas)
			}
		})
	}
}
