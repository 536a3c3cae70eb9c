package renskin

import (
	"fmt"
	"image"
)

// Atlas geometry.
const (
	// AtlasWidth is the minimum width of a skin atlas.
	AtlasWidth = 64

	// AtlasHeight is the height of a modern (1.8+) skin atlas.
	AtlasHeight = 64

	// LegacyAtlasHeight is the height of a pre-1.8 skin atlas.
	LegacyAtlasHeight = 32

	// FaceSize is the edge length of the face and overlay regions.
	FaceSize = 8
)

// Fixed region origins inside the atlas.
var (
	// FaceRegion is the front of the head (first skin layer).
	FaceRegion = image.Rect(8, 8, 8+FaceSize, 8+FaceSize)

	// OverlayRegion is the front of the hat (second skin layer).
	OverlayRegion = image.Rect(40, 8, 40+FaceSize, 8+FaceSize)
)

// IsLegacy reports whether atlas uses the short pre-1.8 layout.
func IsLegacy(atlas *Pixmap) bool {
	return atlas.Height() < AtlasHeight
}

// Extract copies the w×h region at (x, y) out of atlas.
//
// It fails with ErrOutOfBounds when the region starts outside the atlas or
// the atlas is narrower than x+w. Rows below the bottom of the atlas are
// left fully transparent.
func Extract(atlas *Pixmap, x, y, w, h int) (*Pixmap, error) {
	if w <= 0 || h <= 0 || x < 0 || y < 0 {
		return nil, fmt.Errorf("%w: region %dx%d at (%d,%d)", ErrOutOfBounds, w, h, x, y)
	}
	if x+w > atlas.Width() {
		return nil, fmt.Errorf("%w: atlas width %d < %d", ErrOutOfBounds, atlas.Width(), x+w)
	}

	region := NewPixmap(w, h)
	for row := 0; row < h && y+row < atlas.Height(); row++ {
		src := atlas.Row(y + row)
		copy(region.Row(row), src[x*4:(x+w)*4])
	}
	return region, nil
}

// ExtractRect is Extract with the region given as a rectangle.
func ExtractRect(atlas *Pixmap, r image.Rectangle) (*Pixmap, error) {
	return Extract(atlas, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// ExtractFace returns the 8×8 base face layer.
func ExtractFace(atlas *Pixmap) (*Pixmap, error) {
	return ExtractRect(atlas, FaceRegion)
}

// ExtractOverlay returns the 8×8 hat layer. Legacy atlases yield a fully
// transparent region instead of an error, so they composite to the bare face.
func ExtractOverlay(atlas *Pixmap) (*Pixmap, error) {
	if atlas.Width() < OverlayRegion.Max.X {
		return nil, fmt.Errorf("%w: atlas width %d < %d", ErrOutOfBounds, atlas.Width(), OverlayRegion.Max.X)
	}
	if IsLegacy(atlas) {
		return NewPixmap(FaceSize, FaceSize), nil
	}
	return ExtractRect(atlas, OverlayRegion)
}
