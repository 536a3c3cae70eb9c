package renskin

import (
	"github.com/thiccmc/renskin/internal/blend"
)

// canvasColor is the backdrop both layers are composited onto.
var canvasColor = Pixel{A: 0xff}

// Compositor builds face images from atlases. It is stateless apart from
// its blending strategy and safe for concurrent use.
type Compositor struct {
	blender blend.Blender
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithBlender selects the blending strategy. Every strategy produces the
// same bytes; the choice only affects throughput.
func WithBlender(b blend.Blender) CompositorOption {
	return func(c *Compositor) {
		if b != nil {
			c.blender = b
		}
	}
}

// NewCompositor creates a Compositor. The default strategy is blend.Default().
func NewCompositor(opts ...CompositorOption) *Compositor {
	c := &Compositor{blender: blend.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Blender returns the configured blending strategy.
func (c *Compositor) Blender() blend.Blender {
	return c.blender
}

// Compose renders the 8×8 face of atlas.
//
// The face layer is drawn over an opaque black canvas, then the overlay
// layer over the result; alpha is forced to 255 afterwards. The output is
// a pure function of the atlas pixels.
func (c *Compositor) Compose(atlas *Pixmap) (*Pixmap, error) {
	face, err := ExtractFace(atlas)
	if err != nil {
		return nil, err
	}
	overlay, err := ExtractOverlay(atlas)
	if err != nil {
		return nil, err
	}

	canvas := NewPixmap(FaceSize, FaceSize)
	canvas.Fill(canvasColor)
	c.blender.BlendRow(canvas.data, face.data)
	c.blender.BlendRow(canvas.data, overlay.data)

	for i := 3; i < len(canvas.data); i += 4 {
		canvas.data[i] = 0xff
	}
	return canvas, nil
}

var defaultCompositor = NewCompositor()

// Compose renders the face of atlas with the default compositor.
func Compose(atlas *Pixmap) (*Pixmap, error) {
	return defaultCompositor.Compose(atlas)
}
