package blend

import "github.com/thiccmc/renskin/internal/wide"

// Blender composites a row of straight-alpha RGBA pixels over another.
//
// Implementations must produce exactly the bytes Scalar produces. BlendRow
// processes min(len(dst), len(src))/4 pixels and modifies dst in place.
type Blender interface {
	Name() string
	BlendRow(dst, src []byte)
}

// Scalar is the reference Blender: one pixel per step through Over.
type Scalar struct{}

// Name implements Blender.
func (Scalar) Name() string { return "scalar" }

// BlendRow implements Blender.
func (Scalar) BlendRow(dst, src []byte) {
	overRow(dst, src, 0)
}

// Batch processes 16 pixels per step in wide lanes and finishes any
// remainder with the scalar operator.
type Batch struct{}

// Name implements Blender.
func (Batch) Name() string { return "batch" }

// BlendRow implements Blender.
func (Batch) BlendRow(dst, src []byte) {
	n := min(len(dst), len(src)) / 4
	full := n / wide.Lanes

	var batch wide.BatchState
	offset := 0
	for i := 0; i < full; i++ {
		batch.LoadSrc(src[offset:])
		batch.LoadDst(dst[offset:])
		OverBatch(&batch)
		batch.StoreDst(dst[offset:])
		offset += wide.BatchBytes
	}

	overRow(dst[:n*4], src[:n*4], offset)
}

// Default returns the Blender used when none is configured.
func Default() Blender {
	return Batch{}
}

// ByName returns the Blender registered under name, or false.
func ByName(name string) (Blender, bool) {
	switch name {
	case Scalar{}.Name():
		return Scalar{}, true
	case Batch{}.Name():
		return Batch{}, true
	default:
		return nil, false
	}
}
