package wide

// BatchBytes is the number of bytes covered by one BatchState (16 RGBA pixels).
const BatchBytes = Lanes * 4

// BatchState holds 16 RGBA pixels for batch processing.
// Uses Structure-of-Arrays (SoA) layout for SIMD-friendly access.
//
// Array-of-Structures input:
//
//	[R0, G0, B0, A0, R1, G1, B1, A1, ...]
//
// Structure-of-Arrays lanes:
//
//	SR: [R0, R1, R2, ..., R15]
//	SA: [A0, A1, A2, ..., A15]
type BatchState struct {
	SR, SG, SB, SA U16x16 // Source RGBA (16 pixels)
	DR, DG, DB, DA U16x16 // Destination RGBA (16 pixels)
}

// LoadSrc loads 16 RGBA pixels from src into the source channels.
// src must have at least BatchBytes bytes.
func (b *BatchState) LoadSrc(src []byte) {
	_ = src[BatchBytes-1]
	for i := 0; i < Lanes; i++ {
		offset := i * 4
		b.SR[i] = uint16(src[offset+0])
		b.SG[i] = uint16(src[offset+1])
		b.SB[i] = uint16(src[offset+2])
		b.SA[i] = uint16(src[offset+3])
	}
}

// LoadDst loads 16 RGBA pixels from dst into the destination channels.
// dst must have at least BatchBytes bytes.
func (b *BatchState) LoadDst(dst []byte) {
	_ = dst[BatchBytes-1]
	for i := 0; i < Lanes; i++ {
		offset := i * 4
		b.DR[i] = uint16(dst[offset+0])
		b.DG[i] = uint16(dst[offset+1])
		b.DB[i] = uint16(dst[offset+2])
		b.DA[i] = uint16(dst[offset+3])
	}
}

// StoreDst stores the destination channels back to dst as RGBA bytes.
// dst must have at least BatchBytes bytes.
func (b *BatchState) StoreDst(dst []byte) {
	_ = dst[BatchBytes-1]
	for i := 0; i < Lanes; i++ {
		offset := i * 4
		// Lanes are clamped to [0, 255] by the blend step
		dst[offset+0] = uint8(b.DR[i]) // #nosec G115
		dst[offset+1] = uint8(b.DG[i]) // #nosec G115
		dst[offset+2] = uint8(b.DB[i]) // #nosec G115
		dst[offset+3] = uint8(b.DA[i]) // #nosec G115
	}
}
