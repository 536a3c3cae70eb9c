// Package wide provides SIMD-friendly wide types for batch pixel processing.
//
// U16x16 holds 16 uint16 lanes in a fixed-size array. Simple loops over the
// array let the Go compiler emit vector instructions (SSE, AVX, NEON) without
// unsafe or assembly.
//
// BatchState stores 16 RGBA pixels in Structure-of-Arrays layout so a blend
// step works on a whole color channel at once:
//
//	var batch wide.BatchState
//	batch.LoadSrc(overlay)
//	batch.LoadDst(canvas)
//	// ... lane arithmetic on batch.SR, batch.DA, etc.
//	batch.StoreDst(canvas)
package wide
