package renskin

import "fmt"

// Upscale replicates every pixel of src into an s×s block.
//
// Output pixel (x, y) equals src pixel (x/s, y/s); there is no filtering.
// s = 1 returns a copy.
func Upscale(src *Pixmap, s int) (*Pixmap, error) {
	if s < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, s)
	}
	if s == 1 {
		return src.Clone(), nil
	}

	dst := NewPixmap(src.width*s, src.height*s)
	for y := range src.height {
		srcRow := src.Row(y)
		first := dst.Row(y * s)
		for x := range src.width {
			px := srcRow[x*4 : x*4+4]
			for k := range s {
				copy(first[(x*s+k)*4:], px)
			}
		}
		for k := 1; k < s; k++ {
			copy(dst.Row(y*s+k), first)
		}
	}
	return dst, nil
}
