package blend

// Over composites a straight-alpha source (the overlay) over a destination
// (the backdrop).
//
// Per channel (alpha included):
//
//	out = s*sa/255 + d*(255-sa)/255
//
// Each term truncates on its own. With sa = 0 the destination is returned
// unchanged; with sa = 255 the source is returned and the destination ignored.
func Over(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	inv := inv255(sa)
	r = addClamp(mulDiv255(sr, sa), mulDiv255(dr, inv))
	g = addClamp(mulDiv255(sg, sa), mulDiv255(dg, inv))
	b = addClamp(mulDiv255(sb, sa), mulDiv255(db, inv))
	a = addClamp(mulDiv255(sa, sa), mulDiv255(da, inv))
	return r, g, b, a
}

// overRow applies Over to every pixel of src onto dst, starting at byte offset.
func overRow(dst, src []byte, offset int) {
	for ; offset+3 < len(dst) && offset+3 < len(src); offset += 4 {
		dst[offset+0], dst[offset+1], dst[offset+2], dst[offset+3] = Over(
			src[offset+0], src[offset+1], src[offset+2], src[offset+3],
			dst[offset+0], dst[offset+1], dst[offset+2], dst[offset+3],
		)
	}
}
