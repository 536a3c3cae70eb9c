// Package blend implements the straight-alpha over operator used to composite
// skin layers.
//
// Every division by 255 truncates. Rounding variants are deliberately absent:
// rendered faces must stay byte-identical to previously cached artifacts.
package blend

// div255 divides x by 255, truncating.
//
// Formula: (x + 1 + (x >> 8)) >> 8
//
// Equal to x / 255 for all x in [0, 65025] (any product of two bytes).
func div255(x uint16) uint16 {
	t := uint32(x)
	return uint16((t + 1 + (t >> 8)) >> 8) // #nosec G115
}

// mulDiv255 multiplies two bytes and divides by 255 with truncation.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
