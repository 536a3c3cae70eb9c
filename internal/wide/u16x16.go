package wide

// Lanes is the number of elements in a U16x16.
const Lanes = 16

// U16x16 represents 16 uint16 values for SIMD-style operations.
// Channel values are kept in [0, 255]; products of two channels fit in 16 bits.
type U16x16 [Lanes]uint16

// Add performs element-wise addition.
func (v U16x16) Add(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// MulDiv255 computes (v * other) / 255 for each element with truncation.
// This is one term of the straight-alpha over operator.
//
// Formula: (x + 1 + (x >> 8)) >> 8
//
// The result equals x / 255 for every x in [0, 65025], the full range of a
// product of two bytes, so it can stand in for integer division.
func (v U16x16) MulDiv255(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		x := uint32(v[i]) * uint32(other[i])
		result[i] = uint16((x + 1 + (x >> 8)) >> 8) // #nosec G115
	}
	return result
}

// Inv computes 255 - v for each element (inverse alpha).
func (v U16x16) Inv() U16x16 {
	var result U16x16
	for i := range v {
		result[i] = 255 - v[i]
	}
	return result
}

// Clamp clamps each element to [0, maxVal].
func (v U16x16) Clamp(maxVal uint16) U16x16 {
	var result U16x16
	for i := range v {
		if v[i] > maxVal {
			result[i] = maxVal
		} else {
			result[i] = v[i]
		}
	}
	return result
}
