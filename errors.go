package renskin

import "errors"

var (
	// ErrOutOfBounds is returned when a region does not fit horizontally in
	// the atlas, or has non-positive size.
	ErrOutOfBounds = errors.New("renskin: region out of bounds")

	// ErrInvalidScale is returned by Upscale for factors below 1.
	ErrInvalidScale = errors.New("renskin: invalid scale")
)
