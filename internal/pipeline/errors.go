package pipeline

import "errors"

var (
	// ErrInvalidIdentity is returned before any I/O for a malformed identity.
	ErrInvalidIdentity = errors.New("pipeline: invalid identity")

	// ErrNotFound is returned when the identity has no profile.
	ErrNotFound = errors.New("pipeline: not found")

	// ErrUpstream is returned when the lookup or texture fetch fails.
	ErrUpstream = errors.New("pipeline: upstream failure")

	// ErrIO is returned when an existing cache entry cannot be read.
	ErrIO = errors.New("pipeline: cache i/o")

	// ErrDecode is returned when fetched or stored bytes are not a usable image.
	ErrDecode = errors.New("pipeline: decode")

	// ErrEncode is returned when an artifact cannot be serialized.
	ErrEncode = errors.New("pipeline: encode")
)

// Degradable reports whether err should be answered with a placeholder image
// rather than an error response.
func Degradable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUpstream) || errors.Is(err, ErrDecode)
}

// Class returns a short, stable name for the failure class of err, suitable
// for metric attributes and log fields.
func Class(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidIdentity):
		return "invalid_identity"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEncode):
		return "encode"
	default:
		return "internal"
	}
}
