package pipeline

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Scales lists the accepted upscale factors.
var Scales = [...]int{1, 2, 4, 8, 16}

var identityPattern = regexp.MustCompile(`^[a-z0-9_]{3,16}$`)

// maxIdentityBytes bounds the input before case mapping: a valid identity has
// at most 16 runes of at most 4 bytes each.
const maxIdentityBytes = 16 * 4

// NormalizeIdentity lowercases identity and validates the result.
// Letters outside ASCII that lowercase into it, such as the Kelvin sign, are
// accepted under their ASCII form.
func NormalizeIdentity(identity string) (string, error) {
	if len(identity) > maxIdentityBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidIdentity, len(identity))
	}
	// A Caser may hold state, so each call gets its own.
	lower := cases.Lower(language.Und).String(identity)
	if !identityPattern.MatchString(lower) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}
	return lower, nil
}

// ClampScale returns scale if it is one of Scales, otherwise 1.
func ClampScale(scale int) int {
	for _, s := range Scales {
		if s == scale {
			return scale
		}
	}
	return 1
}
