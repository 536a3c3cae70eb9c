package cache

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot be mapped to a path.
var ErrInvalidKey = errors.New("cache: invalid key")

// Namespace identifies a cache tier.
type Namespace uint8

const (
	// Raw holds skin atlases keyed by profile id.
	Raw Namespace = iota
	// Rendered holds 8×8 faces keyed by identity.
	Rendered
	// Scaled holds upscaled faces keyed by identity and scale.
	Scaled

	namespaceCount
)

var namespaceNames = [namespaceCount]string{
	Raw:      "raw",
	Rendered: "rendered",
	Scaled:   "scaled",
}

// String returns the directory name of the namespace.
func (n Namespace) String() string {
	if n >= namespaceCount {
		return fmt.Sprintf("Namespace(%d)", n)
	}
	return namespaceNames[n]
}

// Namespaces lists every tier in order.
func Namespaces() []Namespace {
	return []Namespace{Raw, Rendered, Scaled}
}

// Key addresses one cache entry.
type Key struct {
	Namespace Namespace
	ID        string
	Scale     int // only for Scaled
}

// RawKey addresses the atlas of a profile.
func RawKey(profileID string) Key {
	return Key{Namespace: Raw, ID: profileID}
}

// RenderedKey addresses the face of an identity. The identity is lowercased.
func RenderedKey(identity string) Key {
	return Key{Namespace: Rendered, ID: strings.ToLower(identity)}
}

// ScaledKey addresses the upscaled face of an identity. The identity is
// lowercased.
func ScaledKey(identity string, scale int) Key {
	return Key{Namespace: Scaled, ID: strings.ToLower(identity), Scale: scale}
}

// Validate reports whether k can be stored.
// IDs must be non-empty and must not contain path separators or dot segments.
func (k Key) Validate() error {
	if k.Namespace >= namespaceCount {
		return fmt.Errorf("%w: %s", ErrInvalidKey, k.Namespace)
	}
	if k.ID == "" || k.ID == "." || k.ID == ".." || strings.ContainsAny(k.ID, `/\`) || strings.ContainsRune(k.ID, 0) {
		return fmt.Errorf("%w: id %q", ErrInvalidKey, k.ID)
	}
	switch {
	case k.Namespace == Scaled && k.Scale < 2:
		return fmt.Errorf("%w: scale %d", ErrInvalidKey, k.Scale)
	case k.Namespace != Scaled && k.Scale != 0:
		return fmt.Errorf("%w: scale on %s key", ErrInvalidKey, k.Namespace)
	}
	return nil
}

// String returns a log-friendly form such as "scaled/notch.4".
func (k Key) String() string {
	if k.Namespace == Scaled {
		return fmt.Sprintf("%s/%s.%d", k.Namespace, k.ID, k.Scale)
	}
	return k.Namespace.String() + "/" + k.ID
}
