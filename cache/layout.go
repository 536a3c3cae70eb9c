package cache

import (
	"path/filepath"
	"strconv"
)

// PathLayout maps keys to slash-free relative file paths.
// Implementations receive keys that already passed Validate.
type PathLayout interface {
	Path(k Key) string
}

// FlatLayout stores each namespace as one flat directory:
//
//	raw/{id}{ext}
//	rendered/{id}{ext}
//	scaled/{id}.{scale}{ext}
type FlatLayout struct {
	Ext string
}

// DefaultLayout is FlatLayout with a ".png" extension.
var DefaultLayout PathLayout = FlatLayout{Ext: ".png"}

// Path implements PathLayout.
func (l FlatLayout) Path(k Key) string {
	name := k.ID
	if k.Namespace == Scaled {
		name += "." + strconv.Itoa(k.Scale)
	}
	return filepath.Join(k.Namespace.String(), name+l.Ext)
}
