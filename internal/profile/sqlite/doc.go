// Package sqlite provides the profile lookup backed by SQLite.
//
// The schema mirrors the upstream player database: players point at a named
// skin, and a skin row holds the base64 textures property.
package sqlite
