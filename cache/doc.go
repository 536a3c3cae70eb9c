// Package cache stores rendered skin artifacts on disk.
//
// The store has three tiers, each a namespace of encoded images:
//
//	raw/{profile_id}          downloaded skin atlas
//	rendered/{identity}       8×8 face
//	scaled/{identity}.{scale} upscaled face
//
// The presence of a file is the only validity signal: there is no metadata,
// no checksum and no expiry. Writes land in a temporary file that is renamed
// into place, and concurrent writers of the same key simply overwrite each
// other; renders of the same atlas are byte-identical.
//
// The mapping from Key to file path lives behind PathLayout so the storage
// scheme can change without touching callers.
package cache
