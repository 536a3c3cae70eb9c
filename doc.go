// Package renskin renders player face thumbnails from Minecraft-style skin
// atlases.
//
// # Overview
//
// A skin is a 64-pixel-wide sprite atlas. The head's front face lives at
// (8,8) and an optional second "hat" layer at (40,8), both 8×8. renskin
// composites the hat over the face, forces the result opaque and can upscale
// it by an integer factor with nearest-neighbor replication.
//
// # Quick Start
//
//	atlas, err := renskin.DecodeAtlas(data)
//	if err != nil {
//		return err
//	}
//	face, err := renskin.Compose(atlas)
//	if err != nil {
//		return err
//	}
//	big, err := renskin.Upscale(face, 8) // 64×64
//
// # Architecture
//
//   - Public API: Pixel, Pixmap, Extract, Compose, Upscale
//   - Internal: blend (over operator, scalar and 16-lane), wide (lane types),
//     image (codecs)
//   - Service: cache (tiered artifact store), internal/pipeline (request
//     orchestration), internal/server (HTTP)
//
// # Logging
//
// renskin is silent by default. Call SetLogger to route diagnostics from the
// library and its service packages to a slog handler.
package renskin
