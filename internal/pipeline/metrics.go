package pipeline

import (
	"context"

	"github.com/thiccmc/renskin/cache"
)

// Provenance tells how the returned bytes were produced.
type Provenance string

const (
	// Rendered is the 8×8 face.
	Rendered Provenance = "rendered"

	// Upscaled is the face replicated by a scale factor.
	Upscaled Provenance = "upscaled"
)

// MetricsSink receives pipeline events. Implementations must be safe for
// concurrent use.
type MetricsSink interface {
	// CacheHit and CacheMiss report a lookup in one tier.
	CacheHit(ctx context.Context, ns cache.Namespace)
	CacheMiss(ctx context.Context, ns cache.Namespace)

	// PersistFailed reports a write that was dropped.
	PersistFailed(ctx context.Context, ns cache.Namespace)

	// Fallback reports that the default texture replaced a failed lookup.
	Fallback(ctx context.Context)

	// Served reports a successful request.
	Served(ctx context.Context, p Provenance)

	// Failed reports a failed request by Class.
	Failed(ctx context.Context, class string)
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) CacheHit(context.Context, cache.Namespace)      {}
func (NopMetrics) CacheMiss(context.Context, cache.Namespace)     {}
func (NopMetrics) PersistFailed(context.Context, cache.Namespace) {}
func (NopMetrics) Fallback(context.Context)                       {}
func (NopMetrics) Served(context.Context, Provenance)             {}
func (NopMetrics) Failed(context.Context, string)                 {}
