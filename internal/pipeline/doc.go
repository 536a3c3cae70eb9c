// Package pipeline turns a render request into face image bytes.
//
// A request flows through the tiers of a cache.Store:
//
//	rendered/{identity}        checked first
//	raw/{profile id}           atlas, fetched on a miss
//	scaled/{identity}.{scale}  derived from the rendered face
//
// Every stage is a trace span on the configured tracer and reports to a
// MetricsSink. Failures are classified with sentinel errors so the transport
// layer can pick a response without inspecting messages.
package pipeline
