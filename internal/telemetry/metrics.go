package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/thiccmc/renskin/cache"
	"github.com/thiccmc/renskin/internal/pipeline"
)

const meterName = "github.com/thiccmc/renskin"

// MeterSink records pipeline events on OpenTelemetry counters.
type MeterSink struct {
	lookups  metric.Int64Counter
	dropped  metric.Int64Counter
	fallback metric.Int64Counter
	requests metric.Int64Counter
}

var _ pipeline.MetricsSink = (*MeterSink)(nil)

// NewMeterSink creates the counters on mp. A nil mp uses the global provider.
func NewMeterSink(mp metric.MeterProvider) (*MeterSink, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	var s MeterSink
	var errs []error
	var err error

	s.lookups, err = meter.Int64Counter("renskin.cache.lookups",
		metric.WithDescription("Cache tier lookups by namespace and result."))
	errs = append(errs, err)
	s.dropped, err = meter.Int64Counter("renskin.cache.persist_failures",
		metric.WithDescription("Fresh artifacts that could not be written."))
	errs = append(errs, err)
	s.fallback, err = meter.Int64Counter("renskin.fallbacks",
		metric.WithDescription("Renders that used the default texture."))
	errs = append(errs, err)
	s.requests, err = meter.Int64Counter("renskin.requests",
		metric.WithDescription("Completed render requests by outcome."))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *MeterSink) CacheHit(ctx context.Context, ns cache.Namespace) {
	s.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("namespace", ns.String()),
		attribute.String("result", "hit"),
	))
}

func (s *MeterSink) CacheMiss(ctx context.Context, ns cache.Namespace) {
	s.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("namespace", ns.String()),
		attribute.String("result", "miss"),
	))
}

func (s *MeterSink) PersistFailed(ctx context.Context, ns cache.Namespace) {
	s.dropped.Add(ctx, 1, metric.WithAttributes(attribute.String("namespace", ns.String())))
}

func (s *MeterSink) Fallback(ctx context.Context) {
	s.fallback.Add(ctx, 1)
}

func (s *MeterSink) Served(ctx context.Context, p pipeline.Provenance) {
	s.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "ok"),
		attribute.String("provenance", string(p)),
	))
}

func (s *MeterSink) Failed(ctx context.Context, class string) {
	s.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "error"),
		attribute.String("class", class),
	))
}
