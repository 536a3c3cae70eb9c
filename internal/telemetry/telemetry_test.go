package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/thiccmc/renskin/cache"
	"github.com/thiccmc/renskin/internal/pipeline"
)

// collector accepts OTLP/HTTP exports and records the request paths.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "renskin", "  ")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupInstallsProviders(t *testing.T) {
	col := &collector{}
	srv := httptest.NewServer(col)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	shutdown, err := Setup(ctx, "renskin", srv.URL+"/")
	require.NoError(t, err)

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())

	sink, err := NewMeterSink(nil)
	require.NoError(t, err)
	sink.CacheMiss(ctx, cache.Rendered)

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, col.seen(), metricsPath)
}

func TestMeterSinkRecords(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	sink, err := NewMeterSink(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	ctx := context.Background()
	sink.CacheHit(ctx, cache.Raw)
	sink.CacheHit(ctx, cache.Raw)
	sink.CacheMiss(ctx, cache.Rendered)
	sink.PersistFailed(ctx, cache.Scaled)
	sink.Fallback(ctx)
	sink.Fallback(ctx)
	sink.Served(ctx, pipeline.Upscaled)
	sink.Failed(ctx, "not_found")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	assert.EqualValues(t, 2, counterValue(t, rm, "renskin.cache.lookups",
		attribute.String("namespace", "raw"), attribute.String("result", "hit")))
	assert.EqualValues(t, 1, counterValue(t, rm, "renskin.cache.lookups",
		attribute.String("namespace", "rendered"), attribute.String("result", "miss")))
	assert.EqualValues(t, 0, counterValue(t, rm, "renskin.cache.lookups",
		attribute.String("namespace", "scaled"), attribute.String("result", "hit")))
	assert.EqualValues(t, 1, counterValue(t, rm, "renskin.cache.persist_failures",
		attribute.String("namespace", "scaled")))
	assert.EqualValues(t, 2, counterValue(t, rm, "renskin.fallbacks"))
	assert.EqualValues(t, 1, counterValue(t, rm, "renskin.requests",
		attribute.String("outcome", "ok"), attribute.String("provenance", "upscaled")))
	assert.EqualValues(t, 1, counterValue(t, rm, "renskin.requests",
		attribute.String("outcome", "error"), attribute.String("class", "not_found")))
}

func TestMeterSinkGlobalProvider(t *testing.T) {
	sink, err := NewMeterSink(nil)
	require.NoError(t, err)
	assert.NotNil(t, sink)
}

// counterValue returns the data point of the named int64 sum whose attributes
// are exactly attrs, or 0 when there is none.
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	want := attribute.NewSet(attrs...)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is %T", name, m.Data)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					return dp.Value
				}
			}
		}
	}
	return 0
}
