package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/cache"
	"github.com/thiccmc/renskin/internal/profile"
	"github.com/thiccmc/renskin/internal/texture"
)

const tracerName = "github.com/thiccmc/renskin/internal/pipeline"

// Store is the subset of cache.Store the pipeline uses.
type Store interface {
	Get(k cache.Key) ([]byte, bool, error)
	Has(k cache.Key) (bool, error)
	Put(k cache.Key, data []byte) error
}

// Fetcher downloads a texture atlas.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Composer builds a face from an atlas. *renskin.Compositor implements it.
type Composer interface {
	Compose(atlas *renskin.Pixmap) (*renskin.Pixmap, error)
}

// Result is the outcome of a successful request.
type Result struct {
	Bytes      []byte
	Provenance Provenance

	// CacheHit is true when the rendered tier already held the face.
	CacheHit bool
}

// Pipeline serves face requests. It holds no per-request state and is safe
// for concurrent use; concurrent misses for one identity do duplicate work
// and the last write wins.
type Pipeline struct {
	store       Store
	lookup      profile.Lookup
	fetcher     Fetcher
	composer    Composer
	metrics     MetricsSink
	fallbackURL string
	tracer      trace.Tracer
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithComposer sets the face compositor. Defaults to renskin.NewCompositor().
func WithComposer(c Composer) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.composer = c
		}
	}
}

// WithMetrics sets the metrics sink. Defaults to NopMetrics.
func WithMetrics(m MetricsSink) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithFallbackURL enables the default texture. When a lookup fails the
// texture at url (expanded by texture.DefaultURL) is rendered instead and
// cached as raw/{identity}. An empty url disables the fallback.
func WithFallbackURL(url string) Option {
	return func(p *Pipeline) {
		p.fallbackURL = url
	}
}

// WithTracerProvider sets where spans go. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithLogger sets the logger. Defaults to renskin.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline over store, resolving identities with lookup and
// downloading atlases with fetcher.
func New(store Store, lookup profile.Lookup, fetcher Fetcher, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("pipeline: store is required")
	}
	if lookup == nil {
		return nil, errors.New("pipeline: lookup is required")
	}
	if fetcher == nil {
		return nil, errors.New("pipeline: fetcher is required")
	}
	p := &Pipeline{
		store:    store,
		lookup:   lookup,
		fetcher:  fetcher,
		composer: renskin.NewCompositor(),
		metrics:  NopMetrics{},
		tracer:   otel.Tracer(tracerName),
		logger:   renskin.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Handle renders the face of identity at scale. Scales outside Scales are
// served at 1.
func (p *Pipeline) Handle(ctx context.Context, identity string, scale int) (Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.Handle")
	defer span.End()

	res, err := p.handle(ctx, identity, scale)
	if err != nil {
		class := Class(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, class)
		p.metrics.Failed(ctx, class)
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("renskin.provenance", string(res.Provenance)),
		attribute.Bool("renskin.cache_hit", res.CacheHit),
	)
	p.metrics.Served(ctx, res.Provenance)
	return res, nil
}

func (p *Pipeline) handle(ctx context.Context, identity string, scale int) (Result, error) {
	id, err := NormalizeIdentity(identity)
	if err != nil {
		return Result{}, err
	}
	scale = ClampScale(scale)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("renskin.identity", id),
		attribute.Int("renskin.scale", scale),
	)

	renderedKey := cache.RenderedKey(id)
	hit, err := p.store.Has(renderedKey)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var face *renskin.Pixmap
	var rendered []byte
	if hit {
		p.metrics.CacheHit(ctx, cache.Rendered)
	} else {
		p.metrics.CacheMiss(ctx, cache.Rendered)
		face, rendered, err = p.render(ctx, id)
		if err != nil {
			return Result{}, err
		}
		p.persist(ctx, renderedKey, rendered)
	}

	if scale == 1 {
		if rendered == nil {
			if rendered, err = p.read(ctx, renderedKey); err != nil {
				return Result{}, err
			}
		}
		return Result{Bytes: rendered, Provenance: Rendered, CacheHit: hit}, nil
	}

	scaled, err := p.upscaled(ctx, id, scale, face)
	if err != nil {
		return Result{}, err
	}
	return Result{Bytes: scaled, Provenance: Upscaled, CacheHit: hit}, nil
}

// render produces a fresh face and its encoded bytes for id.
func (p *Pipeline) render(ctx context.Context, id string) (*renskin.Pixmap, []byte, error) {
	src, err := p.atlas(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.compose")
	defer span.End()

	atlas, err := renskin.DecodeAtlas(src.data)
	if err != nil {
		return nil, nil, spanError(span, fmt.Errorf("%w: %s: %w", ErrDecode, src.key, err))
	}
	face, err := p.composer.Compose(atlas)
	if err != nil {
		return nil, nil, spanError(span, fmt.Errorf("%w: %s: %w", ErrDecode, src.key, err))
	}
	data, err := renskin.EncodeFace(face)
	if err != nil {
		return nil, nil, spanError(span, fmt.Errorf("%w: %w", ErrEncode, err))
	}

	// A fetched atlas is kept only once it has proven usable.
	if src.fresh {
		p.persist(ctx, src.key, src.data)
	}
	return face, data, nil
}

type atlasSource struct {
	key   cache.Key
	data  []byte
	fresh bool
}

// atlas resolves id to atlas bytes, from the raw tier or upstream.
func (p *Pipeline) atlas(ctx context.Context, id string) (atlasSource, error) {
	prof, err := p.resolve(ctx, id)
	if err == nil {
		key := cache.RawKey(prof.ID)
		if kerr := key.Validate(); kerr != nil {
			return atlasSource{}, fmt.Errorf("%w: profile of %s: %w", ErrUpstream, id, kerr)
		}
		return p.raw(ctx, key, prof.TextureURL)
	}

	if p.fallbackURL == "" {
		return atlasSource{}, err
	}
	p.logger.InfoContext(ctx, "pipeline: using default texture",
		slog.String("identity", id),
		slog.String("err", err.Error()),
	)
	p.metrics.Fallback(ctx)

	src, ferr := p.raw(ctx, cache.RawKey(id), texture.DefaultURL(p.fallbackURL, id))
	if ferr != nil {
		if errors.Is(ferr, ErrIO) {
			return atlasSource{}, ferr
		}
		p.logger.WarnContext(ctx, "pipeline: default texture failed",
			slog.String("identity", id),
			slog.String("err", ferr.Error()),
		)
		return atlasSource{}, err
	}
	return src, nil
}

// resolve maps a lookup failure onto ErrNotFound or ErrUpstream.
func (p *Pipeline) resolve(ctx context.Context, id string) (profile.Profile, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.lookup")
	defer span.End()

	prof, err := p.lookup.Lookup(ctx, id)
	switch {
	case err == nil:
		return prof, nil
	case errors.Is(err, profile.ErrNotFound):
		return profile.Profile{}, spanError(span, fmt.Errorf("%w: %s: %w", ErrNotFound, id, err))
	default:
		return profile.Profile{}, spanError(span, fmt.Errorf("%w: lookup %s: %w", ErrUpstream, id, err))
	}
}

// raw returns the atlas under key, downloading it from url on a miss.
func (p *Pipeline) raw(ctx context.Context, key cache.Key, url string) (atlasSource, error) {
	data, ok, err := p.store.Get(key)
	if err != nil {
		return atlasSource{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if ok {
		p.metrics.CacheHit(ctx, cache.Raw)
		return atlasSource{key: key, data: data}, nil
	}
	p.metrics.CacheMiss(ctx, cache.Raw)

	ctx, span := p.tracer.Start(ctx, "pipeline.fetch")
	defer span.End()

	data, err = p.fetcher.Fetch(ctx, url)
	if err != nil {
		return atlasSource{}, spanError(span, fmt.Errorf("%w: fetch %s: %w", ErrUpstream, key, err))
	}
	return atlasSource{key: key, data: data, fresh: true}, nil
}

// upscaled returns the scaled face of id. face is the freshly rendered face,
// or nil when it has to be read back from the rendered tier.
func (p *Pipeline) upscaled(ctx context.Context, id string, scale int, face *renskin.Pixmap) ([]byte, error) {
	key := cache.ScaledKey(id, scale)
	data, ok, err := p.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if ok {
		p.metrics.CacheHit(ctx, cache.Scaled)
		return data, nil
	}
	p.metrics.CacheMiss(ctx, cache.Scaled)

	if face == nil {
		stored, err := p.read(ctx, cache.RenderedKey(id))
		if err != nil {
			return nil, err
		}
		if face, err = renskin.DecodePNG(stored); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, cache.RenderedKey(id), err)
		}
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.upscale",
		trace.WithAttributes(attribute.Int("renskin.scale", scale)))
	defer span.End()

	big, err := renskin.Upscale(face, scale)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("%w: %w", ErrEncode, err))
	}
	data, err = renskin.EncodeFace(big)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("%w: %w", ErrEncode, err))
	}
	p.persist(ctx, key, data)
	return data, nil
}

// read returns an entry that is known to exist. A missing entry is an I/O
// failure here, since it was removed after the existence check.
func (p *Pipeline) read(_ context.Context, key cache.Key) ([]byte, error) {
	data, ok, err := p.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s vanished", ErrIO, key)
	}
	return data, nil
}

// persist stores a fresh artifact. Failures are logged and counted; the
// request still succeeds.
func (p *Pipeline) persist(ctx context.Context, key cache.Key, data []byte) {
	if err := p.store.Put(key, data); err != nil {
		p.logger.WarnContext(ctx, "pipeline: persist failed",
			slog.String("key", key.String()),
			slog.String("err", err.Error()),
		)
		p.metrics.PersistFailed(ctx, key.Namespace)
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, Class(err))
	return err
}
