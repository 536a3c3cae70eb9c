package pipeline

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/cache"
	"github.com/thiccmc/renskin/internal/profile"
)

var (
	red      = renskin.Pixel{R: 255, A: 255}
	halfBlue = renskin.Pixel{B: 255, A: 128}
	golden   = renskin.Pixel{R: 127, B: 128, A: 255}
)

// atlasPNG encodes a skin whose face is base and whose hat is overlay.
func atlasPNG(t *testing.T, base, overlay renskin.Pixel) []byte {
	t.Helper()
	atlas := renskin.NewPixmap(renskin.AtlasWidth, renskin.AtlasHeight)
	paint := func(r image.Rectangle, c renskin.Pixel) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				atlas.SetPixel(x, y, c)
			}
		}
	}
	paint(renskin.FaceRegion, base)
	paint(renskin.OverlayRegion, overlay)
	data, err := renskin.EncodePNG(atlas)
	require.NoError(t, err)
	return data
}

type memStore struct {
	mu      sync.Mutex
	entries map[cache.Key][]byte
	puts    map[cache.Namespace]int
	putErr  error
	getErr  error
}

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[cache.Key][]byte),
		puts:    make(map[cache.Namespace]int),
	}
}

func (s *memStore) Get(k cache.Key) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	data, ok := s.entries[k]
	return data, ok, nil
}

func (s *memStore) Has(k cache.Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return false, s.getErr
	}
	_, ok := s.entries[k]
	return ok, nil
}

func (s *memStore) Put(k cache.Key, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := k.Validate(); err != nil {
		return err
	}
	s.puts[k.Namespace]++
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[k] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) putCount(ns cache.Namespace) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts[ns]
}

type fakeLookup struct {
	mu       sync.Mutex
	profiles map[string]profile.Profile
	err      error
	calls    []string
}

func (l *fakeLookup) Lookup(_ context.Context, identity string) (profile.Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, identity)
	if l.err != nil {
		return profile.Profile{}, l.err
	}
	p, ok := l.profiles[identity]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	calls  []string
}

var errNoBody = errors.New("no body")

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return nil, errNoBody
	}
	return body, nil
}

type countingComposer struct {
	inner *renskin.Compositor
	calls int
}

func (c *countingComposer) Compose(atlas *renskin.Pixmap) (*renskin.Pixmap, error) {
	c.calls++
	return c.inner.Compose(atlas)
}

type recordingMetrics struct {
	mu       sync.Mutex
	hits     map[cache.Namespace]int
	misses   map[cache.Namespace]int
	dropped  map[cache.Namespace]int
	fallback int
	served   map[Provenance]int
	failed   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		hits:    make(map[cache.Namespace]int),
		misses:  make(map[cache.Namespace]int),
		dropped: make(map[cache.Namespace]int),
		served:  make(map[Provenance]int),
		failed:  make(map[string]int),
	}
}

func (m *recordingMetrics) CacheHit(_ context.Context, ns cache.Namespace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[ns]++
}

func (m *recordingMetrics) CacheMiss(_ context.Context, ns cache.Namespace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses[ns]++
}

func (m *recordingMetrics) PersistFailed(_ context.Context, ns cache.Namespace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped[ns]++
}

func (m *recordingMetrics) Fallback(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback++
}

func (m *recordingMetrics) Served(_ context.Context, p Provenance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.served[p]++
}

func (m *recordingMetrics) Failed(_ context.Context, class string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[class]++
}

const (
	notchID  = "069a79f444e94726a5befca90e38aaf5"
	notchURL = "http://textures.test/notch"
	steveURL = "http://textures.test/steve"
)

type harness struct {
	store    *memStore
	lookup   *fakeLookup
	fetcher  *fakeFetcher
	composer *countingComposer
	metrics  *recordingMetrics
	p        *Pipeline
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		store: newMemStore(),
		lookup: &fakeLookup{profiles: map[string]profile.Profile{
			"notch": {ID: notchID, TextureURL: notchURL},
		}},
		fetcher: &fakeFetcher{bodies: map[string][]byte{
			notchURL: atlasPNG(t, red, halfBlue),
		}},
		composer: &countingComposer{inner: renskin.NewCompositor()},
		metrics:  newRecordingMetrics(),
	}
	opts = append([]Option{WithComposer(h.composer), WithMetrics(h.metrics)}, opts...)
	p, err := New(h.store, h.lookup, h.fetcher, opts...)
	require.NoError(t, err)
	h.p = p
	return h
}
