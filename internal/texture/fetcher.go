// Package texture downloads skin atlases over HTTP.
package texture

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxBytes caps a texture body. Real atlases are a few kilobytes.
const DefaultMaxBytes = 1 << 20

// DefaultTimeout bounds a single fetch when the caller's context has no
// deadline of its own.
const DefaultTimeout = 10 * time.Second

var (
	// ErrStatus is returned for a non-2xx response.
	ErrStatus = errors.New("texture: unexpected status")

	// ErrTooLarge is returned when a body exceeds the configured cap.
	ErrTooLarge = errors.New("texture: body too large")
)

// Fetcher retrieves texture bytes by URL.
type Fetcher struct {
	client   *nethttp.Client
	headers  nethttp.Header
	maxBytes int64
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for requests.
func WithClient(client *nethttp.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		if f.headers == nil {
			f.headers = make(nethttp.Header)
		}
		f.headers.Set(key, value)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

// WithMaxBytes caps the accepted body size. Non-positive values keep the
// default.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithTimeout bounds each fetch. Zero disables the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   nethttp.DefaultClient,
		maxBytes: DefaultMaxBytes,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = nethttp.DefaultClient
	}
	return f
}

// Fetch downloads the body at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: build request: %w", err)
	}
	for key, values := range f.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: get %s: %w", redact(rawURL), err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, redact(rawURL))
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", redact(rawURL), err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, f.maxBytes)
	}
	return data, nil
}

// redact drops the query string and credentials from u for error messages.
func redact(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return "<invalid url>"
	}
	parsed.User = nil
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// DefaultURL expands a fallback texture template for identity. Templates
// without a %s verb are returned unchanged, so a single static texture can be
// configured.
func DefaultURL(template, identity string) string {
	if !strings.Contains(template, "%s") {
		return template
	}
	return strings.ReplaceAll(template, "%s", url.PathEscape(identity))
}
