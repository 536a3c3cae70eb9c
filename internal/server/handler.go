// Package server exposes the render pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/internal/pipeline"
)

const poweredBy = "ThiccMC/renskin"

// Renderer produces face images. *pipeline.Pipeline implements it.
type Renderer interface {
	Handle(ctx context.Context, identity string, scale int) (pipeline.Result, error)
}

// Handler serves /face and /healthz.
type Handler struct {
	renderer     Renderer
	logger       *slog.Logger
	placeholders map[int][]byte
	mux          *http.ServeMux
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the request logger. Defaults to renskin.Logger().
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a Handler rendering through r.
func NewHandler(r Renderer, opts ...HandlerOption) (*Handler, error) {
	if r == nil {
		return nil, errors.New("server: renderer is required")
	}
	placeholders, err := renderPlaceholders()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	h := &Handler{
		renderer:     r,
		logger:       renskin.Logger(),
		placeholders: placeholders,
		mux:          http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}
	// GET patterns also match HEAD; other methods get 405 from the mux.
	h.mux.HandleFunc("GET /face", h.face)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (h *Handler) face(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	identity := query.Get("username")
	scale := 1
	if raw := query.Get("scale"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			scale = n
		}
	}

	res, err := h.renderer.Handle(r.Context(), identity, scale)
	if err != nil {
		h.fail(w, r, identity, pipeline.ClampScale(scale), err)
		return
	}

	h.logger.DebugContext(r.Context(), "server: face",
		slog.String("identity", identity),
		slog.Int("scale", scale),
		slog.String("provenance", string(res.Provenance)),
		slog.Bool("cache_hit", res.CacheHit),
	)
	header := w.Header()
	header.Set("Content-Type", "image/png")
	header.Set("Cache-Control", "public")
	header.Set("X-Powered-By", poweredBy)
	header.Set("X-Renskin-Provenance", string(res.Provenance))
	header.Set("Content-Length", strconv.Itoa(len(res.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Bytes)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, identity string, scale int, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, pipeline.ErrInvalidIdentity):
		http.Error(w, "invalid username", http.StatusBadRequest)

	case pipeline.Degradable(err):
		h.logger.InfoContext(ctx, "server: serving placeholder",
			slog.String("identity", identity),
			slog.String("class", pipeline.Class(err)),
			slog.String("err", err.Error()),
		)
		header := w.Header()
		if errors.Is(err, pipeline.ErrNotFound) {
			header.Set("X-Not-Ok", "no entry")
		}
		body := h.placeholders[scale]
		header.Set("Content-Type", "image/png")
		header.Set("Cache-Control", "no-cache")
		header.Set("X-Powered-By", poweredBy)
		header.Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(body)

	default:
		h.logger.ErrorContext(ctx, "server: render failed",
			slog.String("identity", identity),
			slog.String("class", pipeline.Class(err)),
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
