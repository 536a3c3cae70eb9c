// Package app assembles the renskin service from its configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/cache"
	"github.com/thiccmc/renskin/internal/blend"
	"github.com/thiccmc/renskin/internal/config"
	"github.com/thiccmc/renskin/internal/pipeline"
	"github.com/thiccmc/renskin/internal/profile/sqlite"
	"github.com/thiccmc/renskin/internal/server"
	"github.com/thiccmc/renskin/internal/telemetry"
	"github.com/thiccmc/renskin/internal/texture"
)

const serviceName = "renskin"

// Service is the assembled request path plus the resources it owns.
type Service struct {
	Handler http.Handler

	profiles *sqlite.Store
	shutdown func(context.Context) error
}

// Close releases the profile store and flushes telemetry.
func (s *Service) Close(ctx context.Context) error {
	var firstErr error
	if s.profiles != nil {
		if err := s.profiles.Close(); err != nil {
			firstErr = fmt.Errorf("close profile store: %w", err)
		}
	}
	if s.shutdown != nil {
		if err := s.shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown telemetry: %w", err)
		}
	}
	return firstErr
}

// New builds the service described by cfg.
func New(ctx context.Context, cfg config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := renskin.Logger()

	shutdown, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	svc := &Service{shutdown: shutdown}

	store, err := cache.New(cfg.CacheDir)
	if err != nil {
		_ = svc.Close(ctx)
		return nil, err
	}
	profiles, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		_ = svc.Close(ctx)
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	svc.profiles = profiles

	sink, err := telemetry.NewMeterSink(nil)
	if err != nil {
		_ = svc.Close(ctx)
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	blender, _ := blend.ByName(cfg.Blender)
	fetcher := texture.NewFetcher(
		texture.WithUserAgent(cfg.UserAgent),
		texture.WithTimeout(cfg.FetchTimeout),
		texture.WithMaxBytes(cfg.MaxTextureBytes),
	)
	p, err := pipeline.New(store, profiles, fetcher,
		pipeline.WithComposer(renskin.NewCompositor(renskin.WithBlender(blender))),
		pipeline.WithMetrics(sink),
		pipeline.WithFallbackURL(cfg.FallbackURL()),
	)
	if err != nil {
		_ = svc.Close(ctx)
		return nil, err
	}

	handler, err := server.NewHandler(p)
	if err != nil {
		_ = svc.Close(ctx)
		return nil, err
	}
	svc.Handler = handler

	logger.Info("app: configured",
		slog.String("cache_dir", store.Root()),
		slog.String("db", cfg.DBPath),
		slog.String("blender", blender.Name()),
		slog.Bool("fallback", cfg.FallbackURL() != ""),
		slog.Bool("telemetry", cfg.OTelEndpoint != ""),
	)
	return svc, nil
}

// Run serves cfg.Bind until ctx ends.
func Run(ctx context.Context, cfg config.Config) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Bind)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Bind, err)
	}
	return RunListener(ctx, cfg, ln)
}

// RunListener serves on ln until ctx ends.
func RunListener(ctx context.Context, cfg config.Config, ln net.Listener) error {
	svc, err := New(ctx, cfg)
	if err != nil {
		_ = ln.Close()
		return err
	}
	serveErr := server.Serve(ctx, ln, svc.Handler, server.Timeouts{Shutdown: cfg.ShutdownTimeout})

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := svc.Close(closeCtx); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}
