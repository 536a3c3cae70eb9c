package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thiccmc/renskin"
)

// Timeouts bound the HTTP server.
type Timeouts struct {
	ReadHeader time.Duration
	Write      time.Duration
	Shutdown   time.Duration
}

// DefaultTimeouts are used for zero fields of Timeouts.
var DefaultTimeouts = Timeouts{
	ReadHeader: 5 * time.Second,
	Write:      30 * time.Second,
	Shutdown:   10 * time.Second,
}

func (t Timeouts) withDefaults() Timeouts {
	if t.ReadHeader <= 0 {
		t.ReadHeader = DefaultTimeouts.ReadHeader
	}
	if t.Write <= 0 {
		t.Write = DefaultTimeouts.Write
	}
	if t.Shutdown <= 0 {
		t.Shutdown = DefaultTimeouts.Shutdown
	}
	return t
}

// Serve runs an HTTP server for h on ln until ctx ends.
//
// On cancellation it performs a bounded shutdown so in-flight requests are
// drained before the listener is closed for good.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, timeouts Timeouts) error {
	if ln == nil {
		return errors.New("server: listener is required")
	}
	timeouts = timeouts.withDefaults()
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: timeouts.ReadHeader,
		WriteTimeout:      timeouts.Write,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		renskin.Logger().Info("server: listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, timeouts Timeouts) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, timeouts)
}
