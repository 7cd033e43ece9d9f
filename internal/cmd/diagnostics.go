package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // profiling
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServeDiagnostics serves pprof and the prometheus /metrics endpoint on addr
// until ctx is done.
func ServeDiagnostics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving diagnostics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
