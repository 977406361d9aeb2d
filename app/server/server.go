// Package server runs the mock task backend as a real HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/app/config"
	"taskboard/app/logging"
	"taskboard/app/routes"
)

// Run opens the configured store and serves the backend on cfg.Addr until ctx is done.
func Run(ctx context.Context, cfg config.Config, log *logging.Logger) error {
	kv, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer kv.Close()

	router, err := routes.NewBackend(ctx, kv, log)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Server is running on %s (store=%s)", cfg.Addr, cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
