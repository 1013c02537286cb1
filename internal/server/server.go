// Package server runs the HTTP storefront with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/internal/bootstrap"
	"github.com/sedastudio/boutique/pkg/logger"
	"github.com/sedastudio/boutique/pkg/queue"
)

const shutdownGrace = 10 * time.Second

// Start boots the app, runs queue workers in-process and serves HTTP until
// SIGINT/SIGTERM, then drains in-flight requests before returning.
func Start() error {
	app, err := bootstrap.New()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 5)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           app.Router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("boutique listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
