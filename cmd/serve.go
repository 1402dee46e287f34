package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/server"
	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// Serve runs both sync directions as a daemon: the webhook server receives
// Todoist events while a poller mirrors Notion pages on the configured
// interval. Shuts down gracefully on SIGINT/SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.bridge == nil {
		return fmt.Errorf("%w: both todoist and notion credentials must be configured", shared.ErrMissingCredentials)
	}

	logger := r.logger
	if r.config.Logging.Path != "" {
		logger = shared.NewFileLogger(r.config.Logging.Path)
		r.SetLogger(logger)
		r.bridge.SetLogger(logger)
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.Logging(logger), server.CORS())
	router.Handle("POST", "/api/todoist/webhook",
		server.NewWebhookHandler(r.bridge, r.config.Credentials.Todoist.ClientSecret, logger))
	router.Handle("GET", "/health", &server.HealthHandler{})

	srv := &http.Server{Addr: r.config.Server.Addr(), Handler: router}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	poller := tasks.NewPoller(r.bridge, r.config.Sync.Interval(), logger)
	go poller.Run(pollCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()
	return srv.Shutdown(shutdownCtx)
}
