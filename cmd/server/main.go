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

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/logger"
)

func main() {
	logger.Info("starting talentmatch server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// serve health checks while the catalogue is being embedded
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	loadCtx, loadCancel := context.WithCancel(context.Background())
	defer loadCancel()

	// a failed first load leaves nothing to serve
	go func() {
		if err := srv.LoadInitialResources(loadCtx); err != nil {
			logger.FatalErr(err, "initial resource load failed")
		}
	}()

	// SIGHUP reloads the catalogue; SIGINT/SIGTERM shut down
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for running := true; running; {
		select {
		case <-reload:
			logger.Info("reloading catalogue")

			go func() {
				if err := srv.LoadResources(loadCtx); err != nil {
					logger.ErrorErr(err, "catalogue reload failed, keeping current resources")
				}
			}()
		case <-quit:
			running = false
		}
	}

	logger.Info("shutting down server")

	loadCancel()

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
