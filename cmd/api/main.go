package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/logger"
	"github.com/emilythestrangee/blog-platform/backend/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg)
	entry := logger.Service(log, cfg)

	db, err := database.New(cfg, log)
	if err != nil {
		entry.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			entry.WithError(err).Error("Failed to close database")
		}
	}()

	if err := db.Migrate(); err != nil {
		entry.WithError(err).Fatal("Failed to migrate database")
	}
	if err := database.Seed(context.Background(), db.GetDB(), cfg, log); err != nil {
		entry.WithError(err).Fatal("Failed to seed database")
	}

	srv, err := server.NewServer(cfg, log, db)
	if err != nil {
		entry.WithError(err).Fatal("Failed to create server")
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		entry.WithField("addr", srv.Addr).Info("🚀 Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		entry.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errChan:
		entry.WithError(err).Error("Server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		entry.WithError(err).Error("Server forced to shut down")
		return
	}
	entry.Info("Server stopped gracefully")
}
