// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/attachments"
	"github.com/danielhkuo/labdesk/cliparse"
	"github.com/danielhkuo/labdesk/middleware"
	"github.com/danielhkuo/labdesk/router"
	"github.com/danielhkuo/labdesk/store"
	"github.com/danielhkuo/labdesk/store/mongostore"
	"github.com/danielhkuo/labdesk/store/sqlstore"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func openBackend(ctx context.Context, cfg cliparse.Config) (*store.Backend, error) {
	if cfg.DatabaseType == store.TypeMongo {
		return mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName, clock.WallClock)
	}
	conn, err := sqlstore.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return sqlstore.New(conn, clock.WallClock), nil
}

func openAttachments(ctx context.Context, cfg cliparse.Config) (attachments.Store, error) {
	if cfg.ObjectStorage() {
		return attachments.NewMinioStore(ctx, attachments.MinioConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
	}
	return attachments.NewFSStore(cfg.AttachmentDir)
}

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	files, err := openAttachments(ctx, cfg)
	if err != nil {
		slog.Error("attachment store unavailable", "error", err)
		os.Exit(1)
	}
	if cfg.ObjectStorage() {
		slog.Info("Attachment store ready", "bucket", cfg.S3Bucket)
	} else {
		slog.Info("Attachment store ready", "dir", cfg.AttachmentDir)
	}

	// Create router
	mux := router.NewRouter(backend, files, cfg, clock.WallClock)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(middleware.RequestID(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return
	}
	<-drained
	slog.Info("Server closed")
}
