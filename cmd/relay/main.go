// cmd/relay/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"adf-relay/internal/adf"
	"adf-relay/internal/common/config"
	"adf-relay/internal/common/database"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/common/observability"
	"adf-relay/internal/dedupe"
	"adf-relay/internal/ghl"
	"adf-relay/internal/mailer"
	"adf-relay/internal/pipeline"
	"adf-relay/internal/server"
	"adf-relay/internal/store"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ADF lead relay...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if cfg.Logging.Level != "" {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		defer zapLog.Sync()
		log = logger.NewZapAdapter(zapLog)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Dedup backing: redis when configured, in-memory otherwise ---
	var seen dedupe.Set
	if cfg.Redis.Address != "" {
		redis, err := database.NewRedis(cfg.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		defer redis.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redis.Ping(pingCtx)
		cancel()
		if err != nil {
			zapLog.Fatal("redis ping failed", zap.Error(err))
		}

		seen = dedupe.NewRedisSet(redis, cfg.Dedupe.KeyPrefix, time.Duration(cfg.Dedupe.TTL)*time.Minute)
		zapLog.Info("Redis dedup store connected", zap.String("addr", cfg.Redis.Address))
	} else {
		seen = dedupe.NewMemorySet()
		zapLog.Info("Using in-memory dedup store")
	}

	// --- Delivery backend ---
	var sender mailer.Sender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = mailer.NewSESSender(ctx, cfg.Email.SES.Region, log)
		if err != nil {
			zapLog.Fatal("SES client failed", zap.Error(err))
		}
	default:
		sender = mailer.NewSMTPSender(cfg.Email, log)
	}

	attachmentName := filepath.Base(cfg.ADF.OutputPath)
	notifier := mailer.NewNotifier(sender, cfg.Email, attachmentName, log)

	transformer := adf.NewTransformer(cfg.ADF, log)
	fileStore := store.NewFileStore(cfg.ADF.OutputPath)
	pipe := pipeline.New(transformer, fileStore, notifier, obs, log)

	// --- Startup batch: pull the current CRM contacts and relay them ---
	if cfg.App.BatchOnStart {
		client := ghl.NewClient(cfg.GHL, log)
		batchCtx, cancel := context.WithTimeout(ctx, 2*config.GetDuration(cfg.GHL.Timeout))
		leads := client.FetchContacts(batchCtx)
		if len(leads) > 0 {
			if err := pipe.Process(batchCtx, leads, "batch"); err != nil && !errors.Is(err, adf.ErrNoLeads) {
				zapLog.Error("Startup batch failed", zap.Error(err))
			}
		} else {
			zapLog.Info("Startup batch empty, nothing to relay")
		}
		cancel()
	}

	// --- HTTP server ---
	handler := server.NewHandler(pipe, seen, log)
	srv := server.New(cfg.Server, handler, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("ADF lead relay stopped gracefully")
}
