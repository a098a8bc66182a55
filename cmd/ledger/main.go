package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"ledger/internal/cli"
	apphttp "ledger/internal/http"
	"ledger/internal/ledger"
	"ledger/internal/locale"
	"ledger/internal/log"
	"ledger/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg)

	formatter, err := locale.New(cfg.Locale, cfg.CurrencySymbol)
	if err != nil {
		logger.Error("Invalid display locale", log.FieldError, err, "locale", cfg.Locale)
		os.Exit(1)
	}

	slot, err := cli.InitSlot(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	store := ledger.New(slot.Slot, ledger.WithLogger(logger.WithComponent(log.ComponentLedger).Logger))
	svc := services.NewLedgerService(store, formatter, time.Now)
	count := svc.Load(context.Background())
	logger.Info("Ledger loaded", "expenses", count, "slot", cfg.StorageSlot, "backend", cfg.DataBackend)

	srv := apphttp.NewServer(":"+cfg.Port, svc, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close storage", log.FieldError, err)
		}
	})

	logger.Info("Starting ledger server", "port", cfg.Port, "backend", cfg.DataBackend, "locale", cfg.Locale)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		if slot.Cleanup != nil {
			_ = slot.Cleanup()
		}
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
