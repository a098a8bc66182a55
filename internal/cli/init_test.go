package cli

import (
	"context"
	"path/filepath"
	"testing"

	"ledger/internal/config"
	"ledger/internal/log"
)

func TestSetupLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json"}
	logger := SetupLogger(cfg)
	if logger == nil {
		t.Fatal("SetupLogger returned nil")
	}
	if logger.Component() != log.ComponentApp {
		t.Errorf("component = %q, want %q", logger.Component(), log.ComponentApp)
	}
	if !logger.Enabled(context.Background(), log.ParseLevel("debug")) {
		t.Error("debug level should be enabled")
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("MEMORY_SEED_FILE", "")
	t.Setenv("PORT", "8082")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.Port != "8082" || cfg.DataBackend != "memory" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv("PORT", "nope")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Error("expected validation error")
	}
}

func TestInitSlot(t *testing.T) {
	logger := log.New(log.DefaultConfig())
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
		StorageSlot:  "expenses",
	}
	result, err := InitSlot(context.Background(), logger, cfg)
	if err != nil {
		t.Fatalf("InitSlot() error = %v", err)
	}
	defer result.Cleanup()
	if err := result.Slot.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}

	cfg.DataBackend = "sheets"
	if _, err := InitSlot(context.Background(), logger, cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
