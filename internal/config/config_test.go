package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:            "8081",
		ShutdownTimeout: 30 * time.Second,
		DataBackend:     "file",
		DataDir:         "./data",
		SQLiteDBPath:    "./data/ledger.db",
		StorageSlot:     "expenses",
		Locale:          "en-IN",
		CurrencySymbol:  "₹",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid file backend config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			modify:  func(c *Config) { c.DataBackend = "sqlite" },
			wantErr: false,
		},
		{
			name:    "valid memory backend config",
			modify:  func(c *Config) { c.DataBackend = "memory" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			modify:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			modify:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			modify:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			modify:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [file sqlite memory]",
		},
		{
			name:        "file backend missing data dir",
			modify:      func(c *Config) { c.DataDir = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
		{
			name: "sqlite backend missing database path",
			modify: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "memory backend with missing seed file",
			modify: func(c *Config) {
				c.DataBackend = "memory"
				c.MemorySeedFile = "/non/existent/seed.json"
			},
			wantErr:     true,
			errorString: "memory seed file does not exist",
		},
		{
			name:        "invalid slot name",
			modify:      func(c *Config) { c.StorageSlot = "../expenses" },
			wantErr:     true,
			errorString: "invalid storage slot '../expenses'",
		},
		{
			name:        "invalid locale",
			modify:      func(c *Config) { c.Locale = "not a locale!" },
			wantErr:     true,
			errorString: "invalid locale",
		},
		{
			name:        "empty currency symbol",
			modify:      func(c *Config) { c.CurrencySymbol = " " },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "shutdown timeout too short",
			modify:      func(c *Config) { c.ShutdownTimeout = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 500ms: must be at least 1 second",
		},
		{
			name:        "shutdown timeout too long",
			modify:      func(c *Config) { c.ShutdownTimeout = 10 * time.Minute },
			wantErr:     true,
			errorString: "invalid shutdown timeout 10m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "configuration validation failed:") {
		t.Errorf("unexpected error prefix: %v", err)
	}
	if strings.Count(err.Error(), "\n- ") != 2 {
		t.Errorf("expected two listed problems, got: %v", err)
	}
}

func TestConfig_ValidateWithFiles(t *testing.T) {
	tmpDir := t.TempDir()

	seedFile := filepath.Join(tmpDir, "seed.json")
	if err := os.WriteFile(seedFile, []byte(`[]`), 0644); err != nil {
		t.Fatalf("Failed to create seed file: %v", err)
	}
	notADir := filepath.Join(tmpDir, "plain")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name: "memory backend with seed file",
			modify: func(c *Config) {
				c.DataBackend = "memory"
				c.MemorySeedFile = seedFile
			},
			wantErr: false,
		},
		{
			name:    "file backend with existing dir",
			modify:  func(c *Config) { c.DataDir = tmpDir },
			wantErr: false,
		},
		{
			name:    "file backend with data dir that is a file",
			modify:  func(c *Config) { c.DataDir = notADir },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "DATA_BACKEND", "DATA_DIR", "SQLITE_DB_PATH", "STORAGE_SLOT",
		"LOCALE", "CURRENCY_SYMBOL", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "file" {
			t.Errorf("Load() DataBackend = %v, want file", cfg.DataBackend)
		}
		if cfg.DataDir != "./data" {
			t.Errorf("Load() DataDir = %v, want ./data", cfg.DataDir)
		}
		if cfg.SQLiteDBPath != "./data/ledger.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/ledger.db", cfg.SQLiteDBPath)
		}
		if cfg.StorageSlot != "expenses" {
			t.Errorf("Load() StorageSlot = %v, want expenses", cfg.StorageSlot)
		}
		if cfg.Locale != "en-IN" || cfg.CurrencySymbol != "₹" {
			t.Errorf("Load() display = %v %v, want en-IN ₹", cfg.Locale, cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
			t.Errorf("Load() logging = %v/%v, want info/text", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "SQLite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("STORAGE_SLOT", "household")
		t.Setenv("LOCALE", "en-US")
		t.Setenv("CURRENCY_SYMBOL", "$")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("SHUTDOWN_TIMEOUT", "45s")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.StorageSlot != "household" {
			t.Errorf("Load() StorageSlot = %v, want household", cfg.StorageSlot)
		}
		if cfg.Locale != "en-US" || cfg.CurrencySymbol != "$" {
			t.Errorf("Load() display = %v %v, want en-US $", cfg.Locale, cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("Load() logging = %v/%v, want debug/json", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.ShutdownTimeout != 45*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 45s", cfg.ShutdownTimeout)
		}
	})

	t.Run("invalid duration uses default", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		cfg := Load()

		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 30s (default for invalid input)", cfg.ShutdownTimeout)
		}
	})
}
