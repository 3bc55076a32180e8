package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DBPath != "levelup.db" || cfg.StateFilePath != ".levelup_profile.json" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
	if cfg.PopupDuration != 3*time.Second || cfg.PromptDelay != time.Second {
		t.Fatalf("unexpected timer defaults: %+v", cfg)
	}
	if cfg.WalletDelay != 500*time.Millisecond || cfg.MintDelay != time.Second {
		t.Fatalf("unexpected wallet defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || cfg.RolloverSpec != "@midnight" || !cfg.WalletInstalled {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("LEVELUP_DB_PATH", "data/custom.db")
	t.Setenv("LEVELUP_STATE_FILE", "state/profile.json")
	t.Setenv("LEVELUP_LOG_FILE", "")
	t.Setenv("LEVELUP_LOG_LEVEL", "debug")
	t.Setenv("LEVELUP_POPUP_SECONDS", "5")
	t.Setenv("LEVELUP_PROMPT_DELAY_MS", "0")
	t.Setenv("LEVELUP_WALLET_DELAY_MS", "250")
	t.Setenv("LEVELUP_MINT_DELAY_MS", "1500")
	t.Setenv("LEVELUP_SCHEDULER_BUFFER", "128")
	t.Setenv("LEVELUP_ROLLOVER_SPEC", "0 4 * * *")
	t.Setenv("LEVELUP_WALLET", "off")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "data/custom.db" || cfg.StateFilePath != "state/profile.json" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.LogFile != "" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log overrides: %+v", cfg)
	}
	if cfg.PopupDuration != 5*time.Second || cfg.PromptDelay != 0 {
		t.Fatalf("unexpected timer overrides: %+v", cfg)
	}
	if cfg.WalletDelay != 250*time.Millisecond || cfg.MintDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected wallet overrides: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 128 || cfg.RolloverSpec != "0 4 * * *" || cfg.WalletInstalled {
		t.Fatalf("unexpected runtime overrides: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("LEVELUP_POPUP_SECONDS", "soon")
	t.Setenv("LEVELUP_SCHEDULER_BUFFER", "-4")
	t.Setenv("LEVELUP_WALLET", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.PopupDuration != 3*time.Second || cfg.SchedulerBuffer != 64 || !cfg.WalletInstalled {
		t.Fatalf("invalid values should keep defaults: %+v", cfg)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LEVELUP_DB_PATH=from-dotenv.db\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("LEVELUP_DB_PATH", "")
	os.Unsetenv("LEVELUP_DB_PATH")

	cfg := Load(path)
	if cfg.DBPath != "from-dotenv.db" {
		t.Fatalf("expected .env value, got %q", cfg.DBPath)
	}
}

func TestLoadWithoutDotEnvUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
