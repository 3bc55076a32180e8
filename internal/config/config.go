package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RuntimeConfig struct {
	DBPath          string
	StateFilePath   string
	LogFile         string
	LogLevel        string
	PopupDuration   time.Duration
	PromptDelay     time.Duration
	WalletDelay     time.Duration
	MintDelay       time.Duration
	SchedulerBuffer int
	RolloverSpec    string
	WalletInstalled bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:          "levelup.db",
		StateFilePath:   ".levelup_profile.json",
		LogFile:         "levelup.log",
		LogLevel:        "info",
		PopupDuration:   3 * time.Second,
		PromptDelay:     time.Second,
		WalletDelay:     500 * time.Millisecond,
		MintDelay:       time.Second,
		SchedulerBuffer: 64,
		RolloverSpec:    "@midnight",
		WalletInstalled: true,
	}
}

// Load reads an optional .env file and applies LEVELUP_* overrides to the defaults.
func Load(envFiles ...string) RuntimeConfig {
	_ = godotenv.Load(envFiles...)
	return RuntimeConfigFromEnv(DefaultRuntimeConfig())
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("LEVELUP_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("LEVELUP_STATE_FILE"); ok {
		cfg.StateFilePath = v
	}
	// LEVELUP_LOG_FILE may be set to empty to discard logs.
	if v, ok := os.LookupEnv("LEVELUP_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvString("LEVELUP_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvInt("LEVELUP_POPUP_SECONDS"); ok && v > 0 {
		cfg.PopupDuration = time.Duration(v) * time.Second
	}
	if v, ok := getEnvInt("LEVELUP_PROMPT_DELAY_MS"); ok && v >= 0 {
		cfg.PromptDelay = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvInt("LEVELUP_WALLET_DELAY_MS"); ok && v >= 0 {
		cfg.WalletDelay = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvInt("LEVELUP_MINT_DELAY_MS"); ok && v >= 0 {
		cfg.MintDelay = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvInt("LEVELUP_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("LEVELUP_ROLLOVER_SPEC"); ok {
		cfg.RolloverSpec = v
	}
	if v, ok := getEnvBool("LEVELUP_WALLET"); ok {
		cfg.WalletInstalled = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
