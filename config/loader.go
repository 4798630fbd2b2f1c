package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the WFB_BIND_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("WFB_BIND_IP"); v != "" {
		cfg.Address = v
	}
	if v := envInt("WFB_BIND_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := envInt("WFB_BIND_LISTEN_DURATION"); v > 0 {
		cfg.ListenDuration = secondsDuration(v)
	}
	if envBool("WFB_BIND_FORCE_LISTEN") {
		cfg.ForceListen = true
	}
	if envBool("WFB_BIND_FREEBIND") {
		cfg.FreeBind = true
	}

	// Artifact
	if v := os.Getenv("WFB_BIND_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("WFB_BIND_OUTPUT_FILE"); v != "" {
		cfg.OutputFile = v
	}

	// Device utilities
	if v := os.Getenv("WFB_BIND_RESET_CMD"); v != "" {
		cfg.ResetCommand = v
	}
	if v := os.Getenv("WFB_BIND_INFO_CMD"); v != "" {
		cfg.InfoCommand = v
	}
	if v := os.Getenv("WFB_BIND_USB_CMD"); v != "" {
		cfg.USBCommand = v
	}
	if v := envInt("WFB_BIND_EXEC_TIMEOUT"); v > 0 {
		cfg.ExecTimeout = secondsDuration(v)
	}

	// Output
	if envBool("WFB_BIND_DEBUG") {
		cfg.Debug = true
	}
	if v := envInt("WFB_BIND_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
