// Package config defines the runtime configuration for the bind daemon
// and its validation rules.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	binderr "wfbbind/internal/errors"
	"wfbbind/util"
)

// Config holds every tuneable for a single pairing window.  It is
// read-only once the window has started.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Address        string
	Port           int
	ListenDuration time.Duration
	ForceListen    bool // keep listening after a successful BIND/UNBIND
	FreeBind       bool // bind Address even if no interface carries it yet

	// ── Artifact ─────────────────────────────────────────────────────
	OutputDir  string
	OutputFile string

	// ── Device utilities ─────────────────────────────────────────────
	ResetCommand string
	InfoCommand  string
	USBCommand   string
	ExecTimeout  time.Duration // 0 = wait for the program indefinitely

	// ── Output ───────────────────────────────────────────────────────
	Debug   bool
	Verbose int
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Address:        DefaultAddress,
		Port:           DefaultPort,
		ListenDuration: DefaultListenDuration,
		OutputDir:      DefaultOutputDir,
		OutputFile:     DefaultOutputFile,
		ResetCommand:   DefaultResetCommand,
		InfoCommand:    DefaultInfoCommand,
		USBCommand:     DefaultUSBCommand,
	}
}

// LogVerbosity maps the output flags onto a util.Logger verbosity.
// Informational messages are on by default; each -v adds a level and
// --debug goes straight to the most detailed one.
func (c *Config) LogVerbosity() int {
	if c.Debug {
		return int(util.LogDebug)
	}
	v := int(util.LogNormal) + c.Verbose
	if v > int(util.LogDebug) {
		v = int(util.LogDebug)
	}
	return v
}

// EnsureOutputDir creates the artifact directory if it is missing.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, DefaultOutputDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if _, err := util.ParseIPv4(c.Address); err != nil {
		return &binderr.ConfigError{
			Field:   "ip",
			Value:   c.Address,
			Message: err.Error(),
			Hint:    "the daemon binds a numeric address, e.g. " + DefaultAddress,
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &binderr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
			Hint:    fmt.Sprintf("the ground station connects to %d by default", DefaultPort),
		}
	}
	if c.ListenDuration <= 0 {
		return &binderr.ConfigError{
			Field:   "listen-duration",
			Value:   c.ListenDuration,
			Message: "must be positive",
		}
	}
	if c.OutputFile == "" {
		return &binderr.ConfigError{Field: "output-file", Message: "required"}
	}
	if c.OutputDir == "" {
		return &binderr.ConfigError{Field: "output-dir", Message: "required"}
	}
	if rel, err := filepath.Rel(c.OutputDir, filepath.Dir(c.OutputFile)); err != nil || rel != "." {
		return &binderr.ConfigError{
			Field:   "output-file",
			Value:   c.OutputFile,
			Message: "must be directly inside --output-dir " + c.OutputDir,
			Hint:    "only --output-dir is created at startup",
		}
	}
	if c.ResetCommand == "" {
		return &binderr.ConfigError{
			Field:   "reset-cmd",
			Message: "required",
			Hint:    "UNBIND runs this program, default " + DefaultResetCommand,
		}
	}
	if c.ExecTimeout < 0 {
		return &binderr.ConfigError{
			Field:   "exec-timeout",
			Value:   c.ExecTimeout,
			Message: "must not be negative",
		}
	}
	return nil
}
