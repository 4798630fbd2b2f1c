package config

import (
	"strings"
	"testing"

	binderr "wfbbind/internal/errors"
)

// TestValidate_ErrorMessages verifies that Validate returns actionable
// error messages with hints.
func TestValidate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		mut     func(c *Config)
		wantSub string // substring expected in error
	}{
		{
			name:    "bad ip has hint",
			mut:     func(c *Config) { c.Address = "ground" },
			wantSub: "hint:",
		},
		{
			name:    "bad port names the flag",
			mut:     func(c *Config) { c.Port = -1 },
			wantSub: "--port=-1",
		},
		{
			name:    "duration",
			mut:     func(c *Config) { c.ListenDuration = 0 },
			wantSub: "must be positive",
		},
		{
			name:    "reset command has hint",
			mut:     func(c *Config) { c.ResetCommand = "" },
			wantSub: "firstboot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

// TestValidate_ConfigErrorType verifies that validation errors are
// structured ConfigErrors.
func TestValidate_ConfigErrorType(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	err := cfg.Validate()

	var ce *binderr.ConfigError
	if !binderr.As(err, &ce) {
		t.Fatalf("error should be *ConfigError, got %T", err)
	}
	if ce.Field != "port" {
		t.Errorf("Field = %q, want %q", ce.Field, "port")
	}
}
