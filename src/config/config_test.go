package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("SESSION_DIR")
	os.Unsetenv("MIN_SELECTION_SPAN")
	os.Unsetenv("CLOSE_POLL_INTERVAL_MS")
	os.Unsetenv("MAX_TEXTURE_SIZE")
	os.Unsetenv("KEEP_SESSION_FILES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.SessionDir == "" {
		t.Error("Expected a default session dir")
	}
	if cfg.MinSelectionSpan != DefaultMinSelectionSpan {
		t.Errorf("Expected MinSelectionSpan %v, got %v", DefaultMinSelectionSpan, cfg.MinSelectionSpan)
	}
	if cfg.ClosePollInterval != DefaultClosePollInterval {
		t.Errorf("Expected ClosePollInterval %v, got %v", DefaultClosePollInterval, cfg.ClosePollInterval)
	}
	if cfg.MaxTextureSize != DefaultMaxTextureSize {
		t.Errorf("Expected MaxTextureSize %d, got %d", DefaultMaxTextureSize, cfg.MaxTextureSize)
	}
	if !cfg.KeepSessionFiles {
		t.Error("Expected session files kept by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("SESSION_DIR", "/tmp/custom_session")
	os.Setenv("MIN_SELECTION_SPAN", "10")
	os.Setenv("CLOSE_POLL_INTERVAL_MS", "250")
	os.Setenv("ENABLE_FILE_LOGGING", "true")
	os.Setenv("KEEP_SESSION_FILES", "false")

	defer func() {
		os.Unsetenv("SESSION_DIR")
		os.Unsetenv("MIN_SELECTION_SPAN")
		os.Unsetenv("CLOSE_POLL_INTERVAL_MS")
		os.Unsetenv("ENABLE_FILE_LOGGING")
		os.Unsetenv("KEEP_SESSION_FILES")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.SessionDir != "/tmp/custom_session" {
		t.Errorf("Expected SessionDir '/tmp/custom_session', got '%s'", cfg.SessionDir)
	}
	if cfg.MinSelectionSpan != 10 {
		t.Errorf("Expected MinSelectionSpan 10, got %v", cfg.MinSelectionSpan)
	}
	if cfg.ClosePollInterval != 250*time.Millisecond {
		t.Errorf("Expected ClosePollInterval 250ms, got %v", cfg.ClosePollInterval)
	}
	if !cfg.EnableFileLogging {
		t.Error("Expected EnableFileLogging true")
	}
	if cfg.KeepSessionFiles {
		t.Error("Expected KeepSessionFiles false")
	}
}

func TestLoadWithOptionsSessionDirOverride(t *testing.T) {
	os.Setenv("SESSION_DIR", "/tmp/from_env")
	defer os.Unsetenv("SESSION_DIR")

	cfg, err := LoadWithOptions(LoadOptions{SessionDirOverride: "/tmp/from_flag"})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SessionDir != "/tmp/from_flag" {
		t.Errorf("Flag override should win over env, got '%s'", cfg.SessionDir)
	}
}
