package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultSessionDirName is the per-session directory created under the
	// OS temp dir. Children resolve the same path independently.
	DefaultSessionDirName = "snapoverlay_session"

	// DefaultMinSelectionSpan is the minimum selection size in virtual
	// pixels, per axis. Selections below it render no box.
	DefaultMinSelectionSpan = 5.0

	// DefaultClosePollInterval is how often every overlay process checks
	// the shared close flag.
	DefaultClosePollInterval = 100 * time.Millisecond

	// DefaultMaxTextureSize is the largest presented-texture dimension.
	// Bigger monitor images are downscaled proportionally before display.
	DefaultMaxTextureSize = 2048
)

type LoadOptions struct {
	SessionDirOverride string
}

type Config struct {
	SessionDir        string
	MinSelectionSpan  float64
	ClosePollInterval time.Duration
	MaxTextureSize    int
	EnableFileLogging bool
	KeepSessionFiles  bool
	CopyToClipboard   bool
	ScreensDir        string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use SNAPOVERLAY_ENV env var as a path to a config file
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	sessionDir := opts.SessionDirOverride
	if sessionDir == "" {
		sessionDir = os.Getenv("SESSION_DIR")
	}
	if sessionDir == "" {
		sessionDir = filepath.Join(os.TempDir(), DefaultSessionDirName)
	}

	screensDir := os.Getenv("SCREENS_DIR")
	if screensDir == "" {
		screensDir = filepath.Join(os.TempDir(), "snapoverlay", "screens")
	}

	cfg := &Config{
		SessionDir:        sessionDir,
		MinSelectionSpan:  getEnvFloat("MIN_SELECTION_SPAN", DefaultMinSelectionSpan),
		ClosePollInterval: getEnvMillis("CLOSE_POLL_INTERVAL_MS", DefaultClosePollInterval),
		MaxTextureSize:    getEnvInt("MAX_TEXTURE_SIZE", DefaultMaxTextureSize),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		// Session files are kept by default for post-mortem diagnostics.
		KeepSessionFiles: strings.ToLower(os.Getenv("KEEP_SESSION_FILES")) != "false",
		CopyToClipboard:  strings.ToLower(os.Getenv("COPY_TO_CLIPBOARD")) == "true",
		ScreensDir:       screensDir,
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv("SNAPOVERLAY_ENV"); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
