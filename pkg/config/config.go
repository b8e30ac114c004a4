package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

// Config is the application configuration. Values come from defaults, then
// the TOML file, then the environment (including .env).
type Config struct {
	Title        string `toml:"title"`
	LibraryDir   string `toml:"library_dir"`
	SettingsPath string `toml:"settings_path"`
	LogLevel     string `toml:"log_level"`

	// Env is "production" for production builds.
	Env         string `toml:"env"`
	PostHogKey  string `toml:"posthog_key"`
	PostHogHost string `toml:"posthog_host"`

	// When S3Bucket is set, view settings are stored in S3 instead of the
	// local settings file.
	S3Bucket string `toml:"s3_bucket"`
	S3Prefix string `toml:"s3_prefix"`

	RemoteRendererURL string `toml:"remote_renderer_url"`
	InstallIDPath     string `toml:"install_id_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:         "Read Frame",
		LibraryDir:    "library",
		SettingsPath:  "view-settings.json",
		LogLevel:      "info",
		Env:           "development",
		S3Prefix:      "view-settings",
		InstallIDPath: ".install-id",
	}
}

// Production reports whether this is a production build.
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load loads .env (missing is fine), the TOML file named by READER_CONFIG
// (default read-frame.toml, missing is fine) and environment overrides. A
// broken file is reported, but the environment still applies.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Logger().Warn(".env file not found", zap.Error(err))
	}

	cfg := Default()

	path := os.Getenv("READER_CONFIG")
	if path == "" {
		path = "read-frame.toml"
	}
	err := cfg.loadFile(path)
	cfg.applyEnv()
	return cfg, err
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"READER_TITLE":           &c.Title,
		"READER_LIBRARY_DIR":     &c.LibraryDir,
		"READER_SETTINGS_PATH":   &c.SettingsPath,
		"READER_LOG_LEVEL":       &c.LogLevel,
		"READER_ENV":             &c.Env,
		"POSTHOG_KEY":            &c.PostHogKey,
		"POSTHOG_HOST":           &c.PostHogHost,
		"READER_S3_BUCKET":       &c.S3Bucket,
		"READER_S3_PREFIX":       &c.S3Prefix,
		"READER_REMOTE_RENDERER": &c.RemoteRendererURL,
		"READER_INSTALL_ID_PATH": &c.InstallIDPath,
	}
	for name, field := range overrides {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
}

// InstallID returns the anonymous id of this installation, creating and
// persisting a new one on first use.
func (c Config) InstallID() (string, error) {
	if data, err := os.ReadFile(c.InstallIDPath); err == nil {
		if id, err := uuid.ParseBytes([]byte(strings.TrimSpace(string(data)))); err == nil {
			return id.String(), nil
		}
	}

	id := uuid.NewString()
	if dir := filepath.Dir(c.InstallIDPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return id, fmt.Errorf("create install id dir: %w", err)
		}
	}
	if err := os.WriteFile(c.InstallIDPath, []byte(id+"\n"), 0o600); err != nil {
		return id, fmt.Errorf("write install id: %w", err)
	}
	return id, nil
}
