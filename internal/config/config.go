// Package config loads automatonx settings from TOML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the working directory.
const FileName = "automatonx.toml"

// Environment overrides, applied after the file.
const (
	EnvServiceURL = "AUTOMATONX_SERVICE_URL"
	EnvProjectDir = "AUTOMATONX_PROJECT_DIR"
	EnvLogLevel   = "AUTOMATONX_LOG_LEVEL"
)

// Config is the complete settings tree.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Project ProjectConfig `toml:"project"`
	Log     LogConfig     `toml:"log"`
}

// ServiceConfig locates the external evaluation service.
type ServiceConfig struct {
	BaseURL       string   `toml:"base_url"`
	EvaluatePath  string   `toml:"evaluate_path"`
	EmptinessPath string   `toml:"emptiness_path"`
	Timeout       Duration `toml:"timeout"`
}

// ProjectConfig says where project files live and how they are encoded.
type ProjectConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"` // yaml or json
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// Duration is a wrapper for time.Duration that supports TOML marshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:       "http://localhost:5000",
			EvaluatePath:  "/api/process-automata",
			EmptinessPath: "/api/check-emptiness",
		},
		Project: ProjectConfig{Dir: ".", Format: "yaml"},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path searches ./automatonx.toml
// then $XDG_CONFIG_HOME/automatonx/config.toml; a missing file there is not an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Find()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first existing default config path, or "".
func Find() string {
	candidates := []string{FileName}
	if dir := configHome(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "automatonx", "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServiceURL); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv(EnvProjectDir); v != "" {
		c.Project.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects unknown formats and levels and an empty service URL.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service.BaseURL) == "" {
		return errors.New("config: service.base_url is required")
	}
	if c.Service.Timeout.Duration < 0 {
		return fmt.Errorf("config: service.timeout must not be negative, got %s", c.Service.Timeout.Duration)
	}
	switch strings.ToLower(c.Project.Format) {
	case "yaml", "yml", "json":
	default:
		return fmt.Errorf("config: unknown project.format %q (want yaml or json)", c.Project.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log.format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// SlogLevel maps Level onto slog.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: unknown log.level %q", l.Level)
	}
	return level, nil
}

// Write encodes c as TOML to path.
func (c *Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
