package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/psidex/sankey/internal/lib"
)

// Config holds sankey configuration. Command-line flags override it.
type Config struct {
	Format   string `toml:"format"`    // "html", "json", "png"
	OutDir   string `toml:"out_dir"`   // where diagrams are written
	Open     bool   `toml:"open"`      // open the written diagram
	LogLevel string `toml:"log_level"` // slog level name

	Chart ChartConfig `toml:"chart"`
	HTTP  HTTPConfig  `toml:"http"`
	Serve ServeConfig `toml:"serve"`
}

// ChartConfig controls the rendered chart size and png capture.
type ChartConfig struct {
	Width           int          `toml:"width"`
	Height          int          `toml:"height"`
	SnapshotTimeout lib.Duration `toml:"snapshot_timeout"`
}

// HTTPConfig controls fetching tables given as URLs.
type HTTPConfig struct {
	Timeout lib.Duration `toml:"timeout"`
}

// ServeConfig controls `sankey serve`.
type ServeConfig struct {
	Bind         string       `toml:"bind"`
	PollInterval lib.Duration `toml:"poll_interval"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format:   "html",
		OutDir:   ".",
		Open:     true,
		LogLevel: "info",
		Chart: ChartConfig{
			Width:           1000,
			Height:          1000,
			SnapshotTimeout: lib.DurationFrom(30 * time.Second),
		},
		HTTP: HTTPConfig{
			Timeout: lib.DurationFrom(10 * time.Second),
		},
		Serve: ServeConfig{
			Bind:         "127.0.0.1:8080",
			PollInterval: lib.DurationFrom(time.Second),
		},
	}
}

// ConfigDir returns the sankey config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sankey")
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Serve.PollInterval.Duration <= 0 {
		return errors.New("serve.poll_interval must be positive")
	}
	if _, err := lib.ParseSLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Save writes the config to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
