package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Format != "html" {
		t.Errorf("expected format 'html', got %q", cfg.Format)
	}
	if !cfg.Open {
		t.Error("default open should be true")
	}
	if cfg.Chart.Width != 1000 || cfg.Chart.Height != 1000 {
		t.Errorf("expected 1000x1000 chart, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.HTTP.Timeout.Duration != 10*time.Second {
		t.Errorf("expected http timeout 10s, got %s", cfg.HTTP.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := ConfigDir(); dir != "/tmp/test-xdg/sankey" {
		t.Errorf("expected /tmp/test-xdg/sankey, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "sankey", "config.toml")
	if path := DefaultPath(); path != expected {
		t.Errorf("expected %q, got %q", expected, path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "html" {
		t.Errorf("expected defaults, got format %q", cfg.Format)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
format = "json"
open = false

[chart]
width = 640
snapshot_timeout = "5s"

[serve]
poll_interval = "250ms"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "json" || cfg.Open {
		t.Errorf("expected json/no-open, got %q/%t", cfg.Format, cfg.Open)
	}
	if cfg.Chart.Width != 640 || cfg.Chart.Height != 1000 {
		t.Errorf("expected 640x1000, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.SnapshotTimeout.Duration != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.Chart.SnapshotTimeout)
	}
	if cfg.Serve.PollInterval.Duration != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.Serve.PollInterval)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":      "format = ",
		"unknown key": "colour = true",
		"bad size":    "[chart]\nwidth = -1",
		"bad level":   `log_level = "loud"`,
		"bad timeout": "[http]\ntimeout = \"soon\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.OutDir = "/srv/diagrams"
	cfg.HTTP.Timeout.Duration = time.Minute

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutDir != "/srv/diagrams" {
		t.Errorf("expected out_dir /srv/diagrams, got %q", loaded.OutDir)
	}
	if loaded.HTTP.Timeout.Duration != time.Minute {
		t.Errorf("expected 1m timeout, got %s", loaded.HTTP.Timeout)
	}
}
