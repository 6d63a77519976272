package demo

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
data_dir: /srv/data
boundary:
  step: 0.05
http:
  timeout: 5s
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/srv/data" {
		t.Fatalf("expected data dir /srv/data, got %s", cfg.DataDir)
	}
	if cfg.Boundary.Step != 0.05 {
		t.Fatalf("expected step 0.05, got %v", cfg.Boundary.Step)
	}
	if cfg.Boundary.Margin != 1 {
		t.Fatalf("expected default margin 1, got %v", cfg.Boundary.Margin)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Fatalf("expected timeout 5s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Seed != 42 || cfg.TestRatio != 0.2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
