package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.DataDir != "Alerts_2025" {
		t.Errorf("dataDir = %q", cfg.Input.DataDir)
	}
	if cfg.Output.Path != "alerts_data.json" {
		t.Errorf("output path = %q", cfg.Output.Path)
	}
	if cfg.Shapes.APIBaseURL != "https://api-v3.mbta.com" {
		t.Errorf("base URL = %q", cfg.Shapes.APIBaseURL)
	}
	if cfg.Shapes.TimeoutMS != 30000 || cfg.Shapes.MaxConcurrency != 4 || cfg.Shapes.MaxRetries != 3 {
		t.Errorf("shapes defaults = %+v", cfg.Shapes)
	}
	if cfg.Shapes.CacheTTLHrs != 168 {
		t.Errorf("cache TTL = %d", cfg.Shapes.CacheTTLHrs)
	}
	if cfg.Input.ParseWorkers != 4 {
		t.Errorf("parse workers = %d", cfg.Input.ParseWorkers)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := `
input:
  dataDir: /data/alerts
  feedSnapshotDir: /data/snapshots
  parseWorkers: 8
shapes:
  apiBaseURL: https://example.org
  timeoutMS: 5000
  disabled: true
output:
  path: /tmp/out.json
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.DataDir != "/data/alerts" || cfg.Input.FeedSnapshotDir != "/data/snapshots" {
		t.Errorf("input = %+v", cfg.Input)
	}
	if cfg.Input.ParseWorkers != 8 {
		t.Errorf("parse workers = %d", cfg.Input.ParseWorkers)
	}
	if cfg.Shapes.APIBaseURL != "https://example.org" || cfg.Shapes.TimeoutMS != 5000 {
		t.Errorf("shapes = %+v", cfg.Shapes)
	}
	if !cfg.Shapes.Disabled {
		t.Error("disabled flag dropped")
	}
	if cfg.Output.Path != "/tmp/out.json" {
		t.Errorf("output path = %q", cfg.Output.Path)
	}
	// fields the file omits keep defaults
	if cfg.Shapes.MaxRetries != 3 {
		t.Errorf("maxRetries = %d", cfg.Shapes.MaxRetries)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("input: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("shapes:\n  apiBaseURL: not-a-url\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for malformed base URL")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RAILALERTS_DATA_DIR", "/env/alerts")
	t.Setenv("RAILALERTS_OUTPUT", "/env/out.json")
	t.Setenv("RAILALERTS_SHAPES_BASE_URL", "https://proxy.example.org")
	t.Setenv("RAILALERTS_SHAPES_DISABLED", "true")
	t.Setenv("RAILALERTS_SHAPES_TIMEOUT_MS", "1500")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.DataDir != "/env/alerts" {
		t.Errorf("dataDir = %q", cfg.Input.DataDir)
	}
	if cfg.Output.Path != "/env/out.json" {
		t.Errorf("output = %q", cfg.Output.Path)
	}
	if cfg.Shapes.APIBaseURL != "https://proxy.example.org" {
		t.Errorf("base URL = %q", cfg.Shapes.APIBaseURL)
	}
	if !cfg.Shapes.Disabled {
		t.Error("disabled override dropped")
	}
	if cfg.Shapes.TimeoutMS != 1500 {
		t.Errorf("timeout = %d", cfg.Shapes.TimeoutMS)
	}
}
