package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
parse:
  year: 2026
  cache_dir: "/tmp/cache"
garmin:
  base_url: "https://connectapi.example.com"
  token_dir: "/tmp/garth"
upload:
  delay: 5s
  state_dir: "/tmp/state"
  reports_dir: "/tmp/reports"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "triplan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Parse.Year != 2026 {
		t.Errorf("parse.year = %d, want 2026", cfg.Parse.Year)
	}
	if cfg.Parse.CacheDir != "/tmp/cache" {
		t.Errorf("parse.cache_dir = %q, want %q", cfg.Parse.CacheDir, "/tmp/cache")
	}
	if cfg.Garmin.BaseURL != "https://connectapi.example.com" {
		t.Errorf("garmin.base_url = %q", cfg.Garmin.BaseURL)
	}
	if cfg.Upload.Delay != 5*time.Second {
		t.Errorf("upload.delay = %v, want 5s", cfg.Upload.Delay)
	}
}

// TestLoadMissingFile verifies that a missing config file falls back to defaults
// instead of failing; the tool should run with env-only configuration.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/triplan.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Garmin.BaseURL == "" {
		t.Error("expected default garmin.base_url")
	}
	if cfg.Upload.Delay <= 0 {
		t.Errorf("upload.delay = %v, want a positive default", cfg.Upload.Delay)
	}
	if cfg.Parse.Year < 2000 {
		t.Errorf("parse.year = %d, want current year default", cfg.Parse.Year)
	}
}

// TestEnvOverride verifies that TRIPLAN_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("TRIPLAN_PARSE_YEAR", "2027")
	t.Setenv("TRIPLAN_GARMIN_TOKEN_DIR", "/override/garth")
	t.Setenv("TRIPLAN_UPLOAD_DELAY", "250ms")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Parse.Year != 2027 {
		t.Errorf("parse.year = %d, want 2027", cfg.Parse.Year)
	}
	if cfg.Garmin.TokenDir != "/override/garth" {
		t.Errorf("garmin.token_dir = %q, want %q", cfg.Garmin.TokenDir, "/override/garth")
	}
	if cfg.Upload.Delay != 250*time.Millisecond {
		t.Errorf("upload.delay = %v, want 250ms", cfg.Upload.Delay)
	}
	// Unchanged fields should keep YAML values
	if cfg.Parse.CacheDir != "/tmp/cache" {
		t.Errorf("parse.cache_dir = %q, want %q", cfg.Parse.CacheDir, "/tmp/cache")
	}
}

// TestValidationYearOutOfRange verifies that an implausible year is rejected
// early rather than producing workouts scheduled decades off.
func TestValidationYearOutOfRange(t *testing.T) {
	yaml := `
parse:
  year: 1999
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for year out of range")
	}
}

// TestValidationNegativeDelay verifies a negative upload delay is rejected.
func TestValidationNegativeDelay(t *testing.T) {
	yaml := `
upload:
  delay: -1s
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for negative delay")
	}
}
