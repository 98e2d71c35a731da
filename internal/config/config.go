package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Parse  ParseConfig  `yaml:"parse"`
	Garmin GarminConfig `yaml:"garmin"`
	Upload UploadConfig `yaml:"upload"`
}

type ParseConfig struct {
	// Year completes the "dd/mm" dates printed in the plan documents.
	Year     int    `yaml:"year"`
	CacheDir string `yaml:"cache_dir"`
}

type GarminConfig struct {
	BaseURL  string `yaml:"base_url"`
	TokenDir string `yaml:"token_dir"`
}

type UploadConfig struct {
	// Delay between consecutive upload calls, to stay under the vendor's
	// rate limit when pushing a whole week in one run.
	Delay      time.Duration `yaml:"delay"`
	StateDir   string        `yaml:"state_dir"`
	ReportsDir string        `yaml:"reports_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults plus env cover the
// common single-user setup. Env vars use the prefix TRIPLAN_ and
// underscore-separated paths:
//
//	TRIPLAN_PARSE_YEAR, TRIPLAN_PARSE_CACHE_DIR,
//	TRIPLAN_GARMIN_BASE_URL, TRIPLAN_GARMIN_TOKEN_DIR,
//	TRIPLAN_UPLOAD_DELAY, TRIPLAN_UPLOAD_STATE_DIR, TRIPLAN_UPLOAD_REPORTS_DIR
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Parse: ParseConfig{
			Year:     time.Now().Year(),
			CacheDir: "data/workouts_cache",
		},
		Garmin: GarminConfig{
			BaseURL:  "https://connectapi.garmin.com",
			TokenDir: filepath.Join(home, ".garth"),
		},
		Upload: UploadConfig{
			Delay:      2 * time.Second,
			StateDir:   "data/upload_state",
			ReportsDir: "data/upload_reports",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRIPLAN_PARSE_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			cfg.Parse.Year = year
		}
	}
	if v := os.Getenv("TRIPLAN_PARSE_CACHE_DIR"); v != "" {
		cfg.Parse.CacheDir = v
	}
	if v := os.Getenv("TRIPLAN_GARMIN_BASE_URL"); v != "" {
		cfg.Garmin.BaseURL = v
	}
	if v := os.Getenv("TRIPLAN_GARMIN_TOKEN_DIR"); v != "" {
		cfg.Garmin.TokenDir = v
	}
	if v := os.Getenv("TRIPLAN_UPLOAD_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upload.Delay = d
		}
	}
	if v := os.Getenv("TRIPLAN_UPLOAD_STATE_DIR"); v != "" {
		cfg.Upload.StateDir = v
	}
	if v := os.Getenv("TRIPLAN_UPLOAD_REPORTS_DIR"); v != "" {
		cfg.Upload.ReportsDir = v
	}
}

func (c *Config) validate() error {
	if c.Parse.Year < 2000 || c.Parse.Year > 2100 {
		return fmt.Errorf("parse.year %d out of range", c.Parse.Year)
	}
	if c.Garmin.BaseURL == "" {
		return fmt.Errorf("garmin.base_url is required")
	}
	if c.Garmin.TokenDir == "" {
		return fmt.Errorf("garmin.token_dir is required")
	}
	if c.Upload.Delay < 0 {
		return fmt.Errorf("upload.delay must not be negative")
	}
	return nil
}
