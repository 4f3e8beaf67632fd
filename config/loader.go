package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultDataDir        = "Alerts_2025"
	defaultOutputPath     = "alerts_data.json"
	defaultShapesBaseURL  = "https://api-v3.mbta.com"
	defaultTimeoutMS      = 30000
	defaultMaxConcurrency = 4
	defaultMaxRetries     = 3
	defaultCacheTTLHrs    = 7 * 24
	defaultParseWorkers   = 4
)

// Load reads config.yml (if present), applies environment overrides
// (optionally from .env) and defaults, then validates the result.
func Load(path string) (AppConfig, error) {
	cfg := AppConfig{
		Input:  InputConfig{DataDir: defaultDataDir, ParseWorkers: defaultParseWorkers},
		Output: OutputConfig{Path: defaultOutputPath},
		Shapes: ShapesConfig{
			APIBaseURL:     defaultShapesBaseURL,
			TimeoutMS:      defaultTimeoutMS,
			MaxConcurrency: defaultMaxConcurrency,
			MaxRetries:     defaultMaxRetries,
			CacheTTLHrs:    defaultCacheTTLHrs,
		},
	}

	paths := []string{"config.yml"}
	if path != "" {
		paths = []string{path}
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if path == "" && os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	if cfg.Input.ParseWorkers == 0 {
		cfg.Input.ParseWorkers = defaultParseWorkers
	}
	if cfg.Shapes.MaxConcurrency == 0 {
		cfg.Shapes.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.Shapes.TimeoutMS == 0 {
		cfg.Shapes.TimeoutMS = defaultTimeoutMS
	}
	return cfg, nil
}

// applyEnv overlays RAILALERTS_* environment variables on top of the
// file values. A .env file in the working directory is honoured.
func applyEnv(cfg *AppConfig) {
	_ = godotenv.Load(".env")

	if v := strings.TrimSpace(os.Getenv("RAILALERTS_DATA_DIR")); v != "" {
		cfg.Input.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_FEED_SNAPSHOT_DIR")); v != "" {
		cfg.Input.FeedSnapshotDir = v
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_OUTPUT")); v != "" {
		cfg.Output.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_SHAPES_BASE_URL")); v != "" {
		cfg.Shapes.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_SHAPES_CACHE")); v != "" {
		cfg.Shapes.CachePath = v
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_SHAPES_DISABLED")); v != "" {
		cfg.Shapes.Disabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(os.Getenv("RAILALERTS_SHAPES_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Shapes.TimeoutMS = n
		}
	}
}
