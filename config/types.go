package config

// InputConfig describes where alert snapshot rows come from.
type InputConfig struct {
	// DataDir holds the monthly alert CSV exports.
	DataDir string `yaml:"dataDir" validate:"required"`
	// FeedSnapshotDir optionally holds raw GTFS-RT ServiceAlerts
	// protobuf snapshots ingested alongside the CSVs.
	FeedSnapshotDir string `yaml:"feedSnapshotDir" validate:"omitempty"`
	// ParseWorkers bounds concurrent per-file parsing.
	ParseWorkers int `yaml:"parseWorkers" validate:"gte=0"`
}

// ShapesConfig controls the route-geometry branch of the pipeline.
type ShapesConfig struct {
	APIBaseURL     string `yaml:"apiBaseURL" validate:"omitempty,url"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
	MaxConcurrency int    `yaml:"maxConcurrency" validate:"gte=0"`
	MaxRetries     int    `yaml:"maxRetries" validate:"gte=0"`
	// CachePath is a sqlite file caching encoded polylines between
	// runs; empty disables caching.
	CachePath   string `yaml:"cachePath" validate:"omitempty"`
	CacheTTLHrs int    `yaml:"cacheTTLHours" validate:"gte=0"`
	Disabled    bool   `yaml:"disabled"`
}

// OutputConfig describes the digest document destination.
type OutputConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Input  InputConfig  `yaml:"input" validate:"required"`
	Shapes ShapesConfig `yaml:"shapes"`
	Output OutputConfig `yaml:"output" validate:"required"`
}
