package config

// PipelineConfig is the root configuration for a pipeline run.
type PipelineConfig struct {
	Database DBConfig       `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Pipeline RunConfig      `yaml:"pipeline"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DBConfig holds the Postgres connection for the registry and price store.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ProviderConfig holds market-data provider settings.
type ProviderConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Timeout    Duration `yaml:"timeout"`
	MaxRetries int      `yaml:"max_retries"`
}

// RunConfig holds the knobs for one ingestion sweep.
type RunConfig struct {
	// YearStart is the fixed YTD anchor date (YYYY-MM-DD). Fetches and
	// the first-price boundary query both start here.
	YearStart string `yaml:"year_start"`

	// FetchDelay is the pause between per-instrument provider calls.
	FetchDelay Duration `yaml:"fetch_delay"`

	// BatchSize is the upsert chunk size for the price store.
	BatchSize int `yaml:"batch_size"`
}

// SeedConfig holds the optional ticker universe override for cmd/seed.
type SeedConfig struct {
	Tickers []string `yaml:"tickers"`
}
