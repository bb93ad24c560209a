package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultProviderURL        = "https://query1.finance.yahoo.com"
	DefaultProviderTimeout    = Duration(30 * time.Second)
	DefaultProviderMaxRetries = 3
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultYearStart          = "2025-01-01"
	DefaultFetchDelay         = Duration(500 * time.Millisecond)
	DefaultBatchSize          = 100
)

func (c *PipelineConfig) applyDefaults() {
	// Provider defaults
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = DefaultProviderURL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	if c.Provider.MaxRetries == 0 {
		c.Provider.MaxRetries = DefaultProviderMaxRetries
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Pipeline defaults
	if c.Pipeline.YearStart == "" {
		c.Pipeline.YearStart = DefaultYearStart
	}
	if c.Pipeline.FetchDelay == 0 {
		c.Pipeline.FetchDelay = DefaultFetchDelay
	}
	if c.Pipeline.BatchSize == 0 {
		c.Pipeline.BatchSize = DefaultBatchSize
	}
}
