package config

import (
	"errors"
	"fmt"
	"time"
)

// yearStartFormat is the accepted layout for pipeline.year_start.
const yearStartFormat = "2006-01-02"

// Validate checks that all required fields are set and values are valid.
func (c *PipelineConfig) Validate() error {
	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if c.Provider.MaxRetries < 0 {
		return errors.New("provider.max_retries must be >= 0")
	}

	if _, err := time.Parse(yearStartFormat, c.Pipeline.YearStart); err != nil {
		return fmt.Errorf("pipeline.year_start must be YYYY-MM-DD, got %q", c.Pipeline.YearStart)
	}
	if c.Pipeline.FetchDelay < 0 {
		return errors.New("pipeline.fetch_delay must be >= 0")
	}
	if c.Pipeline.BatchSize < 1 {
		return errors.New("pipeline.batch_size must be >= 1")
	}

	return nil
}

// YearStartDate returns the parsed YTD anchor as midnight UTC.
// Call Validate first; an unparseable value returns the zero time.
func (c *PipelineConfig) YearStartDate() time.Time {
	d, _ := time.Parse(yearStartFormat, c.Pipeline.YearStart)
	return d.UTC()
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
