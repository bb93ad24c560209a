// Package config loads and validates the pipeline YAML configuration.
//
// Loading is staged: Load parses the file (with ${VAR} environment
// substitution for secrets), applyDefaults fills optional fields, and
// Validate rejects incomplete or out-of-range values. Binaries use
// LoadAndValidate.
package config
