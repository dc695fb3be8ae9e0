package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyClusterDefaults(&cfg.Cluster)
	applyProvisionDefaults(&cfg.Provision)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// applyClusterDefaults sets cluster connection defaults.
// Address, username, and password have no defaults; they identify the cluster.
func applyClusterDefaults(cfg *ClusterConfig) {
	if cfg.Zone == "" {
		cfg.Zone = "System"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	// VerifySSL defaults to false; self-signed cluster certificates are the
	// common case.
}

// applyProvisionDefaults sets provisioning defaults.
func applyProvisionDefaults(cfg *ProvisionConfig) {
	// Ids below 1025 are conventionally reserved for system accounts.
	if cfg.StartUID == 0 {
		cfg.StartUID = 1025
	}
	if cfg.StartGID == 0 {
		cfg.StartGID = 1025
	}
	if cfg.ScriptDir == "" {
		cfg.ScriptDir = "."
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
