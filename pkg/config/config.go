// Package config loads and validates the hdfsprep configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the hdfsprep configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (HDFSPREP_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Cluster holds the OneFS cluster connection settings
	Cluster ClusterConfig `mapstructure:"cluster" yaml:"cluster"`

	// Provision holds the provisioning defaults
	Provision ProvisionConfig `mapstructure:"provision" yaml:"provision"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// ClusterConfig holds the OneFS cluster connection settings.
//
// Environment variable overrides:
//
//	HDFSPREP_CLUSTER_ADDRESS, HDFSPREP_CLUSTER_USERNAME,
//	HDFSPREP_CLUSTER_PASSWORD, HDFSPREP_CLUSTER_ZONE
type ClusterConfig struct {
	// Address is the cluster API endpoint, host[:port]. Port defaults to 8080.
	// Required for any command that talks to the cluster; enforced after CLI
	// flags are merged, see ValidateCluster.
	Address string `mapstructure:"address" yaml:"address"`

	// Username is the API account. It needs auth and namespace privileges
	// (ISI_PRIV_AUTH, ISI_PRIV_HDFS, ISI_PRIV_NS_IFS_ACCESS).
	Username string `mapstructure:"username" yaml:"username"`

	// Password is the API account password. Usually left out of the file and
	// supplied via HDFSPREP_CLUSTER_PASSWORD or the interactive prompt.
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	// Zone is the access zone to provision into.
	// Default: "System"
	Zone string `mapstructure:"zone" validate:"required" yaml:"zone"`

	// VerifySSL controls TLS certificate verification.
	// Default: false (clusters commonly run self-signed certificates)
	VerifySSL bool `mapstructure:"verify_ssl" yaml:"verify_ssl"`

	// Timeout bounds each API call.
	// Default: 30s
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0" yaml:"timeout"`
}

// ProvisionConfig holds the provisioning defaults.
type ProvisionConfig struct {
	// StartUID is the uid search origin for new users.
	// Default: 1025
	StartUID uint32 `mapstructure:"start_uid" validate:"required,gte=1" yaml:"start_uid"`

	// StartGID is the gid search origin for new groups.
	// Default: 1025
	StartGID uint32 `mapstructure:"start_gid" validate:"required,gte=1" yaml:"start_gid"`

	// ScriptDir is where replication scripts are written.
	// Default: current directory
	ScriptDir string `mapstructure:"script_dir" validate:"required" yaml:"script_dir"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (HDFSPREP_*)
//  2. Configuration file
//  3. Default values
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	// Without a config file, defaults plus environment still make a usable
	// configuration.
	var cfg Config
	if configFileFound {
		if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides covers the case where no config file exists: viper's
// AutomaticEnv only surfaces env vars for keys it has seen, so the common
// connection settings are read explicitly.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HDFSPREP_CLUSTER_ADDRESS"); v != "" {
		cfg.Cluster.Address = v
	}
	if v := os.Getenv("HDFSPREP_CLUSTER_USERNAME"); v != "" {
		cfg.Cluster.Username = v
	}
	if v := os.Getenv("HDFSPREP_CLUSTER_PASSWORD"); v != "" {
		cfg.Cluster.Password = v
	}
	if v := os.Getenv("HDFSPREP_CLUSTER_ZONE"); v != "" {
		cfg.Cluster.Zone = v
	}
}

// SaveConfig saves the configuration to the specified file path.
// The configuration is saved in YAML format using proper yaml tags.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may carry the cluster password.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the HDFSPREP_ prefix and underscores.
	// Example: HDFSPREP_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("HDFSPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default location: $XDG_CONFIG_HOME/hdfsprep/config.yaml
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns a combined decode hook for all custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook returns a mapstructure decode hook that converts strings
// to time.Duration. This enables config files to use human-readable durations
// like "30s", "5m", "1h".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			// Assume nanoseconds for raw integers
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hdfsprep")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "hdfsprep")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
