package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Validate checks configuration consistency: value formats, enumerations,
// and ranges. Cluster connection fields are checked separately by
// ValidateCluster once CLI flags have been merged in.
func Validate(cfg *Config) error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		msgs = append(msgs, describeFieldError(fieldErr))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateCluster checks the fields a live cluster connection needs. These
// may arrive via config file, environment, or CLI flags, so they are
// enforced only after all sources are merged.
func ValidateCluster(cfg *ClusterConfig) error {
	if cfg.Address == "" {
		return errors.New("cluster address is required (--address, cluster.address, or HDFSPREP_CLUSTER_ADDRESS)")
	}
	if cfg.Username == "" {
		return errors.New("cluster username is required (--username, cluster.username, or HDFSPREP_CLUSTER_USERNAME)")
	}
	if cfg.Zone == "" {
		return errors.New("cluster zone is required (--zone, cluster.zone, or HDFSPREP_CLUSTER_ZONE)")
	}
	return nil
}

// describeFieldError turns a validator error into a config-file-oriented
// message, e.g. "logging.level: must be one of DEBUG INFO WARN ERROR".
func describeFieldError(fieldErr validator.FieldError) string {
	field := configKeyFromNamespace(fieldErr.Namespace())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s: invalid value %v", field, fieldErr.Value())
	}
}

// configKeyFromNamespace maps "Config.Logging.Level" to "logging.level".
func configKeyFromNamespace(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnakeCase(p)
	}
	return strings.Join(parts, ".")
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				prev := rune(s[i-1])
				if prev >= 'a' && prev <= 'z' {
					b.WriteByte('_')
				}
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
