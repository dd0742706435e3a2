package config

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mrz1836/exithook/internal/errors"
)

// envVarNamePattern matches POSIX-style environment variable names.
var envVarNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`) //nolint:gochecknoglobals // compiled once

// validLogLevels lists the accepted log.level values.
var validLogLevels = []string{"debug", "info", "warn", "error"} //nolint:gochecknoglobals // lookup table

// Validate checks the configuration for invalid values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - log.level must be one of debug, info, warn, error
//   - endpoint URLs must be absolute http(s) URLs
//   - observability.report_url must contain exactly one %s
//   - env var names must be non-empty and well formed
//   - http.timeout must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateLogConfig(&cfg.Log); err != nil {
		return err
	}
	if err := validateObservabilityConfig(&cfg.Observability); err != nil {
		return err
	}
	if err := validateEndpoint("funnel.endpoint", cfg.Funnel.Endpoint); err != nil {
		return err
	}
	if cfg.HTTP.Timeout < 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"http.timeout cannot be negative, got %s", cfg.HTTP.Timeout)
	}
	return nil
}

// validateLogConfig checks logging configuration values.
func validateLogConfig(cfg *LogConfig) error {
	level := strings.ToLower(cfg.Level)
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInvalidLogLevel, "log.level %q", cfg.Level)
}

// validateObservabilityConfig checks observability configuration values.
func validateObservabilityConfig(cfg *ObservabilityConfig) error {
	if err := validateEndpoint("observability.api_url", cfg.APIURL); err != nil {
		return err
	}

	if strings.Count(cfg.ReportURL, "%s") != 1 || strings.Count(cfg.ReportURL, "%") != 1 {
		return errors.Wrapf(errors.ErrInvalidEndpoint,
			"observability.report_url must contain exactly one %%s, got %q", cfg.ReportURL)
	}
	if err := validateEndpoint("observability.report_url", strings.Replace(cfg.ReportURL, "%s", "id", 1)); err != nil {
		return err
	}

	names := []struct {
		key, value string
	}{
		{"observability.token_env", cfg.TokenEnv},
		{"observability.build_id_env", cfg.BuildIDEnv},
		{"observability.build_completed_env", cfg.BuildCompletedEnv},
	}
	for _, n := range names {
		if n.value == "" {
			return errors.Wrapf(errors.ErrEmptyValue, "%s", n.key)
		}
		if !envVarNamePattern.MatchString(n.value) {
			return errors.Wrapf(errors.ErrInvalidEnvVarName, "%s %q", n.key, n.value)
		}
	}
	return nil
}

// validateEndpoint requires an absolute http or https URL with a host.
func validateEndpoint(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrInvalidEndpoint, "%s %q", key, raw)
	}
	return nil
}
