// Package config provides configuration management for exithook with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (EXITHOOK_* prefix, e.g. EXITHOOK_FUNNEL_ENDPOINT)
//  2. Global config ($EXITHOOK_HOME/config.yaml, default ~/.exithook/config.yaml)
//  3. Built-in defaults
//
// The hook is normally spawned with no config file at all; every value has a
// working default.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for exithook.
type Config struct {
	// Log contains settings for the hook's own log output.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Observability contains settings for the stop-build call.
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`

	// Funnel contains settings for funnel data transmission.
	Funnel FunnelConfig `yaml:"funnel" mapstructure:"funnel"`

	// HTTP contains settings shared by all outbound requests.
	HTTP HTTPConfig `yaml:"http" mapstructure:"http"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level written when neither --verbose nor --quiet is given.
	// One of: debug, info, warn, error. Default: info
	Level string `yaml:"level" mapstructure:"level"`

	// FileEnabled controls the rotating log file under $EXITHOOK_HOME/logs.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" mapstructure:"file_enabled"`
}

// ObservabilityConfig contains settings for the observability build lifecycle.
type ObservabilityConfig struct {
	// APIURL is the collector base URL; the stop call is PUT {APIURL}/api/v1/builds/{id}/stop.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`

	// ReportURL is a fmt template with one %s receiving the build identifier.
	ReportURL string `yaml:"report_url" mapstructure:"report_url"`

	// TokenEnv names the environment variable holding the build JWT.
	TokenEnv string `yaml:"token_env" mapstructure:"token_env"`

	// BuildIDEnv names the environment variable holding the hashed build id.
	BuildIDEnv string `yaml:"build_id_env" mapstructure:"build_id_env"`

	// BuildCompletedEnv names the environment variable set once build creation finished.
	BuildCompletedEnv string `yaml:"build_completed_env" mapstructure:"build_completed_env"`
}

// FunnelConfig contains settings for funnel data transmission.
type FunnelConfig struct {
	// Endpoint is the SDK event ingestion URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// HTTPConfig contains settings shared by outbound requests.
type HTTPConfig struct {
	// Timeout bounds each request. Zero means no timeout: a hung request
	// holds up process exit until the parent kills it.
	// Default: 0
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}
