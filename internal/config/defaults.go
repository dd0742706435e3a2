package config

import (
	"github.com/mrz1836/exithook/internal/constants"
)

// DefaultConfig returns a new Config with the default values.
// These match the viper defaults registered by setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:       "info",
			FileEnabled: true,
		},
		Observability: ObservabilityConfig{
			APIURL:            constants.DefaultObservabilityAPIURL,
			ReportURL:         constants.DefaultReportURLTemplate,
			TokenEnv:          constants.DefaultTokenEnv,
			BuildIDEnv:        constants.DefaultBuildIDEnv,
			BuildCompletedEnv: constants.DefaultBuildCompletedEnv,
		},
		Funnel: FunnelConfig{
			Endpoint: constants.DefaultFunnelEndpoint,
		},
		HTTP: HTTPConfig{
			Timeout:   0,
			UserAgent: constants.DefaultUserAgent,
		},
	}
}
