package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/exithook/internal/constants"
	"github.com/mrz1836/exithook/internal/errors"
)

// newViperInstance creates a new Viper instance with the EXITHOOK_ env prefix,
// key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from the environment, the global config file
// (if present) and the built-in defaults.
//
// A missing config file is not an error.
func Load(ctx context.Context) (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		// No home directory: env vars and defaults still apply.
		path = ""
	}
	return LoadFromPath(ctx, path)
}

// LoadFromPath loads configuration using the given file as the config layer.
// An empty or nonexistent path skips the file layer.
func LoadFromPath(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()

	if path != "" && fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("config_file", v.ConfigFileUsed()).
		Str("funnel.endpoint", cfg.Funnel.Endpoint).
		Str("observability.api_url", cfg.Observability.APIURL).
		Dur("http.timeout", cfg.HTTP.Timeout).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file_enabled", d.Log.FileEnabled)

	v.SetDefault("observability.api_url", d.Observability.APIURL)
	v.SetDefault("observability.report_url", d.Observability.ReportURL)
	v.SetDefault("observability.token_env", d.Observability.TokenEnv)
	v.SetDefault("observability.build_id_env", d.Observability.BuildIDEnv)
	v.SetDefault("observability.build_completed_env", d.Observability.BuildCompletedEnv)

	v.SetDefault("funnel.endpoint", d.Funnel.Endpoint)

	v.SetDefault("http.timeout", d.HTTP.Timeout.String())
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
