// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load,
// e.g. MENTORMATCH_SERVER_PORT or MENTORMATCH_AUTH_JWT_SECRET.
const envPrefix = "MENTORMATCH"

// Load reads configuration from environment variables and optionally a
// config.yaml file in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file; absence is not an error.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with the MENTORMATCH_ prefix override file
	// values; nested keys use underscores (server.port -> SERVER_PORT).
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers defaults for every key so viper's AutomaticEnv can
// see them and so a bare environment still yields a runnable config
// (except for the JWT secret, which has no safe default).
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "mentormatch.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("dispatcher.worker_count", 2)
	v.SetDefault("dispatcher.queue_size", 100)
	v.SetDefault("dispatcher.poll_interval_seconds", 30)
}

// Validate checks a Config against its declared constraints.
// Returns a descriptive error naming the first offending field.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf(
				"invalid configuration: field %s failed %q validation",
				fe.Namespace(),
				fe.Tag(),
			)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
