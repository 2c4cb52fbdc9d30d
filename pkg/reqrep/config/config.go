// Package config loads a reqrep.Config from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep"
)

// EnvPrefix prefixes environment overrides. Nested keys join with "_", so
// log.level is read from REQREP_LOG_LEVEL.
const EnvPrefix = "REQREP"

// Load reads the file at path (YAML, JSON or TOML by extension) when path is
// non-empty, falling back to $REQREP_CONFIG. Environment variables override
// file values; anything unset keeps reqrep.DefaultConfig.
func Load(path string) (reqrep.Config, error) {
	def := reqrep.DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed every key so env-only configs unmarshal
	v.SetDefault("driver", def.Driver)
	v.SetDefault("mode", def.Mode)
	v.SetDefault("dial_timeout", def.DialTimeout)
	v.SetDefault("exchange_timeout", def.ExchangeTimeout)
	v.SetDefault("poll_interval", def.PollInterval)
	v.SetDefault("linger", def.Linger)
	v.SetDefault("dial_async", def.DialAsync)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.outputs", def.Log.Outputs)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("log.rotation.enable", def.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", def.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", def.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", def.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", def.Log.Rotation.Compress)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return reqrep.Config{}, fmt.Errorf("config: %s not found: %w", path, err)
			}
			return reqrep.Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg reqrep.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return reqrep.Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return reqrep.Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) reqrep.Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
