// Package config loads service configuration from an optional config.yaml
// plus environment overrides. PORT controls the listen port.
package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/shoyo10/usersvc/internal/database"
	"github.com/shoyo10/wzerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Log      wzerolog.Config `yaml:"log"`
	Database database.Config `yaml:"database"`
}

type ServerConfig struct {
	Port               int `yaml:"port"`
	ReadTimeoutSec     int `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int `yaml:"write_timeout_sec"`
	IdleTimeoutSec     int `yaml:"idle_timeout_sec"`
	ShutdownTimeoutSec int `yaml:"shutdown_timeout_sec"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 15)
	v.SetDefault("server.idle_timeout_sec", 60)
	v.SetDefault("server.shutdown_timeout_sec", 10)
	v.SetDefault("database.driver", string(database.Postgres))

	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; defaults and env cover a bare run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.WithStack(err)
		}
	}

	var config Config
	err := v.Unmarshal(&config, func(cfg *mapstructure.DecoderConfig) {
		cfg.TagName = "yaml"
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &config, nil
}
