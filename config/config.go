// Package config loads the bot's settings from flags, environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/Jaggernaut555/chaoticbot/db"
	"github.com/Jaggernaut555/chaoticbot/history"
	"github.com/Jaggernaut555/chaoticbot/lobby"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Defaults
const (
	EnvPrefix           = "CHAOTIC"
	DefaultPrefix       = "€"
	DefaultDBName       = "chaoticdb"
	DefaultDBUser       = "chaoticbot"
	DefaultLogLevel     = slog.LevelInfo
	DefaultCommandRate  = 1.0
	DefaultCommandBurst = 3
)

// Redis is where finished games are pushed, disabled when Address is empty
type Redis struct {
	Address string
	List    string
}

type Config struct {
	Token        string
	Prefix       string
	Database     db.Config
	Redis        Redis
	LogLevel     slog.Level `mapstructure:"log_level"`
	LogChannelID string     `mapstructure:"log_channel_id"`
	// CommandRate is how many commands per second one user may send, after CommandBurst
	CommandRate  float64 `mapstructure:"command_rate"`
	CommandBurst int     `mapstructure:"command_burst"`
	LobbySeconds int     `mapstructure:"lobby_seconds"`
	Purge        bool
}

// SetDefaults registers every key so environment variables can fill them
func SetDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("prefix", DefaultPrefix)
	v.SetDefault("database.name", DefaultDBName)
	v.SetDefault("database.user", DefaultDBUser)
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.list", history.DefaultListName)
	v.SetDefault("log_level", DefaultLogLevel.String())
	v.SetDefault("log_channel_id", "")
	v.SetDefault("command_rate", DefaultCommandRate)
	v.SetDefault("command_burst", DefaultCommandBurst)
	v.SetDefault("lobby_seconds", lobby.DefaultSeconds)
	v.SetDefault("purge", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes the viper settings and checks them
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			StringToLevelHookFunc(),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks what can be checked before connecting anywhere
func (c *Config) Validate() error {
	var errs []error
	if c.Token == "" {
		errs = append(errs, errors.New("you must provide a Discord authentication token (-t)"))
	}
	if c.Prefix == "" {
		errs = append(errs, errors.New("command prefix can't be blank"))
	}
	if c.CommandRate <= 0 || c.CommandBurst <= 0 {
		errs = append(errs, fmt.Errorf("command rate and burst must be positive, got %v and %d", c.CommandRate, c.CommandBurst))
	}
	if c.LobbySeconds <= 0 {
		errs = append(errs, fmt.Errorf("lobby seconds must be positive, got %d", c.LobbySeconds))
	}
	return errors.Join(errs...)
}

// StringToLevelHookFunc decodes level names like "debug" into slog levels
func StringToLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(slog.Level(0)) {
			return data, nil
		}
		return logging.ParseLevel(data.(string))
	}
}
