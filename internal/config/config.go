// Package config loads the catnet configuration from defaults, an optional
// config file, CATNET_* environment variables and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AidanWoolley/demikernel/internal/log"
)

const (
	KeyConfigFile = "config"
	KeyStateDir   = "state_dir"
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
	KeyCustom     = "custom"
	KeyTopo       = "topo"

	DefaultStateDir = "/var/lib/catnet"
	DefaultCustom   = "shaped"
	DefaultTopo     = "catniptopo"
)

type Config struct {
	StateDir string     `mapstructure:"state_dir"`
	Log      log.Config `mapstructure:"log"`
	Custom   string     `mapstructure:"custom"`
	Topo     string     `mapstructure:"topo"`
}

// New returns a viper instance with the defaults set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyStateDir, DefaultStateDir)
	v.SetDefault(KeyLogLevel, log.DefaultLevel)
	v.SetDefault(KeyLogFormat, log.DefaultFormat)
	v.SetDefault(KeyCustom, DefaultCustom)
	v.SetDefault(KeyTopo, DefaultTopo)
	v.SetEnvPrefix("catnet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the flags named after configuration keys, if present
// in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyConfigFile, KeyStateDir, KeyLogLevel, KeyLogFormat, KeyCustom, KeyTopo} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the config file, if one is set, and decodes the result.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("loading config from %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.StateDir == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyStateDir)
	}
	return cfg, nil
}
