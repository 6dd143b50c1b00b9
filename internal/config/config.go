// Package config loads lexifer settings from a config file, LEXIFER_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wmannis/lexifer/internal/prose"
	"github.com/wmannis/lexifer/internal/soundsys"
	"github.com/wmannis/lexifer/internal/textwrap"
)

const envPrefix = "LEXIFER"

// Config holds the resolved settings
type Config struct {
	DB          string `mapstructure:"db"`
	Addr        string `mapstructure:"addr"`
	WrapWidth   int    `mapstructure:"wrap_width"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	Sentences   int    `mapstructure:"sentences"`
	Seed        int64  `mapstructure:"seed"`
	Verbose     int    `mapstructure:"verbose"`
}

// DefaultDBPath is ~/.lexifer/lexicon.db
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lexicon.db"
	}
	return filepath.Join(home, ".lexifer", "lexicon.db")
}

// Load reads configuration. An explicit file must exist; otherwise
// lexifer.yaml is looked up in ~/.lexifer and the working directory.
// Flags in the given set override file and environment values for keys
// of the same name (dashes become underscores).
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("db", DefaultDBPath())
	v.SetDefault("addr", ":8080")
	v.SetDefault("wrap_width", textwrap.DefaultWidth)
	v.SetDefault("max_attempts", soundsys.DefaultMaxAttempts)
	v.SetDefault("sentences", prose.DefaultSentences)
	v.SetDefault("seed", 0)
	v.SetDefault("verbose", 0)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lexifer")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".lexifer"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range v.AllKeys() {
			f := flags.Lookup(flagName(key))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.WrapWidth <= 0 {
		return nil, fmt.Errorf("wrap_width must be positive, got %d", cfg.WrapWidth)
	}
	return &cfg, nil
}

func flagName(key string) string {
	out := []byte(key)
	for i, c := range out {
		if c == '_' {
			out[i] = '-'
		}
	}
	return string(out)
}
