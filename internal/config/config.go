// Package config implements process-level configuration (SPEC_FULL.md's
// ambient stack): a TOML file plus flag/environment overrides, in the
// same shape the teacher's inmaputil.Cfg wraps a *viper.Viper around
// cobra flags. Unlike the teacher, tomo has no per-run simulation
// settings to expose as dozens of flags; Config instead holds the
// handful of process-wide knobs the engine and CLI need (log level,
// state-file directory, untrusted-load default).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded from an optional
// TOML file with environment-variable overrides prefixed TOMO_ (spec's
// ambient stack: "configuration ... specified the way the teacher does
// it").
type Config struct {
	v *viper.Viper

	// LogLevel is a logrus level name: "debug", "info", "warn", "error".
	LogLevel string
	// StateDir holds the "statedir" setting. statefile.Load and
	// statefile.Write do not consult it when resolving paths.
	StateDir string
	// UntrustedLoads, when true, makes the refresh command strip
	// hazardous filters by default (spec §7).
	UntrustedLoads bool
}

// defaults mirror the teacher's options table pattern (cmd.go's
// `options []struct{name, usage, defaultVal, ...}`), reduced to the
// handful tomo actually needs.
var defaults = map[string]interface{}{
	"loglevel":       "info",
	"statedir":       ".",
	"untrustedloads": false,
}

// Load reads path (if non-empty) as a TOML configuration file, then
// applies TOMO_-prefixed environment variable overrides, following the
// teacher's setConfig (inmaputil/cmd.go: SetConfigFile + ReadInConfig,
// SetEnvPrefix("INMAP")).
func Load(path string) (*Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadWithFlags is Load plus command-line overrides: any key in flags
// matching a config key takes precedence the way the teacher's cmd.go
// binds its option table onto a *pflag.FlagSet with viper.BindPFlag,
// so a flag set by the user always wins over the file and environment.
func LoadWithFlags(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("TOMO")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: reading %s: %w", path, err)
		}
	}

	if flags != nil {
		for k := range defaults {
			if fl := flags.Lookup(k); fl != nil {
				if err := v.BindPFlag(k, fl); err != nil {
					return nil, fmt.Errorf("config.Load: binding flag %s: %w", k, err)
				}
			}
		}
	}

	return &Config{
		v:              v,
		LogLevel:       v.GetString("loglevel"),
		StateDir:       v.GetString("statedir"),
		UntrustedLoads: v.GetBool("untrustedloads"),
	}, nil
}

// Default returns a Config populated entirely from defaults and
// environment variables, with no file backing it.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}

// WriteExample writes an example TOML configuration to path,
// the same shape Load reads, using the teacher's encoding/xml sibling
// for structured text files — here encoding/toml via BurntSushi/toml,
// the library already in the teacher's own go.mod.
func WriteExample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config.WriteExample: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	example := struct {
		LogLevel       string `toml:"loglevel"`
		StateDir       string `toml:"statedir"`
		UntrustedLoads bool   `toml:"untrustedloads"`
	}{
		LogLevel:       defaults["loglevel"].(string),
		StateDir:       defaults["statedir"].(string),
		UntrustedLoads: defaults["untrustedloads"].(bool),
	}
	if err := enc.Encode(example); err != nil {
		return fmt.Errorf("config.WriteExample: %w", err)
	}
	return nil
}
