package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/vpath/internal/locator"
	"github.com/danieljhkim/vpath/internal/log"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. VPATH_BASE or VPATH_LOG_LEVEL.
const EnvPrefix = "VPATH"

// Config holds all configuration options for vpath.
type Config struct {
	Base    string         `mapstructure:"base" yaml:"base"`
	Log     LogConfig      `mapstructure:"log" yaml:"log"`
	Schemes []SchemeConfig `mapstructure:"schemes" yaml:"schemes"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// SchemeConfig is one registration: paths added to a scheme under a prefix.
// Entries are applied in file order, so several entries may target the same
// scheme and prefix.
type SchemeConfig struct {
	Name   string   `mapstructure:"name" yaml:"name"`
	Prefix string   `mapstructure:"prefix" yaml:"prefix"`
	Paths  []string `mapstructure:"paths" yaml:"paths"`
	Mode   string   `mapstructure:"mode" yaml:"mode,omitempty"`
	Anchor string   `mapstructure:"anchor" yaml:"anchor,omitempty"`
	Force  bool     `mapstructure:"force" yaml:"force,omitempty"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config file at path. The format follows the file
// extension (yaml, json, toml, dotenv). A missing file is not an error when
// optional is set; defaults are returned instead. Environment variables
// prefixed with VPATH_ override file values.
func Load(path string, optional bool) (Config, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("base", defaults.Base)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !(optional && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist))) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			log.Debug(log.CatConfig, "no config file, using defaults", "path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.expand(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	log.Debug(log.CatConfig, "config loaded", "path", v.ConfigFileUsed(), "schemes", len(cfg.Schemes))
	return cfg, nil
}

// expand resolves "~" in the base and physical paths.
func (c *Config) expand() error {
	base, err := homedir.Expand(c.Base)
	if err != nil {
		return fmt.Errorf("failed to expand base: %w", err)
	}
	c.Base = base

	for i := range c.Schemes {
		for j, p := range c.Schemes[i].Paths {
			if strings.Contains(p, locator.SchemeSeparator) {
				continue
			}
			expanded, err := homedir.Expand(p)
			if err != nil {
				return fmt.Errorf("failed to expand path %q: %w", p, err)
			}
			c.Schemes[i].Paths[j] = expanded
		}
	}
	return nil
}

// Validate checks every scheme entry and reports all problems at once.
func (c *Config) Validate() error {
	var result error

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, err)
	}

	for i, s := range c.Schemes {
		where := fmt.Sprintf("schemes[%d]", i)
		if s.Name != "" {
			where = fmt.Sprintf("schemes[%d] (%s)", i, s.Name)
		}
		if s.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: missing name", where))
		}
		if len(s.Paths) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s: no paths", where))
		}
		mode, err := locator.ParseMode(s.Mode)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", where, err))
			continue
		}
		if (mode == locator.ModeBefore || mode == locator.ModeAfter) && s.Anchor == "" {
			result = multierror.Append(result, fmt.Errorf("%s: mode %s requires an anchor", where, mode))
		}
	}

	return result
}

// Apply registers every scheme entry with loc, in order.
func (c *Config) Apply(loc *locator.Locator) error {
	for i, s := range c.Schemes {
		mode, err := locator.ParseMode(s.Mode)
		if err != nil {
			return fmt.Errorf("schemes[%d]: %w", i, err)
		}
		opts := locator.AddOptions{Mode: mode, Anchor: s.Anchor, Force: s.Force}
		if err := loc.AddPath(s.Name, s.Prefix, s.Paths, opts); err != nil {
			return fmt.Errorf("schemes[%d] (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

// FromLocator builds a config that reproduces loc's registry. Each prefix
// becomes one forced, appended entry so the current priority order is kept.
// The built-in file entry is left out.
func FromLocator(loc *locator.Locator) Config {
	cfg := Defaults()
	cfg.Base = loc.Base()
	for _, name := range loc.Schemes() {
		for _, p := range loc.Paths(name) {
			paths := make([]string, 0, len(p.Entries))
			for _, e := range p.Entries {
				pe, physical := e.(locator.PhysicalEntry)
				switch {
				case physical && name == locator.FileScheme && p.Prefix == "" && pe.Path == "":
					// built-in, registered by locator.New
					continue
				case physical && pe.Path == "":
					paths = append(paths, ".")
				default:
					paths = append(paths, e.String())
				}
			}
			if len(paths) == 0 {
				continue
			}
			cfg.Schemes = append(cfg.Schemes, SchemeConfig{
				Name:   name,
				Prefix: p.Prefix,
				Paths:  paths,
				Mode:   locator.ModeAppend.String(),
				Force:  true,
			})
		}
	}
	return cfg
}

// Dump renders the config as a YAML document.
func (c Config) Dump() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
