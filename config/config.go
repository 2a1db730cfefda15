package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ErrNotFound is returned if a configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the user configuration of a context. After Resolve, Theme holds
// the complete theme.
type Config struct {
	Prefix           string            `mapstructure:"prefix" toml:"prefix"`
	Separator        string            `mapstructure:"separator" toml:"separator"`
	Important        any               `mapstructure:"important" toml:"important"`
	DarkMode         string            `mapstructure:"dark_mode" toml:"dark_mode"`
	DarkSelector     string            `mapstructure:"dark_selector" toml:"dark_selector"`
	Content          Content           `mapstructure:"content" toml:"content"`
	Safelist         []string          `mapstructure:"safelist" toml:"safelist"`
	SafelistPatterns []SafelistPattern `mapstructure:"safelist_patterns" toml:"safelist_patterns"`
	Blocklist        []any             `mapstructure:"blocklist" toml:"blocklist"`
	Theme            map[string]any    `mapstructure:"theme" toml:"theme"`
	CorePlugins      map[string]bool   `mapstructure:"core_plugins" toml:"core_plugins"`
	Purge            any               `mapstructure:"purge" toml:"purge" hash:"ignore"`

	// Path of the file the configuration has been loaded from, if any.
	Path string `mapstructure:"-" toml:"-" hash:"ignore"`
}

// Content configures the sources to scan for candidates.
type Content struct {
	Files     []string                       `mapstructure:"files" toml:"files"`
	Raw       []RawContent                   `mapstructure:"raw" toml:"raw"`
	Relative  bool                           `mapstructure:"relative" toml:"relative"`
	Transform map[string]func(string) string `mapstructure:"-" toml:"-" hash:"ignore"`
}

// RawContent is a source snippet which is always scanned.
type RawContent struct {
	Content   string `mapstructure:"content" toml:"content"`
	Extension string `mapstructure:"extension" toml:"extension"`
}

// SafelistPattern generates all classes matching Pattern, optionally
// combined with every one of Variants.
type SafelistPattern struct {
	Pattern  string   `mapstructure:"pattern" toml:"pattern"`
	Variants []string `mapstructure:"variants" toml:"variants"`
}

// ImportantPolicy is the interpretation of the `important` option.
type ImportantPolicy struct {
	All      bool   // force !important on all utilities
	Selector string // scope utilities under a selector instead
}

// ImportantPolicy interprets the `important` option, which is either a
// boolean or a selector string.
func (c *Config) ImportantPolicy() ImportantPolicy {
	switch v := c.Important.(type) {
	case bool:
		return ImportantPolicy{All: v}
	case string:
		switch strings.TrimSpace(v) {
		case "", "false":
			return ImportantPolicy{}
		case "true":
			return ImportantPolicy{All: true}
		}
		return ImportantPolicy{Selector: strings.TrimSpace(v)}
	}
	return ImportantPolicy{}
}

// CorePluginEnabled checks if a built-in plugin is enabled. Plugins are
// enabled unless switched off explicitly. Names compare case-insensitive,
// as viper lowercases keys.
func (c *Config) CorePluginEnabled(name string) bool {
	for k, on := range c.CorePlugins {
		if strings.EqualFold(k, name) {
			return on
		}
	}
	return true
}

// Default returns a configuration with all defaults set.
func Default() Config {
	return Config{
		Separator:    ":",
		DarkMode:     "media",
		DarkSelector: ".dark",
		Theme:        map[string]any{},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("separator", d.Separator)
	v.SetDefault("important", false)
	v.SetDefault("dark_mode", d.DarkMode)
	v.SetDefault("dark_selector", d.DarkSelector)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. Theme keys, which
// viper lowercases, are restored to the case of the default theme.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("cannot decode configuration: %w", err)
	}
	cfg.Theme = canonicalKeys(cfg.Theme, DefaultTheme())
	cfg.Path = v.ConfigFileUsed()
	return cfg, nil
}

// LoadFile loads a configuration file. TOML files are decoded directly,
// other formats go through viper.
func LoadFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg, err := ParseTOML(data)
		cfg.Path = path
		return cfg, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("cannot read configuration %s: %w", path, err)
	}
	return Load(v)
}

// ParseTOML decodes a TOML configuration.
func ParseTOML(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot decode TOML configuration: %w", err)
	}
	if cfg.Theme == nil {
		cfg.Theme = map[string]any{}
	}
	return cfg, nil
}

// canonicalKeys renames keys of m which match keys of ref case-insensitive
// to the spelling of ref. `default` becomes `DEFAULT`.
func canonicalKeys(m map[string]any, ref map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := k
		if strings.EqualFold(k, "DEFAULT") {
			key = "DEFAULT"
		}
		for rk := range ref {
			if strings.EqualFold(rk, k) {
				key = rk
				break
			}
		}
		if sub, ok := v.(map[string]any); ok {
			var subref map[string]any
			if r, ok := ref[key].(map[string]any); ok {
				subref = r
			} else if key == "extend" {
				subref = ref
			}
			v = canonicalKeys(sub, subref)
		}
		out[key] = v
	}
	return out
}
