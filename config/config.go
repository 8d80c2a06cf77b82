// Package config provides configuration loading and management for semlint.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semlint/lint"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete semlint configuration
type Config struct {
	// Extends names a preset (base, recommended, strict) applied beneath
	// Rules.
	Extends string `yaml:"extends,omitempty" toml:"extends"`

	Settings Settings `yaml:"settings" toml:"settings"`

	// Include and Exclude are doublestar globs relative to each walked
	// directory.
	Include []string `yaml:"include,omitempty" toml:"include"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude"`

	// Rules maps a rule name to its severity and options.
	Rules map[string]RuleSetting `yaml:"rules,omitempty" toml:"rules"`

	// Format is the reporter: text, json or sarif.
	Format string `yaml:"format,omitempty" toml:"format"`
}

// Settings configure the linted project.
type Settings struct {
	// ComponentDecorator is the decorator that marks component classes.
	ComponentDecorator string `yaml:"componentDecorator,omitempty" toml:"componentDecorator"`
	// StrictNullChecks mirrors the project's compiler option. A nil value
	// means "not set in this layer".
	StrictNullChecks *bool `yaml:"strictNullChecks,omitempty" toml:"strictNullChecks"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	strict := true
	return &Config{
		Settings: Settings{
			ComponentDecorator: lint.DefaultComponentDecorator,
			StrictNullChecks:   &strict,
		},
		Include: []string{"**/*.ts", "**/*.tsx"},
		Exclude: []string{"**/node_modules/**", "**/dist/**", "**/www/**", "**/*.d.ts"},
		Rules:   map[string]RuleSetting{},
		Format:  "text",
	}
}

// Validate checks that the configuration is valid. Rule names are checked
// against reg so a typo fails before any file is read.
func (c *Config) Validate(reg *lint.Registry) error {
	if c.Extends != "" {
		if _, ok := presets[c.Extends]; !ok {
			return fmt.Errorf("%w: extends: unknown preset %q (want %s)", ErrInvalidConfig, c.Extends, strings.Join(PresetNames(), ", "))
		}
	}
	if c.Settings.ComponentDecorator == "" {
		return fmt.Errorf("%w: settings.componentDecorator is required", ErrInvalidConfig)
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("%w: include must not be empty", ErrInvalidConfig)
	}
	for _, p := range slices.Concat(c.Include, c.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad glob %q", ErrInvalidConfig, p)
		}
	}
	if _, err := lint.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalidConfig, err)
	}
	if reg != nil {
		for _, name := range slices.Sorted(maps.Keys(c.Rules)) {
			if _, ok := reg.Get(name); !ok {
				return fmt.Errorf("%w: rules: %w: %s", ErrInvalidConfig, lint.ErrUnknownRule, name)
			}
		}
	}
	return nil
}

// StrictNullChecks returns the effective setting, true when unset.
func (c *Config) StrictNullChecks() bool {
	return c.Settings.StrictNullChecks == nil || *c.Settings.StrictNullChecks
}

// EffectiveRules returns the preset named by Extends overlaid with Rules.
func (c *Config) EffectiveRules() map[string]RuleSetting {
	out := Preset(c.Extends)
	maps.Copy(out, c.Rules)
	return out
}

// LintSettings builds the engine settings. typeInfo declares whether
// every file will come with a type checker.
func (c *Config) LintSettings(typeInfo bool) lint.Settings {
	rules := make(map[string]lint.RuleConfig)
	for name, rs := range c.EffectiveRules() {
		rules[name] = lint.RuleConfig{Severity: rs.Severity, Options: rs.Options}
	}
	return lint.Settings{
		ComponentDecorator: c.Settings.ComponentDecorator,
		StrictNullChecks:   c.StrictNullChecks(),
		TypeInfo:           typeInfo,
		Rules:              rules,
	}
}

// LoadFromFile loads configuration from a YAML or TOML file, chosen by
// extension. Unset keys keep their zero value so the result can be merged
// over another layer.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Extends != "" {
		c.Extends = other.Extends
	}
	if other.Settings.ComponentDecorator != "" {
		c.Settings.ComponentDecorator = other.Settings.ComponentDecorator
	}
	if other.Settings.StrictNullChecks != nil {
		v := *other.Settings.StrictNullChecks
		c.Settings.StrictNullChecks = &v
	}
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.Format != "" {
		c.Format = other.Format
	}

	// Rules merge per name.
	if len(other.Rules) > 0 && c.Rules == nil {
		c.Rules = make(map[string]RuleSetting, len(other.Rules))
	}
	maps.Copy(c.Rules, other.Rules)
}
