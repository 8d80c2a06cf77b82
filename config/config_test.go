package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/lint"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Component", cfg.Settings.ComponentDecorator)
	assert.True(t, cfg.StrictNullChecks())
	assert.Equal(t, []string{"**/*.ts", "**/*.tsx"}, cfg.Include)
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
	assert.Contains(t, cfg.Exclude, "**/*.d.ts")
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.EffectiveRules(), "nothing is enabled without a preset")
	assert.NoError(t, cfg.Validate(testRegistry(t)))
}

func testRegistry(t *testing.T) *lint.Registry {
	t.Helper()
	reg := lint.NewRegistry()
	for _, name := range []string{"async-methods", "ban-prefix", "strict-boolean-conditions"} {
		reg.MustRegister(&lint.Rule{Name: name, Create: func(lint.Options) (*lint.Listeners, error) { return nil, nil }})
	}
	return reg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:   "known preset",
			modify: func(c *Config) { c.Extends = PresetStrict },
		},
		{
			name:    "unknown preset",
			modify:  func(c *Config) { c.Extends = "airbnb" },
			wantErr: true,
		},
		{
			name:    "missing component decorator",
			modify:  func(c *Config) { c.Settings.ComponentDecorator = "" },
			wantErr: true,
		},
		{
			name:    "empty include",
			modify:  func(c *Config) { c.Include = nil },
			wantErr: true,
		},
		{
			name:    "bad glob",
			modify:  func(c *Config) { c.Exclude = []string{"src/[a-"} },
			wantErr: true,
		},
		{
			name:    "bad format",
			modify:  func(c *Config) { c.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "unknown rule",
			modify:  func(c *Config) { c.Rules["no-such-rule"] = Rule(lint.SeverityError) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate(testRegistry(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigValidate_UnknownRuleSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules["no-such-rule"] = Rule(lint.SeverityWarning)
	err := cfg.Validate(testRegistry(t))
	assert.True(t, errors.Is(err, lint.ErrUnknownRule))
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "semlint.yaml"), `
extends: recommended
settings:
  componentDecorator: Widget
  strictNullChecks: false
include: ["src/**/*.tsx"]
rules:
  async-methods: off
  ban-prefix: [warn, [x-, y-]]
  class-pattern: [2, {pattern: "^[A-Z]", ignoreCase: true}]
format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, PresetRecommended, cfg.Extends)
	assert.Equal(t, "Widget", cfg.Settings.ComponentDecorator)
	assert.False(t, cfg.StrictNullChecks())
	assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Include)
	assert.Empty(t, cfg.Exclude, "unset keys stay zero for merging")
	assert.Equal(t, "json", cfg.Format)

	assert.Equal(t, Rule(lint.SeverityOff), cfg.Rules["async-methods"])
	assert.Equal(t, Rule(lint.SeverityWarning, []any{"x-", "y-"}), cfg.Rules["ban-prefix"])
	assert.Equal(t, Rule(lint.SeverityError, map[string]any{"pattern": "^[A-Z]", "ignoreCase": true}), cfg.Rules["class-pattern"])
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "semlint.toml"), `
extends = "base"
exclude = ["**/legacy/**"]

[settings]
strictNullChecks = true

[rules]
required-prefix = ["error", ["my-"]]
single-export = "off"
strict-mutable = 1
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, PresetBase, cfg.Extends)
	assert.Equal(t, []string{"**/legacy/**"}, cfg.Exclude)
	assert.True(t, cfg.StrictNullChecks())
	assert.Equal(t, Rule(lint.SeverityError, []any{"my-"}), cfg.Rules["required-prefix"])
	assert.Equal(t, Rule(lint.SeverityOff), cfg.Rules["single-export"])
	assert.Equal(t, Rule(lint.SeverityWarning), cfg.Rules["strict-mutable"])
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	for name, content := range map[string]string{
		"bad severity": "rules:\n  async-methods: loud\n",
		"empty list":   "rules:\n  async-methods: []\n",
		"map setting":  "rules:\n  async-methods: {level: 2}\n",
		"bad yaml":     "rules: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "semlint.yaml"), content)
			_, err := LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigMerge(t *testing.T) {
	off := false
	base := DefaultConfig()
	base.Rules["ban-prefix"] = Rule(lint.SeverityError)
	base.Rules["async-methods"] = Rule(lint.SeverityError)

	base.Merge(&Config{
		Extends:  PresetStrict,
		Settings: Settings{StrictNullChecks: &off},
		Exclude:  []string{"**/gen/**"},
		Rules:    map[string]RuleSetting{"ban-prefix": Rule(lint.SeverityOff)},
	})

	assert.Equal(t, PresetStrict, base.Extends)
	assert.False(t, base.StrictNullChecks())
	assert.Equal(t, "Component", base.Settings.ComponentDecorator, "empty values do not override")
	assert.Equal(t, []string{"**/*.ts", "**/*.tsx"}, base.Include)
	assert.Equal(t, []string{"**/gen/**"}, base.Exclude)
	assert.Equal(t, lint.SeverityOff, base.Rules["ban-prefix"].Severity)
	assert.Equal(t, lint.SeverityError, base.Rules["async-methods"].Severity, "rules merge per name")

	base.Merge(nil)
	assert.Equal(t, PresetStrict, base.Extends)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "semlint.yaml")
	cfg := DefaultConfig()
	cfg.Extends = PresetRecommended
	cfg.Rules["ban-prefix"] = Rule(lint.SeverityWarning, []any{"x-"})
	cfg.Rules["async-methods"] = Rule(lint.SeverityError)
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Extends, loaded.Extends)
	assert.Equal(t, cfg.Include, loaded.Include)
	assert.Equal(t, cfg.Rules, loaded.Rules)
	assert.True(t, loaded.StrictNullChecks())
}

func TestLintSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extends = PresetBase
	cfg.Rules["async-methods"] = Rule(lint.SeverityWarning)
	cfg.Rules["required-prefix"] = Rule(lint.SeverityError, []any{"my-"})

	s := cfg.LintSettings(true)
	assert.True(t, s.TypeInfo)
	assert.True(t, s.StrictNullChecks)
	assert.Equal(t, "Component", s.ComponentDecorator)
	assert.Equal(t, lint.SeverityWarning, s.Rules["async-methods"].Severity, "explicit rules beat the preset")
	assert.Equal(t, []any{[]any{"stencil", "stnl", "st"}}, s.Rules["ban-prefix"].Options)
	assert.Equal(t, []any{[]any{"my-"}}, s.Rules["required-prefix"].Options)
}

func TestPresets(t *testing.T) {
	base := Preset(PresetBase)
	recommended := Preset(PresetRecommended)
	strict := Preset(PresetStrict)

	assert.Len(t, base, 12)
	for name := range base {
		assert.Contains(t, recommended, name, "recommended extends base")
	}
	assert.Equal(t, lint.SeverityWarning, recommended["strict-boolean-conditions"].Severity)
	assert.Equal(t, lint.SeverityError, strict["strict-boolean-conditions"].Severity)
	assert.NotContains(t, strict, "ban-side-effects")

	// Preset hands out copies.
	base["async-methods"] = Rule(lint.SeverityOff)
	assert.Equal(t, lint.SeverityError, Preset(PresetBase)["async-methods"].Severity)

	assert.Empty(t, Preset(""))
	assert.True(t, InPreset(PresetRecommended, "required-jsdoc"))
	assert.False(t, InPreset(PresetBase, "required-jsdoc"))
	assert.Equal(t, []string{"base", "recommended", "strict"}, PresetNames())
}
