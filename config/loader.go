package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semlint/lint"
)

const (
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/semlint"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// ProjectConfigFiles are the project-level file names, in lookup order
// within one directory.
var ProjectConfigFiles = []string{"semlint.yaml", "semlint.yml", "semlint.toml"}

// LoadOptions select the optional layers of a Load.
type LoadOptions struct {
	// Dir is where the project config search starts. Defaults to the
	// working directory.
	Dir string
	// HomeDir holds the user config. Defaults to os.UserHomeDir.
	HomeDir string
	// ConfigPath is an explicit config file. It must exist.
	ConfigPath string
	// Overrides are "name=setting" pairs where setting is written as in
	// the rules table, for example "ban-prefix=[warn, [x-]]".
	Overrides []string
	// Registry validates rule names. Nil skips the check.
	Registry *lint.Registry
}

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semlint/config.yaml)
// 3. Project config (semlint.yaml, .yml or .toml in Dir or a parent)
// 4. The explicit ConfigPath
// 5. Rule overrides
func (l *Loader) Load(opts LoadOptions) (*Config, error) {
	config := DefaultConfig()

	// A broken user config should not block linting a project.
	userConfigPath := l.userConfigPath(opts.HomeDir)
	if userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath, err := l.findProjectConfig(opts.Dir)
	if err != nil {
		return nil, err
	}
	if projectConfigPath != "" {
		projectConfig, err := LoadFromFile(projectConfigPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		config.Merge(projectConfig)
	} else {
		l.logger.Debug("No project config found")
	}

	if opts.ConfigPath != "" {
		explicit, err := LoadFromFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", opts.ConfigPath))
		config.Merge(explicit)
	}

	for _, o := range opts.Overrides {
		name, setting, err := ParseOverride(o)
		if err != nil {
			return nil, err
		}
		config.Rules[name] = setting
	}

	if err := config.Validate(opts.Registry); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseOverride parses one --rule flag value.
func ParseOverride(s string) (string, RuleSetting, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(value) == "" {
		return "", RuleSetting{}, fmt.Errorf("%w: rule override %q: want name=severity", ErrInvalidConfig, s)
	}
	var setting RuleSetting
	if err := yaml.Unmarshal([]byte(value), &setting); err != nil {
		return "", RuleSetting{}, fmt.Errorf("rule override %q: %w", s, err)
	}
	return name, setting, nil
}

// Init writes a project config extending preset into dir unless one
// already exists there. It returns the path of the config.
func (l *Loader) Init(dir, preset string) (string, error) {
	for _, name := range ProjectConfigFiles {
		existing := filepath.Join(dir, name)
		if _, err := os.Stat(existing); err == nil {
			return existing, fmt.Errorf("config already exists: %s", existing)
		}
	}

	config := DefaultConfig()
	config.Extends = preset
	if err := config.Validate(nil); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ProjectConfigFiles[0])
	if err := config.SaveToFile(path); err != nil {
		return "", err
	}

	l.logger.Info("Created project config", slog.String("path", path), slog.String("extends", preset))
	return path, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath(home string) string {
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for a project config in dir and its parents
func (l *Loader) findProjectConfig(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range ProjectConfigFiles {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", nil
		}
		dir = parent
	}
}
