package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semlint/lint"
)

// RuleSetting is one entry of the rules table. It is written either as a
// bare severity or as a list whose head is the severity:
//
//	rules:
//	  async-methods: error
//	  ban-prefix: [warn, [stencil, st]]
//	  class-pattern: [2, {pattern: "^[A-Z]"}]
type RuleSetting struct {
	Severity lint.Severity
	Options  []any
}

// Rule builds a RuleSetting in code.
func Rule(sev lint.Severity, options ...any) RuleSetting {
	return RuleSetting{Severity: sev, Options: options}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RuleSetting) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := parseRuleSetting(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, writing the shortest form.
func (r RuleSetting) MarshalYAML() (any, error) {
	sev := severityName(r.Severity)
	if len(r.Options) == 0 {
		return sev, nil
	}
	return append([]any{sev}, r.Options...), nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *RuleSetting) UnmarshalTOML(raw any) error {
	parsed, err := parseRuleSetting(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func parseRuleSetting(raw any) (RuleSetting, error) {
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return RuleSetting{}, fmt.Errorf("%w: empty rule setting", ErrInvalidConfig)
		}
		sev, err := parseSeverity(list[0])
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Severity: sev, Options: list[1:]}, nil
	}
	sev, err := parseSeverity(raw)
	if err != nil {
		return RuleSetting{}, err
	}
	return RuleSetting{Severity: sev}, nil
}

func parseSeverity(v any) (lint.Severity, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case int:
		s = fmt.Sprint(x)
	case int64:
		s = fmt.Sprint(x)
	case float64:
		s = fmt.Sprint(x)
	default:
		return lint.SeverityOff, fmt.Errorf("%w: severity must be a string or number, got %T", ErrInvalidConfig, v)
	}
	sev, err := lint.ParseSeverity(s)
	if err != nil {
		return lint.SeverityOff, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return sev, nil
}

// severityName is the config spelling, which is shorter than
// Severity.String for warnings.
func severityName(s lint.Severity) string {
	if s == lint.SeverityWarning {
		return "warn"
	}
	return s.String()
}
