package lint

import (
	"fmt"
	"log/slog"
)

// RuleConfig is the configured severity and raw options of one rule.
type RuleConfig struct {
	Severity Severity
	Options  []any
}

// Settings configure a Linter.
type Settings struct {
	// ComponentDecorator marks component classes. Defaults to "Component".
	ComponentDecorator string
	// StrictNullChecks mirrors the compiler setting of the linted project.
	StrictNullChecks bool
	// TypeInfo declares that every file will come with a type checker.
	// Rules that need types are refused when it is false.
	TypeInfo bool
	// Rules enables rules by name. Rules not listed are off.
	Rules map[string]RuleConfig
	// Logger receives check failures and timing. Defaults to slog.Default().
	Logger *slog.Logger
}

// Options are a rule's configured arguments as decoded from YAML or TOML.
type Options struct {
	args     []any
	settings Settings
}

// NewOptions wraps raw rule arguments.
func NewOptions(args []any, settings Settings) Options {
	return Options{args: args, settings: settings}
}

// Len returns the number of arguments.
func (o Options) Len() int {
	return len(o.args)
}

// Raw returns the arguments as decoded.
func (o Options) Raw() []any {
	return o.args
}

// Settings returns the run settings.
func (o Options) Settings() Settings {
	return o.settings
}

// Strings returns argument i as a string list. A single string becomes a
// one-element list; a missing argument is nil.
func (o Options) Strings(i int) ([]string, error) {
	if i >= len(o.args) {
		return nil, nil
	}
	return toStrings(o.args[i])
}

// AllStrings flattens every argument into one string list, accepting both
// ["a", "b"] and [["a", "b"]].
func (o Options) AllStrings() ([]string, error) {
	var out []string
	for i := range o.args {
		s, err := o.Strings(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
	}
	return out, nil
}

// Object returns argument i as a map; a missing argument is nil.
func (o Options) Object(i int) (map[string]any, error) {
	if i >= len(o.args) {
		return nil, nil
	}
	switch v := o.args[i].(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: argument %d: want an object, got %T", ErrInvalidOptions, i, o.args[i])
}

func toStrings(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: want strings, got %T", ErrInvalidOptions, e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: want a string list, got %T", ErrInvalidOptions, v)
}
