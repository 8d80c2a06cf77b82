package truthiness

import (
	"errors"
	"fmt"
)

// Option names accepted by ParseOptions.
const (
	OptionAllowNullUnion          = "allow-null-union"
	OptionAllowUndefinedUnion     = "allow-undefined-union"
	OptionAllowString             = "allow-string"
	OptionAllowEnum               = "allow-enum"
	OptionAllowNumber             = "allow-number"
	OptionAllowMix                = "allow-mix"
	OptionAllowBooleanOrUndefined = "allow-boolean-or-undefined"
	OptionAllowAnyRHS             = "allow-any-rhs"
)

// ErrUnknownOption is returned by ParseOptions for names it does not know.
var ErrUnknownOption = errors.New("unknown option")

// DefaultOptionNames are used when a rule is enabled without options.
var DefaultOptionNames = []string{
	OptionAllowNullUnion,
	OptionAllowUndefinedUnion,
	OptionAllowBooleanOrUndefined,
}

// Options are the allowances for one run. AllowMix and AllowAnyRHS are
// accepted for configuration compatibility; Check does not consult them.
type Options struct {
	StrictNullChecks        bool
	AllowNullUnion          bool
	AllowUndefinedUnion     bool
	AllowString             bool
	AllowEnum               bool
	AllowNumber             bool
	AllowMix                bool
	AllowBooleanOrUndefined bool
	AllowAnyRHS             bool
}

// DefaultOptions returns the allowances of DefaultOptionNames.
func DefaultOptions(strictNullChecks bool) Options {
	opts, _ := ParseOptions(DefaultOptionNames, strictNullChecks)
	return opts
}

// ParseOptions builds Options from option names. Duplicates are harmless.
func ParseOptions(names []string, strictNullChecks bool) (Options, error) {
	opts := Options{StrictNullChecks: strictNullChecks}
	for _, name := range names {
		switch name {
		case OptionAllowNullUnion:
			opts.AllowNullUnion = true
		case OptionAllowUndefinedUnion:
			opts.AllowUndefinedUnion = true
		case OptionAllowString:
			opts.AllowString = true
		case OptionAllowEnum:
			opts.AllowEnum = true
		case OptionAllowNumber:
			opts.AllowNumber = true
		case OptionAllowMix:
			opts.AllowMix = true
		case OptionAllowBooleanOrUndefined:
			opts.AllowBooleanOrUndefined = true
		case OptionAllowAnyRHS:
			opts.AllowAnyRHS = true
		default:
			return Options{}, fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
	}
	return opts, nil
}

// expected lists the categories opts permit, in a fixed order.
func (o Options) expected() []string {
	parts := []string{"boolean"}
	if o.AllowNullUnion {
		parts = append(parts, "null-union")
	}
	if o.AllowUndefinedUnion {
		parts = append(parts, "undefined-union")
	}
	if o.AllowString {
		parts = append(parts, "string")
	}
	if o.AllowEnum {
		parts = append(parts, "enum")
	}
	if o.AllowNumber {
		parts = append(parts, "number")
	}
	if o.AllowBooleanOrUndefined {
		parts = append(parts, "boolean-or-undefined")
	}
	return parts
}
