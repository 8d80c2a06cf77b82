package truthiness

import (
	"fmt"
	"strings"
)

// Location is the kind of boolean position an expression occupies.
type Location int

const (
	LocationNot Location = iota
	LocationConditional
	LocationFor
	LocationIf
	LocationWhile
	LocationDoWhile
)

func (l Location) String() string {
	switch l {
	case LocationNot:
		return "operand for the '!' operator"
	case LocationConditional:
		return "condition"
	case LocationFor:
		return "'for' condition"
	case LocationIf:
		return "'if' condition"
	case LocationWhile:
		return "'while' condition"
	case LocationDoWhile:
		return "'do-while' condition"
	}
	return "condition"
}

// Message renders a diagnostic for a rejected type. union selects the
// "could be" wording used for union members.
func Message(loc Location, reason Reason, union bool, opts Options) string {
	expected := opts.expected()
	var allowed string
	if len(expected) == 1 {
		allowed = fmt.Sprintf("Only %ss are allowed", expected[0])
	} else {
		allowed = "Allowed types are " + stringOr(expected)
	}
	return fmt.Sprintf("This type is not allowed in the %s because it %s. %s.",
		loc, describe(reason, union, opts.StrictNullChecks), allowed)
}

func describe(reason Reason, union, strictNullChecks bool) string {
	is := "is"
	if union {
		is = "could be"
	}
	switch reason {
	case ReasonAlwaysTruthy:
		if strictNullChecks {
			return "is always truthy"
		}
		return fmt.Sprintf("is always truthy. It may be null/undefined, but neither '%s' nor '%s' is set",
			OptionAllowNullUnion, OptionAllowUndefinedUnion)
	case ReasonAlwaysFalsy:
		return "is always falsy"
	case ReasonString:
		return is + " a string"
	case ReasonNumber:
		return is + " a number"
	case ReasonNull:
		return is + " null"
	case ReasonUndefined:
		return is + " undefined"
	case ReasonEnum:
		return is + " an enum"
	case ReasonPromise:
		return "promise handled as boolean expression"
	case ReasonMixedUnion:
		return "unions more than one truthy/falsy type"
	}
	return is + " not a boolean"
}

func stringOr(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
}
