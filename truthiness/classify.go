// Package truthiness decides whether a type is safe to use where a boolean
// is expected (conditions and the operand of '!').
//
// Classify maps one type to a TypeKind. Disallowed applies the configured
// allowances to a kind. Check combines both, handles unions, and reports the
// first reason a type is rejected.
package truthiness

import (
	"github.com/c360studio/semlint/typeinfo"
)

// TypeKind is the truthiness category of a single type.
type TypeKind int

const (
	KindString TypeKind = iota
	KindNumber
	KindBoolean
	KindNull
	KindUndefined
	KindEnum
	KindPromise
	KindAlwaysTruthy
	KindFalseLiteral
)

var kindNames = [...]string{
	KindString:       "string",
	KindNumber:       "number",
	KindBoolean:      "boolean",
	KindNull:         "null",
	KindUndefined:    "undefined",
	KindEnum:         "enum",
	KindPromise:      "promise",
	KindAlwaysTruthy: "always-truthy",
	KindFalseLiteral: "false-literal",
}

func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Reason explains why a type is rejected in a boolean position.
type Reason int

const (
	ReasonAlwaysTruthy Reason = iota
	ReasonAlwaysFalsy
	ReasonString
	ReasonNumber
	ReasonNull
	ReasonUndefined
	ReasonEnum
	ReasonPromise
	// ReasonMixedUnion is part of the closed set of reasons but Check never
	// produces it: unions report their first rejected member instead.
	ReasonMixedUnion
)

var reasonNames = [...]string{
	ReasonAlwaysTruthy: "always-truthy",
	ReasonAlwaysFalsy:  "always-falsy",
	ReasonString:       "string",
	ReasonNumber:       "number",
	ReasonNull:         "null",
	ReasonUndefined:    "undefined",
	ReasonEnum:         "enum",
	ReasonPromise:      "promise",
	ReasonMixedUnion:   "mixed-union",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Classify maps a non-union type to its kind by flag precedence. It is
// total: anything unrecognised, including a union passed by mistake and
// nil, is KindAlwaysTruthy.
func Classify(t typeinfo.Type) TypeKind {
	if t == nil {
		return KindAlwaysTruthy
	}
	f := t.Flags()
	switch {
	case f.Has(typeinfo.StringLike):
		return KindString
	case f.Has(typeinfo.NumberLike):
		return KindNumber
	case f.Has(typeinfo.FlagBoolean):
		return KindBoolean
	case t.SymbolName() == "Promise":
		return KindPromise
	case f.Has(typeinfo.FlagNull):
		return KindNull
	case f.Has(typeinfo.VoidLike):
		return KindUndefined
	case f.Has(typeinfo.EnumLike):
		return KindEnum
	case f.Has(typeinfo.FlagBooleanLiteral):
		if t.IntrinsicName() == "true" {
			return KindAlwaysTruthy
		}
		return KindFalseLiteral
	}
	return KindAlwaysTruthy
}

// Disallowed reports whether opts reject kind. Null and undefined are only
// rejected as union members; always-truthy and false literals are left to
// the truth-value check in Check.
func Disallowed(kind TypeKind, opts Options, inUnion bool) (Reason, bool) {
	switch kind {
	case KindString:
		return ReasonString, !opts.AllowString
	case KindNumber:
		return ReasonNumber, !opts.AllowNumber
	case KindEnum:
		return ReasonEnum, !opts.AllowEnum
	case KindPromise:
		return ReasonPromise, true
	case KindNull:
		return ReasonNull, inUnion && !opts.AllowNullUnion
	case KindUndefined:
		return ReasonUndefined, inUnion && !opts.AllowUndefinedUnion
	}
	return 0, false
}

type truth int

const (
	truthUnknown truth = iota
	truthAlways
	truthNever
)

func truthOf(kind TypeKind) truth {
	switch kind {
	case KindNull, KindUndefined, KindFalseLiteral:
		return truthNever
	case KindAlwaysTruthy, KindPromise:
		return truthAlways
	}
	return truthUnknown
}

// Check decides whether t may be used as a condition under opts and
// returns the reason when it may not.
func Check(t typeinfo.Type, opts Options) (Reason, bool) {
	reason, failed := check(t, opts)
	if failed && reason == ReasonAlwaysTruthy && !opts.StrictNullChecks &&
		(opts.AllowNullUnion || opts.AllowUndefinedUnion) {
		// Without strict null checks any value may still be null or undefined.
		return 0, false
	}
	return reason, failed
}

func check(t typeinfo.Type, opts Options) (Reason, bool) {
	if typeinfo.IsUnion(t) {
		return checkUnion(t, opts)
	}

	kind := Classify(t)
	if reason, ok := Disallowed(kind, opts, false); ok {
		return reason, true
	}

	switch truthOf(kind) {
	case truthAlways:
		// any and the literal true are accepted.
		if typeinfo.Is(t, typeinfo.FlagAny|typeinfo.FlagBooleanLiteral) {
			return 0, false
		}
		return ReasonAlwaysTruthy, true
	case truthNever:
		// The literal false is accepted.
		if typeinfo.Is(t, typeinfo.FlagBooleanLiteral) {
			return 0, false
		}
		return ReasonAlwaysFalsy, true
	}
	return 0, false
}

func checkUnion(t typeinfo.Type, opts Options) (Reason, bool) {
	if opts.AllowBooleanOrUndefined {
		if canBeTrue, ok := booleanOrUndefined(t); ok {
			if canBeTrue {
				return 0, false
			}
			return ReasonAlwaysFalsy, true
		}
	}

	for _, member := range t.Members() {
		if reason, ok := Disallowed(Classify(member), opts, true); ok {
			return reason, true
		}
	}
	return 0, false
}

// booleanOrUndefined reports whether every member of u is boolean, a
// boolean literal, void or undefined (ok) and, if so, whether any member
// can be true.
func booleanOrUndefined(u typeinfo.Type) (canBeTrue, ok bool) {
	for _, m := range u.Members() {
		switch {
		case typeinfo.Is(m, typeinfo.FlagBoolean):
			canBeTrue = true
		case typeinfo.Is(m, typeinfo.FlagBooleanLiteral):
			canBeTrue = canBeTrue || m.IntrinsicName() == "true"
		case !typeinfo.Is(m, typeinfo.VoidLike):
			return false, false
		}
	}
	return canBeTrue, true
}
