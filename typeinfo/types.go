// Package typeinfo models the type information the lint engine consumes:
// a Type with TypeScript-compatible flags, and a Checker that resolves the
// type of an expression at a syntax node.
package typeinfo

import (
	"strconv"
	"strings"
)

// Flags classify a type the way the TypeScript checker does.
type Flags uint32

const (
	FlagAny Flags = 1 << iota
	FlagUnknown
	FlagString
	FlagNumber
	FlagBoolean
	FlagEnum
	FlagBigInt
	FlagStringLiteral
	FlagNumberLiteral
	FlagBooleanLiteral
	FlagEnumLiteral
	FlagBigIntLiteral
	FlagTemplateLiteral
	FlagVoid
	FlagUndefined
	FlagNull
	FlagNever
	FlagObject
	FlagUnion
	FlagIntersection
)

// Composite flag groups.
const (
	StringLike  = FlagString | FlagStringLiteral | FlagTemplateLiteral
	NumberLike  = FlagNumber | FlagNumberLiteral | FlagBigInt | FlagBigIntLiteral
	BooleanLike = FlagBoolean | FlagBooleanLiteral
	EnumLike    = FlagEnum | FlagEnumLiteral
	VoidLike    = FlagVoid | FlagUndefined
)

// Has reports whether any of the given flags is set.
func (f Flags) Has(flags Flags) bool {
	return f&flags != 0
}

// Type is a resolved type.
type Type interface {
	// Flags returns the type's flag set.
	Flags() Flags
	// Members returns union members; nil for non-unions.
	Members() []Type
	// SymbolName returns the name of the type's symbol ("Promise",
	// "Array", an enum or class name); empty when the type has none.
	SymbolName() string
	// IntrinsicName returns "true" or "false" for boolean literals and the
	// keyword for other intrinsic types; empty otherwise.
	IntrinsicName() string
	// TypeArguments returns generic arguments (Promise<T> → [T]).
	TypeArguments() []Type
	String() string
}

type basic struct {
	flags     Flags
	members   []Type
	symbol    string
	intrinsic string
	args      []Type
	display   string
}

func (b *basic) Flags() Flags          { return b.flags }
func (b *basic) Members() []Type       { return b.members }
func (b *basic) SymbolName() string    { return b.symbol }
func (b *basic) IntrinsicName() string { return b.intrinsic }
func (b *basic) TypeArguments() []Type { return b.args }

func (b *basic) String() string {
	if b.display != "" {
		return b.display
	}
	if b.flags.Has(FlagUnion) && len(b.members) > 0 && b.symbol == "" {
		parts := make([]string, len(b.members))
		for i, m := range b.members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	}
	if b.symbol != "" {
		if len(b.args) == 0 {
			return b.symbol
		}
		parts := make([]string, len(b.args))
		for i, a := range b.args {
			parts[i] = a.String()
		}
		return b.symbol + "<" + strings.Join(parts, ", ") + ">"
	}
	return b.intrinsic
}

var (
	anyType       = &basic{flags: FlagAny, intrinsic: "any"}
	unknownType   = &basic{flags: FlagUnknown, intrinsic: "unknown"}
	stringType    = &basic{flags: FlagString, intrinsic: "string"}
	numberType    = &basic{flags: FlagNumber, intrinsic: "number"}
	bigintType    = &basic{flags: FlagBigInt, intrinsic: "bigint"}
	booleanType   = &basic{flags: FlagBoolean, intrinsic: "boolean"}
	trueType      = &basic{flags: FlagBooleanLiteral, intrinsic: "true"}
	falseType     = &basic{flags: FlagBooleanLiteral, intrinsic: "false"}
	nullType      = &basic{flags: FlagNull, intrinsic: "null"}
	undefinedType = &basic{flags: FlagUndefined, intrinsic: "undefined"}
	voidType      = &basic{flags: FlagVoid, intrinsic: "void"}
	neverType     = &basic{flags: FlagNever, intrinsic: "never"}
)

// Any returns the any type.
func Any() Type { return anyType }

// Unknown returns the unknown type.
func Unknown() Type { return unknownType }

// String returns the string type.
func String() Type { return stringType }

// Number returns the number type.
func Number() Type { return numberType }

// BigInt returns the bigint type.
func BigInt() Type { return bigintType }

// Boolean returns the boolean type.
func Boolean() Type { return booleanType }

// True returns the boolean literal type true.
func True() Type { return trueType }

// False returns the boolean literal type false.
func False() Type { return falseType }

// Null returns the null type.
func Null() Type { return nullType }

// Undefined returns the undefined type.
func Undefined() Type { return undefinedType }

// Void returns the void type.
func Void() Type { return voidType }

// Never returns the never type.
func Never() Type { return neverType }

// StringLiteral returns a string literal type.
func StringLiteral(v string) Type {
	return &basic{flags: FlagStringLiteral, display: strconv.Quote(v)}
}

// NumberLiteral returns a number literal type.
func NumberLiteral(v string) Type {
	return &basic{flags: FlagNumberLiteral, display: v}
}

// TemplateLiteral returns a template literal string type.
func TemplateLiteral() Type {
	return &basic{flags: FlagTemplateLiteral, display: "`${string}`"}
}

// Object returns a named object type with optional type arguments.
func Object(name string, args ...Type) Type {
	return &basic{flags: FlagObject, symbol: name, args: args}
}

// AnonymousObject returns an object type without a symbol (object literals,
// functions).
func AnonymousObject(display string) Type {
	return &basic{flags: FlagObject, display: display}
}

// Promise returns Promise<of>.
func Promise(of Type) Type {
	if of == nil {
		of = Any()
	}
	return Object("Promise", of)
}

// Array returns Array<of>.
func Array(of Type) Type {
	if of == nil {
		of = Any()
	}
	return Object("Array", of)
}

// Enum returns an enum type. With members it presents as a pseudo-union
// carrying both the Enum and Union flags.
func Enum(name string, members ...Type) Type {
	flags := FlagEnum
	if len(members) > 0 {
		flags |= FlagUnion
	}
	return &basic{flags: flags, symbol: name, members: members}
}

// EnumMember returns the literal type of one enum member. Numeric members
// carry FlagNumberLiteral, string members FlagStringLiteral.
func EnumMember(enum, member string, numeric bool) Type {
	flags := FlagEnumLiteral
	if numeric {
		flags |= FlagNumberLiteral
	} else {
		flags |= FlagStringLiteral
	}
	return &basic{flags: flags, symbol: enum, display: enum + "." + member}
}

// Union builds a union type. Nested unions are flattened and duplicate
// intrinsic members dropped; a single remaining member is returned as is.
func Union(members ...Type) Type {
	var flat []Type
	seen := make(map[Type]bool)
	var add func(t Type)
	add = func(t Type) {
		if t == nil {
			return
		}
		if IsUnion(t) {
			for _, m := range t.Members() {
				add(m)
			}
			return
		}
		if seen[t] {
			return
		}
		seen[t] = true
		flat = append(flat, t)
	}
	for _, m := range members {
		add(m)
	}

	switch len(flat) {
	case 0:
		return Never()
	case 1:
		return flat[0]
	}
	return &basic{flags: FlagUnion, members: flat}
}

// IsUnion reports whether t is a real union. Enums present as unions of
// their members but are classified as a single kind.
func IsUnion(t Type) bool {
	if t == nil {
		return false
	}
	f := t.Flags()
	return f.Has(FlagUnion) && !f.Has(FlagEnum)
}

// Is reports whether any of flags is set on t.
func Is(t Type, flags Flags) bool {
	return t != nil && t.Flags().Has(flags)
}

// IsThenable reports whether values of t can be awaited as promises. A
// union is thenable only when every member is.
func IsThenable(t Type) bool {
	if t == nil {
		return false
	}
	if IsUnion(t) {
		for _, m := range t.Members() {
			if !IsThenable(m) {
				return false
			}
		}
		return len(t.Members()) > 0
	}
	if !t.Flags().Has(FlagObject) {
		return false
	}
	switch t.SymbolName() {
	case "Promise", "PromiseLike":
		return true
	}
	return false
}

// Awaited unwraps Promise<T> to T. Non-thenable types are returned as is.
func Awaited(t Type) Type {
	if t == nil {
		return Any()
	}
	if IsUnion(t) {
		members := make([]Type, 0, len(t.Members()))
		for _, m := range t.Members() {
			members = append(members, Awaited(m))
		}
		return Union(members...)
	}
	if IsThenable(t) {
		if args := t.TypeArguments(); len(args) > 0 {
			return args[0]
		}
		return Any()
	}
	return t
}
