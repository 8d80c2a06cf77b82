package typeinfo

import "strconv"

// NonNullable removes null and undefined from t, as the `!` postfix
// operator does.
func NonNullable(t Type) Type {
	if t == nil {
		return Any()
	}
	return Simplify(mapMembers(t, func(m Type) Type {
		if Is(m, FlagNull|FlagUndefined) {
			return Never()
		}
		return m
	}))
}

// Falsy returns the part of t that can be falsy: the type `x && y` keeps of
// its left operand.
func Falsy(t Type) Type {
	if t == nil {
		return Any()
	}
	return Simplify(mapMembers(t, falsyPart))
}

// Truthy returns the part of t that can be truthy: the type `x || y` keeps
// of its left operand.
func Truthy(t Type) Type {
	if t == nil {
		return Any()
	}
	return Simplify(mapMembers(t, truthyPart))
}

func mapMembers(t Type, fn func(Type) Type) Type {
	if !IsUnion(t) {
		return fn(t)
	}
	out := make([]Type, 0, len(t.Members()))
	for _, m := range t.Members() {
		out = append(out, fn(m))
	}
	return Union(out...)
}

func falsyPart(m Type) Type {
	f := m.Flags()
	switch {
	case f.Has(FlagAny | FlagUnknown | EnumLike | FlagNull | VoidLike | FlagBigInt | FlagBigIntLiteral):
		return m
	case f.Has(FlagString | FlagTemplateLiteral):
		return StringLiteral("")
	case f.Has(FlagStringLiteral):
		if isEmptyString(m) {
			return m
		}
	case f.Has(FlagNumber):
		return NumberLiteral("0")
	case f.Has(FlagNumberLiteral):
		if isZero(m) {
			return m
		}
	case f.Has(FlagBoolean):
		return False()
	case f.Has(FlagBooleanLiteral):
		if m.IntrinsicName() == "false" {
			return m
		}
	}
	return Never()
}

func truthyPart(m Type) Type {
	f := m.Flags()
	switch {
	case f.Has(EnumLike):
		return m
	case f.Has(FlagNull | VoidLike):
		return Never()
	case f.Has(FlagBoolean):
		return True()
	case f.Has(FlagBooleanLiteral) && m.IntrinsicName() == "false":
		return Never()
	case f.Has(FlagStringLiteral) && isEmptyString(m):
		return Never()
	case f.Has(FlagNumberLiteral) && isZero(m):
		return Never()
	}
	return m
}

func isEmptyString(m Type) bool {
	return m.String() == `""`
}

func isZero(m Type) bool {
	v, err := strconv.ParseFloat(m.String(), 64)
	return err == nil && v == 0
}

// Simplify drops never members from a union, folds true | false into
// boolean, and lets string, number and boolean absorb their literals.
func Simplify(t Type) Type {
	if !IsUnion(t) {
		return t
	}
	var hasString, hasNumber, hasBoolean, hasTrue, hasFalse bool
	for _, m := range t.Members() {
		switch {
		case Is(m, EnumLike):
		case m == String():
			hasString = true
		case m == Number():
			hasNumber = true
		case m == Boolean():
			hasBoolean = true
		case m == True():
			hasTrue = true
		case m == False():
			hasFalse = true
		}
	}
	hasBoolean = hasBoolean || (hasTrue && hasFalse)

	kept := make([]Type, 0, len(t.Members()))
	for _, m := range t.Members() {
		switch {
		case Is(m, FlagNever):
			continue
		case Is(m, EnumLike):
		case hasString && Is(m, FlagStringLiteral|FlagTemplateLiteral):
			continue
		case hasNumber && Is(m, FlagNumberLiteral):
			continue
		case hasBoolean && Is(m, FlagBooleanLiteral):
			continue
		}
		kept = append(kept, m)
	}
	if hasBoolean && hasTrue && hasFalse {
		kept = append(kept, Boolean())
	}
	return Union(kept...)
}
