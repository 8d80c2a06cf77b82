package truthiness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/typeinfo"
)

func defaults() Options {
	return DefaultOptions(true)
}

func TestClassify(t *testing.T) {
	color := typeinfo.Enum("Color", typeinfo.EnumMember("Color", "Red", true))

	tests := []struct {
		name string
		typ  typeinfo.Type
		want TypeKind
	}{
		{"string", typeinfo.String(), KindString},
		{"string literal", typeinfo.StringLiteral("x"), KindString},
		{"template", typeinfo.TemplateLiteral(), KindString},
		{"number", typeinfo.Number(), KindNumber},
		{"bigint", typeinfo.BigInt(), KindNumber},
		{"numeric enum member", typeinfo.EnumMember("Color", "Red", true), KindNumber},
		{"boolean", typeinfo.Boolean(), KindBoolean},
		{"promise", typeinfo.Promise(typeinfo.String()), KindPromise},
		{"null", typeinfo.Null(), KindNull},
		{"undefined", typeinfo.Undefined(), KindUndefined},
		{"void", typeinfo.Void(), KindUndefined},
		{"enum", color, KindEnum},
		{"true", typeinfo.True(), KindAlwaysTruthy},
		{"false", typeinfo.False(), KindFalseLiteral},
		{"object", typeinfo.Object("HTMLElement"), KindAlwaysTruthy},
		{"any", typeinfo.Any(), KindAlwaysTruthy},
		{"union wrapper", typeinfo.Union(typeinfo.String(), typeinfo.Null()), KindAlwaysTruthy},
		{"nil", nil, KindAlwaysTruthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.typ))
		})
	}
}

func TestClassify_TotalOverFlags(t *testing.T) {
	for bit := 0; bit < 32; bit++ {
		typ := stubType{flags: typeinfo.Flags(1) << bit}
		kind := Classify(typ)
		assert.NotEqual(t, "unknown", kind.String(), "flag bit %d", bit)
	}
}

type stubType struct {
	flags typeinfo.Flags
}

func (s stubType) Flags() typeinfo.Flags          { return s.flags }
func (s stubType) Members() []typeinfo.Type       { return nil }
func (s stubType) SymbolName() string             { return "" }
func (s stubType) IntrinsicName() string          { return "" }
func (s stubType) TypeArguments() []typeinfo.Type { return nil }
func (s stubType) String() string                 { return "stub" }

func TestDisallowed(t *testing.T) {
	none := Options{}
	all := Options{AllowString: true, AllowNumber: true, AllowEnum: true, AllowNullUnion: true, AllowUndefinedUnion: true}

	tests := []struct {
		kind    TypeKind
		opts    Options
		inUnion bool
		want    Reason
		wantOK  bool
	}{
		{KindString, none, false, ReasonString, true},
		{KindString, all, false, 0, false},
		{KindNumber, none, false, ReasonNumber, true},
		{KindEnum, none, false, ReasonEnum, true},
		{KindEnum, all, true, 0, false},
		{KindPromise, all, false, ReasonPromise, true},
		{KindNull, none, false, 0, false},
		{KindNull, none, true, ReasonNull, true},
		{KindNull, all, true, 0, false},
		{KindUndefined, none, true, ReasonUndefined, true},
		{KindBoolean, none, true, 0, false},
		{KindAlwaysTruthy, none, false, 0, false},
		{KindFalseLiteral, none, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := Disallowed(tt.kind, tt.opts, tt.inUnion)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCheck_NonUnion(t *testing.T) {
	tests := []struct {
		name   string
		typ    typeinfo.Type
		opts   Options
		want   Reason
		wantOK bool
	}{
		{"boolean passes", typeinfo.Boolean(), defaults(), 0, false},
		{"string rejected", typeinfo.String(), defaults(), ReasonString, true},
		{"string allowed", typeinfo.String(), Options{AllowString: true, StrictNullChecks: true}, 0, false},
		{"number rejected", typeinfo.Number(), defaults(), ReasonNumber, true},
		{"promise rejected", typeinfo.Promise(typeinfo.Void()), defaults(), ReasonPromise, true},
		{"object always truthy", typeinfo.Object("HTMLElement"), defaults(), ReasonAlwaysTruthy, true},
		{"any passes", typeinfo.Any(), defaults(), 0, false},
		{"true literal passes", typeinfo.True(), defaults(), 0, false},
		{"false literal passes", typeinfo.False(), defaults(), 0, false},
		{"null always falsy", typeinfo.Null(), defaults(), ReasonAlwaysFalsy, true},
		{"void always falsy", typeinfo.Void(), defaults(), ReasonAlwaysFalsy, true},
		{
			"always truthy suppressed without strict null checks",
			typeinfo.Object("HTMLElement"), DefaultOptions(false), 0, false,
		},
		{
			"always truthy kept without allowances",
			typeinfo.Object("HTMLElement"), Options{}, ReasonAlwaysTruthy, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Check(tt.typ, tt.opts)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCheck_Unions(t *testing.T) {
	tests := []struct {
		name   string
		typ    typeinfo.Type
		opts   Options
		want   Reason
		wantOK bool
	}{
		{
			"string or null with null allowed reports string",
			typeinfo.Union(typeinfo.String(), typeinfo.Null()),
			Options{AllowNullUnion: true, StrictNullChecks: true},
			ReasonString, true,
		},
		{
			"first rejected member wins",
			typeinfo.Union(typeinfo.Null(), typeinfo.String()),
			Options{StrictNullChecks: true},
			ReasonNull, true,
		},
		{
			"object or undefined passes with undefined allowed",
			typeinfo.Union(typeinfo.Object("HTMLElement"), typeinfo.Undefined()),
			defaults(), 0, false,
		},
		{
			"object or undefined rejected without allowance",
			typeinfo.Union(typeinfo.Object("HTMLElement"), typeinfo.Undefined()),
			Options{StrictNullChecks: true},
			ReasonUndefined, true,
		},
		{
			"boolean or undefined passes",
			typeinfo.Union(typeinfo.Boolean(), typeinfo.Undefined()),
			defaults(), 0, false,
		},
		{
			"false or undefined is always falsy",
			typeinfo.Union(typeinfo.False(), typeinfo.Undefined()),
			defaults(), ReasonAlwaysFalsy, true,
		},
		{
			"true or void passes",
			typeinfo.Union(typeinfo.True(), typeinfo.Void()),
			defaults(), 0, false,
		},
		{
			"promise member rejected",
			typeinfo.Union(typeinfo.Promise(typeinfo.Any()), typeinfo.Undefined()),
			defaults(), ReasonPromise, true,
		},
		{
			"all members permitted",
			typeinfo.Union(typeinfo.String(), typeinfo.Number(), typeinfo.Null()),
			Options{AllowString: true, AllowNumber: true, AllowNullUnion: true},
			0, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Check(tt.typ, tt.opts)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCheck_PromiseNeverExempt(t *testing.T) {
	everything, err := ParseOptions([]string{
		OptionAllowNullUnion, OptionAllowUndefinedUnion, OptionAllowString, OptionAllowEnum,
		OptionAllowNumber, OptionAllowMix, OptionAllowBooleanOrUndefined, OptionAllowAnyRHS,
	}, false)
	require.NoError(t, err)

	for _, opts := range []Options{{}, defaults(), everything} {
		got, ok := Check(typeinfo.Promise(typeinfo.Boolean()), opts)
		require.True(t, ok)
		assert.Equal(t, ReasonPromise, got)
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(nil, true)
	require.NoError(t, err)
	assert.Equal(t, Options{StrictNullChecks: true}, opts)

	opts = DefaultOptions(true)
	assert.True(t, opts.AllowNullUnion)
	assert.True(t, opts.AllowUndefinedUnion)
	assert.True(t, opts.AllowBooleanOrUndefined)
	assert.False(t, opts.AllowString)

	_, err = ParseOptions([]string{"allow-strings"}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))
}

func TestMessage(t *testing.T) {
	msg := Message(LocationNot, ReasonString, false, defaults())
	assert.Equal(t,
		"This type is not allowed in the operand for the '!' operator because it is a string. "+
			"Allowed types are boolean, null-union, undefined-union, or boolean-or-undefined.",
		msg)

	msg = Message(LocationConditional, ReasonString, true, Options{AllowNullUnion: true, StrictNullChecks: true})
	assert.Equal(t,
		"This type is not allowed in the condition because it could be a string. Allowed types are boolean or null-union.",
		msg)

	msg = Message(LocationWhile, ReasonPromise, false, Options{StrictNullChecks: true})
	assert.Equal(t,
		"This type is not allowed in the 'while' condition because it promise handled as boolean expression. Only booleans are allowed.",
		msg)

	msg = Message(LocationIf, ReasonAlwaysTruthy, false, Options{})
	assert.Contains(t, msg, "neither 'allow-null-union' nor 'allow-undefined-union' is set")
}
