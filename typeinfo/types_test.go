package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnion_FlattensAndDedupes(t *testing.T) {
	inner := Union(String(), Null())
	u := Union(inner, Undefined(), String())

	require.True(t, IsUnion(u))
	assert.Equal(t, []Type{String(), Null(), Undefined()}, u.Members())
	assert.Equal(t, "string | null | undefined", u.String())
}

func TestUnion_Degenerate(t *testing.T) {
	assert.Same(t, String(), Union(String()))
	assert.Same(t, Never(), Union())
	assert.Same(t, Boolean(), Union(nil, Boolean(), nil))
}

func TestIsUnion_ExcludesEnums(t *testing.T) {
	color := Enum("Color", EnumMember("Color", "Red", true), EnumMember("Color", "Blue", true))

	assert.True(t, color.Flags().Has(FlagUnion))
	assert.False(t, IsUnion(color))
	assert.Len(t, color.Members(), 2)
	assert.True(t, Is(color, EnumLike))
}

func TestIsThenable(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want bool
	}{
		{"promise", Promise(String()), true},
		{"promise like", Object("PromiseLike", Any()), true},
		{"union of promises", Union(Promise(String()), Promise(Number())), true},
		{"promise or undefined", Union(Promise(String()), Undefined()), false},
		{"plain object", Object("HTMLElement"), false},
		{"void", Void(), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsThenable(tt.typ))
		})
	}
}

func TestAwaited(t *testing.T) {
	assert.Same(t, String(), Awaited(Promise(String())))
	assert.Same(t, Number(), Awaited(Number()))

	u := Awaited(Union(Promise(String()), Null()))
	assert.Equal(t, []Type{String(), Null()}, u.Members())
}

func TestWiden(t *testing.T) {
	assert.Same(t, String(), Widen(StringLiteral("a")))
	assert.Same(t, Number(), Widen(NumberLiteral("1")))
	assert.Same(t, Boolean(), Widen(True()))
	assert.Same(t, Boolean(), Widen(Union(True(), False())))

	member := EnumMember("Color", "Red", true)
	assert.Same(t, member, Widen(member))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "Promise<string>", Promise(String()).String())
	assert.Equal(t, `"on"`, StringLiteral("on").String())
	assert.Equal(t, "Color.Red", EnumMember("Color", "Red", true).String())
	assert.Equal(t, "true", True().IntrinsicName())
	assert.Equal(t, "false", False().IntrinsicName())
}
