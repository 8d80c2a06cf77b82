package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semlint/processor/ast"
)

func TestNonNullable(t *testing.T) {
	assert.Same(t, Boolean(), NonNullable(Union(Boolean(), Undefined())))
	assert.Same(t, String(), NonNullable(Union(String(), Null(), Undefined())))
	assert.Same(t, Never(), NonNullable(Null()))
	assert.Same(t, Number(), NonNullable(Number()))
}

func TestFalsyAndTruthy(t *testing.T) {
	tests := []struct {
		name   string
		in     Type
		falsy  string
		truthy string
	}{
		{name: "boolean", in: Boolean(), falsy: "false", truthy: "true"},
		{name: "string", in: String(), falsy: `""`, truthy: "string"},
		{name: "number", in: Number(), falsy: "0", truthy: "number"},
		{name: "optional", in: Union(String(), Undefined()), falsy: `"" | undefined`, truthy: "string"},
		{name: "object", in: Object("HTMLElement"), falsy: "never", truthy: "HTMLElement"},
		{name: "empty literal", in: StringLiteral(""), falsy: `""`, truthy: "never"},
		{name: "zero", in: NumberLiteral("0"), falsy: "0", truthy: "never"},
		{name: "any", in: Any(), falsy: "any", truthy: "any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.falsy, Falsy(tt.in).String())
			assert.Equal(t, tt.truthy, Truthy(tt.in).String())
		})
	}
}

func TestSimplify(t *testing.T) {
	assert.Same(t, Boolean(), Simplify(Union(True(), False())))
	assert.Same(t, Boolean(), Simplify(Union(False(), Boolean())))
	assert.Same(t, String(), Simplify(Union(StringLiteral(""), String(), Never())))
	assert.Same(t, Number(), Simplify(Union(NumberLiteral("0"), Number())))

	member := EnumMember("Color", "Red", false)
	kept := Simplify(Union(member, String()))
	assert.Equal(t, []Type{member, String()}, kept.Members(), "enum members are not string literals")
}

func TestDeclared_Casts(t *testing.T) {
	name := ast.Ident("name")
	asBoolean := ast.New(ast.KindTSAsExpression).
		Set(ast.FieldExpression, name).
		Set(ast.FieldTypeAnnotation, keyword("boolean"))
	assertion := ast.New(ast.KindTSTypeAssertion).
		Set(ast.FieldExpression, ast.Ident("name")).
		Set(ast.FieldTypeAnnotation, keyword("any"))
	asConst := ast.New(ast.KindTSAsExpression).Set(ast.FieldExpression, str("on"))

	optional := ast.New(ast.KindTSUnionType).AddTo(ast.ListTypes, keyword("boolean"), keyword("undefined"))
	nonNull := ast.New(ast.KindTSNonNullExpression).Set(ast.FieldExpression, ast.Ident("flag"))

	program := ast.New(ast.KindProgram).Append(
		variable("let", "name", keyword("string"), nil),
		variable("let", "flag", optional, nil),
		exprStmt(asBoolean), exprStmt(assertion), exprStmt(asConst), exprStmt(nonNull),
	)
	c := NewDeclared(program)

	assert.Same(t, Boolean(), c.TypeAt(asBoolean))
	assert.Same(t, String(), c.TypeAt(name), "the operand keeps its own type")
	assert.Same(t, Any(), c.TypeAt(assertion))
	assert.Equal(t, `"on"`, c.TypeAt(asConst).String())
	assert.Same(t, Boolean(), c.TypeAt(nonNull))
}

func TestDeclared_Logical(t *testing.T) {
	logical := func(op string, left, right *ast.Node) *ast.Node {
		return ast.New(ast.KindLogicalExpression).WithAttr(ast.AttrOperator, op).
			Set(ast.FieldLeft, left).Set(ast.FieldRight, right)
	}
	or := logical("||", ast.Ident("a"), ast.Ident("b"))
	and := logical("&&", ast.Ident("flag"), ast.Ident("a"))
	both := logical("&&", ast.Ident("flag"), ast.Ident("flag"))
	coalesce := logical("??", ast.Ident("maybe"), ast.Ident("a"))
	loose := logical("||", ast.Ident("a"), ast.Ident("unbound"))

	maybe := ast.New(ast.KindTSUnionType).AddTo(ast.ListTypes, keyword("string"), keyword("null"))
	program := ast.New(ast.KindProgram).Append(
		variable("let", "a", keyword("string"), nil),
		variable("let", "b", keyword("string"), nil),
		variable("let", "flag", keyword("boolean"), nil),
		variable("let", "maybe", maybe, nil),
		exprStmt(or), exprStmt(and), exprStmt(both), exprStmt(coalesce), exprStmt(loose),
	)
	c := NewDeclared(program)

	assert.Same(t, String(), c.TypeAt(or))
	assert.Equal(t, "false | string", c.TypeAt(and).String())
	assert.Same(t, Boolean(), c.TypeAt(both))
	assert.Same(t, String(), c.TypeAt(coalesce))
	assert.Same(t, Any(), c.TypeAt(loose), "an unresolved operand keeps the result silent")
}
