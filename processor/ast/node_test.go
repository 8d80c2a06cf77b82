package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decorated builds `@Watch('value') onChange() {}` inside a class body.
func decorated() (*Node, *Node, *Node) {
	call := New(KindCallExpression).
		Set(FieldCallee, Ident("Watch")).
		AddTo(ListArguments, New(KindLiteral).WithAttr(AttrValue, "value").WithAttr(AttrValueType, "string"))
	dec := New(KindDecorator).Set(FieldExpression, call)
	method := New(KindMethodDefinition).
		WithAttr(AttrKind, "method").
		Append(dec).
		Set(FieldKey, Ident("onChange"))
	body := New(KindClassBody).Append(method)
	class := New(KindClassDeclaration).Set(FieldID, Ident("MyCmp")).Set(FieldBody, body)
	New(KindProgram).Append(class)
	return class, method, dec
}

func TestNode_Resolve(t *testing.T) {
	_, method, dec := decorated()

	v, ok := dec.Resolve("expression.callee.name")
	require.True(t, ok)
	assert.Equal(t, "Watch", v)

	v, ok = method.Resolve("key.name")
	require.True(t, ok)
	assert.Equal(t, "onChange", v)

	v, ok = dec.Resolve("expression.type")
	require.True(t, ok)
	assert.Equal(t, string(KindCallExpression), v)

	_, ok = dec.Resolve("expression.missing.name")
	assert.False(t, ok)

	_, ok = method.Resolve("key")
	assert.True(t, ok, "a present field resolves even without an attribute")

	var nilNode *Node
	_, ok = nilNode.Resolve("name")
	assert.False(t, ok)
}

func TestNode_DecoratorsAndAncestors(t *testing.T) {
	class, method, dec := decorated()

	require.Len(t, method.Decorators(), 1)
	assert.Same(t, dec, method.Decorators()[0])
	assert.Empty(t, class.Decorators())

	assert.Same(t, class, dec.Ancestor(KindClassDeclaration))
	assert.Nil(t, class.Ancestor(KindMethodDefinition))
	assert.Equal(t, KindProgram, dec.Root().Kind)
}

func TestNode_PrependKeepsSourceOrder(t *testing.T) {
	class := New(KindClassDeclaration).Set(FieldID, Ident("A"))
	d1 := New(KindDecorator)
	d2 := New(KindDecorator)
	class.Prepend(d1, d2)

	require.Len(t, class.Children, 3)
	assert.Same(t, d1, class.Children[0])
	assert.Same(t, d2, class.Children[1])
	assert.Same(t, class, d1.Parent)
}

func TestNode_NilSafety(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Field(FieldKey))
	assert.Nil(t, n.List(ListArguments))
	assert.Empty(t, n.Name())
	assert.False(t, n.HasModifier(ModPrivate))
	assert.False(t, n.Is(KindIdentifier))
	assert.Equal(t, "<nil>", n.String())
}

func TestInspect_SkipsChildren(t *testing.T) {
	class, _, _ := decorated()

	var seen []Kind
	Inspect(class, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != KindMethodDefinition
	})

	assert.Equal(t, []Kind{KindClassDeclaration, KindIdentifier, KindClassBody, KindMethodDefinition}, seen)
}

func TestNode_Unwrap(t *testing.T) {
	inner := New(KindThisExpression)
	cast := New(KindTSNonNullExpression).Set(FieldExpression,
		New(KindTSAsExpression).
			Set(FieldExpression, New(KindTSTypeAssertion).Set(FieldExpression, inner)).
			Set(FieldTypeAnnotation, New(KindTSKeyword).WithAttr(AttrName, "any")))

	assert.Same(t, inner, cast.Unwrap())
	assert.Same(t, inner, inner.Unwrap())

	var nilNode *Node
	assert.Nil(t, nilNode.Unwrap())
	assert.Nil(t, New(KindTSAsExpression).Unwrap(), "a cast without an operand")
}
