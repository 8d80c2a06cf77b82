package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/processor/ast"
)

func TestComponentTracker_EnterExit(t *testing.T) {
	tr := NewComponentTracker("")
	assert.Equal(t, DefaultComponentDecorator, tr.Decorator())

	plain := class("Helper", nil)
	cmp := component("MyCmp", "my-cmp")

	assert.False(t, tr.OnEnter(plain))
	assert.False(t, tr.InsideComponent())

	require.True(t, tr.OnEnter(cmp))
	assert.True(t, tr.InsideComponent())
	assert.Same(t, cmp, tr.Current())
	assert.Equal(t, "Component", AnnotationName(tr.Annotation()))

	assert.False(t, tr.OnExit(plain), "a different declaration never pops")
	assert.True(t, tr.InsideComponent())

	assert.True(t, tr.OnExit(cmp))
	assert.False(t, tr.InsideComponent())
	assert.Nil(t, tr.Current())
	assert.Nil(t, tr.Annotation())
	assert.False(t, tr.OnExit(cmp), "popping an empty tracker is a no-op")
}

func TestComponentTracker_Nested(t *testing.T) {
	tr := NewComponentTracker("Component")
	outer := component("Outer", "x-outer")
	inner := component("Inner", "x-inner")

	tr.OnEnter(outer)
	tr.OnEnter(inner)
	assert.Equal(t, 2, tr.Depth())
	assert.Same(t, inner, tr.Current())

	tr.OnExit(inner)
	assert.Same(t, outer, tr.Current())
	tr.OnExit(outer)
	assert.Equal(t, 0, tr.Depth())
	assert.Equal(t, tr.Pushes(), tr.Pops())
}

func TestComponentTracker_CustomDecorator(t *testing.T) {
	tr := NewComponentTracker("Element")
	assert.False(t, tr.OnEnter(component("A", "x-a")))

	custom := class("B", []*ast.Node{decorator("Element")})
	assert.True(t, tr.OnEnter(custom))
}

func TestComponentTracker_ScopesDropWithFrame(t *testing.T) {
	tr := NewComponentTracker("")
	assert.Nil(t, tr.scope("rule"))

	first := component("A", "x-a")
	tr.OnEnter(first)
	tr.scope("rule").Declare("props", "value", nil)
	assert.True(t, tr.scope("rule").Has("props", "value"))
	assert.False(t, tr.scope("other").Has("props", "value"), "tables are per rule")
	tr.OnExit(first)

	second := component("B", "x-b")
	tr.OnEnter(second)
	assert.False(t, tr.scope("rule").Has("props", "value"), "sibling components never share tables")
	tr.OnExit(second)
}

// Two sibling components, each followed by a plain class. InsideComponent
// must be true only between each component's own enter and exit.
func TestComponentTracker_SiblingsDoNotOverlap(t *testing.T) {
	a := component("A", "x-a", method("render"))
	helperA := class("HelperA", nil, method("run"))
	b := component("B", "x-b", method("render"))
	helperB := class("HelperB", nil, method("run"))
	prog := program(a, helperA, b, helperB)

	type observation struct {
		class  string
		inside bool
		owner  string
	}
	var seen []observation

	reg := NewRegistry()
	reg.MustRegister(&Rule{
		Name: "observe",
		Create: func(Options) (*Listeners, error) {
			return NewListeners().On("MethodDefinition", func(ctx *Context, n *ast.Node) {
				owner := ""
				if c := ctx.Component(); c != nil {
					owner = c.Field(ast.FieldID).Name()
				}
				seen = append(seen, observation{
					class:  n.Ancestor(ast.KindClassDeclaration).Field(ast.FieldID).Name(),
					inside: ctx.InsideComponent(),
					owner:  owner,
				})
			}), nil
		},
	})

	l, err := New(reg, Settings{Rules: map[string]RuleConfig{"observe": {Severity: SeverityError}}})
	require.NoError(t, err)

	var tracker *ComponentTracker
	reg2 := NewRegistry()
	reg2.MustRegister(&Rule{
		Name: "capture",
		Create: func(Options) (*Listeners, error) {
			return NewListeners().On("Program", func(ctx *Context, n *ast.Node) {
				tracker = ctx.Tracker()
			}), nil
		},
	})
	l2, err := New(reg2, Settings{Rules: map[string]RuleConfig{"capture": {Severity: SeverityError}}})
	require.NoError(t, err)

	_, err = l.LintFile(context.Background(), &File{Path: "cmp.tsx", Program: prog})
	require.NoError(t, err)
	_, err = l2.LintFile(context.Background(), &File{Path: "cmp.tsx", Program: prog})
	require.NoError(t, err)

	assert.Equal(t, []observation{
		{"A", true, "A"},
		{"HelperA", false, ""},
		{"B", true, "B"},
		{"HelperB", false, ""},
	}, seen)

	require.NotNil(t, tracker)
	assert.False(t, tracker.InsideComponent(), "nothing is open after the traversal")
	assert.Equal(t, 2, tracker.Pushes())
	assert.Equal(t, tracker.Pushes(), tracker.Pops())
}

func TestScope_DeclarationOrder(t *testing.T) {
	s := NewScope()
	n1, n2 := ast.Ident("a"), ast.Ident("b")

	assert.True(t, s.Declare("state", "b", n2))
	assert.True(t, s.Declare("state", "a", n1))
	assert.False(t, s.Declare("state", "a", n2), "first declaration wins")

	got, ok := s.Lookup("state", "a")
	require.True(t, ok)
	assert.Same(t, n1, got)

	syms := s.Symbols("state")
	require.Len(t, syms, 2)
	assert.Equal(t, "b", syms[0].Name)
	assert.Equal(t, "a", syms[1].Name)
	assert.Nil(t, s.Symbols("missing"))
}

func TestComponentTracker_OnlyLiteralCallDecorators(t *testing.T) {
	tr := NewComponentTracker("")

	bare := class("Bare", []*ast.Node{ast.New(ast.KindDecorator).Set(ast.FieldExpression, ast.Ident("Component"))})
	assert.False(t, tr.OnEnter(bare), "@Component without a call")

	member := ast.New(ast.KindDecorator).Set(ast.FieldExpression,
		ast.New(ast.KindCallExpression).Set(ast.FieldCallee,
			ast.New(ast.KindMemberExpression).Set(ast.FieldObject, ast.Ident("stencil")).Set(ast.FieldProperty, ast.Ident("Component"))))
	assert.False(t, tr.OnEnter(class("Member", []*ast.Node{member})), "@stencil.Component() is not literally named")

	assert.True(t, tr.OnEnter(component("A", "x-a")))
	assert.Equal(t, 1, tr.Depth())
}
