package lint

import (
	"github.com/c360studio/semlint/processor/ast"
)

var line int

// at stamps increasing line numbers so diagnostics sort predictably.
func at(n *ast.Node) *ast.Node {
	line++
	return n.At(ast.Span{File: "cmp.tsx", StartLine: line, StartColumn: 1})
}

func strLit(v string) *ast.Node {
	return ast.New(ast.KindLiteral).WithAttr(ast.AttrValue, v).WithAttr(ast.AttrValueType, "string")
}

func numLit(v string) *ast.Node {
	return ast.New(ast.KindLiteral).WithAttr(ast.AttrValue, v).WithAttr(ast.AttrValueType, "number")
}

func boolLit(v bool) *ast.Node {
	s := "false"
	if v {
		s = "true"
	}
	return ast.New(ast.KindLiteral).WithAttr(ast.AttrValue, s).WithAttr(ast.AttrValueType, "boolean")
}

func decorator(name string, args ...*ast.Node) *ast.Node {
	call := ast.New(ast.KindCallExpression).
		Set(ast.FieldCallee, ast.Ident(name)).
		AddTo(ast.ListArguments, args...)
	return ast.New(ast.KindDecorator).Set(ast.FieldExpression, call)
}

func object(props map[string]*ast.Node, order ...string) *ast.Node {
	obj := ast.New(ast.KindObjectExpression)
	for _, k := range order {
		p := ast.New(ast.KindProperty).Set(ast.FieldKey, ast.Ident(k)).Set(ast.FieldValue, props[k])
		obj.AddTo(ast.ListProperties, p)
	}
	return obj
}

func class(name string, decorators []*ast.Node, members ...*ast.Node) *ast.Node {
	c := ast.New(ast.KindClassDeclaration)
	c.Append(decorators...)
	return at(c.Set(ast.FieldID, ast.Ident(name)).
		Set(ast.FieldBody, ast.New(ast.KindClassBody).Append(members...)))
}

func component(name, tag string, members ...*ast.Node) *ast.Node {
	dec := decorator("Component", object(map[string]*ast.Node{"tag": strLit(tag)}, "tag"))
	return class(name, []*ast.Node{dec}, members...)
}

func method(name string, decorators ...*ast.Node) *ast.Node {
	m := ast.New(ast.KindMethodDefinition).WithAttr(ast.AttrKind, "method")
	m.Append(decorators...)
	return at(m.Set(ast.FieldKey, ast.Ident(name)).Set(ast.FieldBody, ast.New(ast.KindBlockStatement)))
}

func property(name string, decorators ...*ast.Node) *ast.Node {
	p := ast.New(ast.KindClassProperty)
	p.Append(decorators...)
	return at(p.Set(ast.FieldKey, ast.Ident(name)))
}

func program(stmts ...*ast.Node) *ast.Node {
	return ast.New(ast.KindProgram).Append(stmts...)
}
