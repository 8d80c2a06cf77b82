package typeinfo

import (
	"github.com/c360studio/semlint/processor/ast"
)

// Checker resolves types for syntax nodes of one program.
type Checker interface {
	// TypeAt returns the type of the expression at node. Implementations
	// return Any() rather than nil for expressions they cannot resolve.
	TypeAt(node *ast.Node) Type
	// ReturnTypeOf returns the declared or inferred return type of a
	// function-like node (MethodDefinition, FunctionDeclaration, arrow).
	ReturnTypeOf(fn *ast.Node) Type
}

// Static is a Checker backed by explicit node → type assignments. Unset
// nodes resolve to Any. It is meant for tests and for hosts that compute
// types ahead of time.
type Static struct {
	types   map[*ast.Node]Type
	returns map[*ast.Node]Type
}

// NewStatic creates an empty Static checker.
func NewStatic() *Static {
	return &Static{
		types:   make(map[*ast.Node]Type),
		returns: make(map[*ast.Node]Type),
	}
}

// Set assigns the type of an expression node.
func (s *Static) Set(node *ast.Node, t Type) *Static {
	s.types[node] = t
	return s
}

// SetReturn assigns the return type of a function-like node.
func (s *Static) SetReturn(fn *ast.Node, t Type) *Static {
	s.returns[fn] = t
	return s
}

// TypeAt implements Checker.
func (s *Static) TypeAt(node *ast.Node) Type {
	if t, ok := s.types[node]; ok {
		return t
	}
	return Any()
}

// ReturnTypeOf implements Checker.
func (s *Static) ReturnTypeOf(fn *ast.Node) Type {
	if t, ok := s.returns[fn]; ok {
		return t
	}
	return Any()
}
