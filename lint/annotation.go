package lint

import (
	"github.com/c360studio/semlint/processor/ast"
)

// Annotations returns the decorators attached to decl in source order.
func Annotations(decl *ast.Node) []*ast.Node {
	return decl.Decorators()
}

// FindAnnotation returns the first decorator of decl named name, or nil.
func FindAnnotation(decl *ast.Node, name string) *ast.Node {
	for _, dec := range decl.Decorators() {
		if AnnotationName(dec) == name {
			return dec
		}
	}
	return nil
}

// HasAnnotation reports whether decl carries a decorator named name.
func HasAnnotation(decl *ast.Node, name string) bool {
	return FindAnnotation(decl, name) != nil
}

// AnnotationName returns the callee name of a @Name(...) decorator. Bare
// decorators and member callees (@ns.Name()) have no name, which keeps it in
// line with selectors on Decorator[expression.callee.name=...].
func AnnotationName(dec *ast.Node) string {
	name, _ := dec.Resolve("expression.callee.name")
	return name
}

// AnnotationArguments returns the call arguments of a decorator; nil for a
// bare decorator.
func AnnotationArguments(dec *ast.Node) []*ast.Node {
	expr := dec.Field(ast.FieldExpression)
	if !expr.Is(ast.KindCallExpression) {
		return nil
	}
	return expr.List(ast.ListArguments)
}

// LiteralArguments statically evaluates every call argument of a decorator.
// Arguments that are not compile-time constants come back with Known false.
func LiteralArguments(dec *ast.Node) []StaticValue {
	args := AnnotationArguments(dec)
	out := make([]StaticValue, len(args))
	for i, a := range args {
		out[i] = Evaluate(a)
	}
	return out
}

// AnnotationOption returns a static property of the decorator's first
// object argument, as in @Prop({ mutable: true }).
func AnnotationOption(dec *ast.Node, key string) (any, bool) {
	args := LiteralArguments(dec)
	if len(args) == 0 || !args[0].Known {
		return nil, false
	}
	obj, ok := args[0].Value.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}
