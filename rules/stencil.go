// Package rules holds the Stencil component checks. Every rule registers
// itself with lint.DefaultRegistry in init, in the order returned by All.
package rules

import (
	"slices"
	"strings"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

const categoryPossibleErrors = "Possible Errors"

// Decorator names the Stencil compiler understands.
const (
	decComponent = "Component"
	decProp      = "Prop"
	decState     = "State"
	decWatch     = "Watch"
	decElement   = "Element"
	decMethod    = "Method"
	decEvent     = "Event"
	decListen    = "Listen"
)

var stencilDecorators = []string{
	decComponent, decProp, decState, decWatch, decElement, decMethod, decEvent, decListen,
}

var stencilLifecycle = []string{
	"connectedCallback",
	"disconnectedCallback",
	"componentWillLoad",
	"componentDidLoad",
	"componentWillRender",
	"componentDidRender",
	"componentWillUpdate",
	"componentDidUpdate",
	"render",
}

// isPrivate reports whether a member is private or protected.
func isPrivate(member *ast.Node) bool {
	return member.HasModifier(ast.ModPrivate) || member.HasModifier(ast.ModProtected)
}

// hasStencilDecorator reports whether any decorator of member is one the
// Stencil compiler consumes.
func hasStencilDecorator(member *ast.Node) bool {
	for _, dec := range lint.Annotations(member) {
		if slices.Contains(stencilDecorators, lint.AnnotationName(dec)) {
			return true
		}
	}
	return false
}

// componentTag returns the statically known tag of the enclosing component.
func componentTag(ctx *lint.Context) (string, bool) {
	return tagOf(ctx.ComponentAnnotation())
}

func tagOf(annotation *ast.Node) (string, bool) {
	v, ok := lint.AnnotationOption(annotation, "tag")
	if !ok {
		return "", false
	}
	tag, ok := v.(string)
	return tag, ok && tag != ""
}

// memberName returns the key name of a class member.
func memberName(member *ast.Node) string {
	return member.Field(ast.FieldKey).Name()
}

// decoratedMember returns the member a decorator is attached to.
func decoratedMember(dec *ast.Node) *ast.Node {
	return dec.Parent
}

// pascalTag turns "my-card" into "MyCard".
func pascalTag(tag string) string {
	var b strings.Builder
	for _, part := range strings.Split(tag, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// classMembers returns the members of a class declaration.
func classMembers(class *ast.Node) []*ast.Node {
	return class.Field(ast.FieldBody).Children
}

func isMethod(member *ast.Node) bool {
	if !member.Is(ast.KindMethodDefinition) {
		return false
	}
	kind, _ := member.Attr(ast.AttrKind)
	return kind == "method"
}
