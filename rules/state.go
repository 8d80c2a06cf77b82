package rules

import (
	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

// Symbol tables kept per component.
const (
	setWatchable = "watchable"
	setMutable   = "mutable"
	setAssigned  = "assigned"
)

// NoUnusedWatch reports @Watch("x") handlers where the component declares
// no @Prop() or @State() named x. Watches are validated when the component
// is left, so members may appear in any order.
var NoUnusedWatch = &lint.Rule{
	Name:        "no-unused-watch",
	Description: "This rule catches Stencil Watch for not defined variables in Prop or State.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		declare := func(ctx *lint.Context, dec *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			member := decoratedMember(dec)
			ctx.Scoped().Declare(setWatchable, memberName(member), member)
		}
		return lint.NewListeners().
			On("ClassProperty > Decorator[expression.callee.name=Prop]", declare).
			On("ClassProperty > Decorator[expression.callee.name=State]", declare).
			OnExit("ClassDeclaration", func(ctx *lint.Context, n *ast.Node) {
				if ctx.Component() != n {
					return
				}
				scope := ctx.Scoped()
				for _, member := range classMembers(n) {
					if !isMethod(member) {
						continue
					}
					for _, dec := range lint.Annotations(member) {
						if lint.AnnotationName(dec) != decWatch {
							continue
						}
						args := lint.LiteralArguments(dec)
						if len(args) == 0 || !args[0].Known {
							continue
						}
						name, ok := args[0].Value.(string)
						if !ok || scope.Has(setWatchable, name) {
							continue
						}
						ctx.Reportf(dec, "Watch decorator @Watch(\"%s\") is not matching with any @Prop() or @State()", name)
					}
				}
			}), nil
	},
}

// StrictMutable reports @Prop({ mutable: true }) members the component
// never assigns through `this.name = ...`.
var StrictMutable = &lint.Rule{
	Name:        "strict-mutable",
	Description: "This rule catches mutable Props that not need to be mutable.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().
			On("ClassProperty > Decorator[expression.callee.name=Prop]", func(ctx *lint.Context, dec *ast.Node) {
				if !ctx.InsideComponent() {
					return
				}
				if mutable, _ := lint.AnnotationOption(dec, "mutable"); mutable != true {
					return
				}
				member := decoratedMember(dec)
				ctx.Scoped().Declare(setMutable, memberName(member), member)
			}).
			On("AssignmentExpression", func(ctx *lint.Context, n *ast.Node) {
				if !ctx.InsideComponent() {
					return
				}
				// this.x = v, also through casts: (this as any).x = v, this.x! = v
				left := n.Field(ast.FieldLeft).Unwrap()
				if !left.Is(ast.KindMemberExpression) || !left.Field(ast.FieldObject).Unwrap().Is(ast.KindThisExpression) {
					return
				}
				if computed, _ := left.Attr(ast.AttrComputed); computed == "true" {
					return
				}
				if prop := left.Field(ast.FieldProperty); prop.Is(ast.KindIdentifier) {
					ctx.Scoped().Declare(setAssigned, prop.Name(), n)
				}
			}).
			OnExit("ClassDeclaration", func(ctx *lint.Context, n *ast.Node) {
				if ctx.Component() != n {
					return
				}
				scope := ctx.Scoped()
				for _, sym := range scope.Symbols(setMutable) {
					if !scope.Has(setAssigned, sym.Name) {
						ctx.Reportf(sym.Node, "@Prop() \"%s\" should not be mutable", sym.Name)
					}
				}
			}), nil
	},
}
