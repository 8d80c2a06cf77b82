package rules

import (
	"slices"
	"strings"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

// Member visibility, naming and mutability checks for component classes.

var MethodsMustBePublic = &lint.Rule{
	Name:        "methods-must-be-public",
	Description: "This rule catches Stencil Methods marked as private or protected.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition[kind=method]", func(ctx *lint.Context, n *ast.Node) {
			if ctx.InsideComponent() && lint.HasAnnotation(n, decMethod) && isPrivate(n) {
				ctx.Report(n, "Class methods decorated with @Method() cannot be private nor protected")
			}
		}), nil
	},
}

var PropsMustBePublic = &lint.Rule{
	Name:        "props-must-be-public",
	Description: "This rule catches Stencil Props marked as private or protected.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ClassProperty", func(ctx *lint.Context, n *ast.Node) {
			if ctx.InsideComponent() && lint.HasAnnotation(n, decProp) && isPrivate(n) {
				ctx.Report(n, "Class properties decorated with @Prop() cannot be private nor protected")
			}
		}), nil
	},
}

// OwnMethodsMustBePrivate flags public methods that are neither part of the
// component API nor a lifecycle hook.
var OwnMethodsMustBePrivate = &lint.Rule{
	Name:        "own-methods-must-be-private",
	Description: "This rule catches own class methods marked as public.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition[kind=method]", func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			if hasStencilDecorator(n) || slices.Contains(stencilLifecycle, memberName(n)) || isPrivate(n) {
				return
			}
			ctx.Report(n, "Own class methods cannot be public")
		}), nil
	},
}

var OwnPropsMustBePrivate = &lint.Rule{
	Name:        "own-props-must-be-private",
	Description: "This rule catches own class attributes marked as public.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ClassProperty", func(ctx *lint.Context, n *ast.Node) {
			if ctx.InsideComponent() && !hasStencilDecorator(n) && !isPrivate(n) {
				ctx.Report(n, "Own class properties cannot be public")
			}
		}), nil
	},
}

// PropsMustBeReadonly flags @Prop() members that are not declared readonly
// and not opted into mutation with { mutable: true }.
var PropsMustBeReadonly = &lint.Rule{
	Name:        "props-must-be-readonly",
	Description: "This rule catches Stencil Props marked as non readonly.",
	Category:    categoryPossibleErrors,
	Fixable:     true,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ClassProperty", func(ctx *lint.Context, n *ast.Node) {
			prop := lint.FindAnnotation(n, decProp)
			if !ctx.InsideComponent() || prop == nil {
				return
			}
			if mutable, _ := lint.AnnotationOption(prop, "mutable"); mutable == true {
				return
			}
			if n.HasModifier(ast.ModReadonly) {
				return
			}
			key := n.Field(ast.FieldKey)
			ctx.ReportFix(key, "Class properties decorated with @Prop() should be readonly",
				lint.InsertBefore(key, "readonly "))
		}), nil
	},
}

var HostDataDeprecated = &lint.Rule{
	Name:        "host-data-deprecated",
	Description: "This rule catches usage of hostData method.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition[key.name=hostData]", func(ctx *lint.Context, n *ast.Node) {
			if ctx.InsideComponent() {
				ctx.Report(n.Field(ast.FieldKey),
					"hostData() is deprecated and <Host> should be used in the render function instead.")
			}
		}), nil
	},
}

// ReservedMemberNames flags public API names that shadow members every
// custom element inherits from HTMLElement, Element or Node.
var ReservedMemberNames = &lint.Rule{
	Name:        "reserved-member-names",
	Description: "This rule catches Stencil Prop names that share names of Global HTML Attributes.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		check := func(ctx *lint.Context, dec *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			name := lint.AnnotationName(dec)
			key := decoratedMember(dec).Field(ast.FieldKey)
			member := key.Name()
			if member == "" {
				// Quoted keys such as 'data-id'.
				if v, ok := key.Attr(ast.AttrValue); ok {
					member = v
				}
			}
			if isReservedMember(member) {
				ctx.Reportf(key, "The @%s name \"%s conflicts with a key in the HTMLElement prototype. Please choose a different name.", name, member)
			}
			if strings.HasPrefix(member, "data-") {
				ctx.Report(key, "Avoid using Global HTML Attributes as Prop names.")
			}
		}
		return lint.NewListeners().
			On("ClassProperty > Decorator[expression.callee.name=Prop]", check).
			On("MethodDefinition[kind=method] > Decorator[expression.callee.name=Method]", check), nil
	},
}
