package rules

import (
	"fmt"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
	"github.com/c360studio/semlint/typeinfo"
)

// AsyncMethods requires @Method() members to return a promise: the
// component proxy always calls them asynchronously.
var AsyncMethods = &lint.Rule{
	Name:        "async-methods",
	Description: "This rule catches Stencil public methods that are not async.",
	Category:    categoryPossibleErrors,
	NeedsTypes:  true,
	Fixable:     true,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition > Decorator[expression.callee.name=Method]", func(ctx *lint.Context, dec *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			method := decoratedMember(dec)
			t := ctx.Types().ReturnTypeOf(method)
			// An unresolved return type is not evidence of a bug.
			if t == nil || typeinfo.Is(t, typeinfo.FlagAny) || typeinfo.IsThenable(t) {
				return
			}
			key := method.Field(ast.FieldKey)
			name := key.Name()
			message := fmt.Sprintf("External @Method() %s() must return a Promise. Consider prefixing the method with async, such as @Method() async %s().", name, name)
			// Inserting at the key keeps `public async name()` ordering.
			ctx.ReportFix(key, message, lint.InsertBefore(key, "async "))
		}), nil
	},
}

var RenderReturnsHost = &lint.Rule{
	Name:        "render-returns-host",
	Description: "This rule catches render() functions returning arrays instead of <Host>.",
	Category:    categoryPossibleErrors,
	NeedsTypes:  true,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition[kind=method][key.name=render] ReturnStatement", func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			arg := n.Field(ast.FieldArgument)
			if arg == nil {
				return
			}
			if t := ctx.Types().TypeAt(arg); t != nil && t.SymbolName() == "Array" {
				ctx.Report(n, "Avoid returning an array in the render() function, use <Host> instead.")
			}
		}), nil
	},
}
