package rules

import (
	"regexp"
	"slices"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

// Module-level checks. None of them depend on the component tracker.

var (
	defaultSideEffectCalls = []string{"describe", "test", "bind", "createStore"}
	testFile               = regexp.MustCompile(`\b(spec|e2e|test)\.`)
)

// BanSideEffects flags calls that run when the module is imported, which
// defeat lazy loading of component bundles. Test files are skipped.
var BanSideEffects = &lint.Rule{
	Name:        "ban-side-effects",
	Description: "This rule catches function calls at the top level",
	Category:    categoryPossibleErrors,
	Create: func(opts lint.Options) (*lint.Listeners, error) {
		allowed, err := opts.Strings(0)
		if err != nil {
			return nil, err
		}
		if opts.Len() == 0 {
			allowed = defaultSideEffectCalls
		}
		return lint.NewListeners().On("CallExpression", func(ctx *lint.Context, n *ast.Node) {
			if testFile.MatchString(ctx.Path()) {
				return
			}
			if callee := n.Field(ast.FieldCallee); callee.Is(ast.KindIdentifier) && slices.Contains(allowed, callee.Name()) {
				return
			}
			if !deferredScope(n) {
				ctx.Report(n, "Call expressions at the top-level should be avoided.")
			}
		}), nil
	},
}

// deferredScope reports whether code at n runs later than module
// evaluation, or is part of an export.
func deferredScope(n *ast.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case ast.KindArrowFunctionExpression, ast.KindFunctionDeclaration, ast.KindFunctionExpression,
			ast.KindClassDeclaration, ast.KindExportNamedDeclaration:
			return true
		}
	}
	return false
}

var BanExportedConstEnums = &lint.Rule{
	Name:        "ban-exported-const-enums",
	Description: "This rule catches exports of const enums",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ExportNamedDeclaration > TSEnumDeclaration[const]", func(ctx *lint.Context, n *ast.Node) {
			ctx.Report(n, "Exported const enums are not allowed")
		}), nil
	},
}

var dependencySuggestions = map[string]string{
	"classnames": "Stencil can already render conditional classes:\n  <div class={{disabled: condition}}>",
	"lodash":     `"lodash" will bloat your build, use "lodash-es" instead: https://www.npmjs.com/package/lodash-es`,
	"moment":     `"moment" will bloat your build, use "dayjs", "date-fns" or other modern lightweight alternaitve`,
	"core-js":    "Stencil already include the core-js polyfills only when needed",
}

var DependencySuggestions = &lint.Rule{
	Name:        "dependency-suggestions",
	Description: "This rule can provide suggestions about dependencies in stencil apps",
	Category:    "Suggestions",
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ImportDeclaration", func(ctx *lint.Context, n *ast.Node) {
			source, _ := n.Field(ast.FieldSource).Attr(ast.AttrValue)
			if msg, ok := dependencySuggestions[source]; ok {
				ctx.Report(n, msg)
			}
		}), nil
	},
}

const singleExportMessage = "To allow efficient bundling, modules using @Component() can only have a single export which is the component class itself. Any other exports should be moved to a separate file. For further information check out: https://stenciljs.com/docs/module-bundling"

// SingleExport requires a module declaring a component to export nothing
// but the component class. Interfaces and type aliases are erased at
// compile time and stay allowed.
var SingleExport = &lint.Rule{
	Name:        "single-export",
	Description: "This rule catches modules that expose more than just the Stencil Component itself.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ClassDeclaration", func(ctx *lint.Context, n *ast.Node) {
			if !lint.HasAnnotation(n, ctx.Tracker().Decorator()) {
				return
			}
			own := n.Field(ast.FieldID).Name()
			prog := n.Root()
			for _, stmt := range prog.Children {
				for _, exported := range valueExports(prog, stmt) {
					if exported.Name() != own {
						ctx.Report(exported, singleExportMessage)
					}
				}
			}
		}), nil
	},
}

// valueExports returns the nodes naming each runtime value stmt exports.
// Type-only exports are omitted. Default and star exports come back as the
// statement itself, which never matches a class name.
func valueExports(prog, stmt *ast.Node) []*ast.Node {
	switch stmt.Kind {
	case ast.KindExportDefaultDeclaration:
		return []*ast.Node{stmt}
	case ast.KindExportNamedDeclaration:
	default:
		return nil
	}

	if decl := stmt.Field(ast.FieldDeclaration); decl != nil {
		switch decl.Kind {
		case ast.KindTSInterfaceDeclaration, ast.KindTSTypeAliasDeclaration:
			return nil
		case ast.KindVariableDeclaration:
			var ids []*ast.Node
			for _, d := range decl.List(ast.ListDeclarations) {
				if id := d.Field(ast.FieldID); id != nil {
					ids = append(ids, id)
				}
			}
			return ids
		}
		if id := decl.Field(ast.FieldID); id != nil {
			return []*ast.Node{id}
		}
		return []*ast.Node{decl}
	}

	specs := stmt.List(ast.ListSpecifiers)
	if len(specs) == 0 {
		if stmt.Field(ast.FieldSource) == nil {
			// export {}
			return nil
		}
		// export * from '...'
		return []*ast.Node{stmt}
	}
	var out []*ast.Node
	for _, spec := range specs {
		if stmt.Field(ast.FieldSource) == nil && isTypeDeclaration(prog, spec.Name()) {
			continue
		}
		out = append(out, spec)
	}
	return out
}

func isTypeDeclaration(prog *ast.Node, name string) bool {
	for _, stmt := range prog.Children {
		decl := stmt
		if stmt.Is(ast.KindExportNamedDeclaration) {
			decl = stmt.Field(ast.FieldDeclaration)
		}
		switch {
		case decl.Is(ast.KindTSInterfaceDeclaration), decl.Is(ast.KindTSTypeAliasDeclaration):
			if decl.Field(ast.FieldID).Name() == name {
				return true
			}
		}
	}
	return false
}
