package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

var defaultBannedPrefixes = []string{"stencil", "stnl", "st"}

// onComponent calls fn for every component class together with its
// statically known tag. Components with a computed tag are skipped.
func onComponent(fn func(ctx *lint.Context, class *ast.Node, tag string)) lint.Handler {
	return func(ctx *lint.Context, n *ast.Node) {
		if ctx.Component() != n {
			return
		}
		if tag, ok := componentTag(ctx); ok {
			fn(ctx, n, tag)
		}
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

var BanPrefix = &lint.Rule{
	Name:        "ban-prefix",
	Description: "This rule catches usages banned prefix in component tag name.",
	Category:    categoryPossibleErrors,
	Create: func(opts lint.Options) (*lint.Listeners, error) {
		banned, err := opts.Strings(0)
		if err != nil {
			return nil, err
		}
		if len(banned) == 0 {
			banned = defaultBannedPrefixes
		}
		return lint.NewListeners().On("ClassDeclaration", onComponent(func(ctx *lint.Context, class *ast.Node, tag string) {
			if hasAnyPrefix(tag, banned) {
				ctx.Reportf(class, "The component with tag name %s have a banned prefix.", tag)
			}
		})), nil
	},
}

var RequiredPrefix = &lint.Rule{
	Name:        "required-prefix",
	Description: "This rule catches required prefix in component tag name.",
	Category:    categoryPossibleErrors,
	Create: func(opts lint.Options) (*lint.Listeners, error) {
		required, err := opts.Strings(0)
		if err != nil {
			return nil, err
		}
		if len(required) == 0 {
			return nil, fmt.Errorf("%w: a list of prefixes is required", lint.ErrInvalidOptions)
		}
		return lint.NewListeners().On("ClassDeclaration", onComponent(func(ctx *lint.Context, class *ast.Node, tag string) {
			if !hasAnyPrefix(tag, required) {
				ctx.Reportf(class, "The component with tagName %s have not a valid prefix.", tag)
			}
		})), nil
	},
}

// ClassPattern checks component class names against a configured regular
// expression, for example `^[A-Z][a-zA-Z]+Component$`.
var ClassPattern = &lint.Rule{
	Name:        "class-pattern",
	Description: "This rule catches usages of non valid class names.",
	Category:    categoryPossibleErrors,
	Create: func(opts lint.Options) (*lint.Listeners, error) {
		obj, err := opts.Object(0)
		if err != nil {
			return nil, err
		}
		pattern, _ := obj["pattern"].(string)
		if pattern == "" {
			return lint.NewListeners(), nil
		}
		ignoreCase, _ := obj["ignoreCase"].(bool)
		expr := pattern
		display := "/" + pattern + "/"
		if ignoreCase {
			expr = "(?i)" + pattern
			display += "i"
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern: %w", lint.ErrInvalidOptions, err)
		}
		return lint.NewListeners().On("ClassDeclaration", onComponent(func(ctx *lint.Context, class *ast.Node, tag string) {
			if !re.MatchString(class.Field(ast.FieldID).Name()) {
				ctx.Reportf(class, "The class name in component with tag name %s is not valid (%s).", tag, display)
			}
		})), nil
	},
}
