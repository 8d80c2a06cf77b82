package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
)

// DecoratorsContext checks that each Stencil decorator sits on the kind of
// declaration the compiler reads it from.
var DecoratorsContext = &lint.Rule{
	Name:        "decorators-context",
	Description: "This rule catches Stencil Decorators used in incorrect locations.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("Decorator", func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			name, _ := n.Resolve("expression.callee.name")
			parent := n.Parent
			switch name {
			case decProp, decState, decElement, decEvent:
				if !parent.Is(ast.KindClassProperty) {
					ctx.Reportf(n, "The @%s decorator can only be applied to class properties.", name)
				}
			case decMethod, decWatch, decListen:
				if !parent.Is(ast.KindMethodDefinition) {
					ctx.Reportf(n, "The @%s decorator can only be applied to class methods.", name)
				}
			case decComponent:
				if !parent.Is(ast.KindClassDeclaration) {
					ctx.Reportf(n, "The @%s decorator can only be applied to a class.", name)
				}
			}
		}), nil
	},
}

const (
	styleInline    = "inline"
	styleMultiline = "multiline"
	styleIgnore    = "ignore"
)

// decoratorStyleKeys are the option keys of decorators-style, one per
// member decorator.
var decoratorStyleKeys = []string{"prop", "state", "element", "event", "method", "watch", "listen"}

// DecoratorsStyle enforces that a decorator and the member it decorates
// share a line (inline) or are split across lines (multiline).
var DecoratorsStyle = &lint.Rule{
	Name:        "decorators-style",
	Description: "This rule catches Stencil Decorators not used in consistent style.",
	Category:    categoryPossibleErrors,
	Create:      createDecoratorsStyle,
}

func createDecoratorsStyle(opts lint.Options) (*lint.Listeners, error) {
	raw, err := opts.Object(0)
	if err != nil {
		return nil, err
	}
	styles := make(map[string]string, len(decoratorStyleKeys))
	for _, key := range decoratorStyleKeys {
		styles[key] = styleIgnore
	}
	for key, v := range raw {
		if !slices.Contains(decoratorStyleKeys, key) {
			return nil, fmt.Errorf("%w: unknown decorator %q", lint.ErrInvalidOptions, key)
		}
		style, ok := v.(string)
		if !ok || (style != styleInline && style != styleMultiline && style != styleIgnore) {
			return nil, fmt.Errorf("%w: %s: want inline, multiline or ignore, got %v", lint.ErrInvalidOptions, key, v)
		}
		styles[key] = style
	}

	check := func(ctx *lint.Context, n *ast.Node) {
		if !ctx.InsideComponent() {
			return
		}
		src := ctx.Source()
		for _, dec := range lint.Annotations(n) {
			name := lint.AnnotationName(dec)
			if !slices.Contains(stencilDecorators, name) {
				continue
			}
			style := styles[strings.ToLower(name)]
			if style == "" || style == styleIgnore {
				continue
			}
			end := dec.Span.EndByte
			if end <= 0 || end >= len(src) {
				continue
			}
			var ok bool
			switch style {
			case styleInline:
				ok = src[end] == ' '
			case styleMultiline:
				ok = src[end] == '\n' || (src[end] == '\r' && end+1 < len(src) && src[end+1] == '\n')
			}
			if !ok {
				ctx.Reportf(n, "The @%s decorator can only be applied as %s.", name, style)
			}
		}
	}
	return lint.NewListeners().
		On("ClassProperty", check).
		On("MethodDefinition[kind=method]", check), nil
}

// ElementType checks that the @Element() host reference is typed with the
// element interface generated for the component tag.
var ElementType = &lint.Rule{
	Name:        "element-type",
	Description: "This rule catches Stencil Element type not matching tag name.",
	Category:    categoryPossibleErrors,
	Fixable:     true,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("ClassProperty > Decorator[expression.callee.name=Element]", func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			tag, ok := componentTag(ctx)
			if !ok {
				return
			}
			want := "HTML" + pascalTag(tag) + "Element"
			prop := decoratedMember(n)
			annotation := prop.Field(ast.FieldTypeAnnotation)
			message := fmt.Sprintf("@Element type is not matching tag for component (%s)", want)
			switch {
			case annotation == nil:
				key := prop.Field(ast.FieldKey)
				ctx.ReportFix(key, message, lint.InsertAfter(key, ": "+want))
			case !annotation.Is(ast.KindTSTypeReference) || annotation.Name() != want:
				ctx.ReportFix(annotation, message, lint.ReplaceNode(annotation, want))
			}
		}), nil
	},
}

// Events the virtual DOM can bind directly on the host element.
var preferVDOMListener = []string{
	"click",
	"touchstart",
	"touchend",
	"touchmove",
	"mousedown",
	"mouseup",
	"mousemove",
	"keyup",
	"keydown",
	"focusin",
	"focusout",
	"focus",
	"blur",
}

var PreferVDOMListener = &lint.Rule{
	Name:        "prefer-vdom-listener",
	Description: "This rule catches usages of events using @Listen decorator.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		return lint.NewListeners().On("MethodDefinition[kind=method]", func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			listen := lint.FindAnnotation(n, decListen)
			if listen == nil {
				return
			}
			args := lint.LiteralArguments(listen)
			if len(args) == 0 || !args[0].Known {
				return
			}
			event, ok := args[0].Value.(string)
			if !ok || (len(args) > 1 && args[1].Known) {
				return
			}
			if slices.Contains(preferVDOMListener, event) {
				ctx.Report(listen, "Use vDOM listener instead.")
			}
		}), nil
	},
}

var (
	jsdocDecorators  = []string{decProp, decMethod, decEvent}
	jsdocInvalidTags = []string{"type", "memberof"}
	jsdocTag         = regexp.MustCompile(`(?m)^\s*(?:/\*\*|\*)?\s*@(\w+)`)
)

// RequiredJSDoc requires public API members to carry a JSDoc block, which
// the Stencil compiler copies into the generated documentation.
var RequiredJSDoc = &lint.Rule{
	Name:        "required-jsdoc",
	Description: "This rule catches Stencil Props and Methods using jsdoc.",
	Category:    categoryPossibleErrors,
	Create: func(lint.Options) (*lint.Listeners, error) {
		check := func(ctx *lint.Context, n *ast.Node) {
			if !ctx.InsideComponent() {
				return
			}
			for _, name := range jsdocDecorators {
				if !lint.HasAnnotation(n, name) {
					continue
				}
				switch {
				case len(n.Docs) == 0:
					ctx.Reportf(n, "The @%s decorator must to be documented.", name)
				case hasInvalidTag(n.Docs):
					ctx.Reportf(n, "The @%s decorator have not valid tags (%s).", name, strings.Join(jsdocInvalidTags, ", "))
				}
			}
		}
		return lint.NewListeners().
			On("ClassProperty", check).
			On("MethodDefinition[kind=method]", check), nil
	},
}

func hasInvalidTag(docs []string) bool {
	for _, doc := range docs {
		for _, m := range jsdocTag.FindAllStringSubmatch(doc, -1) {
			if slices.Contains(jsdocInvalidTags, strings.ToLower(m[1])) {
				return true
			}
		}
	}
	return false
}
