package lint

import (
	"math"
	"strconv"
	"strings"

	"github.com/c360studio/semlint/processor/ast"
)

// maxConstDepth bounds const-identifier chains (const a = b; const b = a).
const maxConstDepth = 16

// StaticValue is the result of evaluating an expression without running it.
// Value is a string, float64, bool, nil (for null), []any or map[string]any
// when Known is true.
type StaticValue struct {
	Value any
	Known bool
}

var unknown = StaticValue{}

func known(v any) StaticValue {
	return StaticValue{Value: v, Known: true}
}

// Evaluate folds n to a constant when every part of it is static. It never
// guesses: any dynamic part makes the whole result unknown.
func Evaluate(n *ast.Node) StaticValue {
	return evaluate(n, 0)
}

func evaluate(n *ast.Node, depth int) StaticValue {
	if n == nil || depth > maxConstDepth {
		return unknown
	}
	switch n.Kind {
	case ast.KindLiteral:
		return literalValue(n)
	case ast.KindTemplateLiteral:
		return templateValue(n, depth)
	case ast.KindArrayExpression:
		elems := n.List(ast.ListElements)
		out := make([]any, 0, len(elems))
		for _, e := range elems {
			v := evaluate(e, depth)
			if !v.Known {
				return unknown
			}
			out = append(out, v.Value)
		}
		return known(out)
	case ast.KindObjectExpression:
		return objectValue(n, depth)
	case ast.KindUnaryExpression:
		return unaryValue(n, depth)
	case ast.KindBinaryExpression:
		if n.Operator() != "+" {
			return unknown
		}
		return addValues(evaluate(n.Field(ast.FieldLeft), depth), evaluate(n.Field(ast.FieldRight), depth))
	case ast.KindIdentifier:
		return constValue(n, depth)
	case ast.KindTSAsExpression, ast.KindTSTypeAssertion, ast.KindTSNonNullExpression:
		return evaluate(n.Unwrap(), depth)
	}
	return unknown
}

func literalValue(n *ast.Node) StaticValue {
	vt, _ := n.Attr(ast.AttrValueType)
	v, _ := n.Attr(ast.AttrValue)
	switch vt {
	case "string":
		return known(v)
	case "number":
		f, err := parseNumber(v)
		if err != nil {
			return unknown
		}
		return known(f)
	case "boolean":
		return known(v == "true")
	case "null":
		return known(nil)
	}
	return unknown
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, "_", "")
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			i, err := strconv.ParseInt(s, 0, 64)
			return float64(i), err
		}
	}
	return strconv.ParseFloat(s, 64)
}

func templateValue(n *ast.Node, depth int) StaticValue {
	quasis := n.List(ast.ListQuasis)
	exprs := n.List(ast.ListExpressions)
	var b strings.Builder
	for i, q := range quasis {
		v, _ := q.Attr(ast.AttrValue)
		b.WriteString(v)
		if i < len(exprs) {
			sv := evaluate(exprs[i], depth)
			if !sv.Known {
				return unknown
			}
			b.WriteString(toString(sv.Value))
		}
	}
	return known(b.String())
}

func objectValue(n *ast.Node, depth int) StaticValue {
	out := make(map[string]any)
	for _, p := range n.List(ast.ListProperties) {
		if !p.Is(ast.KindProperty) {
			// Spread elements and methods.
			return unknown
		}
		key := p.Field(ast.FieldKey)
		var name string
		if computed, _ := p.Attr(ast.AttrComputed); computed == "true" {
			kv := evaluate(key, depth)
			if !kv.Known {
				return unknown
			}
			name = toString(kv.Value)
		} else if key.Is(ast.KindIdentifier) {
			name = key.Name()
		} else {
			kv := literalValue(key)
			if !kv.Known {
				return unknown
			}
			name = toString(kv.Value)
		}
		v := evaluate(p.Field(ast.FieldValue), depth)
		if !v.Known {
			return unknown
		}
		out[name] = v.Value
	}
	return known(out)
}

func unaryValue(n *ast.Node, depth int) StaticValue {
	arg := evaluate(n.Field(ast.FieldArgument), depth)
	if !arg.Known {
		return unknown
	}
	switch n.Operator() {
	case "!":
		return known(!truthy(arg.Value))
	case "-":
		if f, ok := arg.Value.(float64); ok {
			return known(-f)
		}
	case "+":
		if f, ok := arg.Value.(float64); ok {
			return known(f)
		}
	}
	return unknown
}

func addValues(a, b StaticValue) StaticValue {
	if !a.Known || !b.Known {
		return unknown
	}
	af, aNum := a.Value.(float64)
	bf, bNum := b.Value.(float64)
	if aNum && bNum {
		return known(af + bf)
	}
	_, aStr := a.Value.(string)
	_, bStr := b.Value.(string)
	if aStr || bStr {
		return known(toString(a.Value) + toString(b.Value))
	}
	return unknown
}

// constValue resolves an identifier bound by a top-level const declaration.
func constValue(ident *ast.Node, depth int) StaticValue {
	switch ident.Name() {
	case "undefined":
		// undefined has no representation distinct from null.
		return unknown
	case "NaN":
		return known(math.NaN())
	case "Infinity":
		return known(math.Inf(1))
	}
	root := ident.Root()
	if !root.Is(ast.KindProgram) {
		return unknown
	}
	for _, stmt := range root.Children {
		if stmt.Is(ast.KindExportNamedDeclaration) {
			stmt = stmt.Field(ast.FieldDeclaration)
		}
		if !stmt.Is(ast.KindVariableDeclaration) {
			continue
		}
		if kind, _ := stmt.Attr(ast.AttrKind); kind != "const" {
			continue
		}
		for _, decl := range stmt.List(ast.ListDeclarations) {
			if decl.Field(ast.FieldID).Name() == ident.Name() {
				return evaluate(decl.Field(ast.FieldInit), depth+1)
			}
		}
	}
	return unknown
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return true
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		switch {
		case math.IsNaN(x):
			return "NaN"
		case math.IsInf(x, 1):
			return "Infinity"
		case math.IsInf(x, -1):
			return "-Infinity"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = toString(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}
