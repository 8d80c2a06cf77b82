package ts

import (
	"strconv"
	"strings"

	"github.com/c360studio/semlint/processor/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// converter maps tree-sitter nodes onto ESTree-flavoured ast.Nodes. Node
// types it does not model become KindUnknown wrappers whose named children
// are still converted, so selectors keep seeing nested expressions.
type converter struct {
	src  []byte
	path string
}

func (c *converter) text(n *sitter.Node) string {
	return nodeText(n, c.src)
}

func (c *converter) span(n *sitter.Node) ast.Span {
	start, end := n.StartPoint(), n.EndPoint()
	return ast.Span{
		File:        c.path,
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
		StartByte:   int(n.StartByte()),
		EndByte:     int(n.EndByte()),
	}
}

func (c *converter) make(kind ast.Kind, n *sitter.Node) *ast.Node {
	return ast.New(kind).At(c.span(n))
}

func (c *converter) ident(n *sitter.Node) *ast.Node {
	return ast.Ident(c.text(n)).At(c.span(n))
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := namedChildren(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous child of the given type, such
// as the "async" keyword or the "?" of an optional member.
func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// modifiers collects keyword modifiers in source order.
func (c *converter) modifiers(n *sitter.Node) []string {
	var mods []string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "accessibility_modifier":
			mods = append(mods, c.text(child))
		case "static", "readonly", "async", "abstract", "declare", "override":
			if !child.IsNamed() {
				mods = append(mods, child.Type())
			}
		case "override_modifier":
			mods = append(mods, "override")
		}
	}
	return mods
}

func isJSDoc(text string) bool {
	return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/")
}

// program converts the root node.
func (c *converter) program(root *sitter.Node) *ast.Node {
	prog := c.make(ast.KindProgram, root)
	prog.Append(c.statements(root)...)
	return prog
}

// statements converts a statement list, attaching each JSDoc block to the
// declaration that directly follows it.
func (c *converter) statements(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	var docs []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == "comment" {
			if text := c.text(child); isJSDoc(text) {
				docs = append(docs, text)
			}
			continue
		}
		stmt := c.statement(child)
		if stmt == nil {
			docs = nil
			continue
		}
		if len(docs) > 0 {
			stmt.WithDocs(docs...)
			if decl := stmt.Field(ast.FieldDeclaration); decl != nil {
				decl.WithDocs(docs...)
			}
			docs = nil
		}
		out = append(out, stmt)
	}
	return out
}

func (c *converter) statement(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "empty_statement", "comment", "hash_bang_line":
		return nil
	case "expression_statement":
		return c.make(ast.KindExpressionStatement, n).Set(ast.FieldExpression, c.expr(firstNamed(n)))
	case "statement_block":
		return c.block(n)
	case "if_statement":
		node := c.make(ast.KindIfStatement, n).
			Set(ast.FieldTest, c.expr(n.ChildByFieldName("condition"))).
			Set(ast.FieldConsequent, c.statement(n.ChildByFieldName("consequence")))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstNamed(alt)
			}
			if alt != nil {
				node.Set(ast.FieldAlternate, c.statement(alt))
			}
		}
		return node
	case "while_statement":
		return c.make(ast.KindWhileStatement, n).
			Set(ast.FieldTest, c.expr(n.ChildByFieldName("condition"))).
			Set(ast.FieldBody, c.statement(n.ChildByFieldName("body")))
	case "do_statement":
		return c.make(ast.KindDoWhileStatement, n).
			Set(ast.FieldBody, c.statement(n.ChildByFieldName("body"))).
			Set(ast.FieldTest, c.expr(n.ChildByFieldName("condition")))
	case "for_statement":
		return c.forStatement(n)
	case "return_statement":
		ret := c.make(ast.KindReturnStatement, n)
		if arg := firstNamed(n); arg != nil {
			ret.Set(ast.FieldArgument, c.expr(arg))
		}
		return ret
	case "lexical_declaration", "variable_declaration":
		return c.variableDeclaration(n)
	case "function_declaration", "generator_function_declaration", "function_signature":
		return c.function(ast.KindFunctionDeclaration, n)
	case "class_declaration", "abstract_class_declaration", "class":
		return c.class(n)
	case "enum_declaration":
		return c.enum(n)
	case "interface_declaration":
		return c.make(ast.KindTSInterfaceDeclaration, n).
			Set(ast.FieldID, c.ident(n.ChildByFieldName("name")))
	case "type_alias_declaration":
		return c.make(ast.KindTSTypeAliasDeclaration, n).
			Set(ast.FieldID, c.ident(n.ChildByFieldName("name"))).
			Set(ast.FieldTypeAnnotation, c.typeNode(n.ChildByFieldName("value")))
	case "import_statement":
		imp := c.make(ast.KindImportDeclaration, n)
		if src := n.ChildByFieldName("source"); src != nil {
			imp.Set(ast.FieldSource, c.expr(src))
		}
		return imp
	case "export_statement":
		return c.export(n)
	}
	if expr := c.expr(n); expr != nil {
		return expr
	}
	return nil
}

func (c *converter) block(n *sitter.Node) *ast.Node {
	return c.make(ast.KindBlockStatement, n).Append(c.statements(n)...)
}

func (c *converter) forStatement(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindForStatement, n)
	if init := n.ChildByFieldName("initializer"); init != nil {
		switch init.Type() {
		case "lexical_declaration", "variable_declaration":
			node.Set(ast.FieldInit, c.variableDeclaration(init))
		case "expression_statement":
			node.Set(ast.FieldInit, c.expr(firstNamed(init)))
		case "empty_statement":
		default:
			node.Set(ast.FieldInit, c.expr(init))
		}
	}
	if cond := n.ChildByFieldName("condition"); cond != nil {
		switch cond.Type() {
		case "expression_statement":
			node.Set(ast.FieldTest, c.expr(firstNamed(cond)))
		case "empty_statement":
		default:
			node.Set(ast.FieldTest, c.expr(cond))
		}
	}
	if inc := n.ChildByFieldName("increment"); inc != nil {
		node.Set(ast.FieldUpdate, c.expr(inc))
	}
	return node.Set(ast.FieldBody, c.statement(n.ChildByFieldName("body")))
}

func (c *converter) variableDeclaration(n *sitter.Node) *ast.Node {
	kind := "var"
	if n.Type() == "lexical_declaration" {
		if first := n.Child(0); first != nil {
			kind = first.Type()
		}
	}
	decl := c.make(ast.KindVariableDeclaration, n).WithAttr(ast.AttrKind, kind)
	for _, d := range namedChildren(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		v := c.make(ast.KindVariableDeclarator, d).
			Set(ast.FieldID, c.pattern(d.ChildByFieldName("name"))).
			Set(ast.FieldTypeAnnotation, c.typeNode(d.ChildByFieldName("type"))).
			Set(ast.FieldInit, c.expr(d.ChildByFieldName("value")))
		decl.AddTo(ast.ListDeclarations, v)
	}
	return decl
}

// pattern converts a binding target. Destructuring patterns are kept as
// opaque wrappers.
func (c *converter) pattern(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "identifier" {
		return c.ident(n)
	}
	return c.unknown(n)
}

func (c *converter) export(n *sitter.Node) *ast.Node {
	var decorators []*ast.Node
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			decorators = append(decorators, c.decorator(child))
		}
	}

	var node *ast.Node
	if hasToken(n, "default") {
		node = c.make(ast.KindExportDefaultDeclaration, n)
		target := n.ChildByFieldName("declaration")
		if target == nil {
			target = n.ChildByFieldName("value")
		}
		if target != nil {
			node.Set(ast.FieldDeclaration, c.statement(target))
		}
	} else {
		node = c.make(ast.KindExportNamedDeclaration, n)
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			node.Set(ast.FieldDeclaration, c.statement(decl))
		}
		for _, child := range namedChildren(n) {
			if child.Type() != "export_clause" {
				continue
			}
			for _, spec := range namedChildren(child) {
				if spec.Type() != "export_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil {
					node.AddTo(ast.ListSpecifiers, c.ident(name))
				}
			}
		}
		if src := n.ChildByFieldName("source"); src != nil {
			node.Set(ast.FieldSource, c.expr(src))
		}
	}

	// `@Component() export class X {}` puts the decorators on the export.
	if decl := node.Field(ast.FieldDeclaration); decl.Is(ast.KindClassDeclaration) && len(decorators) > 0 {
		decl.Prepend(decorators...)
	}
	return node
}

func (c *converter) enum(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindTSEnumDeclaration, n).Set(ast.FieldID, c.ident(n.ChildByFieldName("name")))
	if hasToken(n, "const") {
		node.WithAttr(ast.AttrConst, "true")
	}
	for _, m := range namedChildren(n.ChildByFieldName("body")) {
		member := c.make(ast.KindTSEnumMember, m)
		switch m.Type() {
		case "enum_assignment":
			member.Set(ast.FieldID, c.propertyKey(m.ChildByFieldName("name"))).
				Set(ast.FieldInit, c.expr(m.ChildByFieldName("value")))
		default:
			member.Set(ast.FieldID, c.propertyKey(m))
		}
		node.AddTo(ast.ListMembers, member)
	}
	return node
}

// class converts a class declaration or class expression.
func (c *converter) class(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindClassDeclaration, n)
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			node.Append(c.decorator(child))
		}
	}
	if name := n.ChildByFieldName("name"); name != nil {
		node.Set(ast.FieldID, c.ident(name))
	}
	for _, child := range namedChildren(n) {
		if child.Type() != "class_heritage" {
			continue
		}
		for _, clause := range namedChildren(child) {
			if clause.Type() == "extends_clause" {
				super := clause.ChildByFieldName("value")
				if super == nil {
					super = firstNamed(clause)
				}
				node.Set(ast.FieldSuperClass, c.expr(super))
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		node.Set(ast.FieldBody, c.classBody(body))
	}
	return node
}

// classBody converts members. Method decorators and JSDoc blocks are
// siblings that precede the member in the body.
func (c *converter) classBody(n *sitter.Node) *ast.Node {
	body := c.make(ast.KindClassBody, n)
	var decorators []*ast.Node
	var docs []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		var member *ast.Node
		switch child.Type() {
		case "comment":
			if text := c.text(child); isJSDoc(text) {
				docs = append(docs, text)
			}
			continue
		case "decorator":
			decorators = append(decorators, c.decorator(child))
			continue
		case "method_definition", "method_signature", "abstract_method_signature":
			member = c.method(child)
		case "public_field_definition", "field_definition":
			member = c.property(child)
		default:
			member = c.unknown(child)
		}
		if len(decorators) > 0 {
			member.Prepend(decorators...)
			decorators = nil
		}
		if len(docs) > 0 {
			member.WithDocs(docs...)
			docs = nil
		}
		body.Append(member)
	}
	return body
}

func (c *converter) decorator(n *sitter.Node) *ast.Node {
	return c.make(ast.KindDecorator, n).Set(ast.FieldExpression, c.expr(firstNamed(n)))
}

func (c *converter) method(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindMethodDefinition, n).WithModifiers(c.modifiers(n)...)
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			node.Append(c.decorator(child))
		}
	}
	key := c.propertyKey(n.ChildByFieldName("name"))
	node.Set(ast.FieldKey, key)

	kind := "method"
	switch {
	case hasToken(n, "get"):
		kind = "get"
	case hasToken(n, "set"):
		kind = "set"
	case key.Name() == "constructor":
		kind = "constructor"
	}
	node.WithAttr(ast.AttrKind, kind)
	if hasToken(n, "?") {
		node.WithAttr(ast.AttrOptional, "true")
	}
	c.signature(node, n)
	return node
}

func (c *converter) property(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindClassProperty, n).WithModifiers(c.modifiers(n)...)
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			node.Append(c.decorator(child))
		}
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		name = n.ChildByFieldName("property")
	}
	node.Set(ast.FieldKey, c.propertyKey(name))
	if hasToken(n, "?") {
		node.WithAttr(ast.AttrOptional, "true")
	}
	node.Set(ast.FieldTypeAnnotation, c.typeNode(n.ChildByFieldName("type")))
	node.Set(ast.FieldValue, c.expr(n.ChildByFieldName("value")))
	return node
}

// propertyKey converts member and object keys. Computed keys are marked
// with the computed attribute by the caller.
func (c *converter) propertyKey(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "property_identifier", "identifier", "private_property_identifier",
		"shorthand_property_identifier", "type_identifier":
		return c.ident(n)
	case "computed_property_name":
		return c.expr(firstNamed(n))
	}
	return c.expr(n)
}

// signature fills params, returnType, body and async for function-like
// nodes.
func (c *converter) signature(node *ast.Node, n *sitter.Node) {
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range namedChildren(params) {
			node.AddTo(ast.ListParams, c.parameter(p))
		}
	} else if p := n.ChildByFieldName("parameter"); p != nil {
		node.AddTo(ast.ListParams, c.parameter(p))
	}
	node.Set(ast.FieldReturnType, c.typeNode(n.ChildByFieldName("return_type")))
	if body := n.ChildByFieldName("body"); body != nil {
		if body.Type() == "statement_block" {
			node.Set(ast.FieldBody, c.block(body))
		} else {
			node.Set(ast.FieldBody, c.expr(body))
		}
	}
	if hasToken(n, "async") && !node.HasModifier(ast.ModAsync) {
		node.WithModifiers(ast.ModAsync)
	}
}

func (c *converter) parameter(n *sitter.Node) *ast.Node {
	param := c.make(ast.KindParameter, n)
	switch n.Type() {
	case "required_parameter", "optional_parameter":
		param.WithModifiers(c.modifiers(n)...)
		for _, child := range namedChildren(n) {
			if child.Type() == "decorator" {
				param.Append(c.decorator(child))
			}
		}
		if pat := n.ChildByFieldName("pattern"); pat != nil {
			switch pat.Type() {
			case "identifier", "this":
				param.WithAttr(ast.AttrName, c.text(pat))
			default:
				param.Append(c.unknown(pat))
			}
		}
		if n.Type() == "optional_parameter" {
			param.WithAttr(ast.AttrOptional, "true")
		}
		param.Set(ast.FieldTypeAnnotation, c.typeNode(n.ChildByFieldName("type")))
		param.Set(ast.FieldValue, c.expr(n.ChildByFieldName("value")))
	case "identifier":
		param.WithAttr(ast.AttrName, c.text(n))
	case "assignment_pattern":
		if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			param.WithAttr(ast.AttrName, c.text(left))
		}
		param.Set(ast.FieldValue, c.expr(n.ChildByFieldName("right")))
	default:
		param.Append(c.unknown(n))
	}
	return param
}

func (c *converter) function(kind ast.Kind, n *sitter.Node) *ast.Node {
	node := c.make(kind, n)
	if name := n.ChildByFieldName("name"); name != nil {
		node.Set(ast.FieldID, c.ident(name))
	}
	c.signature(node, n)
	return node
}

// expr converts an expression. Parentheses and `satisfies` are unwrapped
// since neither changes the type; casts and `!` keep a node of their own.
func (c *converter) expr(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "comment":
		return nil
	case "parenthesized_expression", "satisfies_expression":
		return c.expr(firstNamed(n))
	case "as_expression":
		// `x as const` has no named type child.
		kids := namedChildren(n)
		if len(kids) == 0 {
			return nil
		}
		cast := c.make(ast.KindTSAsExpression, n).Set(ast.FieldExpression, c.expr(kids[0]))
		if len(kids) > 1 {
			cast.Set(ast.FieldTypeAnnotation, c.typeNode(kids[1]))
		}
		return cast
	case "type_assertion":
		// <T>x: type_arguments first, then the operand.
		kids := namedChildren(n)
		if len(kids) < 2 {
			return c.unknown(n)
		}
		return c.make(ast.KindTSTypeAssertion, n).
			Set(ast.FieldExpression, c.expr(kids[1])).
			Set(ast.FieldTypeAnnotation, c.typeNode(firstNamed(kids[0])))
	case "non_null_expression":
		return c.make(ast.KindTSNonNullExpression, n).Set(ast.FieldExpression, c.expr(firstNamed(n)))
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"private_property_identifier", "statement_identifier", "type_identifier":
		return c.ident(n)
	case "undefined":
		return c.ident(n)
	case "super":
		return c.ident(n)
	case "this":
		return c.make(ast.KindThisExpression, n)
	case "number":
		text := c.text(n)
		valueType := "number"
		if strings.HasSuffix(text, "n") && !strings.HasPrefix(text, "0x") {
			valueType = "bigint"
		}
		return c.literal(n, valueType, text)
	case "string":
		return c.literal(n, "string", c.stringValue(n))
	case "true", "false":
		return c.literal(n, "boolean", n.Type())
	case "null":
		return c.literal(n, "null", "null")
	case "regex":
		return c.literal(n, "regex", c.text(n))
	case "template_string":
		return c.template(n)
	case "call_expression":
		call := c.make(ast.KindCallExpression, n).Set(ast.FieldCallee, c.expr(n.ChildByFieldName("function")))
		if args := n.ChildByFieldName("arguments"); args != nil {
			if args.Type() == "template_string" {
				call.AddTo(ast.ListArguments, c.template(args))
			} else {
				for _, a := range namedChildren(args) {
					call.AddTo(ast.ListArguments, c.expr(a))
				}
			}
		}
		if hasToken(n, "?.") || hasOptionalChain(n) {
			call.WithAttr(ast.AttrOptional, "true")
		}
		return call
	case "new_expression":
		node := c.make(ast.KindNewExpression, n).Set(ast.FieldCallee, c.expr(n.ChildByFieldName("constructor")))
		for _, a := range namedChildren(n.ChildByFieldName("arguments")) {
			node.AddTo(ast.ListArguments, c.expr(a))
		}
		return node
	case "member_expression":
		node := c.make(ast.KindMemberExpression, n).
			Set(ast.FieldObject, c.expr(n.ChildByFieldName("object"))).
			Set(ast.FieldProperty, c.propertyKey(n.ChildByFieldName("property")))
		if hasToken(n, "?.") || hasOptionalChain(n) {
			node.WithAttr(ast.AttrOptional, "true")
		}
		return node
	case "subscript_expression":
		return c.make(ast.KindMemberExpression, n).
			WithAttr(ast.AttrComputed, "true").
			Set(ast.FieldObject, c.expr(n.ChildByFieldName("object"))).
			Set(ast.FieldProperty, c.expr(n.ChildByFieldName("index")))
	case "unary_expression":
		return c.make(ast.KindUnaryExpression, n).
			WithAttr(ast.AttrOperator, c.text(n.ChildByFieldName("operator"))).
			Set(ast.FieldArgument, c.expr(n.ChildByFieldName("argument")))
	case "binary_expression":
		op := c.text(n.ChildByFieldName("operator"))
		kind := ast.KindBinaryExpression
		switch op {
		case "&&", "||", "??":
			kind = ast.KindLogicalExpression
		}
		return c.make(kind, n).
			WithAttr(ast.AttrOperator, op).
			Set(ast.FieldLeft, c.expr(n.ChildByFieldName("left"))).
			Set(ast.FieldRight, c.expr(n.ChildByFieldName("right")))
	case "ternary_expression":
		return c.make(ast.KindConditionalExpression, n).
			Set(ast.FieldTest, c.expr(n.ChildByFieldName("condition"))).
			Set(ast.FieldConsequent, c.expr(n.ChildByFieldName("consequence"))).
			Set(ast.FieldAlternate, c.expr(n.ChildByFieldName("alternative")))
	case "assignment_expression", "augmented_assignment_expression":
		op := "="
		if opNode := n.ChildByFieldName("operator"); opNode != nil {
			op = c.text(opNode)
		}
		return c.make(ast.KindAssignmentExpression, n).
			WithAttr(ast.AttrOperator, op).
			Set(ast.FieldLeft, c.expr(n.ChildByFieldName("left"))).
			Set(ast.FieldRight, c.expr(n.ChildByFieldName("right")))
	case "await_expression":
		return c.make(ast.KindAwaitExpression, n).Set(ast.FieldArgument, c.expr(firstNamed(n)))
	case "arrow_function":
		return c.function(ast.KindArrowFunctionExpression, n)
	case "function_expression", "function", "generator_function":
		return c.function(ast.KindFunctionExpression, n)
	case "class":
		return c.class(n)
	case "object":
		return c.object(n)
	case "array":
		arr := c.make(ast.KindArrayExpression, n)
		for _, e := range namedChildren(n) {
			arr.AddTo(ast.ListElements, c.expr(e))
		}
		return arr
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		el := c.make(ast.KindJSXElement, n)
		for _, child := range namedChildren(n) {
			el.Append(c.jsxChild(child))
		}
		return el
	}
	return c.unknown(n)
}

// hasOptionalChain detects `a?.b`, which newer grammars model as a named
// optional_chain child.
func hasOptionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == "optional_chain" {
			return true
		}
	}
	return false
}

func (c *converter) jsxChild(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return c.expr(n)
	case "jsx_expression":
		if inner := firstNamed(n); inner != nil {
			return c.expr(inner)
		}
		return nil
	}
	return c.unknown(n)
}

func (c *converter) literal(n *sitter.Node, valueType, value string) *ast.Node {
	return c.make(ast.KindLiteral, n).
		WithAttr(ast.AttrValueType, valueType).
		WithAttr(ast.AttrValue, value).
		WithAttr(ast.AttrRaw, c.text(n)).
		WithText(c.text(n))
}

// stringValue returns the unquoted, unescaped content of a string node.
func (c *converter) stringValue(n *sitter.Node) string {
	raw := c.text(n)
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	return unescape(raw)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		case '\n':
			// Line continuation.
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// template builds quasis from the source between substitutions, which is
// stable across grammar versions.
func (c *converter) template(n *sitter.Node) *ast.Node {
	tpl := c.make(ast.KindTemplateLiteral, n)
	start := int(n.StartByte()) + 1
	end := int(n.EndByte()) - 1
	for _, child := range namedChildren(n) {
		if child.Type() != "template_substitution" {
			continue
		}
		tpl.AddTo(ast.ListQuasis, c.quasi(start, int(child.StartByte())))
		tpl.AddTo(ast.ListExpressions, c.expr(firstNamed(child)))
		start = int(child.EndByte())
	}
	tpl.AddTo(ast.ListQuasis, c.quasi(start, end))
	return tpl
}

func (c *converter) quasi(start, end int) *ast.Node {
	value := ""
	if start >= 0 && end <= len(c.src) && start <= end {
		value = unescape(string(c.src[start:end]))
	}
	return ast.New(ast.KindLiteral).
		WithAttr(ast.AttrValueType, "string").
		WithAttr(ast.AttrValue, value).
		At(ast.Span{File: c.path, StartByte: start, EndByte: end})
}

func (c *converter) object(n *sitter.Node) *ast.Node {
	obj := c.make(ast.KindObjectExpression, n)
	for _, p := range namedChildren(n) {
		switch p.Type() {
		case "pair":
			keyNode := p.ChildByFieldName("key")
			prop := c.make(ast.KindProperty, p).
				Set(ast.FieldKey, c.propertyKey(keyNode)).
				Set(ast.FieldValue, c.expr(p.ChildByFieldName("value")))
			if keyNode != nil && keyNode.Type() == "computed_property_name" {
				prop.WithAttr(ast.AttrComputed, "true")
			}
			obj.AddTo(ast.ListProperties, prop)
		case "shorthand_property_identifier":
			prop := c.make(ast.KindProperty, p).
				Set(ast.FieldKey, c.ident(p)).
				Set(ast.FieldValue, c.ident(p))
			obj.AddTo(ast.ListProperties, prop)
		case "method_definition":
			obj.AddTo(ast.ListProperties, c.method(p))
		default:
			obj.AddTo(ast.ListProperties, c.unknown(p))
		}
	}
	return obj
}

// typeNode converts a type annotation. Type shapes the checker does not
// model become KindUnknown, which it resolves to any.
func (c *converter) typeNode(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "type_annotation", "parenthesized_type", "omitting_type_annotation", "opting_type_annotation":
		return c.typeNode(firstNamed(n))
	case "predefined_type":
		return c.make(ast.KindTSKeyword, n).WithAttr(ast.AttrName, c.text(n))
	case "type_identifier", "nested_type_identifier", "identifier":
		return c.make(ast.KindTSTypeReference, n).WithAttr(ast.AttrName, c.text(n))
	case "generic_type":
		ref := c.make(ast.KindTSTypeReference, n).WithAttr(ast.AttrName, c.text(n.ChildByFieldName("name")))
		for _, child := range namedChildren(n) {
			if child.Type() != "type_arguments" {
				continue
			}
			for _, arg := range namedChildren(child) {
				ref.AddTo(ast.ListTypeParameters, c.typeNode(arg))
			}
		}
		return ref
	case "union_type":
		union := c.make(ast.KindTSUnionType, n)
		c.flattenUnion(union, n)
		return union
	case "array_type":
		return c.make(ast.KindTSArrayType, n).Set(ast.FieldElementType, c.typeNode(firstNamed(n)))
	case "literal_type":
		inner := firstNamed(n)
		if inner == nil {
			return c.unknown(n)
		}
		switch inner.Type() {
		case "null", "undefined":
			return c.make(ast.KindTSKeyword, n).WithAttr(ast.AttrName, inner.Type())
		case "string":
			return c.make(ast.KindTSLiteralType, n).
				WithAttr(ast.AttrValueType, "string").
				WithAttr(ast.AttrValue, c.stringValue(inner))
		case "true", "false":
			return c.make(ast.KindTSLiteralType, n).
				WithAttr(ast.AttrValueType, "boolean").
				WithAttr(ast.AttrValue, inner.Type())
		case "number", "unary_expression":
			return c.make(ast.KindTSLiteralType, n).
				WithAttr(ast.AttrValueType, "number").
				WithAttr(ast.AttrValue, c.text(inner))
		}
		return c.unknown(n)
	case "undefined", "null":
		return c.make(ast.KindTSKeyword, n).WithAttr(ast.AttrName, n.Type())
	}
	return c.unknown(n)
}

func (c *converter) flattenUnion(union *ast.Node, n *sitter.Node) {
	for _, member := range namedChildren(n) {
		if member.Type() == "union_type" {
			c.flattenUnion(union, member)
			continue
		}
		union.AddTo(ast.ListTypes, c.typeNode(member))
	}
}

// unknown wraps n, converting its named children so nested expressions stay
// visible to the walk.
func (c *converter) unknown(n *sitter.Node) *ast.Node {
	node := c.make(ast.KindUnknown, n).WithAttr(ast.AttrNative, n.Type())
	for _, child := range namedChildren(n) {
		var converted *ast.Node
		switch child.Type() {
		case "statement_block":
			converted = c.block(child)
		case "lexical_declaration", "variable_declaration", "expression_statement",
			"if_statement", "while_statement", "do_statement", "for_statement", "return_statement":
			converted = c.statement(child)
		default:
			converted = c.expr(child)
		}
		node.Append(converted)
	}
	return node
}
