package typeinfo

import (
	"strings"

	"github.com/c360studio/semlint/processor/ast"
)

// maxAliasDepth bounds type alias expansion so self-referential aliases
// terminate.
const maxAliasDepth = 8

// Declared is a Checker that resolves types from what one file declares:
// annotations, literal initializers, and the return annotations of
// functions and methods in the same file. It does not follow imports.
// Anything it cannot resolve is Any, which boolean checks treat as safe.
//
// A Declared is bound to one program and is not safe for concurrent use.
type Declared struct {
	program   *ast.Node
	classes   map[string]*ast.Node
	functions map[string]*ast.Node
	enums     map[string]Type
	aliases   map[string]*ast.Node

	cache     map[*ast.Node]Type
	resolving map[*ast.Node]bool
}

// NewDeclared indexes the declarations of program.
func NewDeclared(program *ast.Node) *Declared {
	d := &Declared{
		program:   program,
		classes:   make(map[string]*ast.Node),
		functions: make(map[string]*ast.Node),
		enums:     make(map[string]Type),
		aliases:   make(map[string]*ast.Node),
		cache:     make(map[*ast.Node]Type),
		resolving: make(map[*ast.Node]bool),
	}

	ast.Inspect(program, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindClassDeclaration:
			if name := n.Field(ast.FieldID).Name(); name != "" {
				d.classes[name] = n
			}
		case ast.KindFunctionDeclaration:
			if name := n.Field(ast.FieldID).Name(); name != "" {
				if _, exists := d.functions[name]; !exists {
					d.functions[name] = n
				}
			}
		case ast.KindTSEnumDeclaration:
			d.indexEnum(n)
		case ast.KindTSTypeAliasDeclaration:
			if name := n.Field(ast.FieldID).Name(); name != "" {
				d.aliases[name] = n
			}
		}
		return true
	})
	return d
}

func (d *Declared) indexEnum(n *ast.Node) {
	name := n.Field(ast.FieldID).Name()
	if name == "" {
		return
	}
	var members []Type
	for _, m := range n.List(ast.ListMembers) {
		numeric := true
		if init := m.Field(ast.FieldInit); init != nil {
			if vt, _ := init.Attr(ast.AttrValueType); vt == "string" || init.Is(ast.KindTemplateLiteral) {
				numeric = false
			}
		}
		members = append(members, EnumMember(name, m.Field(ast.FieldID).Name(), numeric))
	}
	d.enums[name] = Enum(name, members...)
}

// TypeAt implements Checker.
func (d *Declared) TypeAt(node *ast.Node) Type {
	if node == nil {
		return Any()
	}
	if t, ok := d.cache[node]; ok {
		return t
	}
	if d.resolving[node] {
		return Any()
	}
	d.resolving[node] = true
	t := d.expression(node)
	delete(d.resolving, node)
	if t == nil {
		t = Any()
	}
	d.cache[node] = t
	return t
}

// ReturnTypeOf implements Checker. Without a return annotation the type is
// inferred from the function's own return statements; async functions wrap
// the result in a Promise.
func (d *Declared) ReturnTypeOf(fn *ast.Node) Type {
	if fn == nil {
		return Any()
	}
	async := fn.HasModifier(ast.ModAsync)
	if rt := fn.Field(ast.FieldReturnType); rt != nil {
		t := d.FromTypeNode(rt)
		if async && !IsThenable(t) {
			return Promise(t)
		}
		return t
	}
	if d.resolving[fn] {
		return Any()
	}
	d.resolving[fn] = true
	defer delete(d.resolving, fn)

	body := fn.Field(ast.FieldBody)
	var t Type
	switch {
	case body == nil:
		t = Void()
	case fn.Is(ast.KindArrowFunctionExpression) && !body.Is(ast.KindBlockStatement):
		t = d.TypeAt(body)
	default:
		var results []Type
		collectReturns(body, func(ret *ast.Node) {
			if arg := ret.Field(ast.FieldArgument); arg != nil {
				results = append(results, d.TypeAt(arg))
			} else {
				results = append(results, Void())
			}
		})
		if len(results) == 0 {
			t = Void()
		} else {
			t = Union(results...)
		}
	}
	if async {
		return Promise(Awaited(t))
	}
	return t
}

func collectReturns(n *ast.Node, fn func(*ast.Node)) {
	for _, c := range n.Children {
		switch c.Kind {
		case ast.KindReturnStatement:
			fn(c)
		case ast.KindFunctionDeclaration, ast.KindFunctionExpression,
			ast.KindArrowFunctionExpression, ast.KindClassDeclaration:
			continue
		default:
			collectReturns(c, fn)
		}
	}
}

func (d *Declared) expression(n *ast.Node) Type {
	switch n.Kind {
	case ast.KindLiteral:
		return literalType(n)
	case ast.KindTemplateLiteral:
		return String()
	case ast.KindIdentifier:
		return d.identifier(n)
	case ast.KindThisExpression:
		if class := n.Ancestor(ast.KindClassDeclaration); class != nil {
			return Object(class.Field(ast.FieldID).Name())
		}
		return Any()
	case ast.KindUnaryExpression:
		return d.unary(n)
	case ast.KindBinaryExpression:
		return d.binary(n)
	case ast.KindLogicalExpression:
		return d.logical(n)
	case ast.KindTSAsExpression, ast.KindTSTypeAssertion:
		if ann := n.Field(ast.FieldTypeAnnotation); ann != nil {
			return d.FromTypeNode(ann)
		}
		// as const
		return d.TypeAt(n.Field(ast.FieldExpression))
	case ast.KindTSNonNullExpression:
		return NonNullable(d.TypeAt(n.Field(ast.FieldExpression)))
	case ast.KindConditionalExpression:
		return Union(d.TypeAt(n.Field(ast.FieldConsequent)), d.TypeAt(n.Field(ast.FieldAlternate)))
	case ast.KindAssignmentExpression:
		return d.TypeAt(n.Field(ast.FieldRight))
	case ast.KindAwaitExpression:
		return Awaited(d.TypeAt(n.Field(ast.FieldArgument)))
	case ast.KindCallExpression:
		return d.call(n)
	case ast.KindNewExpression:
		name := n.Field(ast.FieldCallee).Name()
		switch name {
		case "":
			return Any()
		case "Promise":
			return Promise(Any())
		case "Array":
			return Array(Any())
		}
		return Object(name)
	case ast.KindMemberExpression:
		return d.member(n)
	case ast.KindArrayExpression:
		return Array(Any())
	case ast.KindObjectExpression:
		return AnonymousObject("{...}")
	case ast.KindArrowFunctionExpression, ast.KindFunctionExpression:
		return AnonymousObject("function")
	case ast.KindJSXElement:
		return Object("JSX.Element")
	}
	return Any()
}

func literalType(n *ast.Node) Type {
	vt, _ := n.Attr(ast.AttrValueType)
	v, _ := n.Attr(ast.AttrValue)
	switch vt {
	case "string":
		return StringLiteral(v)
	case "number":
		return NumberLiteral(v)
	case "bigint":
		return BigInt()
	case "boolean":
		if v == "true" {
			return True()
		}
		return False()
	case "null":
		return Null()
	case "regex":
		return Object("RegExp")
	}
	return Any()
}

func (d *Declared) unary(n *ast.Node) Type {
	switch n.Operator() {
	case "!", "delete":
		return Boolean()
	case "typeof":
		return String()
	case "-", "+", "~":
		return Number()
	case "void":
		return Undefined()
	}
	return Any()
}

// logical types `&&`, `||` and `??` the way TypeScript does: the right
// operand joined with the part of the left one that can short-circuit.
func (d *Declared) logical(n *ast.Node) Type {
	left := d.TypeAt(n.Field(ast.FieldLeft))
	right := d.TypeAt(n.Field(ast.FieldRight))
	if Is(left, FlagAny) || Is(right, FlagAny) {
		return Any()
	}
	switch n.Operator() {
	case "&&":
		return Simplify(Union(Falsy(left), right))
	case "||":
		return Simplify(Union(Truthy(left), right))
	case "??":
		return Simplify(Union(NonNullable(left), right))
	}
	return Any()
}

func (d *Declared) binary(n *ast.Node) Type {
	switch n.Operator() {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "instanceof", "in":
		return Boolean()
	case "+":
		left := d.TypeAt(n.Field(ast.FieldLeft))
		right := d.TypeAt(n.Field(ast.FieldRight))
		if Is(left, StringLike) || Is(right, StringLike) {
			return String()
		}
		if Is(left, NumberLike|FlagEnumLiteral) && Is(right, NumberLike|FlagEnumLiteral) {
			return Number()
		}
		return Any()
	case "-", "*", "/", "%", "**", "<<", ">>", ">>>", "&", "|", "^":
		return Number()
	}
	return Any()
}

func (d *Declared) call(n *ast.Node) Type {
	callee := n.Field(ast.FieldCallee)
	if callee.Is(ast.KindTSNonNullExpression) {
		callee = callee.Field(ast.FieldExpression)
	}
	if callee == nil {
		return Any()
	}
	switch callee.Kind {
	case ast.KindIdentifier:
		if fn := d.functions[callee.Name()]; fn != nil {
			return d.ReturnTypeOf(fn)
		}
		switch callee.Name() {
		case "String":
			return String()
		case "Number", "parseInt", "parseFloat":
			return Number()
		case "Boolean", "isNaN", "isFinite":
			return Boolean()
		}
	case ast.KindMemberExpression:
		if member := d.classMember(callee); member != nil && member.Is(ast.KindMethodDefinition) {
			return d.ReturnTypeOf(member)
		}
		obj := d.TypeAt(callee.Field(ast.FieldObject))
		if IsThenable(obj) {
			switch callee.Field(ast.FieldProperty).Name() {
			case "then", "catch", "finally":
				return Promise(Any())
			}
		}
	}
	return Any()
}

func (d *Declared) member(n *ast.Node) Type {
	if computed, _ := n.Attr(ast.AttrComputed); computed == "true" {
		return Any()
	}
	prop := n.Field(ast.FieldProperty).Name()
	obj := n.Field(ast.FieldObject)

	if obj.Is(ast.KindIdentifier) {
		if enum, ok := d.enums[obj.Name()]; ok && d.isEnumReference(obj) {
			for _, m := range enum.Members() {
				if m.String() == obj.Name()+"."+prop {
					return m
				}
			}
			return enum
		}
	}

	if member := d.classMember(n); member != nil {
		switch member.Kind {
		case ast.KindClassProperty:
			return d.propertyType(member)
		case ast.KindParameter:
			return d.parameterType(member)
		case ast.KindMethodDefinition:
			if kind, _ := member.Attr(ast.AttrKind); kind == "get" {
				return d.ReturnTypeOf(member)
			}
			return AnonymousObject("function")
		}
	}

	if prop == "length" {
		objType := d.TypeAt(obj)
		if Is(objType, StringLike) || objType.SymbolName() == "Array" {
			return Number()
		}
	}
	return Any()
}

func (d *Declared) isEnumReference(ident *ast.Node) bool {
	b := d.binding(ident)
	return b == nil || b.Is(ast.KindTSEnumDeclaration)
}

// classMember finds the declaration behind `x.prop` when x resolves to a
// class declared in this file.
func (d *Declared) classMember(n *ast.Node) *ast.Node {
	objType := d.TypeAt(n.Field(ast.FieldObject))
	if !Is(objType, FlagObject) {
		return nil
	}
	class := d.classes[objType.SymbolName()]
	if class == nil {
		return nil
	}
	prop := n.Field(ast.FieldProperty).Name()
	if prop == "" {
		return nil
	}
	body := class.Field(ast.FieldBody)
	if body == nil {
		return nil
	}
	for _, m := range body.Children {
		switch m.Kind {
		case ast.KindClassProperty, ast.KindMethodDefinition:
			if m.Field(ast.FieldKey).Name() == prop {
				return m
			}
		}
	}
	// Constructor parameter properties.
	for _, m := range body.Children {
		if kind, _ := m.Attr(ast.AttrKind); m.Is(ast.KindMethodDefinition) && kind == "constructor" {
			for _, p := range m.List(ast.ListParams) {
				if p.Name() == prop && len(p.Modifiers) > 0 {
					return p
				}
			}
		}
	}
	return nil
}

func (d *Declared) propertyType(prop *ast.Node) Type {
	var t Type
	switch {
	case prop.Field(ast.FieldTypeAnnotation) != nil:
		t = d.FromTypeNode(prop.Field(ast.FieldTypeAnnotation))
	case prop.Field(ast.FieldValue) != nil:
		t = d.TypeAt(prop.Field(ast.FieldValue))
		if !prop.HasModifier(ast.ModReadonly) {
			t = Widen(t)
		}
	default:
		return Any()
	}
	if opt, _ := prop.Attr(ast.AttrOptional); opt == "true" {
		return Union(t, Undefined())
	}
	return t
}

func (d *Declared) parameterType(p *ast.Node) Type {
	var t Type
	switch {
	case p.Field(ast.FieldTypeAnnotation) != nil:
		t = d.FromTypeNode(p.Field(ast.FieldTypeAnnotation))
	case p.Field(ast.FieldValue) != nil:
		return Widen(d.TypeAt(p.Field(ast.FieldValue)))
	default:
		return Any()
	}
	if opt, _ := p.Attr(ast.AttrOptional); opt == "true" {
		return Union(t, Undefined())
	}
	return t
}

func (d *Declared) identifier(n *ast.Node) Type {
	switch n.Name() {
	case "undefined":
		return Undefined()
	case "NaN", "Infinity":
		return Number()
	}

	decl := d.binding(n)
	if decl == nil {
		return Any()
	}
	switch decl.Kind {
	case ast.KindParameter:
		return d.parameterType(decl)
	case ast.KindVariableDeclarator:
		if ta := decl.Field(ast.FieldTypeAnnotation); ta != nil {
			return d.FromTypeNode(ta)
		}
		init := decl.Field(ast.FieldInit)
		if init == nil {
			return Any()
		}
		t := d.TypeAt(init)
		if kind, _ := decl.Parent.Attr(ast.AttrKind); kind != "const" {
			t = Widen(t)
		}
		return t
	case ast.KindFunctionDeclaration:
		return AnonymousObject("function")
	case ast.KindClassDeclaration:
		return AnonymousObject("typeof " + decl.Field(ast.FieldID).Name())
	case ast.KindTSEnumDeclaration:
		return AnonymousObject("typeof " + decl.Field(ast.FieldID).Name())
	}
	return Any()
}

// binding finds the declaration an identifier refers to by walking outward
// through enclosing functions and blocks.
func (d *Declared) binding(ident *ast.Node) *ast.Node {
	name := ident.Name()
	if name == "" {
		return nil
	}
	for p := ident.Parent; p != nil; p = p.Parent {
		switch p.Kind {
		case ast.KindFunctionDeclaration, ast.KindFunctionExpression,
			ast.KindArrowFunctionExpression, ast.KindMethodDefinition:
			for _, param := range p.List(ast.ListParams) {
				if param.Name() == name {
					return param
				}
			}
		case ast.KindForStatement:
			if decl := declaredIn(p.Field(ast.FieldInit), name); decl != nil {
				return decl
			}
		case ast.KindBlockStatement, ast.KindProgram:
			for _, stmt := range p.Children {
				if decl := declaredIn(stmt, name); decl != nil {
					return decl
				}
			}
		}
	}
	return nil
}

func declaredIn(stmt *ast.Node, name string) *ast.Node {
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.KindExportNamedDeclaration, ast.KindExportDefaultDeclaration:
		return declaredIn(stmt.Field(ast.FieldDeclaration), name)
	case ast.KindVariableDeclaration:
		for _, decl := range stmt.List(ast.ListDeclarations) {
			if decl.Field(ast.FieldID).Name() == name {
				return decl
			}
		}
	case ast.KindFunctionDeclaration, ast.KindClassDeclaration, ast.KindTSEnumDeclaration:
		if stmt.Field(ast.FieldID).Name() == name {
			return stmt
		}
	}
	return nil
}

// FromTypeNode converts a type annotation node into a Type.
func (d *Declared) FromTypeNode(n *ast.Node) Type {
	return d.fromTypeNode(n, 0)
}

func (d *Declared) fromTypeNode(n *ast.Node, depth int) Type {
	if n == nil || depth > maxAliasDepth {
		return Any()
	}
	switch n.Kind {
	case ast.KindTSKeyword:
		return keywordType(n.Name())
	case ast.KindTSLiteralType:
		return literalType(n)
	case ast.KindTSUnionType:
		members := make([]Type, 0, len(n.List(ast.ListTypes)))
		for _, m := range n.List(ast.ListTypes) {
			members = append(members, d.fromTypeNode(m, depth))
		}
		return Union(members...)
	case ast.KindTSArrayType:
		return Array(d.fromTypeNode(n.Field(ast.FieldElementType), depth))
	case ast.KindTSTypeReference:
		return d.reference(n, depth)
	}
	return Any()
}

func (d *Declared) reference(n *ast.Node, depth int) Type {
	name := n.Name()
	var args []Type
	for _, a := range n.List(ast.ListTypeParameters) {
		args = append(args, d.fromTypeNode(a, depth))
	}

	switch name {
	case "Promise", "PromiseLike":
		if len(args) == 0 {
			args = []Type{Any()}
		}
		return Object(name, args...)
	case "Array", "ReadonlyArray":
		if len(args) == 0 {
			return Array(Any())
		}
		return Array(args[0])
	}
	if enum, ok := d.enums[name]; ok {
		return enum
	}
	if enum, member, ok := strings.Cut(name, "."); ok {
		if e, found := d.enums[enum]; found {
			for _, m := range e.Members() {
				if m.String() == enum+"."+member {
					return m
				}
			}
		}
	}
	if alias := d.aliases[name]; alias != nil {
		return d.fromTypeNode(alias.Field(ast.FieldTypeAnnotation), depth+1)
	}
	return Object(name, args...)
}

func keywordType(name string) Type {
	switch name {
	case "string":
		return String()
	case "number":
		return Number()
	case "bigint":
		return BigInt()
	case "boolean":
		return Boolean()
	case "null":
		return Null()
	case "undefined":
		return Undefined()
	case "void":
		return Void()
	case "never":
		return Never()
	case "unknown":
		return Unknown()
	case "object":
		return AnonymousObject("object")
	case "symbol":
		return Object("Symbol")
	}
	return Any()
}

// Widen converts literal types to their base type, as TypeScript does for
// mutable bindings.
func Widen(t Type) Type {
	if t == nil {
		return Any()
	}
	f := t.Flags()
	switch {
	case f.Has(FlagEnumLiteral):
		return t
	case f.Has(FlagStringLiteral):
		return String()
	case f.Has(FlagNumberLiteral):
		return Number()
	case f.Has(FlagBooleanLiteral):
		return Boolean()
	}
	if IsUnion(t) {
		members := make([]Type, 0, len(t.Members()))
		for _, m := range t.Members() {
			members = append(members, Widen(m))
		}
		return Union(members...)
	}
	return t
}
