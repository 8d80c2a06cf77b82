// Package ast defines the syntax tree consumed by the lint engine and the
// front-end registry that produces it.
//
// Node kinds follow ESTree naming so selectors read the same way they do in
// ESLint-style tooling (e.g. "ClassProperty > Decorator").
package ast

import (
	"fmt"
	"strings"
)

// Span locates a node in its source file. Lines and columns are 1-based,
// byte offsets are 0-based and End is exclusive.
type Span struct {
	File        string `json:"file"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
	StartByte   int    `json:"-"`
	EndByte     int    `json:"-"`
}

// String formats the span as file:line:col.
func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.StartLine, s.StartColumn)
}

// Node is a single element of the syntax tree.
//
// Parent is a non-owning back reference used for upward queries only.
// Every node reachable through Fields or Lists also appears in Children,
// in source order, so a plain walk over Children visits the whole tree.
type Node struct {
	Kind     Kind
	Parent   *Node
	Children []*Node

	// Fields holds single named children ("key", "callee", "test", ...).
	Fields map[string]*Node
	// Lists holds ordered named children ("arguments", "properties", ...).
	Lists map[string][]*Node
	// Attrs holds scalar attributes ("name", "operator", "kind", "value", ...).
	Attrs map[string]string

	// Modifiers lists keyword modifiers in source order
	// ("public", "private", "protected", "readonly", "static", "async").
	Modifiers []string
	// Docs holds JSDoc blocks attached directly before the node.
	Docs []string

	Span Span
	Text string
}

// New creates a detached node of the given kind.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Ident creates an Identifier node.
func Ident(name string) *Node {
	return New(KindIdentifier).WithAttr(AttrName, name).WithText(name)
}

// Set attaches child under a named field.
func (n *Node) Set(field string, child *Node) *Node {
	if child == nil {
		return n
	}
	if n.Fields == nil {
		n.Fields = make(map[string]*Node)
	}
	n.Fields[field] = child
	return n.Append(child)
}

// AddTo appends children to a named list.
func (n *Node) AddTo(list string, children ...*Node) *Node {
	if n.Lists == nil {
		n.Lists = make(map[string][]*Node)
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Lists[list] = append(n.Lists[list], c)
		n.Append(c)
	}
	return n
}

// Append adds unnamed children and links their parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Prepend inserts children before existing ones, used for decorators that
// the front end discovers after the declaration node was built.
func (n *Node) Prepend(children ...*Node) *Node {
	var linked []*Node
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		linked = append(linked, c)
	}
	n.Children = append(linked, n.Children...)
	return n
}

// WithAttr sets a scalar attribute.
func (n *Node) WithAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// WithText sets the node's source text.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// WithModifiers appends keyword modifiers.
func (n *Node) WithModifiers(mods ...string) *Node {
	n.Modifiers = append(n.Modifiers, mods...)
	return n
}

// WithDocs appends JSDoc blocks.
func (n *Node) WithDocs(docs ...string) *Node {
	n.Docs = append(n.Docs, docs...)
	return n
}

// At sets the node's span.
func (n *Node) At(span Span) *Node {
	n.Span = span
	return n
}

// Is reports whether n is non-nil and of the given kind.
func (n *Node) Is(kind Kind) bool {
	return n != nil && n.Kind == kind
}

// Field returns the named child or nil. Safe on a nil receiver.
func (n *Node) Field(name string) *Node {
	if n == nil || n.Fields == nil {
		return nil
	}
	return n.Fields[name]
}

// List returns the named child list. Safe on a nil receiver.
func (n *Node) List(name string) []*Node {
	if n == nil || n.Lists == nil {
		return nil
	}
	return n.Lists[name]
}

// Attr returns a scalar attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// Name returns the "name" attribute, empty when absent.
func (n *Node) Name() string {
	v, _ := n.Attr(AttrName)
	return v
}

// Operator returns the "operator" attribute, empty when absent.
func (n *Node) Operator() string {
	v, _ := n.Attr(AttrOperator)
	return v
}

// HasModifier reports whether the node carries the keyword modifier.
func (n *Node) HasModifier(mod string) bool {
	if n == nil {
		return false
	}
	for _, m := range n.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// Decorators returns the node's Decorator children in source order.
func (n *Node) Decorators() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == KindDecorator {
			out = append(out, c)
		}
	}
	return out
}

// Unwrap returns the expression under any chain of type casts and non-null
// assertions. Structural checks use it; type queries must not.
func (n *Node) Unwrap() *Node {
	for n != nil {
		switch n.Kind {
		case KindTSAsExpression, KindTSTypeAssertion, KindTSNonNullExpression:
			n = n.Field(FieldExpression)
		default:
			return n
		}
	}
	return nil
}

// Ancestor returns the nearest ancestor of the given kind, or nil.
func (n *Node) Ancestor(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// Root returns the topmost ancestor (normally the Program).
func (n *Node) Root() *Node {
	if n == nil {
		return nil
	}
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Resolve follows a dotted path of field names and returns the attribute
// named by the final segment. The segment "type" yields the node kind.
//
//	n.Resolve("expression.callee.name")
//	n.Resolve("left.object.type")
func (n *Node) Resolve(path string) (string, bool) {
	if n == nil || path == "" {
		return "", false
	}
	segs := strings.Split(path, ".")
	cur := n
	for _, seg := range segs[:len(segs)-1] {
		cur = cur.Field(seg)
		if cur == nil {
			return "", false
		}
	}
	last := segs[len(segs)-1]
	if last == "type" {
		return string(cur.Kind), true
	}
	if v, ok := cur.Attr(last); ok {
		return v, true
	}
	// A field present without a scalar attribute still "exists".
	if cur.Field(last) != nil {
		return "", true
	}
	return "", false
}

// String returns a short description used in logs and test failures.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if name := n.Name(); name != "" {
		return fmt.Sprintf("%s(%s)@%d:%d", n.Kind, name, n.Span.StartLine, n.Span.StartColumn)
	}
	return fmt.Sprintf("%s@%d:%d", n.Kind, n.Span.StartLine, n.Span.StartColumn)
}

// Inspect walks the tree depth-first in source order. If fn returns false
// the node's children are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Inspect(c, fn)
	}
}
