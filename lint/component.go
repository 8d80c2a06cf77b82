package lint

import (
	"github.com/c360studio/semlint/processor/ast"
)

// DefaultComponentDecorator marks a class as a component.
const DefaultComponentDecorator = "Component"

// ComponentTracker follows which component declaration encloses the node
// being visited. It is a stack so nested component classes are supported;
// each frame also owns the per-rule symbol tables of its component.
//
// A tracker belongs to one file's traversal and is not safe for concurrent
// use.
type ComponentTracker struct {
	decorator string
	frames    []*componentFrame
	pushes    int
	pops      int
}

type componentFrame struct {
	decl       *ast.Node
	annotation *ast.Node
	scopes     map[string]*Scope
}

// NewComponentTracker creates a tracker for classes decorated with
// decorator (DefaultComponentDecorator when empty).
func NewComponentTracker(decorator string) *ComponentTracker {
	if decorator == "" {
		decorator = DefaultComponentDecorator
	}
	return &ComponentTracker{decorator: decorator}
}

// OnEnter pushes decl if it carries the component decorator and reports
// whether it did.
func (t *ComponentTracker) OnEnter(decl *ast.Node) bool {
	ann := FindAnnotation(decl, t.decorator)
	if ann == nil {
		return false
	}
	t.frames = append(t.frames, &componentFrame{decl: decl, annotation: ann})
	t.pushes++
	return true
}

// OnExit pops the top frame only when it belongs to decl, so leaving a
// nested plain class never clears the enclosing component.
func (t *ComponentTracker) OnExit(decl *ast.Node) bool {
	n := len(t.frames)
	if n == 0 || t.frames[n-1].decl != decl {
		return false
	}
	t.frames[n-1] = nil
	t.frames = t.frames[:n-1]
	t.pops++
	return true
}

// InsideComponent reports whether a component declaration is open.
func (t *ComponentTracker) InsideComponent() bool {
	return len(t.frames) > 0
}

// Current returns the innermost open component declaration, or nil.
func (t *ComponentTracker) Current() *ast.Node {
	if f := t.top(); f != nil {
		return f.decl
	}
	return nil
}

// Annotation returns the component decorator of the innermost component.
func (t *ComponentTracker) Annotation() *ast.Node {
	if f := t.top(); f != nil {
		return f.annotation
	}
	return nil
}

// Depth returns the number of open components.
func (t *ComponentTracker) Depth() int {
	return len(t.frames)
}

// Pushes returns how many components were entered.
func (t *ComponentTracker) Pushes() int {
	return t.pushes
}

// Pops returns how many components were left.
func (t *ComponentTracker) Pops() int {
	return t.pops
}

// Decorator returns the decorator name this tracker recognises.
func (t *ComponentTracker) Decorator() string {
	return t.decorator
}

func (t *ComponentTracker) top() *componentFrame {
	if len(t.frames) == 0 {
		return nil
	}
	return t.frames[len(t.frames)-1]
}

// scope returns the innermost component's symbol table for rule, or nil
// outside a component.
func (t *ComponentTracker) scope(rule string) *Scope {
	f := t.top()
	if f == nil {
		return nil
	}
	if f.scopes == nil {
		f.scopes = make(map[string]*Scope)
	}
	s, ok := f.scopes[rule]
	if !ok {
		s = NewScope()
		f.scopes[rule] = s
	}
	return s
}

// Symbol is a named declaration recorded in a Scope.
type Symbol struct {
	Name string
	Node *ast.Node
}

// Scope is a set of named symbol tables. Symbols keep declaration order and
// the first declaration of a name wins.
type Scope struct {
	sets map[string]*symbolSet
}

type symbolSet struct {
	order []Symbol
	index map[string]int
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{sets: make(map[string]*symbolSet)}
}

// Declare records name in the table set. It reports false if name was
// already declared there.
func (s *Scope) Declare(set, name string, node *ast.Node) bool {
	tbl, ok := s.sets[set]
	if !ok {
		tbl = &symbolSet{index: make(map[string]int)}
		s.sets[set] = tbl
	}
	if _, exists := tbl.index[name]; exists {
		return false
	}
	tbl.index[name] = len(tbl.order)
	tbl.order = append(tbl.order, Symbol{Name: name, Node: node})
	return true
}

// Lookup finds name in the table set.
func (s *Scope) Lookup(set, name string) (*ast.Node, bool) {
	tbl, ok := s.sets[set]
	if !ok {
		return nil, false
	}
	i, ok := tbl.index[name]
	if !ok {
		return nil, false
	}
	return tbl.order[i].Node, true
}

// Has reports whether name is declared in the table set.
func (s *Scope) Has(set, name string) bool {
	_, ok := s.Lookup(set, name)
	return ok
}

// Symbols returns the table set in declaration order.
func (s *Scope) Symbols(set string) []Symbol {
	tbl, ok := s.sets[set]
	if !ok {
		return nil
	}
	return tbl.order
}
