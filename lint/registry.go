package lint

import (
	"fmt"
	"sync"

	"github.com/c360studio/semlint/processor/ast"
)

// Handler is invoked for every node a selector matches.
type Handler func(ctx *Context, n *ast.Node)

// Rule describes one check. Create is called once per Linter with the
// rule's configured options and returns the listeners to compile. State
// that must not outlive a component or a file belongs in ctx.Scoped() or
// ctx.FileScoped(), never in the closure.
type Rule struct {
	Name        string
	Description string
	Category    string
	// NeedsTypes rules read ctx.Types() and refuse to run without a
	// type checker.
	NeedsTypes bool
	// Fixable rules may attach a Fix to their diagnostics.
	Fixable bool
	Create  func(opts Options) (*Listeners, error)
}

// Listeners maps selectors to handlers in registration order.
type Listeners struct {
	entries []listenerEntry
}

type listenerEntry struct {
	selector string
	handler  Handler
}

// NewListeners creates an empty listener set.
func NewListeners() *Listeners {
	return &Listeners{}
}

// On registers handler for selector. A trailing ":exit" fires the handler
// when the matched node is left instead of entered.
func (l *Listeners) On(selector string, handler Handler) *Listeners {
	l.entries = append(l.entries, listenerEntry{selector: selector, handler: handler})
	return l
}

// OnExit registers handler for leaving nodes matched by selector.
func (l *Listeners) OnExit(selector string, handler Handler) *Listeners {
	return l.On(selector+":exit", handler)
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	return len(l.entries)
}

// Registry holds rules in registration order.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]*Rule
	order []string
}

// NewRegistry creates a new empty rule registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]*Rule)}
}

// Register adds a rule. Names must be unique.
func (r *Registry) Register(rule *Rule) error {
	if rule == nil || rule.Name == "" {
		return fmt.Errorf("rule must have a name")
	}
	if rule.Create == nil {
		return fmt.Errorf("rule %s has no Create function", rule.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.Name]; exists {
		return fmt.Errorf("rule already registered: %s", rule.Name)
	}
	r.rules[rule.Name] = rule
	r.order = append(r.order, rule.Name)
	return nil
}

// MustRegister is Register that panics on error, for init() registration.
func (r *Registry) MustRegister(rules ...*Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// Get returns the rule registered under name.
func (r *Registry) Get(name string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[name]
	return rule, ok
}

// Rules returns all rules in registration order.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Rule, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.rules[name])
	}
	return out
}

// Names returns all rule names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// DefaultRegistry is the global rule registry.
// Rule packages register themselves via init() functions.
var DefaultRegistry = NewRegistry()
