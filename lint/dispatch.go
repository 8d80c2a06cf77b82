package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semlint/processor/ast"
	"github.com/c360studio/semlint/typeinfo"
)

// Linter is the compiled dispatch table of every enabled rule. It holds no
// per-file state and may lint files from several goroutines.
type Linter struct {
	settings   Settings
	rules      []*activeRule
	bindings   []binding
	needsTypes bool
	logger     *slog.Logger
}

type activeRule struct {
	rule     *Rule
	severity Severity
	index    int
}

type binding struct {
	rule     *activeRule
	selector *Selector
	handler  Handler
}

// File is one parsed source file ready for analysis.
type File struct {
	Path    string
	Source  []byte
	Program *ast.Node
	// Types resolves expression types. Required when any enabled rule
	// needs type information.
	Types typeinfo.Checker
}

// Result is the outcome of linting one file.
type Result struct {
	Path        string
	Diagnostics []Diagnostic
	Failures    []CheckFailure
}

// New compiles the listeners of every rule enabled in settings, in
// registry order and, within a rule, in listener order.
func New(reg *Registry, settings Settings) (*Linter, error) {
	if settings.Logger == nil {
		settings.Logger = slog.Default()
	}
	if settings.ComponentDecorator == "" {
		settings.ComponentDecorator = DefaultComponentDecorator
	}

	for name := range settings.Rules {
		if _, ok := reg.Get(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
	}

	l := &Linter{settings: settings, logger: settings.Logger}
	for _, rule := range reg.Rules() {
		cfg, ok := settings.Rules[rule.Name]
		if !ok || cfg.Severity == SeverityOff {
			continue
		}
		if rule.NeedsTypes && !settings.TypeInfo {
			return nil, fmt.Errorf("%w: %s", ErrMissingTypeInfo, rule.Name)
		}

		listeners, err := rule.Create(NewOptions(cfg.Options, settings))
		if err != nil {
			if !errors.Is(err, ErrInvalidOptions) {
				err = fmt.Errorf("%w: %v", ErrInvalidOptions, err)
			}
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}

		active := &activeRule{rule: rule, severity: cfg.Severity, index: len(l.rules)}
		l.rules = append(l.rules, active)
		l.needsTypes = l.needsTypes || rule.NeedsTypes

		if listeners == nil {
			continue
		}
		for _, e := range listeners.entries {
			sel, err := ParseSelector(e.selector)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
			}
			l.bindings = append(l.bindings, binding{rule: active, selector: sel, handler: e.handler})
		}
	}

	l.logger.Debug("Linter compiled",
		slog.Int("rules", len(l.rules)),
		slog.Int("listeners", len(l.bindings)))
	return l, nil
}

// Rules returns the names of the enabled rules in dispatch order.
func (l *Linter) Rules() []string {
	names := make([]string, len(l.rules))
	for i, r := range l.rules {
		names[i] = r.rule.Name
	}
	return names
}

// NeedsTypes reports whether any enabled rule reads type information.
func (l *Linter) NeedsTypes() bool {
	return l.needsTypes
}

// LintFile walks f once, dispatching every node to matching handlers.
func (l *Linter) LintFile(ctx context.Context, f *File) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil || f.Program == nil {
		return nil, fmt.Errorf("lint %s: no program", filePath(f))
	}
	if l.needsTypes && f.Types == nil {
		return nil, fmt.Errorf("lint %s: %w", f.Path, ErrMissingTypeInfo)
	}

	start := time.Now()
	w := &walker{
		linter:  l,
		file:    f,
		tracker: NewComponentTracker(l.settings.ComponentDecorator),
		bag:     &Bag{},
		failed:  make([]bool, len(l.rules)),
		ctxs:    make([]*Context, len(l.rules)),
	}
	w.walk(f.Program)

	l.logger.Debug("File linted",
		slog.String("path", f.Path),
		slog.Int("diagnostics", w.bag.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{Path: f.Path, Diagnostics: w.bag.Items(), Failures: w.failures}, nil
}

func filePath(f *File) string {
	if f == nil {
		return "<nil>"
	}
	return f.Path
}

// walker is the state of one traversal of one file.
type walker struct {
	linter   *Linter
	file     *File
	tracker  *ComponentTracker
	bag      *Bag
	failed   []bool
	failures []CheckFailure
	ctxs     []*Context
}

func (w *walker) walk(n *ast.Node) {
	isClass := n.Kind == ast.KindClassDeclaration
	if isClass {
		w.tracker.OnEnter(n)
	}

	var exits []*binding
	for i := range w.linter.bindings {
		b := &w.linter.bindings[i]
		if w.failed[b.rule.index] || !b.selector.Match(n) {
			continue
		}
		if b.selector.Exit() {
			exits = append(exits, b)
			continue
		}
		w.invoke(b, n)
	}

	for _, c := range n.Children {
		w.walk(c)
	}

	for _, b := range exits {
		if !w.failed[b.rule.index] {
			w.invoke(b, n)
		}
	}

	if isClass {
		w.tracker.OnExit(n)
	}
}

func (w *walker) invoke(b *binding, n *ast.Node) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok {
				err = fmt.Errorf("%v", p)
			}
			failure := CheckFailure{Rule: b.rule.rule.Name, Path: w.file.Path, Node: n.String(), Err: err}
			w.failed[b.rule.index] = true
			w.failures = append(w.failures, failure)
			w.linter.logger.Warn("Rule failed, skipping for this file",
				slog.String("rule", failure.Rule),
				slog.String("path", failure.Path),
				slog.String("node", failure.Node),
				slog.String("error", err.Error()))
		}
	}()
	b.handler(w.context(b.rule), n)
}

func (w *walker) context(r *activeRule) *Context {
	if c := w.ctxs[r.index]; c != nil {
		return c
	}
	c := &Context{walker: w, rule: r}
	w.ctxs[r.index] = c
	return c
}

// Context is passed to every handler invocation. It is valid only for the
// duration of the file traversal that created it.
type Context struct {
	walker    *walker
	rule      *activeRule
	fileScope *Scope
}

// RuleName returns the name of the rule being run.
func (c *Context) RuleName() string {
	return c.rule.rule.Name
}

// Severity returns the configured severity of the rule.
func (c *Context) Severity() Severity {
	return c.rule.severity
}

// Path returns the path of the file being linted.
func (c *Context) Path() string {
	return c.walker.file.Path
}

// Source returns the raw content of the file being linted.
func (c *Context) Source() []byte {
	return c.walker.file.Source
}

// Text returns the source text of n, falling back to n.Text when the file
// has no source or the span is out of range.
func (c *Context) Text(n *ast.Node) string {
	if n == nil {
		return ""
	}
	src := c.walker.file.Source
	if n.Span.EndByte > n.Span.StartByte && n.Span.EndByte <= len(src) {
		return string(src[n.Span.StartByte:n.Span.EndByte])
	}
	return n.Text
}

// Types returns the file's type checker, or nil when none was supplied.
func (c *Context) Types() typeinfo.Checker {
	return c.walker.file.Types
}

// Settings returns the run settings.
func (c *Context) Settings() Settings {
	return c.walker.linter.settings
}

// Logger returns the run logger.
func (c *Context) Logger() *slog.Logger {
	return c.walker.linter.logger
}

// InsideComponent reports whether the node being visited is inside a
// component declaration.
func (c *Context) InsideComponent() bool {
	return c.walker.tracker.InsideComponent()
}

// Component returns the innermost enclosing component declaration.
func (c *Context) Component() *ast.Node {
	return c.walker.tracker.Current()
}

// ComponentAnnotation returns the component decorator of Component().
func (c *Context) ComponentAnnotation() *ast.Node {
	return c.walker.tracker.Annotation()
}

// Tracker exposes the file's component tracker.
func (c *Context) Tracker() *ComponentTracker {
	return c.walker.tracker
}

// Scoped returns this rule's symbol table for the innermost component. It
// is discarded when the component is left. Outside a component it returns
// the file scope.
func (c *Context) Scoped() *Scope {
	if s := c.walker.tracker.scope(c.rule.rule.Name); s != nil {
		return s
	}
	return c.FileScoped()
}

// FileScoped returns this rule's symbol table for the current file.
func (c *Context) FileScoped() *Scope {
	if c.fileScope == nil {
		c.fileScope = NewScope()
	}
	return c.fileScope
}

// Report records a diagnostic at n.
func (c *Context) Report(n *ast.Node, message string) {
	c.report(n, message, nil)
}

// Reportf records a formatted diagnostic at n.
func (c *Context) Reportf(n *ast.Node, format string, args ...any) {
	c.report(n, fmt.Sprintf(format, args...), nil)
}

// ReportFix records a diagnostic at n carrying a fix.
func (c *Context) ReportFix(n *ast.Node, message string, fix Fix) {
	c.report(n, message, &fix)
}

func (c *Context) report(n *ast.Node, message string, fix *Fix) {
	span := ast.Span{File: c.walker.file.Path}
	if n != nil {
		span = n.Span
		if span.File == "" {
			span.File = c.walker.file.Path
		}
	}
	c.walker.bag.Report(Diagnostic{
		Rule:     c.rule.rule.Name,
		Severity: c.rule.severity,
		Message:  message,
		Span:     span,
		Fix:      fix,
	})
}
