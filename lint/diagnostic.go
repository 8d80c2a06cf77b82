// Package lint is the rule engine: it compiles rule listeners into a single
// selector dispatch table, walks each file once, tracks the enclosing
// component, and collects diagnostics.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semlint/processor/ast"
)

// Severity is the configured level of a rule and of its diagnostics.
type Severity int

const (
	// SeverityOff disables a rule.
	SeverityOff Severity = iota
	// SeverityWarning reports without failing the run.
	SeverityWarning
	// SeverityError fails the run.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity accepts off|warn|warning|error and the numeric forms 0|1|2.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarning, nil
	case "error", "2":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("invalid severity %q (want off, warn or error)", s)
}

// Fix is a deterministic text replacement of the byte range [Start, End).
// It is reported, never applied.
type Fix struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// ReplaceNode returns a fix replacing the source text of n.
func ReplaceNode(n *ast.Node, text string) Fix {
	return Fix{Start: n.Span.StartByte, End: n.Span.EndByte, Text: text}
}

// InsertBefore returns a fix inserting text at the start of n.
func InsertBefore(n *ast.Node, text string) Fix {
	return Fix{Start: n.Span.StartByte, End: n.Span.StartByte, Text: text}
}

// InsertAfter returns a fix inserting text at the end of n.
func InsertAfter(n *ast.Node, text string) Fix {
	return Fix{Start: n.Span.EndByte, End: n.Span.EndByte, Text: text}
}

// Diagnostic is a single rule violation.
type Diagnostic struct {
	Rule     string
	Severity Severity
	Message  string
	Span     ast.Span
	Fix      *Fix
}

// String formats the diagnostic as file:line:col [rule] message.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s", d.Span, d.Rule, d.Message)
}

// Sink receives diagnostics as handlers report them.
type Sink interface {
	Report(d Diagnostic)
}

// Bag is an append-only Sink owned by one file's traversal.
type Bag struct {
	items []Diagnostic
}

// Report implements Sink.
func (b *Bag) Report(d Diagnostic) {
	b.items = append(b.items, d)
}

// Items returns the collected diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len returns the number of diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Count returns how many diagnostics have the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// SortDiagnostics orders diagnostics by file, line, column and rule. The
// sort is stable so equal keys keep report order.
func SortDiagnostics(items []Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Span, items[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn < b.StartColumn
		}
		return items[i].Rule < items[j].Rule
	})
}
