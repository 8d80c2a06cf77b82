package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Format represents the output format for reporting diagnostics.
type Format int

const (
	// FormatText outputs diagnostics in a human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs diagnostics as a JSON document.
	FormatJSON
	// FormatSARIF outputs a SARIF 2.1.0 log.
	FormatSARIF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatSARIF:
		return "sarif"
	default:
		return "unknown"
	}
}

// ParseFormat parses text|json|sarif.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	}
	return FormatText, fmt.Errorf("unsupported format %q (want text, json or sarif)", s)
}

// Summary counts the diagnostics of a run.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Failures int `json:"failures"`
}

// Summarize counts diagnostics and failures across results.
func Summarize(results []*Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case SeverityError:
				s.Errors++
			case SeverityWarning:
				s.Warnings++
			}
		}
		s.Failures += len(r.Failures)
	}
	return s
}

// Reporter handles formatting and outputting diagnostics.
type Reporter struct {
	writer  io.Writer
	format  Format
	color   bool
	runID   string
	rules   []*Rule
	version string
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithColor enables ANSI colours in text output.
func WithColor(enabled bool) ReporterOption {
	return func(r *Reporter) { r.color = enabled }
}

// WithRules lists rule metadata in SARIF output.
func WithRules(rules []*Rule) ReporterOption {
	return func(r *Reporter) { r.rules = rules }
}

// WithVersion sets the tool version reported in SARIF output.
func WithVersion(v string) ReporterOption {
	return func(r *Reporter) { r.version = v }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) ReporterOption {
	return func(r *Reporter) { r.runID = id }
}

// NewReporter creates a Reporter with the specified output writer and format.
func NewReporter(writer io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		writer: writer,
		format: format,
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the identifier stamped on machine-readable output.
func (r *Reporter) RunID() string {
	return r.runID
}

// Report writes every diagnostic of results, sorted by location.
func (r *Reporter) Report(results []*Result) error {
	var all []Diagnostic
	for _, res := range results {
		all = append(all, res.Diagnostics...)
	}
	SortDiagnostics(all)
	summary := Summarize(results)

	switch r.format {
	case FormatText:
		return r.reportText(all, summary)
	case FormatJSON:
		return r.reportJSON(all, summary)
	case FormatSARIF:
		return r.reportSARIF(all)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) reportText(diags []Diagnostic, summary Summary) error {
	sevColor := map[Severity]*color.Color{
		SeverityError:   color.New(color.FgRed),
		SeverityWarning: color.New(color.FgYellow),
	}
	dim := color.New(color.Faint)
	bold := color.New(color.Bold)
	for _, c := range []*color.Color{sevColor[SeverityError], sevColor[SeverityWarning], dim, bold} {
		if r.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	file := ""
	for _, d := range diags {
		if d.Span.File != file {
			if file != "" {
				if _, err := fmt.Fprintln(r.writer); err != nil {
					return fmt.Errorf("failed to write text output: %w", err)
				}
			}
			file = d.Span.File
			if _, err := bold.Fprintln(r.writer, file); err != nil {
				return fmt.Errorf("failed to write text output: %w", err)
			}
		}
		sev := d.Severity.String()
		if c, ok := sevColor[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
		fixable := ""
		if d.Fix != nil {
			fixable = dim.Sprint(" (fixable)")
		}
		if _, err := fmt.Fprintf(r.writer, "  %d:%d  %s  %s%s  %s\n",
			d.Span.StartLine, d.Span.StartColumn, sev, d.Message, fixable, dim.Sprint(d.Rule)); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
	}

	total := summary.Errors + summary.Warnings
	if total == 0 {
		return nil
	}
	line := fmt.Sprintf("%d problem%s (%d error%s, %d warning%s)",
		total, plural(total), summary.Errors, plural(summary.Errors), summary.Warnings, plural(summary.Warnings))
	c := sevColor[SeverityWarning]
	if summary.Errors > 0 {
		c = sevColor[SeverityError]
	}
	if _, err := fmt.Fprintf(r.writer, "\n%s\n", c.Sprint(line)); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

type jsonDiagnostic struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Fix       *Fix   `json:"fix,omitempty"`
}

func (r *Reporter) reportJSON(diags []Diagnostic, summary Summary) error {
	out := struct {
		RunID       string           `json:"run_id"`
		Diagnostics []jsonDiagnostic `json:"diagnostics"`
		Summary     Summary          `json:"summary"`
	}{
		RunID:       r.runID,
		Diagnostics: make([]jsonDiagnostic, 0, len(diags)),
		Summary:     summary,
	}
	for _, d := range diags {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			File:      d.Span.File,
			Line:      d.Span.StartLine,
			Column:    d.Span.StartColumn,
			EndLine:   d.Span.EndLine,
			EndColumn: d.Span.EndColumn,
			Rule:      d.Rule,
			Severity:  d.Severity.String(),
			Message:   d.Message,
			Fix:       d.Fix,
		})
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (r *Reporter) reportSARIF(diags []Diagnostic) error {
	seen := make(map[string]bool)
	var rules []map[string]any
	for _, rule := range r.rules {
		seen[rule.Name] = true
		rules = append(rules, sarifRule(rule.Name, rule.Description))
	}
	var extra []string
	for _, d := range diags {
		if !seen[d.Rule] {
			seen[d.Rule] = true
			extra = append(extra, d.Rule)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		rules = append(rules, sarifRule(name, name))
	}

	results := make([]map[string]any, 0, len(diags))
	for _, d := range diags {
		results = append(results, map[string]any{
			"ruleId":  d.Rule,
			"level":   sarifLevel(d.Severity),
			"message": map[string]any{"text": d.Message},
			"locations": []map[string]any{{
				"physicalLocation": map[string]any{
					"artifactLocation": map[string]any{"uri": filepath.ToSlash(d.Span.File)},
					"region": map[string]any{
						"startLine":   d.Span.StartLine,
						"startColumn": d.Span.StartColumn,
						"endLine":     d.Span.EndLine,
						"endColumn":   d.Span.EndColumn,
					},
				},
			}},
		})
	}

	driver := map[string]any{
		"name":  "semlint",
		"rules": rules,
	}
	if r.version != "" {
		driver["version"] = r.version
	}
	sarif := map[string]any{
		"version": "2.1.0",
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"runs": []map[string]any{{
			"tool":              map[string]any{"driver": driver},
			"automationDetails": map[string]any{"id": r.runID},
			"results":           results,
		}},
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sarif); err != nil {
		return fmt.Errorf("failed to encode SARIF output: %w", err)
	}
	return nil
}

func sarifRule(name, description string) map[string]any {
	return map[string]any{
		"id":               name,
		"name":             name,
		"shortDescription": map[string]any{"text": description},
	}
}

func sarifLevel(s Severity) string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}
