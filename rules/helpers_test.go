package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast/ts"
	"github.com/c360studio/semlint/typeinfo"
)

// lintSource parses src with the TypeScript front end and runs the given
// rules with declared types. Diagnostics come back sorted by position.
func lintSource(t *testing.T, path, src string, rules map[string]lint.RuleConfig) []lint.Diagnostic {
	t.Helper()
	return lintWith(t, path, src, lint.Settings{StrictNullChecks: true, TypeInfo: true, Rules: rules})
}

func lintWith(t *testing.T, path, src string, settings lint.Settings) []lint.Diagnostic {
	t.Helper()
	parsed, err := ts.NewParser().ParseSource(context.Background(), path, []byte(src))
	require.NoError(t, err)

	reg := lint.NewRegistry()
	require.NoError(t, Register(reg))
	l, err := lint.New(reg, settings)
	require.NoError(t, err)

	res, err := l.LintFile(context.Background(), &lint.File{
		Path:    path,
		Source:  parsed.Source,
		Program: parsed.Program,
		Types:   typeinfo.NewDeclared(parsed.Program),
	})
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	lint.SortDiagnostics(res.Diagnostics)
	return res.Diagnostics
}

// only enables one rule at error severity.
func only(rule string, options ...any) map[string]lint.RuleConfig {
	return map[string]lint.RuleConfig{rule: {Severity: lint.SeverityError, Options: options}}
}

func newLinter(rule string, options ...any) error {
	reg := lint.NewRegistry()
	if err := Register(reg); err != nil {
		return err
	}
	_, err := lint.New(reg, lint.Settings{TypeInfo: true, Rules: only(rule, options...)})
	return err
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func lines(diags []lint.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Span.StartLine)
	}
	return out
}

// applyFix returns src with the diagnostic's fix applied.
func applyFix(t *testing.T, src string, d lint.Diagnostic) string {
	t.Helper()
	require.NotNil(t, d.Fix, "diagnostic has no fix: %s", d)
	return src[:d.Fix.Start] + d.Fix.Text + src[d.Fix.End:]
}
