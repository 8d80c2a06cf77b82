package config

import (
	"maps"

	"github.com/c360studio/semlint/lint"
)

const (
	PresetBase        = "base"
	PresetRecommended = "recommended"
	PresetStrict      = "strict"
)

const (
	warn = lint.SeverityWarning
	fail = lint.SeverityError
)

var basePreset = map[string]RuleSetting{
	"async-methods":          Rule(fail),
	"ban-prefix":             Rule(fail, []any{"stencil", "stnl", "st"}),
	"decorators-context":     Rule(fail),
	"element-type":           Rule(fail),
	"host-data-deprecated":   Rule(fail),
	"methods-must-be-public": Rule(fail),
	"no-unused-watch":        Rule(fail),
	"prefer-vdom-listener":   Rule(fail),
	"props-must-be-public":   Rule(fail),
	"render-returns-host":    Rule(fail),
	"reserved-member-names":  Rule(fail),
	"single-export":          Rule(fail),
}

var recommendedPreset = overlay(basePreset, map[string]RuleSetting{
	"strict-boolean-conditions": Rule(warn),
	"ban-exported-const-enums":  Rule(fail),
	"strict-mutable":            Rule(fail),
	"decorators-style": Rule(fail, map[string]any{
		"prop":    "inline",
		"state":   "inline",
		"element": "inline",
		"event":   "inline",
		"method":  "multiline",
		"watch":   "multiline",
		"listen":  "multiline",
	}),
	"own-methods-must-be-private": Rule(warn),
	"own-props-must-be-private":   Rule(warn),
	"dependency-suggestions":      Rule(warn),
	"required-jsdoc":              Rule(warn),
})

var strictPreset = overlay(recommendedPreset, map[string]RuleSetting{
	"strict-boolean-conditions": Rule(fail),
})

var presets = map[string]map[string]RuleSetting{
	PresetBase:        basePreset,
	PresetRecommended: recommendedPreset,
	PresetStrict:      strictPreset,
}

func overlay(base, over map[string]RuleSetting) map[string]RuleSetting {
	out := maps.Clone(base)
	maps.Copy(out, over)
	return out
}

// Preset returns a copy of the named rule set. The empty name and unknown
// names give an empty set.
func Preset(name string) map[string]RuleSetting {
	out := maps.Clone(presets[name])
	if out == nil {
		out = make(map[string]RuleSetting)
	}
	return out
}

// PresetNames lists the presets in order of strictness.
func PresetNames() []string {
	return []string{PresetBase, PresetRecommended, PresetStrict}
}

// InPreset reports whether the named preset enables rule.
func InPreset(name, rule string) bool {
	rs, ok := presets[name][rule]
	return ok && rs.Severity != lint.SeverityOff
}
