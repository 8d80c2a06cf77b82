package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/lint"
)

func TestAll(t *testing.T) {
	rules := All()
	require.Len(t, rules, 24)

	seen := make(map[string]bool)
	var typed []string
	for _, r := range rules {
		assert.False(t, seen[r.Name], "duplicate rule %s", r.Name)
		seen[r.Name] = true
		assert.NotEmpty(t, r.Description, r.Name)
		assert.NotEmpty(t, r.Category, r.Name)
		assert.NotNil(t, r.Create, r.Name)
		if r.NeedsTypes {
			typed = append(typed, r.Name)
		}
	}
	assert.Equal(t, []string{"strict-boolean-conditions", "async-methods", "render-returns-host"}, typed)
	assert.Equal(t, "ban-side-effects", rules[0].Name)
	assert.Equal(t, "strict-mutable", rules[len(rules)-1].Name)
}

func TestRegister(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Len(t, reg.Names(), 24)

	err := Register(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register ban-side-effects")
}

func TestDefaultRegistry(t *testing.T) {
	for _, r := range All() {
		got, ok := lint.DefaultRegistry.Get(r.Name)
		require.True(t, ok, r.Name)
		assert.Same(t, r, got)
	}
}

func TestRules_DefaultOptions(t *testing.T) {
	// Every rule except required-prefix must start without options.
	for _, r := range All() {
		err := newLinter(r.Name)
		if r.Name == "required-prefix" {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err, r.Name)
	}
}
