package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/lint"
)

const tagsSource = `
@Component({ tag: 'st-button' })
export class StButton {}

const PREFIX = 'my-';

@Component({ tag: PREFIX + 'button' })
export class MyButton {}

@Component({ tag: computeTag() })
export class Dynamic {}

class Plain {}
`

func TestBanPrefix(t *testing.T) {
	diags := lintSource(t, "src/buttons.tsx", tagsSource, only("ban-prefix"))
	assert.Equal(t, []string{"The component with tag name st-button have a banned prefix."}, messages(diags))
	assert.Equal(t, []int{3}, lines(diags), "reported at the class keyword")

	diags = lintSource(t, "src/buttons.tsx", tagsSource, only("ban-prefix", []any{"my-"}))
	assert.Equal(t, []string{"The component with tag name my-button have a banned prefix."}, messages(diags),
		"the tag is folded from a top-level const")
}

func TestRequiredPrefix(t *testing.T) {
	diags := lintSource(t, "src/buttons.tsx", tagsSource, only("required-prefix", []any{"my-", "x-"}))
	assert.Equal(t, []string{"The component with tagName st-button have not a valid prefix."}, messages(diags))

	err := newLinter("required-prefix")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lint.ErrInvalidOptions))
}

func TestClassPattern(t *testing.T) {
	diags := lintSource(t, "src/buttons.tsx", tagsSource, only("class-pattern", map[string]any{"pattern": "^My"}))
	assert.Equal(t, []string{"The class name in component with tag name st-button is not valid (/^My/)."}, messages(diags))

	diags = lintSource(t, "src/buttons.tsx", tagsSource,
		only("class-pattern", map[string]any{"pattern": "^(st|my)", "ignoreCase": true}))
	assert.Empty(t, diags)

	assert.Empty(t, lintSource(t, "src/buttons.tsx", tagsSource, only("class-pattern")), "no pattern, nothing to check")

	err := newLinter("class-pattern", map[string]any{"pattern": "("})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lint.ErrInvalidOptions))
}
