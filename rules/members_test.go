package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const membersSource = `import { Component, Method, Prop } from '@stencil/core';

@Component({ tag: 'my-cmp' })
export class MyCmp {
  @Prop() private secret: string;
  @Prop() readonly ok: string;
  @Prop() plain: string;
  @Prop({ mutable: true }) value: string;
  @Prop() readonly title: string;
  @Prop() readonly 'data-id': string;
  count = 0;
  private cache = 1;

  @Method() private async hidden() {}
  @Method() async open() {}
  helper() {}
  private inner() {}
  componentDidLoad() {}
  hostData() {
    return {};
  }
  render() {
    return null;
  }
}

class Helper {
  count = 0;
  helper() {}
  hostData() {}
  @Prop() private secret: string;
}
`

func TestMethodsMustBePublic(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("methods-must-be-public"))
	assert.Equal(t, []string{"Class methods decorated with @Method() cannot be private nor protected"}, messages(diags))
	assert.Equal(t, []int{14}, lines(diags))
}

func TestPropsMustBePublic(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("props-must-be-public"))
	assert.Equal(t, []string{"Class properties decorated with @Prop() cannot be private nor protected"}, messages(diags))
	assert.Equal(t, []int{5}, lines(diags), "the plain class is not a component")
}

func TestOwnMethodsMustBePrivate(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("own-methods-must-be-private"))
	assert.Equal(t, []int{16, 19}, lines(diags), "helper and hostData; lifecycle hooks and API methods pass")
	for _, d := range diags {
		assert.Equal(t, "Own class methods cannot be public", d.Message)
	}
}

func TestOwnPropsMustBePrivate(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("own-props-must-be-private"))
	assert.Equal(t, []string{"Own class properties cannot be public"}, messages(diags))
	assert.Equal(t, []int{11}, lines(diags))
}

func TestPropsMustBeReadonly(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("props-must-be-readonly"))
	require.Len(t, diags, 2, "secret and plain; the mutable prop is exempt")
	assert.Equal(t, []int{5, 7}, lines(diags))
	assert.Equal(t, "Class properties decorated with @Prop() should be readonly", diags[0].Message)

	fixed := applyFix(t, membersSource, diags[1])
	assert.Contains(t, fixed, "@Prop() readonly plain: string;")
	fixed = applyFix(t, membersSource, diags[0])
	assert.Contains(t, fixed, "@Prop() private readonly secret: string;")
}

func TestHostDataDeprecated(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("host-data-deprecated"))
	require.Len(t, diags, 1)
	assert.Equal(t, "hostData() is deprecated and <Host> should be used in the render function instead.", diags[0].Message)
	assert.Equal(t, 19, diags[0].Span.StartLine)
	assert.Equal(t, 3, diags[0].Span.StartColumn, "reported at the method name")
}

func TestReservedMemberNames(t *testing.T) {
	diags := lintSource(t, "src/my-cmp.tsx", membersSource, only("reserved-member-names"))
	assert.Equal(t, []string{
		`The @Prop name "title conflicts with a key in the HTMLElement prototype. Please choose a different name.`,
		"Avoid using Global HTML Attributes as Prop names.",
	}, messages(diags))
	assert.Equal(t, []int{9, 10}, lines(diags))
}

func TestReservedMemberNames_CaseInsensitive(t *testing.T) {
	src := `
@Component({ tag: 'my-cmp' })
export class MyCmp {
  @Prop() readonly tabindex: number;
  @Method() async removeChild() {}
  @Method() async click() {}
  @State() style: string;
}
`
	diags := lintSource(t, "src/my-cmp.tsx", src, only("reserved-member-names"))
	assert.Equal(t, []int{4, 5, 6}, lines(diags), "@State members are not public API")
	assert.Contains(t, diags[1].Message, `The @Method name "removeChild`)
}

func TestIsReservedMember(t *testing.T) {
	for name, want := range map[string]bool{
		"title": true, "TITLE": true, "onClick": true, "key": true, "ref": true,
		"ELEMENT_NODE": true, "shadowRoot": true,
		"hidden": false, "dataset": false, "inputMode": false, "value": false, "": false,
	} {
		assert.Equal(t, want, isReservedMember(name), name)
	}
}
