package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sideEffectsSource = `import { createStore } from '@stencil/store';

const store = createStore({});
init();
console.log('x');
const fn = () => setup();
function later() { run(); }
export const value = compute();
`

func TestBanSideEffects(t *testing.T) {
	diags := lintSource(t, "src/utils.ts", sideEffectsSource, only("ban-side-effects"))
	assert.Equal(t, []int{4, 5}, lines(diags))
	for _, d := range diags {
		assert.Equal(t, "Call expressions at the top-level should be avoided.", d.Message)
	}

	diags = lintSource(t, "src/utils.ts", sideEffectsSource, only("ban-side-effects", []any{"init"}))
	assert.Equal(t, []int{3, 5}, lines(diags), "configured names replace the defaults")
}

func TestBanSideEffects_TestFiles(t *testing.T) {
	for _, path := range []string{"src/utils.spec.ts", "src/utils.e2e.ts", "src/utils.test.tsx"} {
		assert.Empty(t, lintSource(t, path, sideEffectsSource, only("ban-side-effects")), path)
	}
}

func TestBanExportedConstEnums(t *testing.T) {
	src := `export const enum Color { Red }
const enum Local { A }
export enum Plain { B }
`
	diags := lintSource(t, "src/enums.ts", src, only("ban-exported-const-enums"))
	assert.Equal(t, []string{"Exported const enums are not allowed"}, messages(diags))
	assert.Equal(t, []int{1}, lines(diags))
}

func TestDependencySuggestions(t *testing.T) {
	src := `import _ from 'lodash';
import moment from 'moment';
import { h } from '@stencil/core';
import 'core-js';
`
	diags := lintSource(t, "src/app.tsx", src, only("dependency-suggestions"))
	assert.Equal(t, []int{1, 2, 4}, lines(diags))
	assert.Contains(t, diags[0].Message, `use "lodash-es" instead`)
	assert.Equal(t, "Suggestions", DependencySuggestions.Category)
}

func TestSingleExport(t *testing.T) {
	src := `import { Component } from '@stencil/core';

export interface Props { a: string }
type Local = string;
export { Local };
export const helper = 1;
export function util() {}

@Component({ tag: 'my-cmp' })
export class MyCmp {}
export default MyCmp;
`
	diags := lintSource(t, "src/my-cmp.tsx", src, only("single-export"))
	assert.Equal(t, []int{6, 7, 11}, lines(diags), "helper, util and the default export; types are erased")
	for _, d := range diags {
		assert.Equal(t, singleExportMessage, d.Message)
	}
}

func TestSingleExport_NoComponent(t *testing.T) {
	src := `export const helper = 1;
export class Store {}
`
	assert.Empty(t, lintSource(t, "src/store.ts", src, only("single-export")))
}
