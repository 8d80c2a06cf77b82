package rules

import (
	"fmt"

	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
	"github.com/c360studio/semlint/truthiness"
	"github.com/c360studio/semlint/typeinfo"
)

// StrictBooleanConditions restricts the types allowed where JavaScript
// coerces a value to boolean: the operand of `!`, the test of a
// conditional expression, and the conditions of if, for, while and
// do-while. Only booleans pass by default; options widen the set.
var StrictBooleanConditions = &lint.Rule{
	Name:        "strict-boolean-conditions",
	Description: "Restricts the types allowed in boolean expressions. By default only booleans are allowed.",
	Category:    categoryPossibleErrors,
	NeedsTypes:  true,
	Create:      createStrictBooleanConditions,
}

func createStrictBooleanConditions(opts lint.Options) (*lint.Listeners, error) {
	names, err := opts.AllStrings()
	if err != nil {
		return nil, err
	}
	if opts.Len() == 0 {
		names = truthiness.DefaultOptionNames
	}
	options, err := truthiness.ParseOptions(names, opts.Settings().StrictNullChecks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lint.ErrInvalidOptions, err)
	}

	check := func(ctx *lint.Context, operand *ast.Node, loc truthiness.Location) {
		if operand == nil {
			return
		}
		t := ctx.Types().TypeAt(operand)
		if t == nil {
			return
		}
		reason, failed := truthiness.Check(t, options)
		if !failed {
			return
		}
		ctx.Report(operand, truthiness.Message(loc, reason, typeinfo.IsUnion(t), options))
	}
	on := func(loc truthiness.Location, field string) lint.Handler {
		return func(ctx *lint.Context, n *ast.Node) {
			check(ctx, n.Field(field), loc)
		}
	}

	return lint.NewListeners().
		On(`UnaryExpression[operator="!"]`, on(truthiness.LocationNot, ast.FieldArgument)).
		On("IfStatement", on(truthiness.LocationIf, ast.FieldTest)).
		On("WhileStatement", on(truthiness.LocationWhile, ast.FieldTest)).
		On("DoWhileStatement", on(truthiness.LocationDoWhile, ast.FieldTest)).
		On("ForStatement[test]", on(truthiness.LocationFor, ast.FieldTest)).
		On("ConditionalExpression", on(truthiness.LocationConditional, ast.FieldTest)), nil
}
