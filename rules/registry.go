package rules

import (
	"fmt"

	"github.com/c360studio/semlint/lint"
)

func init() {
	if err := Register(lint.DefaultRegistry); err != nil {
		panic(err)
	}
}

// All returns every rule in registration order.
func All() []*lint.Rule {
	return []*lint.Rule{
		BanSideEffects,
		BanExportedConstEnums,
		DependencySuggestions,
		StrictBooleanConditions,
		AsyncMethods,
		BanPrefix,
		ClassPattern,
		DecoratorsContext,
		DecoratorsStyle,
		ElementType,
		HostDataDeprecated,
		MethodsMustBePublic,
		NoUnusedWatch,
		OwnMethodsMustBePrivate,
		OwnPropsMustBePrivate,
		PreferVDOMListener,
		PropsMustBePublic,
		PropsMustBeReadonly,
		RenderReturnsHost,
		RequiredJSDoc,
		RequiredPrefix,
		ReservedMemberNames,
		SingleExport,
		StrictMutable,
	}
}

// Register adds every rule to reg.
func Register(reg *lint.Registry) error {
	for _, rule := range All() {
		if err := reg.Register(rule); err != nil {
			return fmt.Errorf("register %s: %w", rule.Name, err)
		}
	}
	return nil
}
