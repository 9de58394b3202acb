package formguard

import (
	"context"

	"github.com/dmitrymomot/formguard/pkg/form"
)

// requiredRule supplies the message of empty required fields. It is not
// part of the registry.
var requiredRule = Rule{
	Name:    form.AttrRequired,
	Attr:    form.AttrRequired,
	Message: "This field is required.",
	Validate: func(rc *RuleContext) (Outcome, error) {
		return Bool(rc.Value.Present()), nil
	},
}

// IsFieldRequired evaluates the required-determining rules declared on field
// in registration order, stopping at the first that signals "required", and
// combines the result with the native required flag.
func (e *Engine) IsFieldRequired(ctx context.Context, field form.Field) (bool, error) {
	if field == nil {
		return false, ErrNilField
	}
	return e.isRequired(ctx, field), nil
}

func (e *Engine) isRequired(ctx context.Context, field form.Field) bool {
	required := false
	for _, rule := range e.rules.snapshot(true) {
		if _, ok := field.Attr(rule.Attr); !ok {
			continue
		}
		if e.evaluate(ctx, rule, field).Failed {
			required = true
			break
		}
	}
	return field.Required() || required
}

func (e *Engine) requiredMessage(ctx context.Context, field form.Field) string {
	loc := e.fieldLocale(field)
	rc := buildContext(field, &requiredRule, loc)
	r := e.resolveMessage(requiredRule.Name, field, &requiredRule, loc)
	return e.formatMessage(ctx, r, field, &requiredRule, rc)
}
