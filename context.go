package formguard

import (
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/params"
)

// RuleContext is everything a predicate sees about one evaluation.
type RuleContext struct {
	// Field is the logical field name.
	Field string
	// Type is the control type tag.
	Type string
	// Value is the normalized field value; disabled fields are null.
	Value form.Value
	// AttrValue is the raw attribute string driving the rule.
	AttrValue string
	// HasAttr reports whether the attribute is declared at all; rules
	// applied by type may run without it.
	HasAttr bool
	// Params is AttrValue parsed by the parameter grammar.
	Params params.List
	// Form is a snapshot of the whole form. It is only populated for rules
	// with ChecksTarget.
	Form form.Data
	// Locale is the effective locale of the evaluation.
	Locale string
	// Handle is the field being validated.
	Handle form.Field
}

// Target returns the snapshot value of another field, as named by the
// parameter at index i.
func (rc *RuleContext) Target(i int) (string, bool) {
	name := rc.Params.StringAt(i)
	if name == "" || rc.Form == nil {
		return "", false
	}
	if !rc.Form.Has(name) {
		return "", false
	}
	return rc.Form.Get(name), true
}

// buildContext assembles the cheap part of the context. The form snapshot is
// added by the executor after the cache lookup.
func buildContext(field form.Field, rule *Rule, locale string) *RuleContext {
	attrValue, hasAttr := field.Attr(rule.Attr)
	return &RuleContext{
		Field:     field.Name(),
		Type:      field.Type(),
		Value:     field.Value(),
		AttrValue: attrValue,
		HasAttr:   hasAttr,
		Params:    params.Parse(attrValue),
		Locale:    locale,
		Handle:    field,
	}
}
