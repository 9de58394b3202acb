package rules

import (
	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/message"
)

// Select returns the selection count and membership rules.
func Select() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name: "minSelect",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := paramNumber(rc, 0)
				if !ok {
					return formguard.Pass(), nil
				}
				return formguard.Bool(float64(rc.Value.Len()) >= n), nil
			},
			Message:     "Please select at least {num} options.",
			FormatNames: []string{"num"},
		},
		{
			Name: "maxSelect",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := paramNumber(rc, 0)
				if !ok {
					return formguard.Pass(), nil
				}
				return formguard.Bool(float64(rc.Value.Len()) <= n), nil
			},
			Message:     "Please select no more than {num} options.",
			FormatNames: []string{"num"},
		},
		{
			Name: "allowed",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				allowed := raws(rc.Params)
				for _, v := range selection(rc.Value) {
					if !containsString(allowed, v) {
						return formguard.Fail(), nil
					}
				}
				return formguard.Pass(), nil
			},
			Message: "Allowed selections: {allowed}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"allowed": message.List(rc.Params.Strings())}
			},
		},
		{
			Name: "forbidden",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				forbidden := raws(rc.Params)
				for _, v := range selection(rc.Value) {
					if containsString(forbidden, v) {
						return formguard.Fail(), nil
					}
				}
				return formguard.Pass(), nil
			},
			Message: "Forbidden selections: {forbidden}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"forbidden": message.List(rc.Params.Strings())}
			},
		},
	}
}

// selection returns the selected values; a single value is a selection of
// one.
func selection(v form.Value) []string {
	switch v.Kind() {
	case form.KindList:
		return v.List()
	case form.KindText:
		return []string{v.Text()}
	default:
		return nil
	}
}
