package rules

import (
	"strings"

	"github.com/dmitrymomot/formguard"
)

// Required returns the conditional required rules. Each decides whether the
// field must have a value based on other fields; a missing parameter never
// makes the field required.
func Required() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name: "requiredIf",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target, expected, ok := targetExpect(rc)
				if !ok {
					return formguard.RequiredWhen(false), nil
				}
				got, has := single(rc, target)
				return formguard.RequiredWhen(has && got == expected), nil
			},
			ChecksTarget:   true,
			ChecksRequired: true,
		},
		{
			Name: "requiredUnless",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target, expected, ok := targetExpect(rc)
				if !ok {
					return formguard.RequiredWhen(false), nil
				}
				got, has := single(rc, target)
				return formguard.RequiredWhen(!has || got != expected), nil
			},
			ChecksTarget:   true,
			ChecksRequired: true,
		},
		{
			Name: "requiredWith",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target := rawAt(rc, 0)
				if target == "" || rc.Form == nil {
					return formguard.RequiredWhen(false), nil
				}
				return formguard.RequiredWhen(rc.Form.Truthy(target)), nil
			},
			ChecksTarget:   true,
			ChecksRequired: true,
		},
		{
			Name: "requiredWithAll",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				if len(rc.Params) == 0 || rc.Form == nil {
					return formguard.RequiredWhen(false), nil
				}
				for _, target := range raws(rc.Params) {
					if !rc.Form.Truthy(target) {
						return formguard.RequiredWhen(false), nil
					}
				}
				return formguard.RequiredWhen(true), nil
			},
			ChecksTarget:   true,
			ChecksRequired: true,
		},
	}
}

// targetExpect splits the "target:expected" parameter.
func targetExpect(rc *formguard.RuleContext) (target, expected string, ok bool) {
	raw := rawAt(rc, 0)
	if raw == "" {
		return "", "", false
	}
	target, expected, _ = strings.Cut(raw, ":")
	return target, expected, target != ""
}

// single returns the value of a field holding exactly one value.
func single(rc *formguard.RuleContext, name string) (string, bool) {
	if rc.Form == nil {
		return "", false
	}
	vals := rc.Form.Values(name)
	if len(vals) != 1 {
		return "", false
	}
	return vals[0], true
}
