package rules

import (
	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
)

// Compare returns the equality and ordering rules, both against literal
// params and against other fields.
func Compare() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name: "match",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(equalsParam(rc)), nil
			},
			Message:     "Value must match {str}.",
			FormatNames: []string{"str"},
		},
		{
			Name: "unmatch",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(!equalsParam(rc)), nil
			},
			Message:     "Value must not match {str}.",
			FormatNames: []string{"str"},
		},
		{
			Name:        "greater",
			Validate:    compareParam(func(v, n float64) bool { return v > n }),
			Message:     "Must be greater than {num}.",
			FormatNames: []string{"num"},
		},
		{
			Name:        "less",
			Validate:    compareParam(func(v, n float64) bool { return v < n }),
			Message:     "Must be less than {num}.",
			FormatNames: []string{"num"},
		},
		{
			Name: "confirm",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target, _ := rc.Target(0)
				return formguard.Bool(rc.Value.String() == target), nil
			},
			Message:      "Passwords do not match.",
			ChecksTarget: true,
		},
		{
			Name: "matchWith",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target, _ := rc.Target(0)
				return formguard.Bool(rc.Value.String() == target), nil
			},
			Message:      "Value must match {str}.",
			Format:       targetToken("str"),
			ChecksTarget: true,
		},
		{
			Name: "unmatchWith",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				target, _ := rc.Target(0)
				return formguard.Bool(rc.Value.String() != target), nil
			},
			Message:      "Value must not match {str}.",
			Format:       targetToken("str"),
			ChecksTarget: true,
		},
		{
			Name:         "greaterThan",
			Validate:     compareTarget(func(v, t float64) bool { return v > t }),
			Message:      "Must be greater than {num}.",
			Format:       targetToken("num"),
			ChecksTarget: true,
		},
		{
			Name:         "lessThan",
			Validate:     compareTarget(func(v, t float64) bool { return v < t }),
			Message:      "Must be less than {num}.",
			Format:       targetToken("num"),
			ChecksTarget: true,
		},
		{
			Name:         "greaterEqual",
			Validate:     compareTarget(func(v, t float64) bool { return v >= t }),
			Message:      "Must be greater than or equal to {num}.",
			Format:       targetToken("num"),
			ChecksTarget: true,
		},
		{
			Name:         "lessEqual",
			Validate:     compareTarget(func(v, t float64) bool { return v <= t }),
			Message:      "Must be less than or equal to {num}.",
			Format:       targetToken("num"),
			ChecksTarget: true,
		},
	}
}

// equalsParam compares the value with params[0] textually, or numerically
// when both sides are numbers.
func equalsParam(rc *formguard.RuleContext) bool {
	p, ok := rc.Params.At(0)
	if !ok {
		return false
	}
	v := rc.Value.String()
	if v == p.Raw() {
		return true
	}
	n, okN := p.Float()
	f, okV := number(v)
	return okN && okV && n == f
}

// compareParam orders a number field against params[0]. Other types and a
// missing bound pass.
func compareParam(cmp func(v, n float64) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeNumber || rc.Params.StringAt(0) == "" {
			return formguard.Pass(), nil
		}
		n, okN := paramNumber(rc, 0)
		v, okV := number(rc.Value.String())
		return formguard.Bool(okN && okV && cmp(v, n)), nil
	}
}

// compareTarget orders a number field against the field named by params[0].
// Other types and an empty or absent target pass.
func compareTarget(cmp func(v, t float64) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeNumber {
			return formguard.Pass(), nil
		}
		raw, ok := rc.Target(0)
		if !ok || raw == "" {
			return formguard.Pass(), nil
		}
		t, okT := number(raw)
		v, okV := number(rc.Value.String())
		return formguard.Bool(okT && okV && cmp(v, t)), nil
	}
}

// targetToken exposes the target field value under name.
func targetToken(name string) formguard.FormatFunc {
	return func(rc *formguard.RuleContext) map[string]any {
		v, _ := rc.Target(0)
		return map[string]any{name: v}
	}
}
