package rules

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/formguard"
)

var integerRe = regexp.MustCompile(`^-?\d+$`)

// Number returns the numeric text rules.
func Number() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name:     "integer",
			Validate: match(integerRe),
			Message:  "Must be an integer.",
		},
		{
			Name: "numeric",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				_, ok := number(rc.Value.String())
				return formguard.Bool(ok), nil
			},
			Message: "Must be a number.",
		},
		{
			Name: "digits",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := paramNumber(rc, 0)
				if !ok || n < 0 || n != float64(int(n)) {
					return formguard.Fail(), nil
				}
				v := rc.Value.String()
				return formguard.Bool(len(v) == int(n) && isDigits(v)), nil
			},
			Message:     "Must be exactly {count} digits.",
			FormatNames: []string{"count"},
		},
		{
			Name: "between",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				v, ok := number(rc.Value.String())
				if !ok {
					return formguard.Pass(), nil
				}
				lo, okLo := paramNumber(rc, 0)
				hi, okHi := paramNumber(rc, 1)
				if !okLo || !okHi {
					return formguard.Fail(), nil
				}
				return formguard.Bool(v >= lo && v <= hi), nil
			},
			Message: "Must be between {min} and {max}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{
					"min": rc.Params.StringAt(0),
					"max": rc.Params.StringAt(1),
				}
			},
		},
	}
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
