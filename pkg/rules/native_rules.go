package rules

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/params"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Native returns rules mirroring the browser's built-in constraint
// validation, so one engine reports every failure.
func Native() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name:     "email",
			Type:     form.TypeEmail,
			Validate: match(emailRe),
			Message:  "Please enter an email address.",
		},
		{
			Name: "url",
			Type: form.TypeURL,
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(isAbsoluteURL(rc.Value.String())), nil
			},
			Message: "Please enter a URL.",
		},
		{
			Name:        "min",
			Validate:    numberBound(func(v, bound float64) bool { return v >= bound }),
			Message:     "Value must be greater than or equal to {min}.",
			FormatNames: []string{"min"},
		},
		{
			Name:        "max",
			Validate:    numberBound(func(v, bound float64) bool { return v <= bound }),
			Message:     "Value must be less than or equal to {max}.",
			FormatNames: []string{"max"},
		},
		{
			Name: "step",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				raw := rawAt(rc, 0)
				if rc.Type != form.TypeNumber || raw == "" || raw == "any" {
					return formguard.Pass(), nil
				}
				step, okS := paramNumber(rc, 0)
				v, okV := number(rc.Value.String())
				if !okS || !okV || step == 0 {
					return formguard.Fail(), nil
				}
				return formguard.Bool(math.Mod(v, step) == 0), nil
			},
			Message: "Please enter a valid value. The two nearest valid values are {prev} and {next}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				v, _ := number(rc.Value.String())
				return map[string]any{
					"prev": params.FormatNumber(v - 1),
					"next": params.FormatNumber(v + 1),
				}
			},
		},
		{
			Name: "minlength",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := paramNumber(rc, 0)
				if !ok {
					return formguard.Pass(), nil
				}
				return formguard.Bool(float64(rc.Value.Len()) >= n), nil
			},
			Message: "Please lengthen this text to {minlength} characters or more (you are currently using {curLength} characters).",
			Format:  lengthTokens("minlength"),
		},
		{
			Name: "maxlength",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := paramNumber(rc, 0)
				if !ok {
					return formguard.Pass(), nil
				}
				return formguard.Bool(float64(rc.Value.Len()) <= n), nil
			},
			Message: "Please shorten this text to no more than {maxlength} characters (you are currently using {curLength} characters).",
			Format:  lengthTokens("maxlength"),
		},
		{
			Name: "pattern",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				v := rc.Value.String()
				if rc.AttrValue == "" || v == "" {
					return formguard.Pass(), nil
				}
				// The whole attribute is the pattern; commas are part of it.
				re, err := regexp.Compile(`^(?:` + rc.AttrValue + `)$`)
				if err != nil {
					return formguard.Pass(), nil
				}
				return formguard.Bool(re.MatchString(v)), nil
			},
			Message: "Please match the requested format.",
		},
	}
}

// numberBound checks a number field against params[0]. Other types, a
// missing bound and non-numeric values pass.
func numberBound(ok func(v, bound float64) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeNumber || rawAt(rc, 0) == "" {
			return formguard.Pass(), nil
		}
		bound, okB := paramNumber(rc, 0)
		v, okV := number(rc.Value.String())
		if !okB || !okV {
			return formguard.Pass(), nil
		}
		return formguard.Bool(ok(v, bound)), nil
	}
}

func lengthTokens(name string) formguard.FormatFunc {
	return func(rc *formguard.RuleContext) map[string]any {
		return map[string]any{
			name:        rc.Params.StringAt(0),
			"curLength": rc.Value.Len(),
		}
	}
}

func isAbsoluteURL(s string) bool {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}
