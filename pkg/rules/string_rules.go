package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/message"
)

var strongSpecialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// String returns the text shape rules.
func String() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name: "length",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				n, ok := rc.Params.At(0)
				if !ok {
					return formguard.Fail(), nil
				}
				want, ok := n.Int()
				return formguard.Bool(ok && rc.Value.Len() == want), nil
			},
			Message:     "Must be exactly {length} characters.",
			FormatNames: []string{"length"},
		},
		{
			Name: "regex",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				p, _ := rc.Params.At(0)
				f, _ := rc.Params.At(1)
				re, err := compileWithFlags(p.Raw(), f.Raw())
				if err != nil {
					return formguard.Outcome{}, err
				}
				return formguard.Bool(re.MatchString(rc.Value.String())), nil
			},
			Message: "Invalid regex format.",
		},
		{
			Name: "contains",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				p, _ := rc.Params.At(0)
				return formguard.Bool(strings.Contains(rc.Value.String(), p.Raw())), nil
			},
			Message:     `Must contain "{str}".`,
			FormatNames: []string{"str"},
		},
		{
			Name: "notContains",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				p, _ := rc.Params.At(0)
				return formguard.Bool(!strings.Contains(rc.Value.String(), p.Raw())), nil
			},
			Message:     `Must not contain "{str}".`,
			FormatNames: []string{"str"},
		},
		{
			Name: "oneOf",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(containsString(raws(rc.Params), rc.Value.String())), nil
			},
			Message: "Must be one of: {allowed}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"allowed": message.List(rc.Params.Strings())}
			},
		},
		{
			Name: "notOneOf",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(!containsString(raws(rc.Params), rc.Value.String())), nil
			},
			Message: "Cannot be: {forbidden}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"forbidden": message.List(rc.Params.Strings())}
			},
		},
		{
			Name: "betweenChar",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				lo, okLo := paramNumber(rc, 0)
				hi, okHi := paramNumber(rc, 1)
				if !okLo || !okHi {
					return formguard.Fail(), nil
				}
				n := float64(rc.Value.Len())
				return formguard.Bool(n >= lo && n <= hi), nil
			},
			Message: "Must be between {min} and {max} characters.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{
					"min": rc.Params.StringAt(0),
					"max": rc.Params.StringAt(1),
				}
			},
		},
		{
			Name: "strong",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				return formguard.Bool(isStrong(rc.Value.String())), nil
			},
			Message: "Password must be 8+ chars, with upper, lower, number & symbol.",
		},
	}
}

func isStrong(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit &&
		strongSpecialRe.MatchString(s) &&
		len([]rune(s)) >= 8
}

// compileWithFlags compiles pattern with the i, m and s flags applied.
// Other flag letters have no meaning for a single match and are ignored.
func compileWithFlags(pattern, flags string) (*regexp.Regexp, error) {
	var prefix strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			prefix.WriteRune(f)
		}
	}
	if prefix.Len() > 0 {
		pattern = "(?" + prefix.String() + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}
