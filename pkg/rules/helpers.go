package rules

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/params"
)

// match builds a predicate that passes when the text value matches re.
func match(re *regexp.Regexp) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		return formguard.Bool(re.MatchString(rc.Value.String())), nil
	}
}

// number converts the field value with the same rules as attribute params.
// Blank values have no numeric meaning here.
func number(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, ok := params.ParseNumber(s)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// paramNumber returns params[i] as a number.
func paramNumber(rc *formguard.RuleContext, i int) (float64, bool) {
	p, ok := rc.Params.At(i)
	if !ok {
		return 0, false
	}
	return p.Float()
}

// raws returns the source tokens of every param.
func raws(l params.List) []string {
	out := make([]string, len(l))
	for i, p := range l {
		out[i] = p.Raw()
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01",
}

// parseDate accepts the value formats of date, datetime-local and month
// inputs as well as RFC 3339 timestamps.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
