package rules

import (
	"time"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
)

// Date returns the date ordering rules. They only check date controls and
// pass whenever either side is not a valid date.
func Date() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name:         "dateBefore",
			Validate:     dateTarget(func(d, ref time.Time) bool { return d.Before(ref) }),
			Message:      "Date must be before {date}.",
			Format:       targetToken("date"),
			ChecksTarget: true,
		},
		{
			Name:         "dateAfter",
			Validate:     dateTarget(func(d, ref time.Time) bool { return d.After(ref) }),
			Message:      "Date must be after {date}.",
			Format:       targetToken("date"),
			ChecksTarget: true,
		},
		{
			Name: "dateBetween",
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				if rc.Type != form.TypeDate {
					return formguard.Pass(), nil
				}
				d, ok := parseDate(rc.Value.String())
				start, okStart := dateParam(rc, 0)
				end, okEnd := dateParam(rc, 1)
				if !ok || !okStart || !okEnd {
					return formguard.Pass(), nil
				}
				return formguard.Bool(!d.Before(start) && !d.After(end)), nil
			},
			Message: "Date must be between {startDate} and {endDate}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{
					"startDate": rawAt(rc, 0),
					"endDate":   rawAt(rc, 1),
				}
			},
		},
		{
			Name:        "minDate",
			Validate:    dateBound(func(d, bound time.Time) bool { return !d.Before(bound) }),
			Message:     "Date must be on or after {date}.",
			FormatNames: []string{"date"},
		},
		{
			Name:        "maxDate",
			Validate:    dateBound(func(d, bound time.Time) bool { return !d.After(bound) }),
			Message:     "Date must be on or before {date}.",
			FormatNames: []string{"date"},
		},
	}
}

func dateTarget(ok func(d, ref time.Time) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeDate {
			return formguard.Pass(), nil
		}
		raw, _ := rc.Target(0)
		d, okD := parseDate(rc.Value.String())
		ref, okRef := parseDate(raw)
		if !okD || !okRef {
			return formguard.Pass(), nil
		}
		return formguard.Bool(ok(d, ref)), nil
	}
}

func dateBound(ok func(d, bound time.Time) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeDate {
			return formguard.Pass(), nil
		}
		d, okD := parseDate(rc.Value.String())
		bound, okB := dateParam(rc, 0)
		if !okD || !okB {
			return formguard.Pass(), nil
		}
		return formguard.Bool(ok(d, bound)), nil
	}
}

func dateParam(rc *formguard.RuleContext, i int) (time.Time, bool) {
	return parseDate(rawAt(rc, i))
}

func rawAt(rc *formguard.RuleContext, i int) string {
	p, _ := rc.Params.At(i)
	return p.Raw()
}
