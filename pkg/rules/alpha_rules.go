package rules

import (
	"regexp"

	"github.com/dmitrymomot/formguard"
)

var (
	alphaRe          = regexp.MustCompile(`^[A-Za-z]+$`)
	alphaDashRe      = regexp.MustCompile(`^[A-Za-z_-]+$`)
	alphaNumRe       = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	alphaSpacesRe    = regexp.MustCompile(`^[A-Za-z\s]+$`)
	alphaNumSpacesRe = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)
)

// Alpha returns the ASCII letter rules.
func Alpha() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name:     "alpha",
			Validate: match(alphaRe),
			Message:  "Must contain letters only.",
		},
		{
			Name:     "alphaDash",
			Validate: match(alphaDashRe),
			Message:  "Must contain letters, dashes, or underscores only.",
		},
		{
			Name:     "alphaNum",
			Validate: match(alphaNumRe),
			Message:  "Must contain letters and numbers only.",
		},
		{
			Name:     "alphaSpaces",
			Validate: match(alphaSpacesRe),
			Message:  "Must contain letters and spaces only.",
		},
		{
			Name:     "alphaNumSpaces",
			Validate: match(alphaNumSpacesRe),
			Message:  "Must contain letters, numbers, and spaces only.",
		},
	}
}
