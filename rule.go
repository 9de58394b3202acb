package formguard

import (
	"context"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/async"
)

// OutcomeKind discriminates Outcome values.
type OutcomeKind uint8

const (
	// OutcomePass means the value is acceptable.
	OutcomePass OutcomeKind = iota
	// OutcomeFail means failure described by the rule's own message key.
	OutcomeFail
	// OutcomeFailWithKey means failure described by a custom message key.
	OutcomeFailWithKey
)

// Outcome is what a predicate decides about a value.
//
// For rules with ChecksRequired a failing outcome is the "required" signal.
type Outcome struct {
	kind OutcomeKind
	key  string
}

func Pass() Outcome { return Outcome{kind: OutcomePass} }
func Fail() Outcome { return Outcome{kind: OutcomeFail} }

// FailWith fails with a custom message key, which is looked up in the locale
// store and shown verbatim when no entry exists. An empty key is Fail().
func FailWith(key string) Outcome {
	if key == "" {
		return Fail()
	}
	return Outcome{kind: OutcomeFailWithKey, key: key}
}

// Bool adapts a boolean check: true passes, false fails.
func Bool(ok bool) Outcome {
	if ok {
		return Pass()
	}
	return Fail()
}

// RequiredWhen is the outcome of a required-determining predicate.
func RequiredWhen(required bool) Outcome {
	return Bool(!required)
}

func (o Outcome) Kind() OutcomeKind { return o.kind }
func (o Outcome) Failed() bool      { return o.kind != OutcomePass }
func (o Outcome) Key() string       { return o.key }

// Predicate is a synchronous rule check.
type Predicate func(rc *RuleContext) (Outcome, error)

// AsyncPredicate starts an asynchronous rule check. ctx is cancelled when the
// caller stops waiting.
type AsyncPredicate func(ctx context.Context, rc *RuleContext) *async.Future[Outcome]

// FormatFunc builds the token map for keyed message interpolation.
type FormatFunc func(rc *RuleContext) map[string]any

// Rule is a named predicate plus message metadata.
//
// Exactly one of Validate and ValidateAsync must be set. A rule applies to a
// field that declares its Attr, or whose type equals Type.
type Rule struct {
	Name string
	// Attr is derived from Name on registration.
	Attr string
	Type string

	Validate      Predicate
	ValidateAsync AsyncPredicate

	// Message is the default template, used when the locale has no entry
	// for Name.
	Message string
	// Format switches interpolation to keyed substitution.
	Format FormatFunc
	// FormatNames maps params positions to token names for positional
	// substitution, e.g. {"min", "max"}.
	FormatNames []string

	// ChecksRequired marks a rule that decides required-ness.
	ChecksRequired bool
	// ChecksTarget marks a cross-field rule that reads the whole form.
	ChecksTarget bool
}

// IsAsync reports whether the rule suspends.
func (r *Rule) IsAsync() bool { return r.ValidateAsync != nil }

// RuleSet is an ordered group of rules; order fixes evaluation order.
type RuleSet []Rule

var (
	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	separatorRun  = regexp.MustCompile(`[_\s]+`)
)

// NormalizeName converts a rule name to its attribute form:
// "alphaDash" → "alpha-dash", "min_date" → "min-date".
func NormalizeName(name string) string {
	attr := camelBoundary.ReplaceAllString(name, "${1}-${2}")
	attr = separatorRun.ReplaceAllString(attr, "-")
	return strings.ToLower(attr)
}
