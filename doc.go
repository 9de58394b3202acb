// Package formguard is a form validation rule engine.
//
// Rules are named predicates attached to fields through attributes
// ("between", "alpha-dash", "required-if") or through the field type. An
// Engine owns the rule registry, memoizes which rules apply to each field and
// what each rule concluded for a given value, resolves localized messages and
// drives field and form validation.
//
// Basic usage:
//
//	e := formguard.New(formguard.WithRules(rules.All()))
//	e.Localize(map[string]map[string]any{
//		"en": {"messages": map[string]any{"between": "Must be between {min} and {max}."}},
//	})
//
//	doc := form.New()
//	age := form.NewControl("age", form.TypeNumber,
//		form.WithAttr("between", "5,10"),
//		form.WithValue("4"),
//	)
//	doc.Add(age)
//
//	res, err := e.ValidateField(ctx, age)
//	// res.IsValid == false, res.Message == "Must be between 5 and 10."
//
// # Rules
//
// A Rule carries either a synchronous Validate predicate or an asynchronous
// ValidateAsync predicate returning an async.Future. Predicates return an
// Outcome: Pass, Fail (use the rule's message) or FailWith a custom message
// key. Rules with ChecksRequired decide whether a field is required; rules
// with ChecksTarget read the whole form and are never memoized.
//
// Rule names are normalized to attribute form: "alphaDash" becomes
// "alpha-dash". Registration order is evaluation order.
//
// # Caching
//
// Applicable rules are cached per field until any rule is (re)defined.
// Verdicts are cached per rule, form, field, locale, value and attribute in a
// bounded LRU, bypassed for file fields and cross-field rules and dropped on
// every registry or locale change.
//
// # Errors
//
// Invalid input is a result, never an error. Registration problems are logged
// and returned. Predicate errors, panics and timeouts are logged and resolved
// by the FailurePolicy (FailOpen by default). Only nil handles passed to entry
// points produce errors from validation calls.
//
// # Collaborators
//
// Display renders messages, Submitter sends passing forms, Observer receives
// telemetry (see pkg/metrics) and Hooks deliver per-form outcome callbacks.
package formguard
