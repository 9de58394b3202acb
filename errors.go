package formguard

import "errors"

var (
	// Registration errors. They are logged and returned; the engine keeps
	// working with whatever was registered before.
	ErrEmptyRuleName         = errors.New("formguard: rule name is empty")
	ErrMissingValidator      = errors.New("formguard: rule has no validate function")
	ErrConflictingValidators = errors.New("formguard: rule sets both Validate and ValidateAsync")
	ErrEmptyRuleSet          = errors.New("formguard: rule set is empty")

	// Contract violations returned from the orchestrator entry points.
	ErrNilForm  = errors.New("formguard: form is nil")
	ErrNilField = errors.New("formguard: field is nil")

	// Predicate failures handled by the failure policy.
	ErrPredicatePanic = errors.New("formguard: rule predicate panicked")
	ErrRuleTimeout    = errors.New("formguard: rule predicate timed out")
)
