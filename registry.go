package formguard

import (
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

// registry keeps ordinary and required-determining rules in registration
// order. Re-registering an attribute replaces the rule in place.
type registry struct {
	mu       sync.RWMutex
	ordinary []*Rule
	required []*Rule
}

func (r *registry) put(rule *Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, other := &r.ordinary, &r.required
	if rule.ChecksRequired {
		target, other = &r.required, &r.ordinary
	}

	*other = slices.DeleteFunc(*other, func(x *Rule) bool { return x.Attr == rule.Attr })

	if i := slices.IndexFunc(*target, func(x *Rule) bool { return x.Attr == rule.Attr }); i != -1 {
		(*target)[i] = rule
		return
	}
	*target = append(*target, rule)
}

func (r *registry) lookup(attr string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, list := range [][]*Rule{r.ordinary, r.required} {
		if i := slices.IndexFunc(list, func(x *Rule) bool { return x.Attr == attr }); i != -1 {
			return list[i], true
		}
	}
	return nil, false
}

func (r *registry) snapshot(required bool) []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if required {
		return slices.Clone(r.required)
	}
	return slices.Clone(r.ordinary)
}

// DefineRule registers rule under name. The attribute key is the normalized
// name. Invalid definitions are logged and rejected; nothing panics.
// Every successful call resets the applicability and result caches.
func (e *Engine) DefineRule(name string, rule Rule) error {
	rule.Name = name
	if err := checkRule(&rule); err != nil {
		e.logger.Error("Rule registration rejected",
			logger.Rule(name),
			logger.Error(err),
		)
		return err
	}

	rule.Attr = NormalizeName(name)
	rule.FormatNames = slices.Clone(rule.FormatNames)
	e.rules.put(&rule)

	e.logger.Debug("Rule registered",
		logger.Rule(name),
		logger.Attr(rule.Attr),
		slog.Bool("checks_required", rule.ChecksRequired),
		slog.Bool("checks_target", rule.ChecksTarget),
	)

	e.ResetRuleCache()
	return nil
}

// DefineRules registers every rule of set in order, using each rule's Name.
// Valid entries are registered even when others fail; the joined errors are
// returned.
func (e *Engine) DefineRules(set RuleSet) error {
	if len(set) == 0 {
		e.logger.Error("Rule registration rejected", logger.Error(ErrEmptyRuleSet))
		return ErrEmptyRuleSet
	}

	var errs []error
	for _, rule := range set {
		if err := e.DefineRule(rule.Name, rule); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rule returns the registered rule for a name or attribute.
func (e *Engine) Rule(name string) (Rule, bool) {
	r, ok := e.rules.lookup(NormalizeName(name))
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// Rules lists ordinary rules followed by required-determining rules, each
// group in registration order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, 0)
	for _, required := range []bool{false, true} {
		for _, r := range e.rules.snapshot(required) {
			out = append(out, *r)
		}
	}
	return out
}

func checkRule(rule *Rule) error {
	switch {
	case rule.Name == "":
		return ErrEmptyRuleName
	case rule.Validate == nil && rule.ValidateAsync == nil:
		return ErrMissingValidator
	case rule.Validate != nil && rule.ValidateAsync != nil:
		return ErrConflictingValidators
	}
	return nil
}

// applicability memoizes the rules that apply to each field. Entries carry
// the generation they were computed in; a reset bumps the generation.
type applicability struct {
	mu      sync.Mutex
	gen     uint64
	entries map[form.Field][]*Rule
}

// ApplicableRules returns the ordinary rules that apply to field: those whose
// attribute the field declares or whose Type equals the field type, in
// registration order. The list is cached per field until the next reset.
func (e *Engine) ApplicableRules(field form.Field) []Rule {
	rules := e.applicableRules(field)
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = *r
	}
	return out
}

func (e *Engine) applicableRules(field form.Field) []*Rule {
	e.applicable.mu.Lock()
	if rules, ok := e.applicable.entries[field]; ok {
		e.applicable.mu.Unlock()
		return rules
	}
	gen := e.applicable.gen
	e.applicable.mu.Unlock()

	var rules []*Rule
	typ := field.Type()
	for _, r := range e.rules.snapshot(false) {
		if r.Type != "" && r.Type == typ {
			rules = append(rules, r)
			continue
		}
		if _, ok := field.Attr(r.Attr); ok {
			rules = append(rules, r)
		}
	}

	e.applicable.mu.Lock()
	if e.applicable.gen == gen {
		e.applicable.entries[field] = rules
	}
	e.applicable.mu.Unlock()
	return rules
}

// ResetRuleCache drops every applicability entry and the result cache.
func (e *Engine) ResetRuleCache() {
	e.applicable.mu.Lock()
	e.applicable.gen++
	n := len(e.applicable.entries)
	e.applicable.entries = make(map[form.Field][]*Rule)
	e.applicable.mu.Unlock()

	e.logger.Debug("Rule cache reset", logger.Cache("rules"), slog.Int("entries", n))
	e.observer.CacheReset("rules")
	e.ResetResultCache()
}

// Forget drops the cached state of a field that left the document.
func (e *Engine) Forget(field form.Field) {
	if field == nil {
		return
	}
	e.applicable.mu.Lock()
	delete(e.applicable.entries, field)
	e.applicable.mu.Unlock()

	if f := field.Form(); f != nil {
		e.forms.markValid(f, field)
	}
}
