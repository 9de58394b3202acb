package formguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Verdict is the resolved outcome of one rule evaluation. For
// required-determining rules Failed means "the field is required" and
// Message is empty.
type Verdict struct {
	Failed  bool
	Message string
}

// resultKey identifies a memoized verdict. Field, form and locale are part
// of the key because the message embeds the localized field label.
type resultKey struct {
	rule    string
	form    string
	field   string
	locale  string
	value   string
	hasAttr bool
	attr    string
}

// EvaluateRule runs one rule against field. Predicate failures never
// surface as errors; they are logged and resolved by the failure policy.
// The rule does not need to be registered.
func (e *Engine) EvaluateRule(ctx context.Context, rule Rule, field form.Field) (Verdict, error) {
	if field == nil {
		return Verdict{}, ErrNilField
	}
	if err := checkRule(&rule); err != nil {
		return Verdict{}, err
	}
	if rule.Attr == "" {
		rule.Attr = NormalizeName(rule.Name)
	}
	return e.evaluate(ctx, &rule, field), nil
}

func (e *Engine) evaluate(ctx context.Context, rule *Rule, field form.Field) Verdict {
	start := time.Now()
	loc := e.fieldLocale(field)
	rc := buildContext(field, rule, loc)

	cacheable := rc.Type != form.TypeFile && !rule.ChecksTarget
	key := resultKey{
		rule:    rule.Name,
		field:   rc.Field,
		locale:  loc,
		value:   rc.Value.Fingerprint(),
		hasAttr: rc.HasAttr,
		attr:    rc.AttrValue,
	}
	if f := field.Form(); f != nil {
		key.form = f.ID()
	}

	if cacheable {
		if v, ok := e.results.Get(key); ok {
			e.observer.RuleEvaluated(rule.Name, v.Failed, true, time.Since(start))
			return v
		}
	}

	if rule.ChecksTarget {
		if f := field.Form(); f != nil {
			rc.Form = form.Snapshot(f)
		}
	}

	outcome, err := e.run(ctx, rule, rc)
	if err != nil {
		e.logger.ErrorContext(ctx, "Rule predicate failed",
			logger.Rule(rule.Name),
			logger.Field(rc.Field),
			slog.String("policy", e.policy.String()),
			logger.Error(err),
		)
		e.observer.RuleErrored(rule.Name)
		if e.policy == FailOpen {
			e.observer.RuleEvaluated(rule.Name, false, false, time.Since(start))
			return Verdict{}
		}
		outcome = Fail()
	}

	v := e.interpret(ctx, rule, field, rc, outcome)

	// Errored evaluations are not memoized so a recovered backend is
	// consulted again.
	if cacheable && err == nil {
		e.results.Put(key, v)
	}
	e.observer.RuleEvaluated(rule.Name, v.Failed, false, time.Since(start))
	return v
}

func (e *Engine) interpret(ctx context.Context, rule *Rule, field form.Field, rc *RuleContext, outcome Outcome) Verdict {
	if rule.ChecksRequired {
		return Verdict{Failed: outcome.Failed()}
	}

	var key string
	switch outcome.Kind() {
	case OutcomePass:
		return Verdict{}
	case OutcomeFail:
		key = rule.Name
	case OutcomeFailWithKey:
		key = outcome.Key()
	default:
		return Verdict{}
	}

	r := e.resolveMessage(key, field, rule, rc.Locale)
	return Verdict{Failed: true, Message: e.formatMessage(ctx, r, field, rule, rc)}
}

// run invokes the predicate. Panics become ErrPredicatePanic; an async
// predicate that outlives RuleTimeout yields ErrRuleTimeout.
func (e *Engine) run(ctx context.Context, rule *Rule, rc *RuleContext) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = Pass(), fmt.Errorf("%w: %v", ErrPredicatePanic, r)
		}
	}()

	if rule.Validate != nil {
		return rule.Validate(rc)
	}

	if e.ruleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.ruleTimeout)
		defer cancel()
	}

	future := rule.ValidateAsync(ctx, rc)
	if future == nil {
		return Pass(), nil
	}

	out, err = future.AwaitContext(ctx)
	if errors.Is(err, context.DeadlineExceeded) && e.ruleTimeout > 0 {
		err = errors.Join(ErrRuleTimeout, err)
	}
	return out, err
}
