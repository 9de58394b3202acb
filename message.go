package formguard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/message"
)

// DefaultMessage is used when neither the locale nor the rule has a message.
const DefaultMessage = "The {field} field is invalid."

// DefaultLabel is the label of a field without name, aria label or id.
const DefaultLabel = "Field"

// resolved is a message template plus, for group overrides, the params and
// token names that replace the rule's own.
type resolved struct {
	template string
	params   []string
	names    []string
	group    bool
}

func (e *Engine) resolveMessage(key string, field form.Field, rule *Rule, loc string) resolved {
	if st, ok := e.forms.read(field.Form()); ok && st.group != nil {
		if r, ok := st.group.override(field, rule.Attr); ok {
			r.template = e.locales.Message(r.template, loc)
			return r
		}
	}

	tmpl := e.locales.Message(key, loc)
	if tmpl == rule.Name {
		tmpl = rule.Message
		if tmpl == "" {
			tmpl = DefaultMessage
		}
	}
	return resolved{template: tmpl}
}

func (e *Engine) formatMessage(ctx context.Context, r resolved, field form.Field, rule *Rule, rc *RuleContext) string {
	label := e.Label(field)

	if r.group {
		return message.Positional(r.template, label, r.params, r.names)
	}
	if rule.Format != nil {
		if values, ok := e.keyedValues(ctx, rule, rc); ok {
			return message.Keyed(r.template, label, values)
		}
	}
	return message.Positional(r.template, label, rc.Params.Strings(), rule.FormatNames)
}

func (e *Engine) keyedValues(ctx context.Context, rule *Rule, rc *RuleContext) (values map[string]any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "Rule format function panicked",
				logger.Rule(rule.Name),
				logger.Error(fmt.Errorf("%v", r)),
			)
			values, ok = nil, false
		}
	}()
	return rule.Format(rc), true
}

// Label is the human readable name of field: its localized name, the
// prettified field name, its aria label, its id, or "Field".
func (e *Engine) Label(field form.Field) string {
	if name := field.Name(); name != "" {
		if l := e.locales.Name(name, e.fieldLocale(field)); l != "" && l != name {
			return l
		}
		return prettify(name)
	}
	if l := field.Label(); l != "" {
		return l
	}
	if id := field.ID(); id != "" {
		return id
	}
	return DefaultLabel
}

var separators = strings.NewReplacer("-", " ", "_", " ")

// prettify turns "first_name" into "First Name": separators become spaces
// and the first rune of every word is upper-cased. A word starts after any
// rune that is not a letter or digit, so "user.name" gives "User.Name" and
// "2fa_code" gives "2fa Code". Casers are stateful, so one is made per call.
func prettify(name string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	prevWord := false
	for _, r := range separators.Replace(name) {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			b.WriteString(upper.String(string(r)))
		} else {
			b.WriteRune(r)
		}
		prevWord = word
	}
	return b.String()
}

// Localize merges dictionaries into the locale store and drops memoized
// messages.
func (e *Engine) Localize(locales map[string]map[string]any) {
	e.locales.Localize(locales)
}

// SetLocale changes the current locale used by forms without an override.
func (e *Engine) SetLocale(code string) {
	e.locales.SetLocale(code)
	e.localeSet.Store(true)
	e.logger.Debug("Locale changed", logger.Locale(e.locales.Locale()))
}

// SetFormLocale overrides the locale of f and revalidates every field of f
// that is currently invalid, so displayed messages switch language.
func (e *Engine) SetFormLocale(ctx context.Context, f form.Form, code string) error {
	if f == nil {
		return ErrNilForm
	}
	code = canonicalLocale(code)
	e.forms.update(f, func(st *formState) { st.locale = code })
	e.ResetResultCache()

	e.logger.DebugContext(ctx, "Form locale changed",
		logger.Form(f.ID()),
		logger.Locale(code),
	)

	for _, field := range f.Fields() {
		if !e.forms.isInvalid(f, field) {
			continue
		}
		e.validateField(ctx, field, false)
	}
	return nil
}

// Message returns the localized message template for key. An empty locale
// means the current one.
func (e *Engine) Message(key, locale string) string {
	return e.locales.Message(key, locale)
}

// Name returns the localized field name for key.
func (e *Engine) Name(key, locale string) string {
	return e.locales.Name(key, locale)
}

// ResetResultCache drops every memoized verdict.
func (e *Engine) ResetResultCache() {
	n := e.results.Clear()
	e.logger.Debug("Result cache reset", logger.Cache("results"), slog.Int("entries", n))
	e.observer.CacheReset("results")
}
