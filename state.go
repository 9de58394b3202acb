package formguard

import (
	"slices"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/locale"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

// FieldEvent is the payload of field hooks.
type FieldEvent struct {
	Field   form.Field
	Message string
}

// Hooks are the outcome callbacks of one form. Nil hooks are skipped.
type Hooks struct {
	OnValid   func(FieldEvent)
	OnInvalid func(FieldEvent)
	OnPass    func(errs []FieldError)
	OnFail    func(errs []FieldError)
	OnReset   func()
	OnSuccess func(res *submit.Result)
	OnError   func(err error)
}

// WrapFunc post-processes a message before it reaches the Display.
type WrapFunc func(field form.Field, message string) string

type groupMessage struct {
	attrs   []string
	message string
}

// override applies when field declares every grouped attribute and the
// failing attribute is part of the group.
func (g *groupMessage) override(field form.Field, attr string) (resolved, bool) {
	if !slices.Contains(g.attrs, attr) {
		return resolved{}, false
	}
	values := make([]string, 0, len(g.attrs))
	for _, a := range g.attrs {
		v, ok := field.Attr(a)
		if !ok {
			return resolved{}, false
		}
		values = append(values, v)
	}
	return resolved{template: g.message, params: values, names: g.attrs, group: true}, true
}

type formState struct {
	locale  string
	hooks   Hooks
	group   *groupMessage
	wrap    WrapFunc
	invalid map[form.Field]struct{}
}

type formStates struct {
	mu    sync.RWMutex
	forms map[form.Form]*formState
}

func newFormStates() *formStates {
	return &formStates{forms: make(map[form.Form]*formState)}
}

// Must be called with lock held.
func (s *formStates) ensure(f form.Form) *formState {
	st, ok := s.forms[f]
	if !ok {
		st = &formState{invalid: make(map[form.Field]struct{})}
		s.forms[f] = st
	}
	return st
}

func (s *formStates) update(f form.Form, fn func(*formState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ensure(f))
}

func (s *formStates) read(f form.Form) (formState, bool) {
	if f == nil {
		return formState{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.forms[f]
	if !ok {
		return formState{}, false
	}
	return *st, true
}

func (s *formStates) locale(f form.Form) string {
	st, _ := s.read(f)
	return st.locale
}

func (s *formStates) markInvalid(f form.Form, field form.Field) {
	s.update(f, func(st *formState) { st.invalid[field] = struct{}{} })
}

func (s *formStates) markValid(f form.Form, field form.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.forms[f]; ok {
		delete(st.invalid, field)
	}
}

func (s *formStates) isInvalid(f form.Form, field form.Field) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.forms[f]
	if !ok {
		return false
	}
	_, invalid := st.invalid[field]
	return invalid
}

func (s *formStates) forget(f form.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, f)
}

// SetHooks replaces the outcome hooks of f.
func (e *Engine) SetHooks(f form.Form, h Hooks) {
	if f == nil {
		return
	}
	e.forms.update(f, func(st *formState) { st.hooks = h })
}

// GroupMessage makes the rules in attrs share one message on f. When a field
// declares every grouped attribute and one of them fails, message is used
// with the attribute values as positional params named after the attributes:
//
//	e.GroupMessage(f, []string{"min", "max"}, "Between {min} and {max}.")
func (e *Engine) GroupMessage(f form.Form, attrs []string, message string) {
	if f == nil {
		return
	}
	normalized := make([]string, len(attrs))
	for i, a := range attrs {
		normalized[i] = NormalizeName(a)
	}
	e.forms.update(f, func(st *formState) {
		st.group = &groupMessage{attrs: normalized, message: message}
	})
	e.ResetResultCache()
}

// WrapMessage registers a transformation applied to messages of f before
// they are displayed.
func (e *Engine) WrapMessage(f form.Form, fn WrapFunc) {
	if f == nil {
		return
	}
	e.forms.update(f, func(st *formState) { st.wrap = fn })
}

// FormLocale returns the effective locale of f: the SetFormLocale override,
// then the current locale when SetLocale was called, then the declared
// document language, then the current locale.
func (e *Engine) FormLocale(f form.Form) string {
	if f == nil {
		return e.locales.Locale()
	}
	if code := e.forms.locale(f); code != "" {
		return code
	}
	if !e.localeSet.Load() {
		if code := canonicalLocale(f.Lang()); code != "" {
			return code
		}
	}
	return e.locales.Locale()
}

func (e *Engine) fieldLocale(field form.Field) string {
	return e.FormLocale(field.Form())
}

// IsInvalid reports whether the last validation of field failed.
func (e *Engine) IsInvalid(field form.Field) bool {
	if field == nil || field.Form() == nil {
		return false
	}
	return e.forms.isInvalid(field.Form(), field)
}

// ForgetForm drops the per-form state and the cached rules of its fields.
func (e *Engine) ForgetForm(f form.Form) {
	if f == nil {
		return
	}
	e.forms.forget(f)

	e.applicable.mu.Lock()
	for _, field := range f.Fields() {
		delete(e.applicable.entries, field)
	}
	e.applicable.mu.Unlock()
}

func canonicalLocale(code string) string {
	return locale.Canonical(code)
}
