package formguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/async"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

// FieldError is a failing field within a form result.
type FieldError struct {
	Field   form.Field `json:"-"`
	Name    string     `json:"field"`
	Message string     `json:"message"`
}

// FormResult is the outcome of validating a form. Errors follow document
// order.
type FormResult struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// Err returns nil for a valid result and a ValidationError otherwise.
func (r FormResult) Err() error {
	if r.IsValid {
		return nil
	}
	ve := NewValidationError()
	for _, fe := range r.Errors {
		ve.Add(fe.Name, fe.Message)
	}
	return ve
}

// ValidateField validates one field, updates the display and fires the
// field hooks of its form.
//
//   - not required and empty: valid, empty message
//   - required and empty: invalid with the required message
//   - otherwise: applicable rules run in order until the first failure
func (e *Engine) ValidateField(ctx context.Context, field form.Field) (FieldResult, error) {
	if field == nil {
		return FieldResult{}, ErrNilField
	}
	return e.validateField(ctx, field, false), nil
}

func (e *Engine) validateField(ctx context.Context, field form.Field, fromSubmit bool) FieldResult {
	present := field.Value().Present()
	required := e.isRequired(ctx, field)

	var res FieldResult
	switch {
	case !required && !present:
		res = FieldResult{IsValid: true}
	case required && !present:
		res = FieldResult{Message: e.requiredMessage(ctx, field)}
	default:
		busy, _ := field.(form.Busier)
		if busy != nil {
			busy.SetBusy(true)
		}
		res = e.checkFieldValidity(ctx, field)
		if busy != nil {
			busy.SetBusy(false)
		}
	}

	e.settle(ctx, field, res, fromSubmit)
	return res
}

// CheckFieldValidity runs the applicable rules of field in order and stops
// at the first failure. Required-ness is not considered.
func (e *Engine) CheckFieldValidity(ctx context.Context, field form.Field) (FieldResult, error) {
	if field == nil {
		return FieldResult{}, ErrNilField
	}
	return e.checkFieldValidity(ctx, field), nil
}

func (e *Engine) checkFieldValidity(ctx context.Context, field form.Field) FieldResult {
	for _, rule := range e.applicableRules(field) {
		if v := e.evaluate(ctx, rule, field); v.Failed {
			return FieldResult{Message: v.Message}
		}
	}
	return FieldResult{IsValid: true}
}

// settle records the result, updates the display and fires field hooks.
func (e *Engine) settle(ctx context.Context, field form.Field, res FieldResult, fromSubmit bool) {
	f := field.Form()
	st, _ := e.forms.read(f)

	if res.IsValid {
		e.display.Hide(field)
		if f != nil {
			e.forms.markValid(f, field)
		}
	} else {
		msg := res.Message
		if st.wrap != nil {
			msg = e.wrap(ctx, st.wrap, field, msg)
		}
		e.display.Show(field, msg)
		if f != nil {
			e.forms.markInvalid(f, field)
		}
	}

	if fromSubmit {
		return
	}
	event := FieldEvent{Field: field, Message: res.Message}
	if res.IsValid {
		emit(e, ctx, "OnValid", st.hooks.OnValid, event)
	} else {
		emit(e, ctx, "OnInvalid", st.hooks.OnInvalid, event)
	}
}

// ValidateForm validates every field of f in document order. With
// stopOnFirstError the loop ends at the first failing field; otherwise all
// failures are collected, concurrently when FieldConcurrency allows.
// Afterwards a passing form is submitted when a Submitter is configured and
// the form hooks fire.
func (e *Engine) ValidateForm(ctx context.Context, f form.Form, stopOnFirstError bool) (FormResult, error) {
	if f == nil {
		return FormResult{}, ErrNilForm
	}
	ctx = logger.ContextWithForm(ctx, f.ID())

	fields := f.Fields()
	result := FormResult{IsValid: true, Errors: []FieldError{}}

	var results []FieldResult
	if e.fieldConcurrency > 1 && !stopOnFirstError && len(fields) > 1 {
		var err error
		results, err = e.validateConcurrently(ctx, fields)
		if err != nil {
			return FormResult{}, err
		}
	} else {
		results = make([]FieldResult, 0, len(fields))
		for _, field := range fields {
			res := e.validateField(ctx, field, true)
			results = append(results, res)
			if !res.IsValid && stopOnFirstError {
				break
			}
		}
	}

	for i, res := range results {
		if res.IsValid {
			continue
		}
		result.IsValid = false
		result.Errors = append(result.Errors, FieldError{
			Field:   fields[i],
			Name:    fieldKey(fields[i]),
			Message: res.Message,
		})
	}

	e.logger.DebugContext(ctx, "Form validated",
		slog.Bool("valid", result.IsValid),
		slog.Int("errors", len(result.Errors)),
	)

	e.finishForm(ctx, f, result)
	return result, nil
}

func (e *Engine) validateConcurrently(ctx context.Context, fields []form.Field) ([]FieldResult, error) {
	sem := make(chan struct{}, e.fieldConcurrency)
	futures := make([]*async.Future[FieldResult], len(fields))
	for i, field := range fields {
		futures[i] = async.Go(ctx, func(ctx context.Context) (FieldResult, error) {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return FieldResult{}, ctx.Err()
			}
			defer func() { <-sem }()
			return e.validateField(ctx, field, true), nil
		})
	}
	return async.WaitAll(futures...)
}

func (e *Engine) finishForm(ctx context.Context, f form.Form, result FormResult) {
	st, _ := e.forms.read(f)

	if result.IsValid && e.submitter != nil && hasAction(f) {
		res, err := e.submitter.Submit(ctx, f)
		if err != nil {
			e.logger.ErrorContext(ctx, "Form submission failed", logger.Error(err))
			emit(e, ctx, "OnError", st.hooks.OnError, err)
			return
		}
		emit(e, ctx, "OnSuccess", st.hooks.OnSuccess, res)
	}

	if result.IsValid {
		emit(e, ctx, "OnPass", st.hooks.OnPass, result.Errors)
	} else {
		emit(e, ctx, "OnFail", st.hooks.OnFail, result.Errors)
	}
}

// ResetForm hides every error of f, clears its invalid state and fires
// OnReset.
func (e *Engine) ResetForm(ctx context.Context, f form.Form) error {
	if f == nil {
		return ErrNilForm
	}
	for _, field := range f.Fields() {
		e.display.Hide(field)
		e.forms.markValid(f, field)
	}
	st, _ := e.forms.read(f)
	emit(e, ctx, "OnReset", func(struct{}) {
		if st.hooks.OnReset != nil {
			st.hooks.OnReset()
		}
	}, struct{}{})
	return nil
}

func hasAction(f form.Form) bool {
	s, ok := f.(form.Submittable)
	return ok && s.Action() != ""
}

// fieldKey names a field in results: name, then id, then aria label.
func fieldKey(field form.Field) string {
	switch {
	case field.Name() != "":
		return field.Name()
	case field.ID() != "":
		return field.ID()
	default:
		return field.Label()
	}
}

// emit calls a hook, logging instead of propagating a panic.
func emit[T any](e *Engine, ctx context.Context, name string, fn func(T), arg T) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "Hook panicked",
				slog.String("hook", name),
				logger.Error(fmt.Errorf("%v", r)),
			)
		}
	}()
	fn(arg)
}

func (e *Engine) wrap(ctx context.Context, fn WrapFunc, field form.Field, msg string) (out string) {
	out = msg
	defer func() {
		if r := recover(); r != nil {
			out = msg
			e.logger.ErrorContext(ctx, "Message wrapper panicked",
				logger.Field(field.Name()),
				logger.Error(fmt.Errorf("%v", r)),
			)
		}
	}()
	return fn(field, msg)
}
