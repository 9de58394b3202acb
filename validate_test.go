package formguard_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/rules"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

func TestValidateField(t *testing.T) {
	e := formguard.New(formguard.WithRules(rules.All()))

	t.Run("empty optional field skips rules", func(t *testing.T) {
		var calls atomic.Int32
		local := formguard.New()
		mustDefine(t, local, "alpha", formguard.Rule{Validate: counted(&calls, always(formguard.Fail()))})

		field := form.NewControl("nickname", form.TypeText, form.WithAttr("alpha", ""))
		form.New().Add(field)

		res := mustValidate(t, local, field)
		assert.Equal(t, formguard.FieldResult{IsValid: true}, res)
		assert.Zero(t, calls.Load())
	})

	t.Run("empty required field", func(t *testing.T) {
		field := form.NewControl("name", form.TypeText, form.Required())
		form.New().Add(field)

		res := mustValidate(t, e, field)
		assert.False(t, res.IsValid)
		assert.Equal(t, "This field is required.", res.Message)
	})

	t.Run("whitespace is empty", func(t *testing.T) {
		field := form.NewControl("name", form.TypeText, form.WithValue("   "), form.Required())
		form.New().Add(field)
		assert.False(t, mustValidate(t, e, field).IsValid)
	})

	t.Run("between", func(t *testing.T) {
		field := form.NewControl("qty", form.TypeText, form.WithValue("4"), form.WithAttr("between", "5,10"))
		form.New().Add(field)

		res := mustValidate(t, e, field)
		assert.Equal(t, formguard.FieldResult{Message: "Must be between 5 and 10."}, res)

		field.SetValue("6")
		assert.Equal(t, formguard.FieldResult{IsValid: true}, mustValidate(t, e, field))
	})

	t.Run("disabled fields are empty", func(t *testing.T) {
		field := form.NewControl("name", form.TypeText, form.WithValue("x"), form.Required(), form.Disabled())
		form.New().Add(field)
		assert.False(t, mustValidate(t, e, field).IsValid)
	})

	t.Run("stops at the first failing rule", func(t *testing.T) {
		var first, second atomic.Int32
		local := formguard.New()
		mustDefine(t, local, "first", formguard.Rule{Validate: counted(&first, always(formguard.Fail())), Message: "First."})
		mustDefine(t, local, "second", formguard.Rule{Validate: counted(&second, always(formguard.Fail())), Message: "Second."})

		field := form.NewControl("x", form.TypeText, form.WithValue("v"),
			form.WithAttr("second", ""), form.WithAttr("first", ""))
		form.New().Add(field)

		assert.Equal(t, "First.", mustValidate(t, local, field).Message)
		assert.Equal(t, int32(1), first.Load())
		assert.Zero(t, second.Load())
	})

	t.Run("nil field", func(t *testing.T) {
		_, err := e.ValidateField(context.Background(), nil)
		assert.ErrorIs(t, err, formguard.ErrNilField)
	})

	t.Run("field without form", func(t *testing.T) {
		field := form.NewControl("code", form.TypeText, form.WithValue("abc"), form.WithAttr("digits", "3"))
		res := mustValidate(t, e, field)
		assert.Equal(t, "Must be exactly 3 digits.", res.Message)
	})
}

func TestRequiredResolution(t *testing.T) {
	t.Run("first required signal wins", func(t *testing.T) {
		var first, second atomic.Int32
		e := formguard.New()
		mustDefine(t, e, "requiredIf", formguard.Rule{
			Validate:       counted(&first, always(formguard.RequiredWhen(true))),
			ChecksRequired: true,
			ChecksTarget:   true,
		})
		mustDefine(t, e, "requiredWith", formguard.Rule{
			Validate:       counted(&second, always(formguard.RequiredWhen(true))),
			ChecksRequired: true,
			ChecksTarget:   true,
		})

		field := form.NewControl("state", form.TypeText,
			form.WithAttr("required-if", "country:US"), form.WithAttr("required-with", "country"))
		form.New().Add(field)

		required, err := e.IsFieldRequired(context.Background(), field)
		require.NoError(t, err)
		assert.True(t, required)
		assert.Equal(t, int32(1), first.Load())
		assert.Zero(t, second.Load())
	})

	t.Run("undeclared required rules are ignored", func(t *testing.T) {
		var calls atomic.Int32
		e := formguard.New()
		mustDefine(t, e, "requiredIf", formguard.Rule{
			Validate:       counted(&calls, always(formguard.RequiredWhen(true))),
			ChecksRequired: true,
		})
		field := form.NewControl("state", form.TypeText)
		form.New().Add(field)

		required, err := e.IsFieldRequired(context.Background(), field)
		require.NoError(t, err)
		assert.False(t, required)
		assert.Zero(t, calls.Load())
	})

	t.Run("native flag", func(t *testing.T) {
		e := formguard.New()
		field := form.NewControl("state", form.TypeText, form.Required())
		required, err := e.IsFieldRequired(context.Background(), field)
		require.NoError(t, err)
		assert.True(t, required)
	})

	t.Run("required rules do not run as ordinary rules", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		country := form.NewControl("country", form.TypeText, form.WithValue("CA"))
		field := form.NewControl("state", form.TypeText, form.WithValue("x"), form.WithAttr("required-if", "country:US"))
		form.New().Add(country, field)

		assert.True(t, mustValidate(t, e, field).IsValid)
		assert.Empty(t, e.ApplicableRules(field))
	})
}

func signupForm(opts ...form.DocumentOption) (*form.Document, []*form.Control) {
	fields := []*form.Control{
		form.NewControl("username", form.TypeText, form.WithValue("jd"), form.WithAttr("between-char", "3,16")),
		form.NewControl("email", form.TypeEmail, form.WithValue("jane@example.com")),
		form.NewControl("age", form.TypeNumber, form.WithValue("12"), form.WithAttr("min", "18")),
	}
	return form.New(append([]form.DocumentOption{form.WithFormID("signup")}, opts...)...).Add(fields...), fields
}

func TestValidateForm(t *testing.T) {
	ctx := context.Background()

	t.Run("stop on first error", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, _ := signupForm()

		res, err := e.ValidateForm(ctx, f, true)
		require.NoError(t, err)
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "username", res.Errors[0].Name)
	})

	t.Run("collect all", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, fields := signupForm()

		res, err := e.ValidateForm(ctx, f, false)
		require.NoError(t, err)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, "username", res.Errors[0].Name)
		assert.Equal(t, "age", res.Errors[1].Name)
		assert.Same(t, fields[2], res.Errors[1].Field)
		assert.Equal(t, "Value must be greater than or equal to 18.", res.Errors[1].Message)
	})

	t.Run("concurrent collect all keeps document order", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithFieldConcurrency(4))
		f, _ := signupForm()

		for range 5 {
			res, err := e.ValidateForm(ctx, f, false)
			require.NoError(t, err)
			require.Len(t, res.Errors, 2)
			assert.Equal(t, "username", res.Errors[0].Name)
			assert.Equal(t, "age", res.Errors[1].Name)
		}
	})

	t.Run("valid form", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, fields := signupForm()
		fields[0].SetValue("jane")
		fields[2].SetValue("30")

		res, err := e.ValidateForm(ctx, f, false)
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
		assert.NoError(t, res.Err())
	})

	t.Run("result error", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, _ := signupForm()

		res, err := e.ValidateForm(ctx, f, false)
		require.NoError(t, err)

		var ve formguard.ValidationError
		require.ErrorAs(t, res.Err(), &ve)
		assert.Equal(t, []string{"age", "username"}, ve.Fields())
		assert.Equal(t, "Must be between 3 and 16 characters.", ve.Get("username"))
	})

	t.Run("nil form", func(t *testing.T) {
		_, err := formguard.New().ValidateForm(ctx, nil, true)
		assert.ErrorIs(t, err, formguard.ErrNilForm)
	})
}

func TestHooks(t *testing.T) {
	ctx := context.Background()

	t.Run("field and form hooks", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, fields := signupForm()

		var (
			mu      sync.Mutex
			valid   []string
			invalid []string
			failed  []formguard.FieldError
			passed  bool
		)
		e.SetHooks(f, formguard.Hooks{
			OnValid: func(ev formguard.FieldEvent) {
				mu.Lock()
				defer mu.Unlock()
				valid = append(valid, ev.Field.Name())
			},
			OnInvalid: func(ev formguard.FieldEvent) {
				mu.Lock()
				defer mu.Unlock()
				invalid = append(invalid, ev.Field.Name())
			},
			OnFail: func(errs []formguard.FieldError) { failed = errs },
			OnPass: func([]formguard.FieldError) { passed = true },
		})

		mustValidate(t, e, fields[0])
		mustValidate(t, e, fields[1])
		assert.Equal(t, []string{"email"}, valid)
		assert.Equal(t, []string{"username"}, invalid)

		_, err := e.ValidateForm(ctx, f, false)
		require.NoError(t, err)
		assert.Len(t, failed, 2)
		assert.False(t, passed)
		assert.Len(t, invalid, 1, "form validation does not fire field hooks")
	})

	t.Run("panicking hook is contained", func(t *testing.T) {
		e := formguard.New(formguard.WithRules(rules.All()))
		f, fields := signupForm()
		e.SetHooks(f, formguard.Hooks{
			OnInvalid: func(formguard.FieldEvent) { panic("hook") },
		})
		assert.False(t, mustValidate(t, e, fields[0]).IsValid)
	})
}

func TestDisplay(t *testing.T) {
	t.Run("show and hide", func(t *testing.T) {
		d := newDisplay()
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithDisplay(d))
		f, fields := signupForm()

		_, err := e.ValidateForm(context.Background(), f, false)
		require.NoError(t, err)

		msg, ok := d.message("age")
		require.True(t, ok)
		assert.Equal(t, "Value must be greater than or equal to 18.", msg)
		assert.Equal(t, 1, d.hidden["email"])
		assert.True(t, e.IsInvalid(fields[2]))
		assert.False(t, e.IsInvalid(fields[1]))
	})

	t.Run("wrapped messages", func(t *testing.T) {
		d := newDisplay()
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithDisplay(d))
		f, fields := signupForm()
		e.WrapMessage(f, func(field form.Field, msg string) string {
			return "<span>" + msg + "</span>"
		})

		res := mustValidate(t, e, fields[2])
		assert.Equal(t, "Value must be greater than or equal to 18.", res.Message)
		msg, _ := d.message("age")
		assert.Equal(t, "<span>Value must be greater than or equal to 18.</span>", msg)
	})

	t.Run("reset", func(t *testing.T) {
		d := newDisplay()
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithDisplay(d))
		f, fields := signupForm()

		var resets int
		e.SetHooks(f, formguard.Hooks{OnReset: func() { resets++ }})

		_, err := e.ValidateForm(context.Background(), f, false)
		require.NoError(t, err)
		require.True(t, e.IsInvalid(fields[0]))

		require.NoError(t, e.ResetForm(context.Background(), f))
		assert.False(t, e.IsInvalid(fields[0]))
		_, shown := d.message("username")
		assert.False(t, shown)
		assert.Equal(t, 1, resets)

		assert.ErrorIs(t, e.ResetForm(context.Background(), nil), formguard.ErrNilForm)
	})

	t.Run("busy while rules run", func(t *testing.T) {
		e := formguard.New()
		var sawBusy atomic.Bool
		mustDefine(t, e, "probe", formguard.Rule{
			Validate: func(rc *formguard.RuleContext) (formguard.Outcome, error) {
				if c, ok := rc.Handle.(*form.Control); ok {
					sawBusy.Store(c.Busy())
				}
				return formguard.Pass(), nil
			},
		})
		field := form.NewControl("x", form.TypeText, form.WithValue("v"), form.WithAttr("probe", ""))
		form.New().Add(field)

		mustValidate(t, e, field)
		assert.True(t, sawBusy.Load())
		assert.False(t, field.Busy())
	})
}

func TestSubmission(t *testing.T) {
	ctx := context.Background()
	validForm := func(opts ...form.DocumentOption) *form.Document {
		f, fields := signupForm(opts...)
		fields[0].SetValue("jane")
		fields[2].SetValue("30")
		return f
	}

	t.Run("submits a passing form", func(t *testing.T) {
		s := &submitter{}
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithSubmitter(s))
		f := validForm(form.WithAction("/signup", "post"))

		var (
			got    *submit.Result
			passed bool
		)
		e.SetHooks(f, formguard.Hooks{
			OnSuccess: func(res *submit.Result) { got = res },
			OnPass:    func([]formguard.FieldError) { passed = true },
		})

		res, err := e.ValidateForm(ctx, f, true)
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, int32(1), s.calls.Load())
		require.NotNil(t, got)
		assert.Equal(t, "req-1", got.RequestID)
		assert.True(t, passed)
	})

	t.Run("failure skips pass", func(t *testing.T) {
		s := &submitter{err: errors.New("503")}
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithSubmitter(s))
		f := validForm(form.WithAction("/signup", "post"))

		var (
			gotErr error
			passed bool
		)
		e.SetHooks(f, formguard.Hooks{
			OnError: func(err error) { gotErr = err },
			OnPass:  func([]formguard.FieldError) { passed = true },
		})

		_, err := e.ValidateForm(ctx, f, true)
		require.NoError(t, err)
		assert.EqualError(t, gotErr, "503")
		assert.False(t, passed)
	})

	t.Run("forms without action are not submitted", func(t *testing.T) {
		s := &submitter{}
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithSubmitter(s))

		_, err := e.ValidateForm(ctx, validForm(), true)
		require.NoError(t, err)
		assert.Zero(t, s.calls.Load())
	})

	t.Run("invalid forms are not submitted", func(t *testing.T) {
		s := &submitter{}
		e := formguard.New(formguard.WithRules(rules.All()), formguard.WithSubmitter(s))
		f, _ := signupForm(form.WithAction("/signup", "post"))

		_, err := e.ValidateForm(ctx, f, true)
		require.NoError(t, err)
		assert.Zero(t, s.calls.Load())
	})
}

func TestValidationError(t *testing.T) {
	ve := formguard.NewValidationError()
	assert.True(t, ve.IsEmpty())
	assert.Equal(t, "validation failed", ve.Error())

	ve.Add("name", "Name is required.")
	ve.Add("email", "Please enter an email address.")
	ve.Add("email", "second")

	assert.True(t, ve.Has("email"))
	assert.False(t, ve.Has("age"))
	assert.Equal(t, "Please enter an email address.", ve.Get("email"))
	assert.Equal(t, "validation error: email: Please enter an email address., name: Name is required.", ve.Error())
}
