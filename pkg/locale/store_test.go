package locale_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/locale"
)

func messages(entries map[string]any) map[string]any {
	return map[string]any{locale.NamespaceMessages: entries}
}

func TestStoreMessageFallback(t *testing.T) {
	t.Parallel()

	t.Run("falls back to en", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"en": messages(map[string]any{"required": "This field is required."}),
			"fr": messages(map[string]any{"required": "Ce champ est obligatoire."}),
		})

		assert.Equal(t, "This field is required.", s.Message("required", "de"))
		assert.Equal(t, "Ce champ est obligatoire.", s.Message("required", "fr"))
	})

	t.Run("falls back per key inside a registered locale", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"en": messages(map[string]any{"between": "EN between {min}-{max}"}),
			"fr": messages(map[string]any{"required": "Ce champ est obligatoire."}),
		})

		assert.Equal(t, "EN between {min}-{max}", s.Message("between", "fr"))
		assert.Equal(t, "digits", s.Message("digits", "fr"))
	})

	t.Run("returns key when nothing matches", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"fr": messages(map[string]any{"required": "Ce champ est obligatoire."}),
		})

		assert.Equal(t, "required", s.Message("required", "es"))
	})

	t.Run("uses base language", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"en": messages(map[string]any{"email": "Invalid email."}),
			"de": messages(map[string]any{"email": "Ungültige E-Mail."}),
		})

		assert.Equal(t, "Ungültige E-Mail.", s.Message("email", "de-AT"))
	})

	t.Run("empty locale means current", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"en": messages(map[string]any{"min": "Too short."}),
			"fr": messages(map[string]any{"min": "Trop court."}),
		})
		s.SetLocale("fr")

		assert.Equal(t, "Trop court.", s.Message("min", ""))
	})

	t.Run("nested keys", func(t *testing.T) {
		t.Parallel()
		s := locale.NewStore()
		s.Localize(map[string]map[string]any{
			"en": messages(map[string]any{"size": map[string]any{"file": "Too big."}}),
		})

		assert.Equal(t, "Too big.", s.Message("size.file", "en"))
	})
}

func TestStoreLocalizeMerges(t *testing.T) {
	t.Parallel()

	s := locale.NewStore()
	s.Localize(map[string]map[string]any{
		"en": {
			locale.NamespaceMessages: map[string]any{"required": "Required.", "email": "Bad email."},
		},
	})
	s.Localize(map[string]map[string]any{
		"en": {
			locale.NamespaceMessages: map[string]any{"required": "Please fill in."},
			locale.NamespaceNames:    map[string]any{"email": "Email address"},
		},
	})

	assert.Equal(t, "Please fill in.", s.Message("required", "en"))
	assert.Equal(t, "Bad email.", s.Message("email", "en"))
	assert.Equal(t, "Email address", s.Name("email", "en"))
	assert.Equal(t, "phone", s.Name("phone", "en"))
}

func TestStoreLocale(t *testing.T) {
	t.Parallel()

	s := locale.NewStore()
	assert.Equal(t, "en", s.Locale())

	s.SetLocale("")
	assert.Equal(t, "en", s.Locale(), "empty code keeps the current locale")

	s.SetLocale("pt_br")
	assert.Equal(t, "pt-BR", s.Locale())

	s = locale.NewStore(locale.WithDefaultLocale("fr"))
	assert.Equal(t, "fr", s.Locale())
}

func TestStoreLocalesAndHas(t *testing.T) {
	t.Parallel()

	s := locale.NewStore()
	s.Localize(map[string]map[string]any{
		"fr": messages(map[string]any{}),
		"en": messages(map[string]any{}),
		"de": nil,
	})

	assert.Equal(t, []string{"en", "fr"}, s.Locales())
	assert.True(t, s.Has("EN"))
	assert.False(t, s.Has("de"))
}

func TestStoreSubscribe(t *testing.T) {
	t.Parallel()

	s := locale.NewStore()
	var calls atomic.Int32
	s.Subscribe(func() { calls.Add(1) })

	s.Localize(map[string]map[string]any{"en": messages(map[string]any{"a": "A"})})
	s.SetLocale("fr")

	assert.Equal(t, int32(2), calls.Load())
}

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	s := locale.NewStore()
	err := s.Load(context.Background(), &locale.MapAdapter{Data: map[string]map[string]any{
		"en": messages(map[string]any{"required": "Required."}),
	}})
	require.NoError(t, err)
	assert.Equal(t, "Required.", s.Message("required", ""))

	err = s.Load(context.Background(), nil)
	require.ErrorIs(t, err, locale.ErrNilAdapter)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en-US", locale.Canonical("en_us"))
	assert.Equal(t, "de", locale.Canonical(" de "))
	assert.Equal(t, "", locale.Canonical(""))
	assert.Equal(t, "de", locale.Base("de-AT"))
	assert.Equal(t, "", locale.Base("de"))
}
