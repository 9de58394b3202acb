package submit_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

func newDoc(action, method string) *form.Document {
	doc := form.New(form.WithAction(action, method))
	doc.Add(
		form.NewControl("email", form.TypeEmail, form.WithValue("jane@example.com")),
		form.NewControl("tags", form.TypeSelectMultiple, form.WithSelected("a", "b")),
	)
	return doc
}

func TestSubmitPost(t *testing.T) {
	t.Parallel()

	var gotBody, gotType, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get(submit.RequestIDHeader)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	res, err := submit.New().Submit(context.Background(), newDoc(srv.URL+"/signup", "post"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.True(t, res.OK())
	assert.Equal(t, "ok", string(res.Body))
	assert.Equal(t, "email=jane%40example.com&tags=a&tags=b", gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
	assert.Equal(t, res.RequestID, gotID)
	assert.NotEmpty(t, gotID)
}

func TestSubmitGetUsesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
	}))
	defer srv.Close()

	c := submit.New(submit.WithBaseURL(srv.URL))
	_, err := c.Submit(context.Background(), newDoc("/search?page=2", ""))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "email=jane%40example.com&page=2&tags=a&tags=b", gotQuery)
}

func TestSubmitErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := submit.New()

	t.Run("non-2xx", func(t *testing.T) {
		res, err := c.Submit(context.Background(), newDoc(srv.URL, "POST"))
		require.ErrorIs(t, err, submit.ErrUnexpectedStatus)
		require.NotNil(t, res)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	t.Run("relative action", func(t *testing.T) {
		_, err := c.Submit(context.Background(), newDoc("signup", "POST"))
		require.ErrorIs(t, err, submit.ErrInvalidAction)
	})

	t.Run("root-relative without base", func(t *testing.T) {
		_, err := c.Submit(context.Background(), newDoc("/signup", "POST"))
		require.ErrorIs(t, err, submit.ErrMissingBaseURL)
	})

	t.Run("no action", func(t *testing.T) {
		_, err := c.Submit(context.Background(), form.New())
		require.ErrorIs(t, err, submit.ErrNotSubmittable)
	})
}
