// Package submit sends validated forms over HTTP.
//
// Client encodes a form snapshot (see form.Snapshot) as
// application/x-www-form-urlencoded and sends it to the form's action URL with
// the form's method. GET requests carry the values in the query string; every
// other method sends them in the body. The action must be absolute
// (http/https) or root-relative; root-relative actions are resolved against
// the configured base URL.
//
//	c := submit.New(submit.WithBaseURL("https://example.com"))
//	res, err := c.Submit(ctx, doc)
//
// Every request carries an X-Request-ID header with a fresh UUID. Non-2xx
// responses are returned as errors wrapping ErrUnexpectedStatus together with
// the Result, so callers can still inspect the status and body.
//
// The default HTTP client comes from github.com/hashicorp/go-cleanhttp, a
// pooled client that does not share global transport state.
package submit
