package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/dmitrymomot/formguard/pkg/form"
)

// RequestIDHeader carries the submission id.
const RequestIDHeader = "X-Request-ID"

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 64 * 1024
)

// Result describes a completed submission.
type Result struct {
	RequestID  string
	StatusCode int
	Header     http.Header
	// Body holds at most the first 64KB of the response.
	Body     []byte
	Duration time.Duration
}

// OK reports a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client submits forms. The zero value is not usable; use New.
type Client struct {
	client    *http.Client
	base      *url.URL
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the pooled cleanhttp client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithBaseURL resolves root-relative actions. Invalid URLs are ignored.
func WithBaseURL(base string) Option {
	return func(cl *Client) {
		if u, err := url.Parse(base); err == nil && u.Scheme != "" && u.Host != "" {
			cl.base = u
		}
	}
}

// WithTimeout bounds each request on top of the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		client:    cleanhttp.DefaultPooledClient(),
		timeout:   defaultTimeout,
		userAgent: "formguard-submit/1.0",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the snapshot of f to its action. f must implement
// form.Submittable.
func (c *Client) Submit(ctx context.Context, f form.Form) (*Result, error) {
	s, ok := f.(form.Submittable)
	if !ok || s.Action() == "" {
		return nil, ErrNotSubmittable
	}

	target, err := c.resolve(s.Action())
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(s.Method()))
	if method == "" {
		method = http.MethodGet
	}

	values := url.Values(form.Snapshot(f))

	var body io.Reader
	if method == http.MethodGet {
		q := target.Query()
		for k, vs := range values {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	} else {
		body = strings.NewReader(values.Encode())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	result := &Result{RequestID: uuid.NewString()}
	req.Header.Set(RequestIDHeader, result.RequestID)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.Header = resp.Header
	result.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	c.logger.DebugContext(ctx, "Form submitted",
		slog.String("form", f.ID()),
		slog.String("method", method),
		slog.String("request_id", result.RequestID),
		slog.Int("status", result.StatusCode),
		slog.Duration("duration", result.Duration),
	)

	if !result.OK() {
		return result, fmt.Errorf("%w: %d", ErrUnexpectedStatus, result.StatusCode)
	}
	return result, nil
}

func (c *Client) resolve(action string) (*url.URL, error) {
	lower := strings.ToLower(action)
	switch {
	case strings.HasPrefix(lower, "http:"), strings.HasPrefix(lower, "https:"):
		u, err := url.Parse(action)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return u, nil
	case strings.HasPrefix(action, "/"):
		if c.base == nil {
			return nil, ErrMissingBaseURL
		}
		ref, err := url.Parse(action)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return c.base.ResolveReference(ref), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}
