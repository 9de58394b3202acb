package formguard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/formguard/pkg/cache"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/locale"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

// DefaultResultCacheSize bounds the result cache unless configured otherwise.
const DefaultResultCacheSize = 4096

// FailurePolicy decides what a predicate error means.
type FailurePolicy uint8

const (
	// FailOpen treats a failing predicate as a pass.
	FailOpen FailurePolicy = iota
	// FailClosed treats a failing predicate as a failure with the rule's
	// own message.
	FailClosed
)

func (p FailurePolicy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

// Submitter sends a form that passed validation.
type Submitter interface {
	Submit(ctx context.Context, f form.Form) (*submit.Result, error)
}

// Engine owns a rule registry, its caches, a locale store and per-form state.
// It is safe for concurrent use; rules should still be registered before
// validation starts, since a redefinition only affects later evaluations.
type Engine struct {
	rules      registry
	applicable applicability
	results    *cache.LRU[resultKey, Verdict]
	locales    *locale.Store
	forms      *formStates
	// localeSet is true once SetLocale was called; from then on the current
	// locale beats the declared document language.
	localeSet atomic.Bool

	logger    *slog.Logger
	observer  Observer
	display   Display
	submitter Submitter

	policy           FailurePolicy
	ruleTimeout      time.Duration
	fieldConcurrency int
}

type engineOptions struct {
	defaultLocale    string
	resultCacheSize  int
	policy           FailurePolicy
	ruleTimeout      time.Duration
	fieldConcurrency int
	logger           *slog.Logger
	observer         Observer
	display          Display
	submitter        Submitter
	locales          *locale.Store
	rules            RuleSet
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithDefaultLocale sets the initial current locale ("en" by default).
func WithDefaultLocale(code string) Option {
	return func(o *engineOptions) { o.defaultLocale = code }
}

// WithResultCacheSize bounds the result cache. Non-positive values keep the
// default.
func WithResultCacheSize(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.resultCacheSize = n
		}
	}
}

func WithFailurePolicy(p FailurePolicy) Option {
	return func(o *engineOptions) { o.policy = p }
}

// WithRuleTimeout bounds how long an asynchronous predicate is awaited.
// Zero waits until the caller's context is done.
func WithRuleTimeout(d time.Duration) Option {
	return func(o *engineOptions) {
		if d >= 0 {
			o.ruleTimeout = d
		}
	}
}

// WithFieldConcurrency lets collect-all form validation run up to n fields
// at once. Stop-on-first-error validation is always sequential.
func WithFieldConcurrency(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.fieldConcurrency = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(o *engineOptions) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func WithDisplay(d Display) Option {
	return func(o *engineOptions) {
		if d != nil {
			o.display = d
		}
	}
}

// WithSubmitter submits forms that pass validation and declare an action.
func WithSubmitter(s Submitter) Option {
	return func(o *engineOptions) { o.submitter = s }
}

// WithLocaleStore shares an existing store instead of creating one.
func WithLocaleStore(s *locale.Store) Option {
	return func(o *engineOptions) {
		if s != nil {
			o.locales = s
		}
	}
}

// WithRules registers set while the engine is constructed.
func WithRules(set RuleSet) Option {
	return func(o *engineOptions) { o.rules = append(o.rules, set...) }
}

// New creates an isolated engine.
func New(opts ...Option) *Engine {
	o := &engineOptions{
		defaultLocale:    locale.DefaultLocale,
		resultCacheSize:  DefaultResultCacheSize,
		fieldConcurrency: 1,
		logger:           slog.Default(),
		observer:         noopObserver{},
		display:          noopDisplay{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.locales == nil {
		o.locales = locale.NewStore(
			locale.WithDefaultLocale(o.defaultLocale),
			locale.WithLogger(o.logger),
		)
	}

	e := &Engine{
		applicable:       applicability{entries: make(map[form.Field][]*Rule)},
		results:          cache.New[resultKey, Verdict](o.resultCacheSize),
		locales:          o.locales,
		forms:            newFormStates(),
		logger:           o.logger,
		observer:         o.observer,
		display:          o.display,
		submitter:        o.submitter,
		policy:           o.policy,
		ruleTimeout:      o.ruleTimeout,
		fieldConcurrency: o.fieldConcurrency,
	}

	e.results.OnEvict(func(resultKey, Verdict) { e.observer.CacheEvicted("results") })

	// Messages embed localized text.
	e.locales.Subscribe(e.ResetResultCache)

	if len(o.rules) > 0 {
		_ = e.DefineRules(o.rules)
	}
	return e
}

// Locales exposes the engine's locale store.
func (e *Engine) Locales() *locale.Store { return e.locales }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }
