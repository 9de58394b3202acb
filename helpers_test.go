package formguard_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

// counted wraps a predicate and counts its invocations.
func counted(n *atomic.Int32, fn formguard.Predicate) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		n.Add(1)
		return fn(rc)
	}
}

func always(o formguard.Outcome) formguard.Predicate {
	return func(*formguard.RuleContext) (formguard.Outcome, error) { return o, nil }
}

func mustDefine(t *testing.T, e *formguard.Engine, name string, rule formguard.Rule) {
	t.Helper()
	require.NoError(t, e.DefineRule(name, rule))
}

func mustValidate(t *testing.T, e *formguard.Engine, field form.Field) formguard.FieldResult {
	t.Helper()
	res, err := e.ValidateField(context.Background(), field)
	require.NoError(t, err)
	return res
}

type display struct {
	mu     sync.Mutex
	shown  map[string]string
	hidden map[string]int
}

func newDisplay() *display {
	return &display{shown: make(map[string]string), hidden: make(map[string]int)}
}

func (d *display) Show(field form.Field, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown[field.Name()] = msg
}

func (d *display) Hide(field form.Field) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.shown, field.Name())
	d.hidden[field.Name()]++
}

func (d *display) message(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	msg, ok := d.shown[name]
	return msg, ok
}

type observer struct {
	mu        sync.Mutex
	evaluated map[string]int
	cached    map[string]int
	errored   map[string]int
	resets    map[string]int
	evicted   int
}

func newObserver() *observer {
	return &observer{
		evaluated: make(map[string]int),
		cached:    make(map[string]int),
		errored:   make(map[string]int),
		resets:    make(map[string]int),
	}
}

func (o *observer) RuleEvaluated(rule string, _, cached bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.evaluated[rule]++
	if cached {
		o.cached[rule]++
	}
}

func (o *observer) RuleErrored(rule string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errored[rule]++
}

func (o *observer) CacheReset(cache string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resets[cache]++
}

func (o *observer) CacheEvicted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.evicted++
}

type submitter struct {
	calls atomic.Int32
	err   error
}

func (s *submitter) Submit(_ context.Context, f form.Form) (*submit.Result, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &submit.Result{RequestID: "req-1", StatusCode: 200}, nil
}
