package formguard

import (
	"time"

	"github.com/dmitrymomot/formguard/pkg/form"
)

// Observer receives engine telemetry. Implementations must be safe for
// concurrent use. See pkg/metrics for a Prometheus implementation.
type Observer interface {
	// RuleEvaluated is called once per rule evaluation; cached reports a
	// result cache hit.
	RuleEvaluated(rule string, failed, cached bool, d time.Duration)
	// RuleErrored is called when a predicate returns an error, panics or
	// times out.
	RuleErrored(rule string)
	// CacheReset is called when the "rules" or "results" cache is dropped.
	CacheReset(cache string)
	// CacheEvicted is called for every entry leaving the result cache,
	// whether pushed out by capacity or dropped by a reset.
	CacheEvicted(cache string)
}

type noopObserver struct{}

func (noopObserver) RuleEvaluated(string, bool, bool, time.Duration) {}
func (noopObserver) RuleErrored(string)                              {}
func (noopObserver) CacheReset(string)                               {}
func (noopObserver) CacheEvicted(string)                             {}

// Display renders field errors. Show is called for every failing field
// validation and Hide for every passing one. With FieldConcurrency above one
// calls may arrive concurrently.
type Display interface {
	Show(field form.Field, message string)
	Hide(field form.Field)
}

type noopDisplay struct{}

func (noopDisplay) Show(form.Field, string) {}
func (noopDisplay) Hide(form.Field)         {}
