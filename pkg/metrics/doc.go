// Package metrics exposes formguard engine telemetry to Prometheus.
//
// Collector implements formguard.Observer:
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewCollector(reg)
//	engine := formguard.New(formguard.WithObserver(collector))
//
// Metrics (namespace "formguard" unless overridden):
//   - rule_evaluations_total{rule, outcome}: evaluations by rule and outcome
//     ("pass" or "fail")
//   - rule_errors_total{rule}: predicate errors, panics and timeouts
//   - rule_evaluation_duration_seconds{rule}: evaluation latency, cache hits
//     excluded
//   - cache_hits_total{cache} / cache_misses_total{cache}: result cache use
//   - cache_resets_total{cache}: rule and result cache resets
//   - cache_evictions_total{cache}: entries leaving the result cache
package metrics
