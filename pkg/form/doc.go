// Package form defines the field reader contract formguard validates against
// and ships an in-memory implementation of it.
//
// A Field is any addressable form control. The engine only needs its logical
// name, type tag, declared attributes, normalized value and owning Form. Host
// integrations (a DOM bridge, a templ renderer, a request binder) implement
// Field and Form for their own handles; Control and Document cover tests,
// CLIs and server-side rendering.
//
// # Value normalization
//
// Value is a tagged union produced per type:
//
//   - disabled control            → Null
//   - text-like, textarea         → Text (raw string)
//   - select-one                  → Text (selected value or "")
//   - select-multiple             → List (selected non-empty values)
//   - checkbox, radio             → Text (value when checked, else "")
//   - file                        → Files (or Null when nothing is chosen)
//
// # Form data snapshot
//
// Snapshot flattens a Form into Data keyed by field name following browser
// form-data rules: disabled and unnamed controls are skipped, unchecked
// checkboxes and radios contribute nothing, and repeated names collect their
// values in document order.
package form
