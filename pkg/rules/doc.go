// Package rules provides the built-in rule catalog for the formguard engine.
//
// Each source file groups a family of rules (`alpha_rules.go`,
// `number_rules.go`, `date_rules.go`, etc.). Every family is exposed as a
// formguard.RuleSet so callers can register only what they need; All returns
// the complete catalog in a fixed order.
//
// # Usage
//
//	engine := formguard.New(formguard.WithRules(rules.All()))
//
// A field opts into a rule by declaring its attribute, which is the
// hyphenated rule name:
//
//	<input name="age" type="number" between="18,99">
//	<input name="slug" alpha-dash>
//
// Native rules (email, url) also apply by control type.
//
// # Remote rules
//
// unique and exists look values up in a SetStore. They are only part of the
// catalog when a store is supplied:
//
//	store := redis.NewSetStore(client, "formguard:")
//	engine := formguard.New(formguard.WithRules(rules.All(rules.WithSetStore(store))))
//
// # Messages
//
// Every rule carries an English default message. Locale entries keyed by the
// rule name override it.
package rules
