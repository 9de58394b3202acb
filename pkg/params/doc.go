// Package params parses the attribute parameter mini-language used by
// formguard rules.
//
// A rule attribute such as `between="5,10"` or `one-of="yes, no"` carries its
// arguments as a single string. Parse turns that string into an ordered List
// of typed Param values.
//
// # Grammar
//
//	list   = [ item { "," item } ]
//	item   = bool | number | string
//	bool   = "true" | "false"
//	number = decimal | exponent | "0x" hex | "0o" octal | "0b" binary | ["+"|"-"] "Infinity"
//
// Every item is trimmed of surrounding whitespace and empty items are dropped,
// so `" 5 , ,10 "` yields [5, 10]. Items that are neither a boolean literal nor
// a number stay strings. Number recognition follows the JavaScript Number()
// conversion that form authors expect, so `"1e3"` is 1000 and `"0x10"` is 16,
// while `"NaN"` and `"inf"` remain strings.
//
// Positional typing matters downstream: message formatters receive params in
// declaration order and render them with Param.String.
package params
