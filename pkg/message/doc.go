// Package message interpolates validation message templates.
//
// Templates contain `{token}` placeholders where a token is a run of word
// characters. The reserved token `{field}` always receives the human-readable
// field label. Two substitution styles exist:
//
//   - Keyed substitutes tokens from a map and leaves unknown tokens literal.
//   - Positional substitutes tokens from an ordered parameter slice. A names
//     slice can bind specific positions to token names; any other token takes
//     the next unconsumed parameter from the front, or "" once exhausted.
//
// The package also carries the small formatting helpers rule messages use:
// List, FileSize and EscapeHTML.
//
//	message.Keyed("Hello {dad}, {mom}", "", map[string]any{"dad": "Jim", "mom": "Jen"})
//	// "Hello Jim, Jen"
//
//	message.Positional("Must be between {min} and {max}.", "", []string{"5", "10"}, []string{"min", "max"})
//	// "Must be between 5 and 10."
package message
