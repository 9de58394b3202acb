// Package locale is the process-wide dictionary of localized validation
// messages and field names used by formguard.
//
// A Store maps locale codes to namespaces ("messages", "names", or any other
// key a host wants) and each namespace to key → template entries:
//
//	store := locale.NewStore(locale.WithDefaultLocale("en"))
//	store.Localize(map[string]map[string]any{
//		"en": {
//			"messages": map[string]any{"required": "This field is required."},
//			"names":    map[string]any{"email": "Email address"},
//		},
//	})
//
//	store.Message("required", "")   // "This field is required."
//	store.Name("email", "de")       // "Email address" (falls back to en)
//
// # Merge semantics
//
// Localizing the same locale twice deep-merges nested maps and overwrites
// non-map leaves, so partial dictionaries can be layered on top of defaults.
//
// # Fallback chain
//
// Lookups try the requested locale (or the current one when empty), then its
// base language (de-AT → de), then the fallback locale ("en"), and finally
// return the caller's default, which is the key itself for Message and Name.
// Locale codes are canonicalized with golang.org/x/text/language, so "en_us"
// and "en-US" address the same entry.
//
// The chain is walked per key, not per locale: a registered "fr" dictionary
// that lacks "between" still yields the "en" entry for it, rather than the
// caller's default. Hosts that want a rule's built-in message for missing
// keys must leave the key out of "en" as well.
//
// # Loading
//
// Dictionaries can come from maps, single files, directories or any fs.FS
// through the Adapter interface; YAML and JSON parsers are provided. Watcher
// reloads a directory when its files change.
//
// All Store methods are safe for concurrent use. Subscribe registers callbacks
// that run after every change, which formguard uses to drop memoized messages.
package locale
