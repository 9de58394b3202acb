package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when nothing else declares a language.
const DefaultLocale = "en"

// Canonical normalizes a locale code ("en_us" → "en-US"). Codes that are not
// valid BCP 47 tags are returned trimmed but otherwise unchanged.
func Canonical(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

// Base returns the base language of a code ("de-AT" → "de"), or "" when the
// code has no distinct base.
func Base(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		if i := strings.IndexAny(code, "-_"); i > 0 {
			return code[:i]
		}
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	if b := base.String(); b != code {
		return b
	}
	return ""
}
