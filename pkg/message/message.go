package message

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// FieldToken is the placeholder replaced by the field label.
const FieldToken = "field"

var tokenRegex = regexp.MustCompile(`\{(\w+)\}`)

// Keyed replaces `{token}` placeholders with values from the map.
// Unknown tokens are kept as they are. `{field}` resolves to label when label
// is not empty, otherwise it is looked up in values like any other token.
func Keyed(tmpl, label string, values map[string]any) string {
	return tokenRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		token := match[1 : len(match)-1]
		if token == FieldToken && label != "" {
			return label
		}
		if v, ok := values[token]; ok {
			return stringify(v)
		}
		return match
	})
}

// Positional replaces `{token}` placeholders with positional params.
//
// A token whose name appears in names at index i takes params[i] when that
// position exists. Every other token takes the first param that has not yet
// been handed out by this fallback path, in call order, or "" when none are
// left. Named lookups do not consume from the fallback sequence.
func Positional(tmpl, label string, params, names []string) string {
	next := 0
	return tokenRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		token := match[1 : len(match)-1]
		if token == FieldToken {
			return label
		}

		if i := slices.Index(names, token); i != -1 && i < len(params) {
			return params[i]
		}

		if next < len(params) {
			v := params[next]
			next++
			return v
		}
		return ""
	})
}

// Tokens lists the placeholder names used in tmpl in order of appearance.
func Tokens(tmpl string) []string {
	matches := tokenRegex.FindAllStringSubmatch(tmpl, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// List joins items into a human readable enumeration:
// "a", "a and b", "a, b, and c".
func List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// FileSize renders a byte count with a binary unit rounded to one decimal.
func FileSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d bytes", bytes)
	}

	units := []string{"KB", "MB", "GB", "TB"}
	size := float64(bytes) / 1024
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	rounded := float64(int64(size*10+0.5)) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[unit]
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprint(val)
	}
}
