package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error is an "error" attribute, or the empty Attr when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors keys each non-nil error by its argument index under "errors".
func Errors(errs ...error) slog.Attr {
	var group []slog.Attr
	for i, err := range errs {
		if err == nil {
			continue
		}
		group = append(group, slog.Any(strconv.Itoa(i), err))
	}
	if group == nil {
		return slog.Attr{}
	}
	return Group("errors", group...)
}

// Rule records a rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Attr records a rule attribute under the key "attr".
func Attr(attr string) slog.Attr {
	return slog.String("attr", attr)
}

// Field records a field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Form records a form identifier under the key "form".
// If id is empty, it returns an empty Attr.
func Form(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("form", id)
}

// Locale records a locale code under the key "locale".
func Locale(code string) slog.Attr {
	return slog.String("locale", code)
}

// Cache records a cache name under the key "cache".
func Cache(name string) slog.Attr {
	return slog.String("cache", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
