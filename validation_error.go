package formguard

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// ValidationError is the error form of an invalid FormResult: failing field
// names mapped to their messages.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return ValidationError{}
}

// Error renders "validation error: <field>: <first message>, ..." in field
// name order.
func (e ValidationError) Error() string {
	if e.IsEmpty() {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation error: ")
	sep := ""
	for _, name := range e.Fields() {
		msg := e.Get(name)
		if msg == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(msg)
		sep = ", "
	}
	return b.String()
}

func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message recorded for field.
func (e ValidationError) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e ValidationError) Has(field string) bool { return len(e[field]) > 0 }

func (e ValidationError) IsEmpty() bool { return len(e) == 0 }

// Fields lists failing fields sorted by name.
func (e ValidationError) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}
