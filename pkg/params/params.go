package params

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a parsed parameter.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Param is a single typed attribute argument.
type Param struct {
	kind Kind
	raw  string
	num  float64
	b    bool
}

// String creates a string parameter.
func String(s string) Param { return Param{kind: KindString, raw: s} }

// Number creates a numeric parameter.
func Number(f float64) Param {
	return Param{kind: KindNumber, raw: FormatNumber(f), num: f}
}

// Bool creates a boolean parameter.
func Bool(b bool) Param { return Param{kind: KindBool, raw: strconv.FormatBool(b), b: b} }

func (p Param) Kind() Kind { return p.kind }

// Raw returns the trimmed source token the parameter was parsed from.
func (p Param) Raw() string { return p.raw }

// String renders the parameter the way it appears in messages.
// Numbers use their canonical form, so "007" renders as "7".
func (p Param) String() string {
	switch p.kind {
	case KindNumber:
		return FormatNumber(p.num)
	case KindBool:
		return strconv.FormatBool(p.b)
	default:
		return p.raw
	}
}

// Float returns the numeric value of the parameter.
// Strings are converted with the same rules used by Parse; ok is false when
// the parameter has no numeric meaning.
func (p Param) Float() (float64, bool) {
	switch p.kind {
	case KindNumber:
		return p.num, true
	case KindBool:
		if p.b {
			return 1, true
		}
		return 0, true
	default:
		return ParseNumber(p.raw)
	}
}

// Int returns the parameter truncated to an integer.
func (p Param) Int() (int, bool) {
	f, ok := p.Float()
	if !ok || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Bool reports the boolean value of the parameter. Only KindBool parameters
// are considered; everything else returns ok == false.
func (p Param) Bool() (value bool, ok bool) {
	if p.kind != KindBool {
		return false, false
	}
	return p.b, true
}

// List is an ordered set of parameters.
type List []Param

// At returns the parameter at index i, or a zero string parameter and false
// when the list is shorter.
func (l List) At(i int) (Param, bool) {
	if i < 0 || i >= len(l) {
		return Param{}, false
	}
	return l[i], true
}

// StringAt returns the rendered parameter at index i or "" when absent.
func (l List) StringAt(i int) string {
	p, ok := l.At(i)
	if !ok {
		return ""
	}
	return p.String()
}

// Strings renders every parameter.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, p := range l {
		out[i] = p.String()
	}
	return out
}

// Contains reports whether any parameter renders to s.
func (l List) Contains(s string) bool {
	for _, p := range l {
		if p.String() == s {
			return true
		}
	}
	return false
}

// Parse splits an attribute value into typed parameters.
func Parse(attrValue string) List {
	if attrValue == "" {
		return nil
	}

	var out List
	for part := range strings.SplitSeq(attrValue, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseItem(part))
	}
	return out
}

func parseItem(s string) Param {
	switch s {
	case "true":
		return Param{kind: KindBool, raw: s, b: true}
	case "false":
		return Param{kind: KindBool, raw: s, b: false}
	}
	if f, ok := ParseNumber(s); ok {
		return Param{kind: KindNumber, raw: s, num: f}
	}
	return Param{kind: KindString, raw: s}
}

// ParseNumber converts s using JavaScript Number() semantics restricted to
// finite decimal, exponent and prefixed integer notations plus "Infinity".
// An empty or all-space string converts to 0.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, err := strconv.ParseInt(s, 0, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	// ParseFloat accepts spellings Number() rejects.
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f the way JavaScript stringifies numbers for integers
// and ordinary decimals.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
