package form

import (
	"io"
	"strings"
	"unicode/utf8"
)

// ValueKind tags the shape of a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindText
	KindList
	KindFiles
)

// File describes a selected upload.
type File struct {
	Name string
	Size int64
	MIME string

	// Open returns the file content. It is optional; rules that inspect
	// content treat a nil Open as unreadable.
	Open func() (io.ReadCloser, error)
}

// Value is the normalized value of a field.
type Value struct {
	kind  ValueKind
	text  string
	list  []string
	files []File
}

func Null() Value            { return Value{kind: KindNull} }
func Text(s string) Value    { return Value{kind: KindText, text: s} }
func List(v ...string) Value { return Value{kind: KindList, list: v} }
func Files(f ...File) Value  { return Value{kind: KindFiles, files: f} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Text returns the string payload of a KindText value.
func (v Value) Text() string { return v.text }

// List returns the values of a KindList value.
func (v Value) List() []string { return v.list }

// Files returns the files of a KindFiles value.
func (v Value) Files() []File { return v.files }

// String flattens the value: lists and file names are comma-joined, null is "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindList:
		return strings.Join(v.list, ",")
	case KindFiles:
		names := make([]string, len(v.files))
		for i, f := range v.files {
			names[i] = f.Name
		}
		return strings.Join(names, ",")
	default:
		return ""
	}
}

// Len is the character count for text and the element count otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindText:
		return utf8.RuneCountInString(v.text)
	case KindList:
		return len(v.list)
	case KindFiles:
		return len(v.files)
	default:
		return 0
	}
}

// Present reports whether the value carries user input: non-blank text, a
// non-empty selection, or at least one file.
func (v Value) Present() bool {
	switch v.kind {
	case KindText:
		return strings.TrimSpace(v.text) != ""
	case KindList:
		return len(v.list) > 0
	case KindFiles:
		return len(v.files) > 0
	default:
		return false
	}
}

// Fingerprint is an unambiguous encoding of the value suitable for cache keys.
func (v Value) Fingerprint() string {
	switch v.kind {
	case KindText:
		return "t:" + v.text
	case KindList:
		var b strings.Builder
		b.WriteString("l:")
		for _, s := range v.list {
			b.WriteString(strings.ReplaceAll(s, "\x00", ""))
			b.WriteByte(0)
		}
		return b.String()
	case KindFiles:
		return "f:" + v.String()
	default:
		return "n:"
	}
}
