package form

// Common type tags.
const (
	TypeText           = "text"
	TypeTextarea       = "textarea"
	TypePassword       = "password"
	TypeEmail          = "email"
	TypeURL            = "url"
	TypeNumber         = "number"
	TypeDate           = "date"
	TypeHidden         = "hidden"
	TypeCheckbox       = "checkbox"
	TypeRadio          = "radio"
	TypeFile           = "file"
	TypeSelectOne      = "select-one"
	TypeSelectMultiple = "select-multiple"
)

// AttrRequired is the native required marker.
const AttrRequired = "required"

// Field is an addressable form control.
type Field interface {
	// Name is the logical field name; it may be empty.
	Name() string
	// Type is the control type tag (see the Type constants).
	Type() string
	// Attr returns a declared attribute and whether it is present.
	Attr(name string) (string, bool)
	// Value returns the normalized current value.
	Value() Value
	// Required reports the native required flag.
	Required() bool
	// ID returns the element id, if any.
	ID() string
	// Label returns the accessible label (aria-label), if any.
	Label() string
	// Form returns the owning form or nil.
	Form() Form
}

// Busier is implemented by fields that can display a pending state while
// rules run.
type Busier interface {
	SetBusy(busy bool)
}

// Form is an ordered collection of fields.
type Form interface {
	// ID identifies the form in logs and submissions.
	ID() string
	// Lang is the declared document language, or "".
	Lang() string
	// Fields returns the controls in document order.
	Fields() []Field
}

// Submittable is implemented by forms that carry a submission target.
type Submittable interface {
	Action() string
	Method() string
}
