package form

import (
	"maps"
	"slices"
	"sync"
)

// Control is an in-memory Field.
type Control struct {
	mu       sync.RWMutex
	name     string
	typ      string
	value    string
	checked  bool
	selected []string
	files    []File
	attrs    map[string]string
	disabled bool
	busy     bool
	id       string
	label    string
	form     Form
}

// Option configures a Control.
type Option func(*Control)

// WithValue sets the raw value. For checkboxes and radios it is the value
// submitted when checked.
func WithValue(v string) Option {
	return func(c *Control) { c.value = v }
}

// WithAttr declares an attribute.
func WithAttr(name, value string) Option {
	return func(c *Control) { c.attrs[name] = value }
}

// WithAttrs declares several attributes at once.
func WithAttrs(attrs map[string]string) Option {
	return func(c *Control) { maps.Copy(c.attrs, attrs) }
}

func WithChecked(checked bool) Option {
	return func(c *Control) { c.checked = checked }
}

// WithSelected marks options as selected on select controls.
func WithSelected(values ...string) Option {
	return func(c *Control) { c.selected = slices.Clone(values) }
}

func WithFiles(files ...File) Option {
	return func(c *Control) { c.files = slices.Clone(files) }
}

func WithID(id string) Option {
	return func(c *Control) { c.id = id }
}

// WithLabel sets the accessible label.
func WithLabel(label string) Option {
	return func(c *Control) { c.label = label }
}

func Disabled() Option {
	return func(c *Control) { c.disabled = true }
}

// Required declares the native required attribute.
func Required() Option {
	return func(c *Control) { c.attrs[AttrRequired] = "" }
}

// NewControl creates a control of the given type. Checkboxes and radios
// default to the value "on" like browsers do.
func NewControl(name, typ string, opts ...Option) *Control {
	if typ == "" {
		typ = TypeText
	}
	c := &Control{
		name:  name,
		typ:   typ,
		attrs: make(map[string]string),
	}
	if typ == TypeCheckbox || typ == TypeRadio {
		c.value = "on"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Control) Name() string { return c.name }
func (c *Control) Type() string { return c.typ }

func (c *Control) Attr(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.attrs[name]
	return v, ok
}

func (c *Control) Required() bool {
	_, ok := c.Attr(AttrRequired)
	return ok
}

func (c *Control) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

func (c *Control) Label() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

func (c *Control) Form() Form {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form
}

// Value normalizes the current state according to the control type.
func (c *Control) Value() Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.disabled {
		return Null()
	}

	switch c.typ {
	case TypeSelectMultiple:
		out := make([]string, 0, len(c.selected))
		for _, v := range c.selected {
			if v != "" {
				out = append(out, v)
			}
		}
		return List(out...)
	case TypeSelectOne:
		if len(c.selected) == 0 {
			return Text("")
		}
		return Text(c.selected[0])
	case TypeCheckbox, TypeRadio:
		if c.checked {
			return Text(c.value)
		}
		return Text("")
	case TypeFile:
		if len(c.files) == 0 {
			return Null()
		}
		return Files(c.files...)
	default:
		return Text(c.value)
	}
}

func (c *Control) SetValue(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

func (c *Control) SetChecked(checked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = checked
}

func (c *Control) SetSelected(values ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = slices.Clone(values)
}

func (c *Control) SetFiles(files ...File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = slices.Clone(files)
}

func (c *Control) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

func (c *Control) SetAttr(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs[name] = value
}

func (c *Control) RemoveAttr(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attrs, name)
}

// SetBusy implements Busier.
func (c *Control) SetBusy(busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = busy
}

// Busy reports whether rules are currently running for the control.
func (c *Control) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy
}

func (c *Control) attach(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = f
}
