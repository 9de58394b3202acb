package form

import (
	"sync"

	"github.com/google/uuid"
)

// Document is an in-memory Form.
type Document struct {
	mu       sync.RWMutex
	id       string
	lang     string
	action   string
	method   string
	controls []*Control
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithLang sets the declared document language.
func WithLang(lang string) DocumentOption {
	return func(d *Document) { d.lang = lang }
}

// WithFormID overrides the generated form id.
func WithFormID(id string) DocumentOption {
	return func(d *Document) {
		if id != "" {
			d.id = id
		}
	}
}

// WithAction sets the submission target and method.
func WithAction(action, method string) DocumentOption {
	return func(d *Document) {
		d.action = action
		d.method = method
	}
}

// New creates an empty document with a random id.
func New(opts ...DocumentOption) *Document {
	d := &Document{id: uuid.NewString()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends controls in document order and attaches them to d.
func (d *Document) Add(controls ...*Control) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range controls {
		c.attach(d)
		d.controls = append(d.controls, c)
	}
	return d
}

func (d *Document) ID() string     { return d.id }
func (d *Document) Lang() string   { return d.lang }
func (d *Document) Action() string { return d.action }
func (d *Document) Method() string { return d.method }

func (d *Document) Fields() []Field {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Field, len(d.controls))
	for i, c := range d.controls {
		out[i] = c
	}
	return out
}

// Control returns the first control named name.
func (d *Document) Control(name string) *Control {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.controls {
		if c.name == name {
			return c
		}
	}
	return nil
}
