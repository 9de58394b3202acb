package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formguard/pkg/form"
)

// document is the YAML description of a form.
type document struct {
	ID     string          `yaml:"id"`
	Lang   string          `yaml:"lang"`
	Action string          `yaml:"action"`
	Method string          `yaml:"method"`
	Fields []fieldDocument `yaml:"fields"`
	// Groups share one message between rules, keyed by the message.
	Groups []groupDocument `yaml:"groups"`
}

type fieldDocument struct {
	Name     string            `yaml:"name"`
	Type     string            `yaml:"type"`
	ID       string            `yaml:"id"`
	Label    string            `yaml:"label"`
	Value    string            `yaml:"value"`
	Checked  bool              `yaml:"checked"`
	Selected []string          `yaml:"selected"`
	Files    []fileDocument    `yaml:"files"`
	Required bool              `yaml:"required"`
	Disabled bool              `yaml:"disabled"`
	Attrs    map[string]string `yaml:"attrs"`
}

type fileDocument struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
	Size int64  `yaml:"size"`
	MIME string `yaml:"mime"`
}

type groupDocument struct {
	Rules   []string `yaml:"rules"`
	Message string   `yaml:"message"`
}

// loadDocument reads a YAML form description. Relative file paths are
// resolved against the document directory.
func loadDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse form %s: %w", path, err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("form %s declares no fields", path)
	}

	base := filepath.Dir(path)
	for i := range doc.Fields {
		for j := range doc.Fields[i].Files {
			f := &doc.Fields[i].Files[j]
			if f.Path != "" && !filepath.IsAbs(f.Path) {
				f.Path = filepath.Join(base, f.Path)
			}
		}
	}
	return &doc, nil
}

// build turns the description into a live form.
func (d *document) build() (*form.Document, error) {
	f := form.New(
		form.WithFormID(d.ID),
		form.WithLang(d.Lang),
		form.WithAction(d.Action, d.Method),
	)

	for _, fd := range d.Fields {
		opts := []form.Option{
			form.WithAttrs(fd.Attrs),
			form.WithID(fd.ID),
			form.WithLabel(fd.Label),
		}
		if fd.Value != "" {
			opts = append(opts, form.WithValue(fd.Value))
		}
		if fd.Checked {
			opts = append(opts, form.WithChecked(true))
		}
		if len(fd.Selected) > 0 {
			opts = append(opts, form.WithSelected(fd.Selected...))
		}
		if fd.Required {
			opts = append(opts, form.Required())
		}
		if fd.Disabled {
			opts = append(opts, form.Disabled())
		}
		if len(fd.Files) > 0 {
			files := make([]form.File, 0, len(fd.Files))
			for _, file := range fd.Files {
				ff, err := file.build()
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", fd.Name, err)
				}
				files = append(files, ff)
			}
			opts = append(opts, form.WithFiles(files...))
		}
		f.Add(form.NewControl(fd.Name, fd.Type, opts...))
	}
	return f, nil
}

// build describes the file. Name, size and type are taken from the file on
// disk unless set explicitly.
func (fd fileDocument) build() (form.File, error) {
	f := form.File{Name: fd.Name, Size: fd.Size, MIME: fd.MIME}
	if fd.Path == "" {
		return f, nil
	}

	info, err := os.Stat(fd.Path)
	if err != nil {
		return form.File{}, fmt.Errorf("stat %s: %w", fd.Path, err)
	}
	if f.Name == "" {
		f.Name = filepath.Base(fd.Path)
	}
	if f.Size == 0 {
		f.Size = info.Size()
	}
	if f.MIME == "" {
		f.MIME = mime.TypeByExtension(filepath.Ext(fd.Path))
	}
	path := fd.Path
	f.Open = func() (io.ReadCloser, error) {
		return os.Open(path)
	}
	return f, nil
}
