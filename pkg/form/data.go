package form

import "strings"

// Data is a flattened form snapshot: field name to values in document order.
type Data map[string][]string

// Snapshot collects the submittable values of every field in f.
func Snapshot(f Form) Data {
	data := make(Data)
	if f == nil {
		return data
	}

	for _, field := range f.Fields() {
		name := field.Name()
		if name == "" {
			continue
		}

		v := field.Value()
		switch v.Kind() {
		case KindNull:
			if field.Type() == TypeFile {
				data[name] = append(data[name], "")
			}
		case KindText:
			switch field.Type() {
			case TypeCheckbox, TypeRadio:
				if v.Text() == "" {
					continue
				}
			}
			data[name] = append(data[name], v.Text())
		case KindList:
			data[name] = append(data[name], v.List()...)
		case KindFiles:
			for _, file := range v.Files() {
				data[name] = append(data[name], file.Name)
			}
		}
	}
	return data
}

// Get returns the single value for name; repeated values are comma-joined.
func (d Data) Get(name string) string {
	switch vals := d[name]; len(vals) {
	case 0:
		return ""
	case 1:
		return vals[0]
	default:
		return strings.Join(vals, ",")
	}
}

// Values returns every value recorded for name.
func (d Data) Values(name string) []string {
	return d[name]
}

// Has reports whether name is present in the snapshot.
func (d Data) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Truthy reports whether name carries a non-empty value or several values.
func (d Data) Truthy(name string) bool {
	vals := d[name]
	return len(vals) > 1 || (len(vals) == 1 && vals[0] != "")
}
