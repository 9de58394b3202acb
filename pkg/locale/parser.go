package locale

import (
	"context"
	"fmt"
	"path/filepath"
)

// Parser decodes a locale file into locale → namespace → entries.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	SupportsFileExtension(ext string) bool
}

// ParserFor picks the built-in parser matching the file extension.
func ParserFor(path string) (Parser, error) {
	ext := filepath.Ext(path)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
}

func toLocaleMap(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for code, val := range data {
		m, ok := asMap(val)
		if !ok {
			return nil, fmt.Errorf("%w: locale %q: expected map, got %T", ErrInvalidSource, code, val)
		}
		result[code] = m
	}
	return result, nil
}
