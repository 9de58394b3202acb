package locale

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
)

// Adapter produces locale dictionaries from some source.
type Adapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory dictionary.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single YAML or JSON file.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return parseFile(ctx, a.path, content)
}

// FSAdapter loads every supported file in a directory of an fs.FS, which
// covers both embed.FS and os.DirFS. Later files (by name) override earlier
// ones for the same keys.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// NewDirectoryAdapter loads every supported file in a filesystem directory.
func NewDirectoryAdapter(dir string) *FSAdapter {
	return NewFSAdapter(os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := ParserFor(e.Name()); err != nil {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoLocaleFiles, a.dir)
	}

	result := make(map[string]map[string]any)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		p := path.Join(a.dir, name)
		content, err := fs.ReadFile(a.fsys, p)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		data, err := parseFile(ctx, p, content)
		if err != nil {
			return nil, err
		}
		for code, dict := range data {
			target, ok := result[code]
			if !ok {
				target = make(map[string]any, len(dict))
				result[code] = target
			}
			mergeInto(target, dict)
		}
	}
	return result, nil
}

func parseFile(ctx context.Context, name string, content []byte) (map[string]map[string]any, error) {
	parser, err := ParserFor(name)
	if err != nil {
		return nil, err
	}
	data, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
	}
	return data, nil
}
