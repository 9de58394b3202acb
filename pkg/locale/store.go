package locale

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Namespaces used by formguard.
const (
	NamespaceMessages = "messages"
	NamespaceNames    = "names"
)

// Store holds localized dictionaries and the current locale.
type Store struct {
	mu        sync.RWMutex
	locales   map[string]map[string]any
	current   string
	fallback  string
	logger    *slog.Logger
	listeners []func()
}

// Option configures a Store.
type Option func(*Store)

// WithDefaultLocale sets the initial current locale. Empty values are ignored.
func WithDefaultLocale(code string) Option {
	return func(s *Store) {
		if c := Canonical(code); c != "" {
			s.current = c
		}
	}
}

// WithFallbackLocale sets the locale consulted after the requested one.
func WithFallbackLocale(code string) Option {
	return func(s *Store) {
		if c := Canonical(code); c != "" {
			s.fallback = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store whose current locale is "en" unless
// configured otherwise.
func NewStore(opts ...Option) *Store {
	s := &Store{
		locales:  make(map[string]map[string]any),
		current:  DefaultLocale,
		fallback: DefaultLocale,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Localize merges dictionaries into the store. Locales with a nil source are
// skipped and logged.
func (s *Store) Localize(locales map[string]map[string]any) {
	s.mu.Lock()
	for code, source := range locales {
		code = Canonical(code)
		if code == "" || source == nil {
			s.logger.Error("Invalid locale source", slog.String("locale", code))
			continue
		}

		target, ok := s.locales[code]
		if !ok {
			target = make(map[string]any, len(source))
			s.locales[code] = target
		}
		mergeInto(target, source)
	}
	s.mu.Unlock()

	s.notify()
}

// Load merges everything the adapter produces.
func (s *Store) Load(ctx context.Context, adapter Adapter) error {
	if adapter == nil {
		return ErrNilAdapter
	}
	data, err := adapter.Load(ctx)
	if err != nil {
		return err
	}
	s.Localize(data)
	s.logger.InfoContext(ctx, "Locales loaded", slog.Any("locales", s.Locales()))
	return nil
}

// SetLocale changes the current locale.
func (s *Store) SetLocale(code string) {
	code = Canonical(code)
	if code == "" {
		return
	}
	s.mu.Lock()
	s.current = code
	s.mu.Unlock()

	s.notify()
}

// Locale returns the current locale code.
func (s *Store) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Locales lists registered locale codes in sorted order.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.locales))
}

// Has reports whether code has a registered dictionary.
func (s *Store) Has(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.locales[Canonical(code)]
	return ok
}

// Subscribe registers fn to run after every Localize or SetLocale call.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Message returns the localized message template for key or key itself.
// An empty locale means the current locale.
func (s *Store) Message(key, locale string) string {
	return s.Lookup(NamespaceMessages, key, locale, key)
}

// Name returns the localized field name for key or key itself.
func (s *Store) Name(key, locale string) string {
	return s.Lookup(NamespaceNames, key, locale, key)
}

// Lookup resolves key inside namespace following the fallback chain and
// returns def when no string entry exists.
func (s *Store) Lookup(namespace, key, locale, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, code := range s.chain(locale) {
		dict, ok := s.locales[code]
		if !ok {
			continue
		}
		ns, ok := asMap(dict[namespace])
		if !ok {
			continue
		}
		if v, ok := lookupKey(ns, key); ok {
			return v
		}
	}

	s.logger.Debug("Locale entry not found",
		slog.String("namespace", namespace),
		slog.String("key", key),
		slog.String("locale", locale),
	)
	return def
}

// Must be called with lock held.
func (s *Store) chain(locale string) []string {
	code := Canonical(locale)
	if code == "" {
		code = s.current
	}

	out := []string{code}
	if base := Base(code); base != "" {
		out = append(out, base)
	}
	if !slices.Contains(out, s.fallback) {
		out = append(out, s.fallback)
	}
	return out
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// lookupKey tries the literal key first, then a dot-separated path.
func lookupKey(m map[string]any, key string) (string, bool) {
	if v, ok := m[key].(string); ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return "", false
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		if i == len(parts)-1 {
			v, ok := current[part].(string)
			return v, ok
		}
		next, ok := asMap(current[part])
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcOK := asMap(v)
		dstMap, dstOK := asMap(dst[k])
		if srcOK && dstOK {
			mergeInto(dstMap, srcMap)
			dst[k] = dstMap
			continue
		}
		if srcOK {
			cp := make(map[string]any, len(srcMap))
			mergeInto(cp, srcMap)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

// asMap accepts both map shapes produced by YAML and JSON decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}
