package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configurations per type and prefix.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

type options struct {
	prefix   string
	envFiles []string
	noCache  bool
}

// Option tunes a single Load call.
type Option func(*options)

// WithPrefix only reads variables starting with prefix ("FORMGUARD_").
// Tags are written without the prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFile loads additional .env files before parsing. Variables already
// present in the environment win.
func WithEnvFile(paths ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, paths...) }
}

// NoCache parses the environment again instead of reusing an earlier result.
func NoCache() Option {
	return func(o *options) { o.noCache = true }
}

// Load parses environment variables into v following its `env` tags.
// The default .env file is read once per process if it exists. Each type and
// prefix is parsed once and cached unless NoCache is given.
//
// Example:
//
//	type Config struct {
//		Locale    string `env:"LOCALE" envDefault:"en"`
//		CacheSize int    `env:"RESULT_CACHE_SIZE" envDefault:"4096"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("FORMGUARD_"))
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilTarget
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	for _, path := range o.envFiles {
		if err := godotenv.Load(path); err != nil {
			return errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", path, err))
		}
	}

	key := cacheKey[T](o.prefix)
	if !o.noCache {
		globalCache.mu.RLock()
		cached, ok := globalCache.values[key]
		globalCache.mu.RUnlock()
		if ok {
			*v = cached.(T)
			return nil
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParse, err)
	}

	globalCache.mu.Lock()
	globalCache.values[key] = *v
	globalCache.mu.Unlock()
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func cacheKey[T any](prefix string) string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%s|%T", prefix, *new(T))
	}
	return prefix + "|" + t.String()
}
