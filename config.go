package formguard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formguard/pkg/locale"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Config is the environment-driven engine configuration. Load it with
// pkg/config using the "FORMGUARD_" prefix.
type Config struct {
	DefaultLocale    string        `env:"LOCALE" envDefault:"en"`
	LocalesDir       string        `env:"LOCALES_DIR"`
	WatchLocales     bool          `env:"WATCH_LOCALES" envDefault:"false"`
	ResultCacheSize  int           `env:"RESULT_CACHE_SIZE" envDefault:"4096"`
	FailClosed       bool          `env:"FAIL_CLOSED" envDefault:"false"`
	RuleTimeout      time.Duration `env:"RULE_TIMEOUT" envDefault:"0s"`
	FieldConcurrency int           `env:"FIELD_CONCURRENCY" envDefault:"1"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"text"`
}

// EnvPrefix is the environment prefix of Config.
const EnvPrefix = "FORMGUARD_"

// NewFromConfig builds an engine from cfg. A configured locale directory is
// loaded up front; with WatchLocales it is reloaded on change until ctx is
// done. Options are applied after the configuration.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithAttr(logger.Component("formguard")),
		logger.WithContextExtractors(logger.FormExtractor),
	)

	policy := FailOpen
	if cfg.FailClosed {
		policy = FailClosed
	}

	base := []Option{
		WithLogger(log),
		WithDefaultLocale(cfg.DefaultLocale),
		WithResultCacheSize(cfg.ResultCacheSize),
		WithFailurePolicy(policy),
		WithRuleTimeout(cfg.RuleTimeout),
		WithFieldConcurrency(cfg.FieldConcurrency),
	}
	e := New(append(base, opts...)...)

	if cfg.LocalesDir == "" {
		return e, nil
	}
	if err := e.locales.Load(ctx, locale.NewDirectoryAdapter(cfg.LocalesDir)); err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	if cfg.WatchLocales {
		w := locale.NewWatcher(e.locales, cfg.LocalesDir, locale.WithWatcherLogger(e.logger))
		go func() {
			if err := w.Watch(ctx); err != nil {
				e.logger.Error("Locale watcher stopped", slog.String("dir", cfg.LocalesDir), logger.Error(err))
			}
		}()
	}
	return e, nil
}
