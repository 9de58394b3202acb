package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/metrics"
	"github.com/dmitrymomot/formguard/pkg/redis"
	"github.com/dmitrymomot/formguard/pkg/rules"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

type validateOptions struct {
	form    string
	locales string
	locale  string
	all     bool
	remote  bool
	submit  bool
	baseURL string
	metrics bool
}

var validateFlags validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a form document",
	Long: `Validate every field of a form document and print the result as JSON.

The command exits with status 1 when the form is invalid. Without --all it
stops at the first failing field.

Examples:
  # Validate with English messages
  formguard validate --form signup.yaml

  # Localized messages, every failure
  formguard validate --form signup.yaml --locales ./locales --locale de --all

  # Check unique/exists rules against Redis (REDIS_URL)
  formguard validate --form signup.yaml --remote

  # Submit the form to its action when it passes
  formguard validate --form signup.yaml --submit --base-url https://example.com

  # Dump rule and cache metrics to stderr
  formguard validate --form signup.yaml --metrics`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.form, "form", "f", "", "form document (YAML)")
	validateCmd.Flags().StringVar(&validateFlags.locales, "locales", "", "locale directory (overrides FORMGUARD_LOCALES_DIR)")
	validateCmd.Flags().StringVar(&validateFlags.locale, "locale", "", "message locale (defaults to the form lang)")
	validateCmd.Flags().BoolVar(&validateFlags.all, "all", false, "collect every failing field")
	validateCmd.Flags().BoolVar(&validateFlags.remote, "remote", false, "enable unique/exists rules backed by Redis")
	validateCmd.Flags().BoolVar(&validateFlags.submit, "submit", false, "submit the form to its action when valid")
	validateCmd.Flags().StringVar(&validateFlags.baseURL, "base-url", "", "base URL for root-relative form actions")
	validateCmd.Flags().BoolVar(&validateFlags.metrics, "metrics", false, "write Prometheus metrics to stderr after validation")
	_ = validateCmd.MarkFlagRequired("form")
}

// report is the JSON output of the validate command.
type report struct {
	formguard.FormResult
	Submission *submission `json:"submission,omitempty"`
}

type submission struct {
	StatusCode int    `json:"status_code,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if validateFlags.locales != "" {
		cfg.LocalesDir = validateFlags.locales
	}
	cfg.WatchLocales = false
	if verbose {
		cfg.LogLevel = "debug"
	}

	doc, err := loadDocument(validateFlags.form)
	if err != nil {
		return err
	}
	f, err := doc.build()
	if err != nil {
		return err
	}

	var catalog []rules.Option
	if validateFlags.remote {
		store, closeStore, err := connectSetStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()
		catalog = append(catalog, rules.WithSetStore(store))
	}

	opts := []formguard.Option{formguard.WithRules(rules.All(catalog...))}
	if validateFlags.submit {
		opts = append(opts, formguard.WithSubmitter(submit.New(submit.WithBaseURL(validateFlags.baseURL))))
	}

	var reg *prometheus.Registry
	if validateFlags.metrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, formguard.WithObserver(metrics.NewCollector(reg)))
	}

	engine, err := formguard.NewFromConfig(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	if code := firstNonEmpty(validateFlags.locale, doc.Lang); code != "" {
		if err := engine.SetFormLocale(ctx, f, code); err != nil {
			return err
		}
	}
	for _, g := range doc.Groups {
		engine.GroupMessage(f, g.Rules, g.Message)
	}

	var (
		mu  sync.Mutex
		sub *submission
	)
	engine.SetHooks(f, formguard.Hooks{
		OnSuccess: func(res *submit.Result) {
			mu.Lock()
			defer mu.Unlock()
			sub = &submission{StatusCode: res.StatusCode, RequestID: res.RequestID}
		},
		OnError: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			sub = &submission{Error: err.Error()}
		},
	})

	res, err := engine.ValidateForm(ctx, f, !validateFlags.all)
	if err != nil {
		return err
	}

	mu.Lock()
	out := report{FormResult: res, Submission: sub}
	mu.Unlock()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if reg != nil {
		if err := writeMetrics(cmd, reg); err != nil {
			return err
		}
	}

	if !res.IsValid || (sub != nil && sub.Error != "") {
		return errInvalidForm
	}
	return nil
}

func writeMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(cmd.ErrOrStderr(), expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func loadConfig() (formguard.Config, error) {
	var cfg formguard.Config
	opts := []config.Option{config.WithPrefix(formguard.EnvPrefix), config.NoCache()}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return formguard.Config{}, err
	}
	return cfg, nil
}

func connectSetStore(ctx context.Context) (*redis.SetStore, func(), error) {
	var cfg redis.Config
	opts := []config.Option{config.NoCache()}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return nil, nil, err
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return redis.NewSetStore(client, cfg.KeyPrefix), func() { _ = client.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
