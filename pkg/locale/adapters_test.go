package locale_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/locale"
)

const enYAML = `
en:
  messages:
    required: "This field is required."
    between: "The {field} field must be between {min} and {max}."
  names:
    email: "Email address"
`

const deJSON = `{"de": {"messages": {"required": "Dieses Feld ist erforderlich."}}}`

func TestParsers(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		data, err := locale.NewYAMLParser().Parse(context.Background(), []byte(enYAML))
		require.NoError(t, err)
		require.Contains(t, data, "en")
		assert.True(t, locale.NewYAMLParser().SupportsFileExtension(".yml"))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		data, err := locale.NewJSONParser().Parse(context.Background(), []byte(deJSON))
		require.NoError(t, err)
		require.Contains(t, data, "de")
		assert.False(t, locale.NewJSONParser().SupportsFileExtension("yaml"))
	})

	t.Run("invalid structure", func(t *testing.T) {
		t.Parallel()
		_, err := locale.NewYAMLParser().Parse(context.Background(), []byte("en: hello"))
		require.ErrorIs(t, err, locale.ErrInvalidSource)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := locale.NewJSONParser().Parse(context.Background(), []byte("{"))
		require.ErrorIs(t, err, locale.ErrFailedToParseJSON)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := locale.NewYAMLParser().Parse(ctx, []byte(enYAML))
		require.ErrorIs(t, err, locale.ErrYAMLParsingCancelled)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		_, err := locale.ParserFor("messages.toml")
		require.ErrorIs(t, err, locale.ErrUnsupportedFileType)
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en.yaml":   {Data: []byte(enYAML)},
		"locales/de.json":   {Data: []byte(deJSON)},
		"locales/README.md": {Data: []byte("ignored")},
	}

	s := locale.NewStore()
	require.NoError(t, s.Load(context.Background(), locale.NewFSAdapter(fsys, "locales")))

	assert.Equal(t, []string{"de", "en"}, s.Locales())
	assert.Equal(t, "Dieses Feld ist erforderlich.", s.Message("required", "de"))
	assert.Equal(t, "Email address", s.Name("email", "de"))

	_, err := locale.NewFSAdapter(fstest.MapFS{"x/a.txt": {}}, "x").Load(context.Background())
	require.ErrorIs(t, err, locale.ErrNoLocaleFiles)
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	require.NoError(t, os.WriteFile(path, []byte(enYAML), 0o600))

	data, err := locale.NewFileAdapter(path).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, data, "en")

	_, err = locale.NewFileAdapter(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	require.ErrorIs(t, err, locale.ErrFailedToReadFile)
}

func TestWatcherReloads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	require.NoError(t, os.WriteFile(path, []byte(enYAML), 0o600))

	s := locale.NewStore()
	require.NoError(t, s.Load(context.Background(), locale.NewDirectoryAdapter(dir)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := locale.NewWatcher(s, dir, locale.WithDebounce(10*time.Millisecond))
	errCh := make(chan error, 1)
	go func() { errCh <- w.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`en: {messages: {required: "Fill me."}}`), 0o600))

	assert.Eventually(t, func() bool {
		return s.Message("required", "en") == "Fill me."
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)
}
