package locale

import "errors"

var (
	ErrNilAdapter    = errors.New("locale: adapter is nil")
	ErrInvalidSource = errors.New("locale: invalid locale source")

	ErrJSONParsingCancelled = errors.New("locale: json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("locale: failed to parse JSON content")
	ErrYAMLParsingCancelled = errors.New("locale: yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("locale: failed to parse YAML content")

	ErrLoadingCancelled    = errors.New("locale: loading cancelled")
	ErrFailedToReadFile    = errors.New("locale: failed to read locale file")
	ErrFailedToParseFile   = errors.New("locale: failed to parse locale file")
	ErrFailedToReadDir     = errors.New("locale: failed to read locale directory")
	ErrNoLocaleFiles       = errors.New("locale: no locale files found")
	ErrUnsupportedFileType = errors.New("locale: unsupported file type")

	ErrWatcherRunning = errors.New("locale: watcher already running")
)
