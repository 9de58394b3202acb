package config

import "errors"

var (
	// ErrParse wraps env parsing failures.
	ErrParse = errors.New("config: parse environment")

	// ErrEnvFile wraps failures reading an explicitly requested env file.
	ErrEnvFile = errors.New("config: load env file")

	ErrNilTarget = errors.New("config: nil target")
)
