// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - The default `.env` file in the working directory is read once per
//     process when present; WithEnvFile loads extra files per call.
//   - Load parses the environment into any struct using `env` tags.
//   - WithPrefix scopes the lookup ("FORMGUARD_" + tag name).
//   - Each type and prefix is parsed once and cached; NoCache forces a fresh
//     parse, which tests rely on.
//   - MustLoad panics on failure for configuration the program cannot start
//     without.
//
// # Usage
//
//	var cfg formguard.Config
//	if err := config.Load(&cfg, config.WithPrefix("FORMGUARD_")); err != nil {
//		return err
//	}
//
// # Errors
//
// Parsing failures wrap ErrParse, unreadable explicit env files wrap
// ErrEnvFile, and a nil target returns ErrNilTarget.
package config
