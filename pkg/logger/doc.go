// Package logger builds the *slog.Logger used by formguard and its tools and
// provides attribute helpers that keep key names consistent.
//
// New creates a logger configured by Option functions. Options select the
// output format (text or json), the minimum level, static attributes and
// ContextExtractor callbacks that pull attributes out of a context.Context
// every time a record is handled.
//
// # Usage
//
//	log := logger.New(
//		logger.WithLevelName("debug"),
//		logger.WithFormat(logger.FormatText),
//		logger.WithAttr(logger.Component("formguard")),
//	)
//
//	log.Error("Rule predicate failed",
//		logger.Rule("unique"),
//		logger.Field("email"),
//		logger.Error(err),
//	)
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler. When extractors are
// registered the handler is wrapped so they run before each record is written.
//
// Error and Errors return an empty attribute for nil errors, so callers can
// pass them unconditionally.
package logger
