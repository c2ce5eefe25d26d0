// Package log wraps [log/slog] with a fixed set of levels, two encodings
// and an optional colorized handler for terminals.
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("parsed", slog.Int("sections", 4))
//
// [LevelTrace] sits below [LevelDebug] and is rendered as "TRACE".
//
// The zero Logger discards all records. Packages that accept a Logger
// through an option can therefore log unconditionally.
//
// The package-level functions such as [Info] and [ErrorContext] write
// through a default Logger on [os.Stderr], which [Config] replaces.
package log
