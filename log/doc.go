// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are plain values configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(false))
//
//	logger.Info("parsed", slog.Int("items", 12))
//
// The zero [Logger] discards everything, so packages may hold one without
// checking whether the caller configured logging.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-line parser and
// per-item resolver tracing. The remaining levels map onto slog's.
//
// # Package Logger
//
// A process-wide default logger backs the package-level functions
// ([Info], [Debug], ...). [Config] replaces its options; [Default] returns
// a copy for injection into other packages.
//
// # Pretty Output
//
// With [WithPretty] enabled and [FormatText] selected, records are written
// as colorized key=value pairs styled with lipgloss. Colors are dropped
// automatically when the output is not a terminal.
package log
