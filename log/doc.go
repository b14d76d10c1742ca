// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are immutable values configured at creation time with
// functional options. The zero value is a valid no-op logger, so library
// code can hold a Logger field without nil checks.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("demo loaded", slog.String("path", path))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// # Supported Levels
//
// In addition to the standard slog levels, the package defines
// [LevelTrace] below [LevelDebug] for high-volume parser tracing.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default, colorized
// when pretty printing is enabled) and [FormatJSON].
package log
