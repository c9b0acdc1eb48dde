// Package log provides the logging abstraction used by labelwatch.
//
// Pass a Logger to labelwatch.WithLogger. A zerolog adapter and a no-op
// logger are provided:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	w, err := labelwatch.New(cfg, labelwatch.WithLogger(logger))
//
// Implement the Logger interface to integrate with other logging
// libraries:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
