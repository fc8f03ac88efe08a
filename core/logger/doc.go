// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for a command-line tool.
//
// # Run Correlation
//
// Each reconciliation pass is tagged with a run id. The WithRunID helper
// attaches that id to the log entry, ensuring that all logs belonging to one
// pass can be correlated even in watch mode where passes repeat.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Plan computed")
//
//	// For one reconciliation pass:
//	l := logger.WithRunID(log, uuid.NewString())
//	l.Error("Apply failed", zap.Error(err))
package logger
