// Package logging builds the zap logger used by the reflectdiff CLI.
//
// Log records go to standard error so they never mix with command output.
// The comparison engine receives the same logger and emits debug records
// for cycle cuts and a warning when its depth budget is exhausted.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logging.New(logging.Config{Level: "debug", Format: "console"})
//	log.Debug("comparing documents", zap.String("left", path))
package logging
