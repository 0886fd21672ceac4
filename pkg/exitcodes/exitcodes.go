// Package exitcodes provides the exit codes of the reflectdiff CLI for
// external tools that drive it.
package exitcodes

// Exit codes returned by the reflectdiff CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// Success indicates equal values, passing cases, or a completed command.
	Success = 0

	// Different indicates that compared values differ or that a case failed.
	Different = 1

	// ConfigError indicates an invalid configuration or command line.
	ConfigError = 2

	// InputError indicates an input document that could not be read or parsed.
	InputError = 3
)
