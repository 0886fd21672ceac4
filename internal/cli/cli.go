// Package cli provides command-line interface functionality for reflectdiff.
package cli

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/reflectdiff/internal/config"
	"github.com/AndreyAkinshin/reflectdiff/internal/errors"
	"github.com/AndreyAkinshin/reflectdiff/internal/logging"
	"github.com/AndreyAkinshin/reflectdiff/internal/output"
)

// Version is set at build time.
var Version = "dev"

// logOutput redirects the CLI logger (for testing). Nil selects standard error.
var logOutput io.Writer

// wantsHelp returns true if args contain -h or --help before any -- separator.
// Arguments after -- are operands, so help flags there are ignored.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("reflectdiff %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "compare":
		return cmdCompare(cmdArgs, opts)
	case "check":
		return cmdCheck(cmdArgs, opts)
	case "suites":
		return cmdSuites(cmdArgs, opts)
	case "modes":
		return cmdModes(cmdArgs)
	case "config":
		return cmdConfig(cmdArgs)
	case "completion":
		return cmdCompletion(cmdArgs)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("Run 'reflectdiff --help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet     bool
	Verbose   bool
	NoColor   bool
	LogFormat string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because:
// - Flags can appear anywhere in the argument list, not just before the command
// - Operands after -- must be preserved verbatim
// - Custom error messages with usage hints are needed
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--no-color":
			opts.NoColor = true
			i++
		case arg == "--log-format":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--log-format requires a value")
			}
			opts.LogFormat = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--log-format="):
			opts.LogFormat = strings.TrimPrefix(arg, "--log-format=")
			i++
		case arg == "--":
			// Everything after -- is an operand
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	switch opts.LogFormat {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("invalid --log-format value %q\n  valid values: %s, %s\n  example: reflectdiff --log-format=json check",
			opts.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}

	return nil
}

// newLogger builds the logger handed to the engine. The project's logging
// section sets the defaults; --verbose raises the level to debug,
// --log-format overrides the encoding, and --quiet disables logging.
func newLogger(opts *GlobalOptions, cfg *config.Config) (*zap.Logger, error) {
	if opts.Quiet {
		return zap.NewNop(), nil
	}

	lc := logging.DefaultConfig()
	if cfg != nil && cfg.Logging != nil {
		if cfg.Logging.Level != "" {
			lc.Level = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			lc.Format = cfg.Logging.Format
		}
	}
	if opts.Verbose {
		lc.Level = "debug"
	}
	if opts.LogFormat != "" {
		lc.Format = opts.LogFormat
	}

	if logOutput != nil {
		return logging.NewWithWriter(lc, logOutput)
	}
	return logging.New(lc)
}

func printUsage() {
	w := out

	w.HelpTitle("reflectdiff - structural difference engine")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff <command> [options] [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("compare <left> <right>", "Compare two JSON or YAML documents", widthCommand)
	w.HelpCommand("check [suite...]", "Run the comparison cases of the project", widthCommand)
	w.HelpCommand("suites", "List the case suites of the project", widthCommand)
	w.HelpCommand("modes", "List the leniency modes", widthCommand)
	w.HelpCommand("config validate", "Validate project configuration", widthCommand)
	w.HelpCommand("completion <shell>", "Generate shell completion (bash, zsh, fish)", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)

	printGlobalFlags(w)

	w.HelpSection("Exit Codes:")
	w.HelpFlag("0", "Values are equal, or all cases passed", widthExitCode)
	w.HelpFlag("1", "Values differ, or a case failed", widthExitCode)
	w.HelpFlag("2", "Configuration or usage error", widthExitCode)
	w.HelpFlag("3", "Input document missing or unreadable", widthExitCode)

	w.HelpSection("Examples:")
	w.HelpExample("reflectdiff compare expected.json actual.json", "Report the first difference")
	w.HelpExample("reflectdiff compare --all --mode=lenient_order a.yaml b.yaml", "Report every difference, ignoring element order")
	w.HelpExample("reflectdiff check orders", "Run the cases of the orders suite")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", widthFlagWithValue)
	w.HelpFlag("-v, --verbose", "Debug logging and per-case output", widthFlagWithValue)
	w.HelpFlag("--log-format=<fmt>", "Log encoding: console or json", widthFlagWithValue)
	w.HelpFlag("--no-color", "Disable colored output", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)
	w.HelpFlag("--version", "Show version", widthFlagWithValue)

	w.HelpSection("Environment:")
	w.HelpEnvVar("REFLECTDIFF_PARALLEL=<n>", "Cases run at once by check (default: CPU count)", 24)
}
