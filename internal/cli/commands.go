package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/reflectdiff/internal/cases"
	"github.com/AndreyAkinshin/reflectdiff/internal/config"
	"github.com/AndreyAkinshin/reflectdiff/internal/document"
	"github.com/AndreyAkinshin/reflectdiff/internal/errors"
	"github.com/AndreyAkinshin/reflectdiff/internal/output"
	"github.com/AndreyAkinshin/reflectdiff/internal/project"
	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	widthCommand       = 24 // Width for commands like "compare <left> <right>"
	widthFlagWithValue = 20 // Width for flags like "--log-format=<fmt>"
	widthExitCode      = 3
)

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	if opts.NoColor {
		out.SetColor(false)
	}
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the config
// error exit code on failure.
func loadProject() (*project.Project, int) {
	proj, err := project.LoadProject()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.ExitConfigError
	}
	return proj, 0
}

// loadOptionalProject loads the project when one encloses the working
// directory and falls back to the default configuration otherwise.
func loadOptionalProject() (*config.Config, int) {
	proj, err := project.LoadProject()
	if stderrors.Is(err, project.ErrNoProjectRoot) {
		return config.Default(), 0
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.ExitConfigError
	}
	printWarnings(proj.Warnings)
	return proj.Config, 0
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		out.Warning("%s", w)
	}
}

// compareOptions holds the parsed flags of the compare command.
type compareOptions struct {
	Modes       []string
	All         bool
	Brief       bool
	MaxDepth    int // zero keeps the configured depth
	DateFormats []string
	Left        string
	Right       string
}

// parseCompareArgs parses the flags and the two operands of compare.
func parseCompareArgs(args []string) (*compareOptions, error) {
	opts := &compareOptions{}
	var operands []string

	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], nil
	}

	i := 0
	for i < len(args) {
		arg := args[i]
		name, val, hasVal := strings.Cut(arg, "=")

		switch {
		case name == "--mode" || name == "--date-format" || name == "--max-depth":
			if !hasVal {
				v, err := value(i, name)
				if err != nil {
					return nil, err
				}
				val = v
				i++
			}
			if err := opts.set(name, val); err != nil {
				return nil, err
			}
			i++
		case arg == "--all":
			opts.All = true
			i++
		case arg == "--brief":
			opts.Brief = true
			i++
		case arg == "--":
			operands = append(operands, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			operands = append(operands, arg)
			i++
		}
	}

	if len(operands) != 2 {
		return nil, fmt.Errorf("expected 2 documents, got %d", len(operands))
	}
	opts.Left, opts.Right = operands[0], operands[1]
	return opts, nil
}

func (o *compareOptions) set(name, val string) error {
	switch name {
	case "--mode":
		for _, m := range strings.Split(val, ",") {
			if m = strings.TrimSpace(m); m != "" {
				o.Modes = append(o.Modes, m)
			}
		}
	case "--date-format":
		if err := document.ValidateDateFormat(val); err != nil {
			return err
		}
		o.DateFormats = append(o.DateFormats, val)
	case "--max-depth":
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return fmt.Errorf("--max-depth must be a positive integer, got %q", val)
		}
		o.MaxDepth = n
	}
	return nil
}

// cmdCompare compares two documents and prints the difference tree.
func cmdCompare(args []string, gopts *GlobalOptions) int {
	if wantsHelp(args) {
		printCompareUsage()
		return 0
	}

	co, err := parseCompareArgs(args)
	if err != nil {
		out.ErrorPrefix("compare: %v", err)
		return errors.ExitConfigError
	}

	cfg, code := loadOptionalProject()
	if cfg == nil {
		return code
	}

	log, err := newLogger(gopts, cfg)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	defer func() { _ = log.Sync() }()

	opts, err := cfg.EngineOptions("", log, co.Modes...)
	if err != nil {
		out.ErrorPrefix("compare: %v", err)
		return errors.ExitConfigError
	}
	if co.All {
		opts.Report = reflectdiff.ReportAll
	}
	if co.MaxDepth > 0 {
		opts.MaxDepth = co.MaxDepth
	}
	comp, err := reflectdiff.New(opts)
	if err != nil {
		out.ErrorPrefix("compare: %v", err)
		return errors.ExitConfigError
	}

	left, err := loadDocument(co.Left)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	right, err := loadDocument(co.Right)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	formats := slices.Concat(cfg.DateFormats(), co.DateFormats)
	if len(formats) > 0 || opts.Modes.Has(reflectdiff.LenientDates) {
		left = document.ConvertDates(left, formats)
		right = document.ConvertDates(right, formats)
	}

	log.Debug("comparing documents",
		zap.String("left", co.Left),
		zap.String("right", co.Right),
		zap.Stringer("modes", opts.Modes),
		zap.Stringer("report", opts.Report))

	d, err := cases.Compare(comp, left, right)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	if d == nil {
		out.Info("Documents are equal (modes: %s).", opts.Modes)
		return errors.ExitSuccess
	}

	if !gopts.Quiet {
		if co.Brief {
			out.Println("Documents differ:")
			out.DifferenceLeaves(d)
		} else {
			out.Difference(d)
		}
	}
	return errors.ExitRuntimeError
}

// loadDocument reads a document, mapping failures to input errors.
func loadDocument(path string) (any, error) {
	v, err := document.Load(path)
	if err != nil {
		return nil, errors.Input(err, path)
	}
	return v, nil
}

// checkOptions holds the parsed flags of the check command.
type checkOptions struct {
	Suites   []string
	Pattern  string
	Parallel int
}

func parseCheckArgs(args []string) (*checkOptions, error) {
	opts := &checkOptions{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--pattern="):
			opts.Pattern = strings.TrimPrefix(arg, "--pattern=")
		case strings.HasPrefix(arg, "--parallel="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--parallel="))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--parallel must be a positive integer, got %q", strings.TrimPrefix(arg, "--parallel="))
			}
			opts.Parallel = n
		case arg == "--pattern" || arg == "--parallel":
			return nil, fmt.Errorf("%s requires a value (%s=<value>)", arg, arg)
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			opts.Suites = append(opts.Suites, arg)
		}
	}
	return opts, nil
}

// cmdCheck runs the comparison cases of the project.
func cmdCheck(args []string, gopts *GlobalOptions) int {
	if wantsHelp(args) {
		printCheckUsage()
		return 0
	}

	co, err := parseCheckArgs(args)
	if err != nil {
		out.ErrorPrefix("check: %v", err)
		return errors.ExitConfigError
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}
	printWarnings(proj.Warnings)

	log, err := newLogger(gopts, proj.Config)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	defer func() { _ = log.Sync() }()

	if err := proj.ValidateCasesDirectory(); err != nil {
		out.ErrorPrefix("check: %v", err)
		return errors.ExitConfigError
	}

	pattern := proj.CasesPattern()
	if co.Pattern != "" {
		pattern = co.Pattern
	}

	suites, err := loadSuites(proj.CasesDirectory(), pattern, co.Suites)
	if err != nil {
		out.ErrorPrefix("check: %v", err)
		return errors.GetExitCode(err)
	}
	if len(suites) == 0 {
		out.Warning("no cases found in %s", proj.CasesDirectory())
		return errors.ExitSuccess
	}

	runner := cases.NewRunner(proj.Config, log)
	if co.Parallel > 0 {
		runner = runner.WithWorkers(co.Parallel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []cases.SuiteResult
	for _, name := range cases.SuiteNames(suites) {
		sr := runner.RunSuite(ctx, name, suites[name])
		printSuiteResult(&sr, gopts.Verbose)
		results = append(results, sr)
	}

	return printCheckSummary(results)
}

// loadSuites loads the named suites, or every suite when names is empty.
func loadSuites(dir, pattern string, names []string) (map[string][]cases.Case, error) {
	if len(names) == 0 {
		suites, err := cases.LoadAllSuites(dir, pattern)
		if err != nil {
			return nil, errors.Configf("%v", err)
		}
		return suites, nil
	}

	suites := make(map[string][]cases.Case, len(names))
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(dir, name)); err != nil || !info.IsDir() {
			return nil, errors.Configf("unknown suite %q", name)
		}
		cs, err := cases.LoadSuite(dir, name, pattern)
		if err != nil {
			return nil, errors.Configf("%v", err)
		}
		if len(cs) > 0 {
			suites[name] = cs
		}
	}
	return suites, nil
}

func printSuiteResult(sr *cases.SuiteResult, verbose bool) {
	out.Section(sr.Suite)
	for _, res := range sr.Results {
		name := res.Case.Name
		duration := res.Duration.Round(time.Microsecond).String()
		switch {
		case res.Skipped:
			if verbose {
				out.Info("    - %-24s skipped", name)
			}
		case res.Error != nil:
			out.SummaryAction(name, false, duration, res.Error.Error())
		case !res.Passed:
			out.SummaryAction(name, false, duration, res.Reason)
			for _, line := range strings.Split(strings.TrimRight(res.Diff, "\n"), "\n") {
				if line != "" {
					out.Println("        %s", line)
				}
			}
		case verbose:
			out.SummaryAction(name, true, duration, "")
		}
	}
}

func printCheckSummary(results []cases.SuiteResult) int {
	var passed, failed, skipped int
	rows := make([][]string, 0, len(results))
	for _, sr := range results {
		passed += sr.Passed
		failed += sr.Failed
		skipped += sr.Skipped
		status := "ok"
		if !sr.OK() {
			status = "FAILED"
		}
		rows = append(rows, []string{
			sr.Suite,
			strconv.Itoa(sr.Passed),
			strconv.Itoa(sr.Failed),
			strconv.Itoa(sr.Skipped),
			status,
		})
	}

	out.SummaryHeader("Check Summary")
	out.Table([]string{"Suite", "Passed", "Failed", "Skipped", "Status"}, rows)
	out.Println("")
	out.SummaryPassed("Passed", strconv.Itoa(passed))
	if failed > 0 {
		out.SummaryFailed("Failed", strconv.Itoa(failed))
	}
	if skipped > 0 {
		out.SummaryItem("Skipped", strconv.Itoa(skipped))
	}

	total := passed + failed + skipped
	if failed > 0 {
		out.FinalFailure("%d of %d cases failed.", failed, total)
		return errors.ExitRuntimeError
	}
	out.FinalSuccess("All %d cases passed (%d skipped).", passed, skipped)
	return errors.ExitSuccess
}

// cmdSuites lists the case suites found in the cases directory.
func cmdSuites(args []string, _ *GlobalOptions) int {
	if wantsHelp(args) {
		printSuitesUsage()
		return 0
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}
	printWarnings(proj.Warnings)

	names, err := proj.DiscoverSuites()
	if err != nil {
		out.ErrorPrefix("suites: %v", err)
		return errors.ExitConfigError
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		sc := proj.Config.Suites[name]
		status := "active"
		if sc.Skip {
			status = "skipped"
		}
		rows = append(rows, []string{name, strings.Join(sc.Modes, ","), status, sc.Description})
	}
	out.Table([]string{"Suite", "Modes", "Status", "Description"}, rows)
	return errors.ExitSuccess
}

// cmdModes lists the leniency modes.
func cmdModes(args []string) int {
	if wantsHelp(args) {
		printModesUsage()
		return 0
	}
	if len(args) > 0 {
		out.ErrorPrefix("modes: unexpected argument: %s", args[0])
		return errors.ExitConfigError
	}

	modes := reflectdiff.AllModes()
	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{m.Token, m.Description})
	}
	out.Table([]string{"Mode", "Description"}, rows)
	return errors.ExitSuccess
}

func cmdConfig(args []string) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate()
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate() int {
	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	printWarnings(proj.Warnings)

	opts, err := proj.Config.EngineOptions("", nil)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("Project", proj.Config.Project.Name)
	out.SummaryItem("Modes", opts.Modes.String())
	out.SummaryItem("Report", opts.Report.String())
	out.SummaryItem("Cases", proj.CasesDirectory())
	out.SummaryItem("Suites", fmt.Sprintf("%d configured", len(proj.Config.Suites)))
	out.List(slices.Sorted(maps.Keys(proj.Config.Suites)))
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return 0
}

// printCompareUsage prints the help text for the compare command.
func printCompareUsage() {
	w := out

	w.HelpTitle("reflectdiff compare - compare two documents")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff compare [options] <left> <right>")

	w.HelpSection("Description:")
	w.Println("  Loads two JSON or YAML documents and prints where they differ.")
	w.Println("  Modes from the project configuration apply when run inside a project.")

	w.HelpSection("Options:")
	w.HelpFlag("--mode=<mode>", "Add a leniency mode (repeatable, comma-separated)", widthFlagWithValue)
	w.HelpFlag("--all", "Report every difference, not only the first", widthFlagWithValue)
	w.HelpFlag("--brief", "Print one line per difference", widthFlagWithValue)
	w.HelpFlag("--max-depth=<n>", "Bound the comparison depth", widthFlagWithValue)
	w.HelpFlag("--date-format=<fmt>", "Treat strings in this strftime format as dates", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("reflectdiff compare want.json got.json", "Report the first difference")
	w.HelpExample("reflectdiff compare --all --mode=ignore_defaults want.yaml got.json", "Ignore fields left unset in want.yaml")
	w.HelpExample("reflectdiff compare --date-format=%Y-%m-%d a.json b.json", "Compare ISO dates as instants")
	w.Println("")
}

// printCheckUsage prints the help text for the check command.
func printCheckUsage() {
	w := out

	w.HelpTitle("reflectdiff check - run comparison cases")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff check [suite...] [options]")

	w.HelpSection("Arguments:")
	w.HelpFlag("[suite...]", "Suites to run (default: all)", widthFlagWithValue)

	w.HelpSection("Options:")
	w.HelpFlag("--pattern=<glob>", "Case file name pattern", widthFlagWithValue)
	w.HelpFlag("--parallel=<n>", "Cases run at once", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("reflectdiff check", "Run every suite")
	w.HelpExample("reflectdiff check orders users", "Run two suites")
	w.HelpExample("reflectdiff -v check --parallel=1", "Run sequentially, listing passing cases")
	w.Println("")
}

// printSuitesUsage prints the help text for the suites command.
func printSuitesUsage() {
	w := out

	w.HelpTitle("reflectdiff suites - list case suites")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff suites")
	w.Println("")
}

// printModesUsage prints the help text for the modes command.
func printModesUsage() {
	w := out

	w.HelpTitle("reflectdiff modes - list leniency modes")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff modes")
	w.Println("")
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := out

	w.HelpTitle("reflectdiff config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Validate the project configuration", widthFlagWithValue)

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("reflectdiff config validate", "Validate project configuration")
	w.Println("")
}
