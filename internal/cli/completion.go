package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/reflectdiff/internal/errors"
	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			printCompletionUsage()
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		printCompletionUsage()
		return errors.ExitConfigError
	}

	cmdName := "reflectdiff"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := out

	w.HelpTitle("reflectdiff completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("reflectdiff completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", 10)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	w.HelpFlag("-h, --help", "Show this help", 14)

	w.HelpSection("Examples:")
	w.HelpExample("reflectdiff completion bash", "Generate bash completion")
	w.HelpExample("reflectdiff completion zsh", "Generate zsh completion")
	w.HelpExample("reflectdiff completion fish", "Generate fish completion")
	w.HelpExample("reflectdiff completion bash --alias=rd", "Generate bash completion for alias 'rd'")

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(reflectdiff completion bash)\"")
	w.Println("  Zsh:   eval \"$(reflectdiff completion zsh)\"")
	w.Println("  Fish:  reflectdiff completion fish | source")
	w.Println("")
}

// commandInfo describes a top-level command for completion scripts.
type commandInfo struct {
	Name        string
	Description string
}

// builtinCommands returns the top-level CLI commands.
func builtinCommands() []commandInfo {
	return []commandInfo{
		{"compare", "Compare two JSON or YAML documents"},
		{"check", "Run the comparison cases of the project"},
		{"suites", "List the case suites of the project"},
		{"modes", "List the leniency modes"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

func commandNames() []string {
	cmds := builtinCommands()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// modeTokens returns the values accepted by --mode.
func modeTokens() []string {
	modes := reflectdiff.AllModes()
	tokens := make([]string, len(modes))
	for i, m := range modes {
		tokens[i] = m.Token
	}
	return tokens
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{
		"--quiet",
		"--verbose",
		"--no-color",
		"--log-format",
		"--help",
		"--version",
	}
}

func compareFlags() []string {
	return []string{"--mode", "--all", "--brief", "--max-depth", "--date-format"}
}

func checkFlags() []string {
	return []string{"--pattern", "--parallel"}
}

// suitesCommand lists suite names, skipping the table header and rule.
func suitesCommand(cmdName string) string {
	return fmt.Sprintf("%s suites 2>/dev/null | awk 'NR>2 {print $1}'", cmdName)
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	var aliasNote string
	if cmdName == "reflectdiff" {
		aliasNote = `
# Alias support:
# If you use an alias (e.g., alias rd="reflectdiff"), add completion for it:
#   complete -F _reflectdiff_completions rd
# Or generate completion directly for your alias:
#   eval "$(reflectdiff completion bash --alias=rd)"
`
	} else {
		aliasNote = fmt.Sprintf(`
# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="reflectdiff"
`, cmdName, cmdName)
	}

	return fmt.Sprintf(`# reflectdiff bash completion
# Add to ~/.bashrc: eval "$(reflectdiff completion bash)"
%s
%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"
    local compare_flags="%s"
    local check_flags="%s"
    local modes="%s"

    case "${prev}" in
        %s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --mode)
            COMPREPLY=($(compgen -W "${modes}" -- "${cur}"))
            return
            ;;
        --log-format)
            COMPREPLY=($(compgen -W "console json" -- "${cur}"))
            return
            ;;
    esac

    local cmd="${words[1]}"
    case "${cmd}" in
        compare)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${compare_flags} ${flags}" -- "${cur}"))
            else
                _filedir '@(json|yaml|yml)'
            fi
            ;;
        check)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${check_flags} ${flags}" -- "${cur}"))
            else
                COMPREPLY=($(compgen -W "$(%s)" -- "${cur}"))
            fi
            ;;
        *)
            COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
            ;;
    esac
}

complete -F %s %s
`, aliasNote, funcName,
		strings.Join(commandNames(), " "),
		strings.Join(globalFlags(), " "),
		strings.Join(compareFlags(), " "),
		strings.Join(checkFlags(), " "),
		strings.Join(modeTokens(), " "),
		cmdName, suitesCommand(cmdName), funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var aliasNote string
	if cmdName == "reflectdiff" {
		aliasNote = `
# Alias support:
# If you use an alias (e.g., alias rd="reflectdiff"), add completion for it:
#   compdef _reflectdiff rd
# Or generate completion directly for your alias:
#   eval "$(reflectdiff completion zsh --alias=rd)"
`
	} else {
		aliasNote = fmt.Sprintf(`
# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="reflectdiff"
`, cmdName, cmdName)
	}

	var commands strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.Name, c.Description)
	}

	return fmt.Sprintf(`#compdef %s
# reflectdiff zsh completion
# Add to ~/.zshrc: eval "$(reflectdiff completion zsh)"
%s
%s() {
    local -a commands flags suites

    commands=(
%s    )

    flags=(
        '(-q --quiet)'{-q,--quiet}'[Minimal output]'
        '(-v --verbose)'{-v,--verbose}'[Debug logging and per-case output]'
        '--no-color[Disable colored output]'
        '--log-format=[Log encoding]:format:(console json)'
        '--help[Show help]'
        '--version[Show version]'
    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        _arguments -s $flags[@]
        return
    fi

    case "${words[2]}" in
        compare)
            _arguments -s \
                '*--mode=[Leniency mode]:mode:(%s)' \
                '--all[Report every difference]' \
                '--brief[One line per difference]' \
                '--max-depth=[Comparison depth bound]:depth:' \
                '--date-format=[strftime date layout]:format:' \
                '*:document:_files -g "*.(json|yaml|yml)"'
            ;;
        check)
            suites=(${(f)"$(%s)"})
            _arguments -s \
                '--pattern=[Case file name pattern]:pattern:' \
                '--parallel=[Cases run at once]:count:'
            if [[ ${#suites[@]} -gt 0 && -n "${suites[1]}" ]]; then
                _describe -t suites 'suite' suites
            fi
            ;;
        config)
            _values 'config subcommand' 'validate[Validate configuration]'
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        *)
            _arguments -s $flags[@]
            ;;
    esac
}

compdef %s %s
`, cmdName, aliasNote, funcName, commands.String(),
		strings.Join(modeTokens(), " "), suitesCommand(cmdName), funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	var aliasNote string
	if cmdName == "reflectdiff" {
		aliasNote = `# Alias support:
# If you use an alias (e.g., alias rd="reflectdiff"), add completion for it:
#   complete -c rd -w reflectdiff
# Or generate completion directly for your alias:
#   reflectdiff completion fish --alias=rd | source
`
	} else {
		aliasNote = fmt.Sprintf(`# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="reflectdiff"
`, cmdName, cmdName)
	}

	fmt.Fprintf(&sb, `# reflectdiff fish completion
# Add to config: reflectdiff completion fish | source

%s
# Files are completed only for compare
complete -c %s -f -n 'not __fish_seen_subcommand_from compare'

`, aliasNote, cmdName)

	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.Name, c.Description)
	}

	sb.WriteString("\n# Global flags\n")
	fmt.Fprintf(&sb, "complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -s v -l verbose -d 'Debug logging and per-case output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l no-color -d 'Disable colored output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l log-format -d 'Log encoding' -xa 'console json'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l help -d 'Show help'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l version -d 'Show version'\n", cmdName)

	sb.WriteString("\n# compare flags\n")
	for _, m := range reflectdiff.AllModes() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from compare' -l mode -xa '%s' -d '%s'\n",
			cmdName, m.Token, strings.ReplaceAll(m.Description, "'", `\'`))
	}
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from compare' -l all -d 'Report every difference'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from compare' -l brief -d 'One line per difference'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from compare' -l max-depth -x -d 'Comparison depth bound'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from compare' -l date-format -x -d 'strftime date layout'\n", cmdName)

	sb.WriteString("\n# check flags\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from check' -l pattern -x -d 'Case file name pattern'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from check' -l parallel -x -d 'Cases run at once'\n", cmdName)

	sb.WriteString("\n# config subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName)

	sb.WriteString("\n# completion subcommands\n")
	for _, shell := range []string{"bash", "zsh", "fish"} {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a '%s' -d 'Generate %s completion'\n", cmdName, shell, shell)
	}

	sb.WriteString("\n# Dynamic suite completion\n")
	fmt.Fprintf(&sb, `complete -c %s -n '__fish_seen_subcommand_from check' -a '(%s suites 2>/dev/null | tail -n +3 | string match -r "^\S+")' -d 'Suite'`+"\n", cmdName, cmdName)

	return sb.String()
}
