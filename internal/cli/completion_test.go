package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// cmdCompletion Argument Parsing Tests
// =============================================================================

func TestCmdCompletion_NoArgs_ReturnsError(t *testing.T) {
	_, stderr := captureOutput(t)

	assert.Equal(t, 2, cmdCompletion([]string{}))
	assert.Contains(t, stderr.String(), "shell required")
}

func TestCmdCompletion_Shells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _ := captureOutput(t)

			require.Equal(t, 0, cmdCompletion([]string{shell}))
			assert.Contains(t, stdout.String(), "# reflectdiff "+shell+" completion")
		})
	}
}

func TestCmdCompletion_UnknownShell_ReturnsError(t *testing.T) {
	_, stderr := captureOutput(t)

	assert.Equal(t, 2, cmdCompletion([]string{"powershell"}))
	assert.Contains(t, stderr.String(), `unsupported shell "powershell"`)
}

func TestCmdCompletion_Help_ReturnsZero(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			stdout, _ := captureOutput(t)

			assert.Equal(t, 0, cmdCompletion([]string{arg}))
			assert.Contains(t, stdout.String(), "reflectdiff completion <shell>")
		})
	}
}

func TestCmdCompletion_Alias_GeneratesWithAlias(t *testing.T) {
	stdout, _ := captureOutput(t)

	require.Equal(t, 0, cmdCompletion([]string{"bash", "--alias=rd"}))
	script := stdout.String()
	assert.Contains(t, script, "complete -F _rd_completions rd")
	assert.Contains(t, script, `alias rd="reflectdiff"`)
}

func TestCmdCompletion_AliasWithoutValue_ReturnsError(t *testing.T) {
	captureOutput(t)

	assert.Equal(t, 2, cmdCompletion([]string{"--alias", "bash"}))
}

func TestCmdCompletion_UnknownFlag_ReturnsError(t *testing.T) {
	_, stderr := captureOutput(t)

	assert.Equal(t, 2, cmdCompletion([]string{"bash", "--shell"}))
	assert.Contains(t, stderr.String(), "unknown flag: --shell")
}

func TestCmdCompletion_ExtraArgument_ReturnsError(t *testing.T) {
	_, stderr := captureOutput(t)

	assert.Equal(t, 2, cmdCompletion([]string{"bash", "zsh"}))
	assert.Contains(t, stderr.String(), "unexpected argument: zsh")
}

// =============================================================================
// Script Content Tests
// =============================================================================

func TestGenerateBashCompletion_ListsCommandsAndModes(t *testing.T) {
	script := generateBashCompletion("reflectdiff")

	for _, cmd := range commandNames() {
		assert.Contains(t, script, cmd)
	}
	assert.Contains(t, script, `local modes="ignore_defaults lenient_dates lenient_order"`)
	assert.Contains(t, script, "reflectdiff suites 2>/dev/null")
	assert.Contains(t, script, "complete -F _reflectdiff_completions reflectdiff")
}

func TestGenerateBashCompletion_HyphenatedAlias(t *testing.T) {
	script := generateBashCompletion("my-diff")

	assert.Contains(t, script, "_my_diff_completions()")
	assert.Contains(t, script, "complete -F _my_diff_completions my-diff")
}

func TestGenerateZshCompletion_DescribesCommands(t *testing.T) {
	script := generateZshCompletion("reflectdiff")

	require.True(t, strings.HasPrefix(script, "#compdef reflectdiff\n"))
	for _, c := range builtinCommands() {
		assert.Contains(t, script, "'"+c.Name+":"+c.Description+"'")
	}
	assert.Contains(t, script, "mode:(ignore_defaults lenient_dates lenient_order)")
	assert.Contains(t, script, "compdef _reflectdiff reflectdiff")
}

func TestGenerateFishCompletion_CompletesModesAndSuites(t *testing.T) {
	script := generateFishCompletion("reflectdiff")

	for _, token := range modeTokens() {
		assert.Contains(t, script, "-l mode -xa '"+token+"'")
	}
	assert.Contains(t, script, "__fish_seen_subcommand_from check' -a '(reflectdiff suites")
	assert.Contains(t, script, "complete -c reflectdiff -f -n 'not __fish_seen_subcommand_from compare'")
}

func TestGenerateFishCompletion_EscapesQuotes(t *testing.T) {
	script := generateFishCompletion("reflectdiff")

	for _, line := range strings.Split(script, "\n") {
		if !strings.HasPrefix(line, "complete ") {
			continue
		}
		unescaped := strings.Count(line, "'") - strings.Count(line, `\'`)
		assert.Equal(t, 0, unescaped%2, "unbalanced quotes in %q", line)
	}
}

func TestModeTokens_MatchEngine(t *testing.T) {
	assert.Equal(t, []string{"ignore_defaults", "lenient_dates", "lenient_order"}, modeTokens())
}
