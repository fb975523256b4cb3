package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsRegime  bool     // true if values come from the regime list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
// The order matches the usage output for each shell.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Factorial argument to benchmark", Values: []string{"5", "10", "15", "20"}, ValueName: "number"},
	{Long: "repetitions", Short: "r", Help: "Repetitions per worker", Values: []string{"100000", "1000000", "5000000", "10000000"}, ValueName: "count"},
	{Long: "workers", Short: "w", Help: "Number of concurrent workers", Values: []string{"1", "2", "4", "8", "16", "32"}, ValueName: "count"},
	{Long: "mode", Help: "Execution regime to benchmark", IsRegime: true, ValueName: "regime"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m", "30m"}, ValueName: "duration"},
	{Long: "warmup", Help: "Run an unmeasured warmup pass"},
	{Long: "gcoff", Help: "Disable the garbage collector during measurement"},
	{Long: "pin", Help: "Pin workers to CPU cores"},
	{Long: "verbose", Short: "v", Help: "Display the hexadecimal result value"},
	{Long: "details", Short: "d", Help: "Show performance details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "calibrate", Help: "Run calibration mode"},
	{Long: "auto-calibrate", Help: "Enable auto-calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Launch the interactive dashboard"},
	{Long: "repl", Help: "Start an interactive session"},
	{Long: "serve", Help: "Expose the benchmark over HTTP"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", ":9090", "localhost:8080"}, ValueName: "address"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
// Some flags have slightly different descriptions in zsh's _arguments format.
var zshHelpOverrides = map[string]string{
	"n":    "Argument n of the factorial",
	"addr": "Listen address for serve mode",
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - regimes: List of available regime names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, regimes []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, regimes)
	case "zsh":
		return generateZshCompletion(out, regimes)
	case "fish":
		return generateFishCompletion(out, regimes)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, regimes)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatRegimeList joins regime names with space separators.
func formatRegimeList(regimes []string) string {
	return strings.Join(regimes, " ")
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, regimes []string) error {
	// Every flag, long and short form alike, lands in the opts word list.
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Case entries for flags whose argument can be suggested.
	// Order: regime, completion, file, remaining value flags.
	type caseEntry struct {
		patterns []string
		body     string
	}
	bashCaseEntry := func(f FlagCompletion) caseEntry {
		return caseEntry{
			patterns: []string{"--" + f.Long},
			body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
		}
	}
	var orderedCases []caseEntry

	// 1. Regime flags
	for _, f := range flagRegistry {
		if f.IsRegime {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${regimes}" -- "${cur}") )`,
			})
		}
	}

	// 2. Completion flag (static values, comes before file/value flags)
	for _, f := range flagRegistry {
		if f.Long == "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 3. File completion flags
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// 4. Remaining flags with static values (non-regime, non-file, non-completion)
	for _, f := range flagRegistry {
		if !f.IsRegime && !f.IsFile && f.Long != "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	var caseBody strings.Builder
	for _, c := range orderedCases {
		fmt.Fprintf(&caseBody, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(c.patterns, "|"), c.body)
	}

	regimeList := formatRegimeList(regimes)

	script := fmt.Sprintf(`# Bash completion script for gilbench
# Add this to your ~/.bashrc or ~/.bash_completion

_gilbench_completions() {
    local cur prev opts regimes
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available regimes
    regimes="%s both"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _gilbench_completions gilbench
`, strings.Join(opts, " "), regimeList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, regimes []string) error {
	// One _arguments entry per registry flag.
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	regimeList := formatRegimeList(regimes)

	script := fmt.Sprintf(`#compdef gilbench

# Zsh completion script for gilbench
# Add this to your ~/.zshrc or place in $fpath

_gilbench() {
    local -a regimes
    regimes=(%s both)

    _arguments -s \
%s
}

_gilbench "$@"
`, regimeList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	key := flagKey(f)
	if override, ok := zshHelpOverrides[key]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := zshHelp(f)

	// Value suffix: files, the live regime list, or the static suggestions.
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsRegime {
		valueSuffix = fmt.Sprintf(":%s:($regimes)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, regimes []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for gilbench")
	lines = append(lines, "# Add this to ~/.config/fish/completions/gilbench.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c gilbench -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Benchmark options", flags: filterFlags("n_short", "repetitions", "workers", "mode", "timeout", "warmup", "gcoff", "pin")},
		{comment: "# Calibration", flags: filterFlags("calibrate", "auto-calibrate", "calibration-profile")},
		{comment: "# Output options", flags: filterFlags("verbose", "details", "quiet", "output")},
		{comment: "# Interfaces", flags: filterFlags("tui", "repl", "serve", "addr")},
		{comment: "# Completion and config", flags: filterFlags("completion", "config")},
	}

	regimeList := formatRegimeList(regimes)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, regimeList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given identifiers.
// An identifier is a Long name, or "X_short" to match a flag by Short name only.
func filterFlags(ids ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, id := range ids {
		if strings.HasSuffix(id, "_short") {
			short := strings.TrimSuffix(id, "_short")
			for _, f := range flagRegistry {
				if f.Short == short && f.Long == "" {
					result = append(result, f)
					break
				}
			}
		} else {
			for _, f := range flagRegistry {
				if f.Long == id {
					result = append(result, f)
					break
				}
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, regimeList string) string {
	var parts []string
	parts = append(parts, "complete -c gilbench")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsRegime {
		parts = append(parts, fmt.Sprintf("-xa '%s both'", regimeList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, regimes []string) error {
	// One $options hashtable entry per flag form.
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Switch entries for flags whose argument can be suggested.
	// Only regime and non-file flags with static values get context-aware completion.
	// Order: regime, then value flags in reverse registry order (completion before timeout).
	var switchEntries []string

	psSwitchEntry := func(f FlagCompletion) string {
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", "))
	}

	// Regime flags first
	for _, f := range flagRegistry {
		if f.IsRegime {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $gilbenchRegimes | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	// Non-regime value flags in reverse registry order (completion before timeout)
	var psValueFlags []FlagCompletion
	for _, f := range flagRegistry {
		if !f.IsRegime && !f.IsFile && len(f.Values) > 0 {
			psValueFlags = append(psValueFlags, f)
		}
	}
	for i := len(psValueFlags) - 1; i >= 0; i-- {
		switchEntries = append(switchEntries, psSwitchEntry(psValueFlags[i]))
	}

	quoted := make([]string, len(regimes))
	for i, regime := range regimes {
		quoted[i] = "'" + regime + "'"
	}
	psRegimeList := strings.Join(quoted, ", ")

	script := fmt.Sprintf(`# PowerShell completion script for gilbench
# Add this to your $PROFILE

$gilbenchRegimes = @(%s, 'both')

Register-ArgumentCompleter -CommandName 'gilbench' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psRegimeList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
