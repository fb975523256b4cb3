package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnvVar selects the startup theme ("dark", "light", "orange",
// "none") when no explicit choice is made. NO_COLOR still wins over it.
const ThemeEnvVar = "GILBENCH_THEME"

// Theme defines a color scheme for CLI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color, used for regime names.
	Primary string
	// Secondary is used for counters and environment details.
	Secondary string
	// Success indicates agreement and completed runs.
	Success string
	// Warning is used for wall times and caution messages.
	Warning string
	// Error indicates failed regimes or aborted runs.
	Error string
	// Info is used for workload descriptions.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is the default palette, tuned for dark terminals.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;75m",  // Sky blue
		Secondary: "\033[38;5;252m", // Light grey
		Success:   "\033[38;5;114m", // Soft green
		Warning:   "\033[38;5;221m", // Warm yellow
		Error:     "\033[38;5;203m", // Coral red
		Info:      "\033[38;5;176m", // Orchid
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme darkens every hue for readability on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",  // Navy
		Secondary: "\033[38;5;238m", // Charcoal
		Success:   "\033[38;5;22m",  // Forest green
		Warning:   "\033[38;5;94m",  // Brown
		Error:     "\033[38;5;88m",  // Maroon
		Info:      "\033[38;5;55m",  // Deep violet
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// OrangeTheme matches the dashboard's amber palette, for terminals
	// that want the CLI and the TUI to agree.
	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   "\033[38;5;214m", // Amber
		Secondary: "\033[38;5;250m", // Silver
		Success:   "\033[38;5;115m", // Seafoam
		Warning:   "\033[38;5;222m", // Gold
		Error:     "\033[38;5;210m", // Salmon
		Info:      "\033[38;5;111m", // Steel blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output. Selected when NO_COLOR is
	// set or when a frontend asks for plain text.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   "",
		Secondary: "",
		Success:   "",
		Warning:   "",
		Error:     "",
		Info:      "",
		Bold:      "",
		Underline: "",
		Reset:     "",
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the dashboard.
// Each field is a lipgloss.TerminalColor suitable for use with
// lipgloss.Style.Foreground() and Background().
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the amber-on-black dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#D8D8D8"),
		Border:  lipgloss.Color("#E8850C"),
		Accent:  lipgloss.Color("#FFA033"),
		Success: lipgloss.Color("#87D787"),
		Warning: lipgloss.Color("#FFD75F"),
		Error:   lipgloss.Color("#FF5F5F"),
		Dim:     lipgloss.Color("#5F5F5F"),
		Info:    lipgloss.Color("#5F87FF"),
	}

	// NoColorTUITheme disables all dashboard colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active
// theme: NoColorTUITheme when colors are disabled, DarkTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "orange", "none".
// Unknown names fall back to the dark theme.
//
// Parameters:
//   - name: The name of the theme to activate.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

func themeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "orange":
		return OrangeTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme initializes the theme from the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/)
// for accessibility; after that, GILBENCH_THEME may pick a named theme.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty value disables colors (per no-color.org spec).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = themeByName(os.Getenv(ThemeEnvVar))
}
