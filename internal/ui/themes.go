// Package ui holds the terminal colour themes shared by the menu, the REPL
// and the one-shot report. The active theme is process-wide.
package ui

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Theme maps each colour role to an ANSI escape sequence. Strategy names
// use Primary, digit counts Secondary, results Success, durations Warning.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme is the default, for dark backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker shades for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme has every escape sequence empty.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// ThemeEnvVar names the theme ("dark", "light", "none") used when colours
// are enabled.
const ThemeEnvVar = "BIGCALC_THEME"

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// themeByName looks a theme up by name, falling back to DarkTheme.
func themeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return DarkTheme
}

// SetTheme activates the named theme; unknown names select the dark one.
func SetTheme(name string) {
	SetCurrentTheme(themeByName(name))
}

// InitTheme picks the theme for a session writing to out. Colours are off
// when noColor is set, when NO_COLOR is present in the environment (even
// empty, see https://no-color.org/) or when out is a file that is not a
// terminal. Otherwise BIGCALC_THEME chooses among the themes.
func InitTheme(noColor bool, out io.Writer) {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	if noColor || noColorEnv || !IsTerminal(out) {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnvVar))
}

// IsTerminal reports whether out is an interactive terminal. Writers that
// are not files (buffers, pipes wrapped in other writers) report true so that
// tests and embedded uses keep the configured colours.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
