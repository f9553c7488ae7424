// Package tui holds the terminal setup shared by navcore's interactive views.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI picks the lipgloss color profile before a program starts.
// NO_COLOR disables styling; CLICOLOR_FORCE=1 or COLORTERM=truecolor forces
// true color when output is not a terminal.
func InitializeTUI() {
	lipgloss.SetColorProfile(ColorProfile())
}

// ColorProfile resolves the color profile from the environment, falling back
// to what the terminal reports.
func ColorProfile() termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case os.Getenv("CLICOLOR_FORCE") == "1", os.Getenv("COLORTERM") == "truecolor":
		return termenv.TrueColor
	default:
		return termenv.EnvColorProfile()
	}
}
