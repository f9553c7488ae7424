package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "material"

// --- Material (dark / light) palette ---
const (
	materialDarkGreen      = "#81C995"
	materialDarkYellow     = "#FDD663"
	materialDarkRed        = "#F28B82"
	materialDarkOrange     = "#FCAD70"
	materialDarkCyan       = "#78D9EC"
	materialDarkViolet     = "#C58AF9"
	materialDarkLightText  = "#E8EAED"
	materialDarkMutedText  = "#9AA0A6"
	materialDarkBorder     = "#3C4043"
	materialDarkSelectedBg = "#283142"

	materialLightGreen      = "#188038"
	materialLightYellow     = "#B06000"
	materialLightRed        = "#C5221F"
	materialLightOrange     = "#E8710A"
	materialLightCyan       = "#007B83"
	materialLightViolet     = "#8430CE"
	materialLightLightText  = "#202124"
	materialLightMutedText  = "#5F6368"
	materialLightBorder     = "#DADCE0"
	materialLightSelectedBg = "#E8F0FE"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen      = "2"
	terminalYellow     = "3"
	terminalRed        = "1"
	terminalOrange     = "208"
	terminalCyan       = "6"
	terminalViolet     = "5"
	terminalLightText  = "7"
	terminalMutedText  = "8"
	terminalBorder     = "8"
	terminalSelectedBg = "8"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
}

// Theme holds the pre-configured styles shared by the CLI, the browser and
// the log formatter.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Box    lipgloss.Style
	Drawer lipgloss.Style
	Input  lipgloss.Style
	Cursor lipgloss.Style

	Highlight lipgloss.Style
	Accent    lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"material": newMaterialColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"material-dark":  "material",
	"material-light": "material",
	"ansi":           "terminal",
}

// DefaultTheme is the active theme. NAVCORE_THEME selects the palette at
// startup; Use replaces it afterwards.
var DefaultTheme = NewThemeWithName(os.Getenv("NAVCORE_THEME"))

// NewThemeWithName constructs a theme from a palette name. Unknown names
// fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	return newThemeFromColors(resolveThemeColors(name))
}

// Use makes the named palette the default theme. An empty name keeps the
// current one.
func Use(name string) {
	if normalizeThemeName(name) == "" {
		return
	}
	DefaultTheme = NewThemeWithName(name)
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newThemeFromColors(colors Colors) *Theme {
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Drawer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colors.Violet).
			Padding(0, 1),

		Input: lipgloss.NewStyle().Foreground(colors.LightText),

		Cursor: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),
	}
}

func resolveThemeColors(name string) Colors {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if builder, ok := themeRegistry[key]; ok {
		return builder()
	}
	return themeRegistry[defaultThemeName]()
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func newMaterialColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: materialLightGreen, Dark: materialDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: materialLightYellow, Dark: materialDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: materialLightRed, Dark: materialDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: materialLightOrange, Dark: materialDarkOrange},
		Cyan:               lipgloss.AdaptiveColor{Light: materialLightCyan, Dark: materialDarkCyan},
		Violet:             lipgloss.AdaptiveColor{Light: materialLightViolet, Dark: materialDarkViolet},
		LightText:          lipgloss.AdaptiveColor{Light: materialLightLightText, Dark: materialDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: materialLightMutedText, Dark: materialDarkMutedText},
		Border:             lipgloss.AdaptiveColor{Light: materialLightBorder, Dark: materialDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: materialLightSelectedBg, Dark: materialDarkSelectedBg},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color(terminalGreen),
		Yellow:             lipgloss.Color(terminalYellow),
		Red:                lipgloss.Color(terminalRed),
		Orange:             lipgloss.Color(terminalOrange),
		Cyan:               lipgloss.Color(terminalCyan),
		Violet:             lipgloss.Color(terminalViolet),
		LightText:          lipgloss.Color(terminalLightText),
		MutedText:          lipgloss.Color(terminalMutedText),
		Border:             lipgloss.Color(terminalBorder),
		SelectedBackground: lipgloss.Color(terminalSelectedBg),
	}
}
