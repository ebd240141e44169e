package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// Theme defines the color scheme for the TUI, including one color per
// stroke for gas-charge labels: pale for intake air, gold for compressed
// mixture, orange for combustion, gray for exhaust.
type Theme struct {
	Name        string
	Primary     lipgloss.Color
	Accent      lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Intake      lipgloss.Color
	Compression lipgloss.Color
	Power       lipgloss.Color
	Exhaust     lipgloss.Color
}

func (t Theme) StrokeColor(s engine.Stroke) lipgloss.Color {
	switch s {
	case engine.Intake:
		return t.Intake
	case engine.Compression:
		return t.Compression
	case engine.Power:
		return t.Power
	default:
		return t.Exhaust
	}
}

// Available themes
var (
	ThemeWorkshop = Theme{
		Name:        "workshop",
		Primary:     lipgloss.Color("#00cccc"),
		Accent:      lipgloss.Color("#ffcc00"),
		Text:        lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#666666"),
		Intake:      lipgloss.Color("#cccccc"),
		Compression: lipgloss.Color("#e6cc00"),
		Power:       lipgloss.Color("#ff6600"),
		Exhaust:     lipgloss.Color("#808080"),
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Primary:     lipgloss.Color("#00ff00"),
		Accent:      lipgloss.Color("#88ff88"),
		Text:        lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#005500"),
		Intake:      lipgloss.Color("#88ff88"),
		Compression: lipgloss.Color("#00cc00"),
		Power:       lipgloss.Color("#ffffff"),
		Exhaust:     lipgloss.Color("#008800"),
	}

	ThemeBlueprint = Theme{
		Name:        "blueprint",
		Primary:     lipgloss.Color("#4488ff"),
		Accent:      lipgloss.Color("#ffd700"),
		Text:        lipgloss.Color("#e0f0ff"),
		Muted:       lipgloss.Color("#334466"),
		Intake:      lipgloss.Color("#88bbff"),
		Compression: lipgloss.Color("#ffd700"),
		Power:       lipgloss.Color("#ff8844"),
		Exhaust:     lipgloss.Color("#667788"),
	}

	// Default theme
	CurrentTheme = ThemeWorkshop

	Themes = []Theme{
		ThemeWorkshop,
		ThemeRetroGreen,
		ThemeBlueprint,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeWorkshop
}

// SetTheme changes the current theme, reporting whether the name matched.
func SetTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			CurrentTheme = t
			return true
		}
	}
	return false
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
