package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the status panel. The field itself is always painted with
// the scheduler's color.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Panel     lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Low       lipgloss.Color
	Mid       lipgloss.Color
	High      lipgloss.Color
}

var (
	ThemeGraphite = Theme{
		Name:      "graphite",
		Primary:   lipgloss.Color("#e6e6e6"),
		Secondary: lipgloss.Color("#8a8a8a"),
		Panel:     lipgloss.Color("#1c1c1c"),
		Text:      lipgloss.Color("#d0d0d0"),
		Muted:     lipgloss.Color("#6c6c6c"),
		Border:    lipgloss.Color("#444444"),
		Low:       lipgloss.Color("#5f5f5f"),
		Mid:       lipgloss.Color("#9e9e9e"),
		High:      lipgloss.Color("#eeeeee"),
	}

	ThemePaper = Theme{
		Name:      "paper",
		Primary:   lipgloss.Color("#1a1a1a"),
		Secondary: lipgloss.Color("#5a5a5a"),
		Panel:     lipgloss.Color("#f4f1ea"),
		Text:      lipgloss.Color("#2b2b2b"),
		Muted:     lipgloss.Color("#8c8577"),
		Border:    lipgloss.Color("#c9c2b2"),
		Low:       lipgloss.Color("#b8b0a0"),
		Mid:       lipgloss.Color("#7a7264"),
		High:      lipgloss.Color("#2b2b2b"),
	}

	ThemeNight = Theme{
		Name:      "night",
		Primary:   lipgloss.Color("#9aa5ce"),
		Secondary: lipgloss.Color("#565f89"),
		Panel:     lipgloss.Color("#0b0d14"),
		Text:      lipgloss.Color("#a9b1d6"),
		Muted:     lipgloss.Color("#414868"),
		Border:    lipgloss.Color("#24283b"),
		Low:       lipgloss.Color("#3b4261"),
		Mid:       lipgloss.Color("#7aa2f7"),
		High:      lipgloss.Color("#c0caf5"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Panel:     lipgloss.Color("#001a33"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Border:    lipgloss.Color("#0f3a5f"),
		Low:       lipgloss.Color("#ff4444"),
		Mid:       lipgloss.Color("#ffcc00"),
		High:      lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Panel:     lipgloss.Color("#2d1b2e"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Border:    lipgloss.Color("#5a3b5c"),
		Low:       lipgloss.Color("#ff4757"),
		Mid:       lipgloss.Color("#ffc048"),
		High:      lipgloss.Color("#5fd068"),
	}

	Themes = []Theme{
		ThemeGraphite,
		ThemePaper,
		ThemeNight,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to graphite.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeGraphite
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
