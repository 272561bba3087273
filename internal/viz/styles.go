package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/colorfield/internal/palette"
)

const panelWidth = 44

// styles are the panel's lipgloss styles for one theme.
type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	hint   lipgloss.Style
	low    lipgloss.Style
	mid    lipgloss.Style
	high   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Background(t.Panel).
			Foreground(t.Text).
			Padding(1, 2).
			Width(panelWidth),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary),
		hint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		low:    lipgloss.NewStyle().Foreground(t.Low),
		mid:    lipgloss.NewStyle().Foreground(t.Mid),
		high:   lipgloss.NewStyle().Foreground(t.High),
	}
}

// GradientText colors each rune of text along the line from start to end.
func GradientText(text string, start, end palette.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := palette.Lerp(start, end, t)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// Swatch is a block of width cells filled with c.
func Swatch(c palette.Color, width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", width))
}

// SparklineChart renders a mini sparkline from values, keeping the most
// recent ones when there are more values than cells.
func (s styles) SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}
	first := len(values) - step*width
	if first < 0 {
		first = 0
	}

	var b strings.Builder
	for i := first; i < len(values); i += step {
		norm := (values[i] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.high.Render(c))
		case norm > 0.3:
			b.WriteString(s.mid.Render(c))
		default:
			b.WriteString(s.low.Render(c))
		}
	}
	return b.String()
}

// Separator is a thin rule across the panel.
func (s styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.hint.Render(left + " ◆ " + right)
}
