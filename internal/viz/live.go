package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/palette"
)

const (
	width  = 80
	height = 24

	frameCapacity   = 120
	historyCapacity = 300
)

type TickMsg time.Time

// Options configures a live Model.
type Options struct {
	FPS    int
	Theme  string
	Logger *zap.Logger
	// Now is the clock used for key presses. Defaults to time.Now.
	Now func() time.Time
}

// Model paints the terminal with the field and shows a status panel.
type Model struct {
	sched *field.Scheduler
	hover *field.Hover
	log   *zap.Logger
	now   func() time.Time

	// hoverMode shows the hover walk instead of the timed field.
	hoverMode bool
	showPanel bool

	keys   keyMap
	help   help.Model
	bar    progress.Model
	theme  Theme
	styles styles
	fps    int

	width, height int

	color  palette.Color
	accent palette.Color

	// frames holds per-frame gray levels; history holds one level per second.
	frames      []float64
	history     []float64
	lastHistory time.Time
}

// NewModel wires a scheduler and a hover walk into a live view.
func NewModel(sched *field.Scheduler, hover *field.Hover, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := GetTheme(opts.Theme)
	h := help.New()
	h.Width = panelWidth - 6
	return Model{
		sched:     sched,
		hover:     hover,
		log:       opts.Logger,
		now:       opts.Now,
		showPanel: true,
		keys:      defaultKeyMap(),
		help:      h,
		bar:       newBar(theme),
		theme:     theme,
		styles:    newStyles(theme),
		fps:       opts.FPS,
		width:     width,
		height:    height,
		color:     sched.Current(),
		accent:    sched.Current(),
		frames:    make([]float64, 0, frameCapacity),
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the field.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func newBar(t Theme) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(t.High)),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	now := m.now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.White):
		m.apply(field.CmdPinWhite, now)
	case key.Matches(msg, m.keys.WhiteNow):
		m.apply(field.CmdPinWhiteInstant, now)
	case key.Matches(msg, m.keys.Resume):
		m.apply(field.CmdResume, now)
	case key.Matches(msg, m.keys.HoverView):
		m.hoverMode = !m.hoverMode
		if !m.hoverMode {
			m.hover.StopHoverAnimation(now)
		}
		m.log.Debug("hover view toggled", zap.Bool("on", m.hoverMode))
	case key.Matches(msg, m.keys.Hover):
		if !m.hoverMode {
			return m, nil
		}
		cmd := field.CmdHoverStart
		if s := m.hover.State(); s == field.HoverArmed || s == field.HoverWalking {
			cmd = field.CmdHoverStop
		}
		if err := m.hover.Apply(cmd, now); err != nil {
			m.log.Warn("hover command failed", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.bar = newBar(m.theme)
	case key.Matches(msg, m.keys.Panel):
		m.showPanel = !m.showPanel
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) apply(cmd field.Command, now time.Time) {
	if err := m.sched.Apply(cmd, now); err != nil {
		m.log.Warn("key command failed", zap.String("command", string(cmd)), zap.Error(err))
	}
}

// frame advances whichever walk is on screen to now.
func (m *Model) frame(now time.Time) {
	if m.hoverMode {
		m.color = m.hover.Tick(now)
		m.accent = m.color
	} else {
		m.color = m.sched.Tick(now)
		m.accent = m.sched.Accent(now)
	}

	level := m.color.Level()
	m.frames = appendCapped(m.frames, level, frameCapacity)
	if now.Sub(m.lastHistory) >= time.Second {
		m.history = appendCapped(m.history, level, historyCapacity)
		m.lastHistory = now
	}
}

func appendCapped(s []float64, v float64, capacity int) []float64 {
	s = append(s, v)
	if len(s) > capacity {
		s = s[1:]
	}
	return s
}

func (m Model) Color() palette.Color  { return m.color }
func (m Model) Accent() palette.Color { return m.accent }
func (m Model) Theme() Theme          { return m.theme }
func (m Model) HoverMode() bool       { return m.hoverMode }

// View renders the field, with the status panel centered on it when shown.
func (m Model) View() string {
	if !m.showPanel {
		return m.background()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.panel(),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.color.Hex())))
}

// background fills the screen row by row from the color down to the accent.
func (m Model) background() string {
	rows := make([]string, m.height)
	line := strings.Repeat(" ", max(m.width, 0))
	for y := range rows {
		t := 0.0
		if m.height > 1 {
			t = float64(y) / float64(m.height-1)
		}
		c := palette.Lerp(m.color, m.accent, t)
		rows[y] = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) panel() string {
	st := m.styles
	var s strings.Builder

	title := GradientText("COLORFIELD", palette.NearBlack, palette.NearWhite)
	s.WriteString(st.header.Render(title) + "\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	if m.hoverMode {
		row("Mode", "hover "+m.hover.Label())
		row("Color", m.color.Hex())
		row("Target", Swatch(m.hover.Target(), 4)+" "+m.hover.Target().Hex())
		row("Leg", m.hover.LegDuration().Round(time.Second).String())
	} else {
		snap := m.sched.Snapshot()
		row("Mode", snap.Mode.String())
		row("Index", fmt.Sprintf("%d", snap.Index))
		row("Color", m.color.Hex())
		row("Legs", Swatch(snap.Start, 4)+" → "+Swatch(snap.Target, 4)+" "+snap.Target.Hex())
		row("Progress", m.bar.ViewAs(snap.Progress))
		row("Leg", snap.Duration.Round(time.Millisecond).String())
	}
	row("Level", st.SparklineChart(m.frames, 24))
	row("Theme", m.theme.Name)

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("gray level / s"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.Separator(panelWidth-6) + "\n")
	s.WriteString(m.help.View(m.keys))
	return st.panel.Render(s.String())
}

// Run starts the live view on the alternate screen and blocks until quit.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
