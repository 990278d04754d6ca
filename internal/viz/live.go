package viz

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/term"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/metrics"
	"github.com/san-kum/lavalamp/internal/palette"
)

const (
	historyCapacity = 600
	graphHeight     = 3
	graphWidth      = 40
	fillGlyph       = "■"
)

type TickMsg time.Time

type Options struct {
	Interval time.Duration
	Mono     bool
	Theme    string
	HUD      bool

	// Initial terminal size; Bubble Tea corrects it with a WindowSizeMsg.
	Width, Height int
}

// Model renders engine frames and handles operator keys.
type Model struct {
	eng       *engine.Engine
	collector *metrics.Collector

	interval      time.Duration
	width, height int
	frame         engine.Frame
	hud           string
	running       bool
	showHUD       bool
	mono          bool
	theme         string
}

// NewModel wires the collector into the engine and returns the model.
func NewModel(e *engine.Engine, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = engine.DefaultFrameInterval
	}
	if opts.Theme == "" {
		opts.Theme = palette.ThemeLava.Name
	}
	c := metrics.NewCollector(historyCapacity)
	e.AddObserver(c)

	return Model{
		eng:       e,
		collector: c,
		interval:  opts.Interval,
		width:     opts.Width,
		height:    opts.Height,
		running:   true,
		showHUD:   opts.HUD,
		mono:      opts.Mono,
		theme:     opts.Theme,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.cycleTheme()
		case "b":
			// Glyph output cannot show a tint; a set cell would draw as fill.
			if m.mono {
				break
			}
			p := m.eng.Params()
			p.Background = !p.Background
			_ = m.eng.SetParams(p)
		case "r":
			m.eng.Reseed()
			m.collector.Reset()
		case "?":
			m.showHUD = !m.showHUD
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	th := palette.NextTheme(m.theme)
	p := m.eng.Params()
	p.BaseColor = th.Base
	p.HueShift = th.HueShift
	if err := m.eng.SetParams(p); err == nil {
		m.theme = th.Name
	}
}

// step ticks the engine for the area left under the HUD.
func (m *Model) step() {
	h := m.height
	if m.showHUD {
		m.hud = m.renderHUD()
		h -= lipgloss.Height(m.hud)
	}
	m.frame = m.eng.Tick(m.width, max(h, 0))
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(renderRows(m.frame.Rows, m.mono))
	if m.showHUD && m.hud != "" {
		if len(m.frame.Rows) > 0 {
			s.WriteString("\n")
		}
		s.WriteString(m.hud)
	}
	return s.String()
}

func (m Model) renderHUD() string {
	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(status)
	if r, ok := m.collector.Latest(); ok {
		s.WriteString("  " + MetricLabel.Render("tick ") + MetricValue.Render(fmt.Sprintf("%d", r.Tick)))
		s.WriteString("  " + MetricLabel.Render("blobs ") + MetricValue.Render(fmt.Sprintf("%d/%d", r.Falling, r.Blobs)))
		s.WriteString("  " + MetricLabel.Render("regions ") + MetricValue.Render(fmt.Sprintf("%d", r.Regions)))
		s.WriteString("  " + MetricLabel.Render("cover ") + MetricValue.Render(fmt.Sprintf("%.1f%%", 100*r.Coverage)))
	}
	s.WriteString("  " + MetricLabel.Render("theme ") + MetricValue.Render(m.theme))

	falling := m.collector.Series(metrics.FallingOf)
	s.WriteString("  " + SparklineChart(falling, 20))

	coverage := m.collector.Series(metrics.CoverageOf)
	if len(coverage) > 1 {
		w := min(graphWidth, max(m.width-10, 10))
		chart := asciigraph.Plot(coverage, asciigraph.Height(graphHeight), asciigraph.Width(w), asciigraph.Caption("coverage"))
		s.WriteString("\n" + graphStyle.Render(chart))
	}
	s.WriteString("\n" + KeyHint.Render("q quit · space pause · t theme · b background · r reseed · ? hud"))
	return s.String()
}

// renderRows draws each row as runs of equal colour so lipgloss emits one
// escape sequence per run rather than per cell.
func renderRows(rows [][]palette.Color, mono bool) string {
	var s strings.Builder
	for i, row := range rows {
		if i > 0 {
			s.WriteByte('\n')
		}
		for _, run := range palette.Runs(row) {
			s.WriteString(renderRun(run.Color, run.Len, mono))
		}
	}
	return s.String()
}

func renderRun(c palette.Color, n int, mono bool) string {
	switch {
	case mono && c.Set:
		return strings.Repeat(fillGlyph, n)
	case mono || !c.Set:
		return strings.Repeat(" ", n)
	default:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(c.RGB.Hex())).
			Render(strings.Repeat(" ", n))
	}
}

// MeasureTerminal reports the size of the terminal on stdout.
func MeasureTerminal() (int, int, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", engine.ErrNoViewport, err)
	}
	return w, h, nil
}

// Run measures the terminal and blocks until the operator quits or ctx ends.
func Run(ctx context.Context, e *engine.Engine, opts Options) error {
	if opts.Width == 0 && opts.Height == 0 {
		w, h, err := MeasureTerminal()
		if err != nil {
			return err
		}
		opts.Width, opts.Height = w, h
	}

	p := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
