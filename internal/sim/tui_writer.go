package sim

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// rowMsg carries the latest pose row for the arena view.
type rowMsg struct{ telemetry.PoseRow }

type setObstaclesMsg struct{ obstacles []Obstacle }
type setPauseMsg struct{ fn func() bool }

const maxLogLines = 1000

// TUIWriter renders pose rows using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.SimulationConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_ = p.Start()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements PoseWriter.
func (w *TUIWriter) Write(row telemetry.PoseRow) error {
	line := fmt.Sprintf("%s[%s]%s %stick=%d%s %spos=(%.1f,%.1f)%s %sphi=%.2f%s %sint=%.1f%s %sbeams=(%.0f,%.0f,%.0f,%.0f)%s %sstate=%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.Tick, colorReset,
		colorGreen, row.X, row.Y, colorReset,
		colorCyan, row.Phi, colorReset,
		colorMagenta, row.Intensity, colorReset,
		colorYellow, row.DistLeft, row.DistFront, row.DistRight, row.DistBack, colorReset,
		stateColor(row.State), row.State, colorReset,
	)
	w.program.Send(logMsg{line: line})
	w.program.Send(rowMsg{row})
	return nil
}

// SetObstacles hands the spawned obstacle set to the arena view.
func (w *TUIWriter) SetObstacles(obstacles []Obstacle) {
	w.program.Send(setObstaclesMsg{obstacles: obstacles})
}

// SetPauseFunc registers a callback toggling the simulator pause state.
func (w *TUIWriter) SetPauseFunc(fn func() bool) {
	w.program.Send(setPauseMsg{fn: fn})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var successBanner = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("10")).
	Padding(0, 1)

type tuiModel struct {
	cfg          *config.SimulationConfig
	vp           viewport.Model
	logs         []string
	row          telemetry.PoseRow
	haveRow      bool
	obstacles    []Obstacle
	pauseFn      func() bool
	paused       bool
	wrap         bool
	autoscroll   bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	return tuiModel{
		cfg:        cfg,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.pauseFn != nil {
				m.paused = m.pauseFn()
			}
			return m, nil
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		m.refreshViewport()
	case rowMsg:
		m.row = msg.PoseRow
		m.haveRow = true
	case setObstaclesMsg:
		m.obstacles = msg.obstacles
	case setPauseMsg:
		m.pauseFn = msg.fn
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	h := m.height - m.headerHeight - m.arenaHeight() - bottomHeight - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

// arenaHeight gives the arena view roughly half the terminal.
func (m tuiModel) arenaHeight() int {
	h := m.height / 2
	if h < 5 {
		h = 5
	}
	return h
}

func (m tuiModel) View() string {
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.renderArena(),
		divider,
		m.vp.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	title := fmt.Sprintf("lightseek-sim  arena %.0fx%.0f  light (%.0f,%.0f)  threshold %.0f",
		m.cfg.Arena.Width, m.cfg.Arena.Height,
		m.cfg.Light.X, m.cfg.Light.Y,
		m.cfg.Light.SuccessThreshold)
	if m.haveRow && m.row.State == telemetry.StateStopped {
		return title + "  " + successBanner.Render("SUCCESS: light source reached")
	}
	return title
}

// headingIcon picks the glyph for the robot heading. Angles are radians
// with the y axis pointing down, so π/2 faces the bottom of the screen.
func headingIcon(phi float64) string {
	deg := geometry.NormalizeAngle(phi) * 180 / math.Pi
	switch {
	case deg >= 45 && deg < 135:
		return "v"
	case deg >= 135 && deg < 225:
		return "<"
	case deg >= 225 && deg < 315:
		return "^"
	default:
		return ">"
	}
}

func (m tuiModel) renderArena() string {
	width := m.vp.Width
	height := m.arenaHeight()
	if width < 2 || m.cfg.Arena.Width <= 0 || m.cfg.Arena.Height <= 0 {
		return "No arena data"
	}

	toCell := func(p geometry.Vec) (int, int, bool) {
		x := int(p.X / m.cfg.Arena.Width * float64(width-1))
		y := int(p.Y / m.cfg.Arena.Height * float64(height-1))
		return x, y, x >= 0 && x < width && y >= 0 && y < height
	}

	grid := make([][]string, height)
	for i := range grid {
		row := make([]string, width)
		for j := range row {
			row[j] = "."
		}
		grid[i] = row
	}

	// obstacle outlines
	for _, o := range m.obstacles {
		for deg := 0; deg < 360; deg += 10 {
			rad := float64(deg) * math.Pi / 180
			p := o.Center.Add(geometry.Heading(rad).Scale(o.R))
			if x, y, ok := toCell(p); ok {
				grid[y][x] = fmt.Sprintf("%so%s", colorRed, colorReset)
			}
		}
	}

	if x, y, ok := toCell(geometry.Vec{X: m.cfg.Light.X, Y: m.cfg.Light.Y}); ok {
		grid[y][x] = fmt.Sprintf("%s*%s", colorYellow, colorReset)
	}

	if m.haveRow {
		for _, b := range m.row.Beams {
			if x, y, ok := toCell(geometry.Vec{X: b.X, Y: b.Y}); ok {
				grid[y][x] = fmt.Sprintf("%s+%s", colorGray, colorReset)
			}
		}
		if x, y, ok := toCell(geometry.Vec{X: m.row.X, Y: m.row.Y}); ok {
			grid[y][x] = fmt.Sprintf("%s%s%s", stateColor(m.row.State), headingIcon(m.row.Phi), colorReset)
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteByte('\n')
	}
	legend := fmt.Sprintf("%s>%s=robot %s*%s=light %so%s=obstacle %s+%s=beam",
		colorGreen, colorReset, colorYellow, colorReset,
		colorRed, colorReset, colorGray, colorReset)
	b.WriteString(legend)
	return b.String()
}

func (m tuiModel) renderBottom() string {
	pauseColor := lipgloss.Color("10")
	if m.paused {
		pauseColor = lipgloss.Color("9")
	}
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	pauseIndicator := lipgloss.NewStyle().Foreground(pauseColor).Render("●")
	wrapIndicator := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	scrollIndicator := lipgloss.NewStyle().Foreground(scrollColor).Render("●")

	state := "waiting"
	if m.haveRow {
		state = fmt.Sprintf("%stick=%d%s %sint=%.1f%s %sstate=%s%s",
			colorBlue, m.row.Tick, colorReset,
			colorMagenta, m.row.Intensity, colorReset,
			stateColor(m.row.State), m.row.State, colorReset)
	}
	return fmt.Sprintf("%s | Running %s | Wrap %s | Scroll %s | space pause, w wrap, s scroll, q quit",
		state, pauseIndicator, wrapIndicator, scrollIndicator)
}
