package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"

	"github.com/shrenikm/Morphac/internal/control"
	"github.com/shrenikm/Morphac/internal/playground"
)

const (
	defaultCols      = 80
	defaultRows      = 24
	trailCapacity    = 300
	historyCapacity  = 300
	maxTicksPerFrame = 64
	frameInterval    = time.Second / 30
)

type TickMsg time.Time

// Model is the bubbletea model of the live view. It owns the playground
// while the program runs and executes ticks from Update.
type Model struct {
	pg     *playground.Playground
	canvas *Canvas
	view   *Viewport

	ticksPerFrame int
	maxTicks      int
	ticks         int
	running       bool
	err           error

	uids     []int
	selected int
	trails   map[int][]r2.Point
	headings map[int][]float64

	manual     *control.Manual
	manualUID  int
	manualStep float64

	showHelp bool
}

type Option func(*Model)

// WithSize sets the canvas size in terminal cells.
func WithSize(cols, rows int) Option {
	return func(m *Model) {
		if cols > 0 && rows > 0 {
			m.canvas = NewCanvas(cols, rows)
		}
	}
}

func WithTicksPerFrame(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.ticksPerFrame = n
		}
	}
}

// WithMaxTicks pauses the view for good after n ticks. Zero runs forever.
func WithMaxTicks(n int) Option {
	return func(m *Model) { m.maxTicks = n }
}

// WithManual lets the arrow keys drive robot uid through c, step per key press.
func WithManual(uid int, c *control.Manual, step float64) Option {
	return func(m *Model) {
		m.manual, m.manualUID, m.manualStep = c, uid, step
	}
}

func NewModel(pg *playground.Playground, opts ...Option) *Model {
	m := &Model{
		pg:            pg,
		canvas:        NewCanvas(defaultCols, defaultRows),
		ticksPerFrame: 1,
		running:       true,
		uids:          pg.State().UIDs(),
		trails:        make(map[int][]r2.Point),
		headings:      make(map[int][]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	mp := pg.State().Map()
	m.view = NewViewport(m.canvas, mp.Width(), mp.Height())
	m.record()
	return m
}

func (m *Model) Ticks() int      { return m.ticks }
func (m *Model) Running() bool   { return m.running }
func (m *Model) Err() error      { return m.err }
func (m *Model) Canvas() *Canvas { return m.canvas }

func (m *Model) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the playground.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil && !m.done() {
				m.running = !m.running
			}
		case "tab":
			if len(m.uids) > 0 {
				m.selected = (m.selected + 1) % len(m.uids)
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "+", "=":
			m.ticksPerFrame = min(m.ticksPerFrame*2, maxTicksPerFrame)
		case "-", "_":
			m.ticksPerFrame = max(m.ticksPerFrame/2, 1)
		case "up", "down", "left", "right", "s":
			m.drive(key)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m *Model) done() bool { return m.maxTicks > 0 && m.ticks >= m.maxTicks }

func (m *Model) advance() {
	for i := 0; i < m.ticksPerFrame; i++ {
		if m.done() {
			m.running = false
			return
		}
		if err := m.pg.Execute(); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.ticks++
		m.record()
	}
}

func (m *Model) record() {
	st := m.pg.State()
	for _, uid := range m.uids {
		s, err := st.GetRobotState(uid)
		if err != nil || s.PoseSize() < 2 {
			continue
		}
		d := s.Data()
		m.trails[uid] = appendCapped(m.trails[uid], r2.Point{X: d[0], Y: d[1]}, trailCapacity)
		if s.PoseSize() >= 3 {
			m.headings[uid] = appendCapped(m.headings[uid], d[2], historyCapacity)
		}
	}
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	s = append(s, v)
	if len(s) > capacity {
		s = s[len(s)-capacity:]
	}
	return s
}

// drive maps arrow keys onto the manual controller: up and down change the
// first control, left and right the last one, s stops.
func (m *Model) drive(key string) {
	if m.manual == nil {
		return
	}
	last := m.manual.Size() - 1
	switch key {
	case "up":
		_ = m.manual.Nudge(0, m.manualStep)
	case "down":
		_ = m.manual.Nudge(0, -m.manualStep)
	case "left":
		_ = m.manual.Nudge(last, m.manualStep)
	case "right":
		_ = m.manual.Nudge(last, -m.manualStep)
	case "s":
		m.manual.Stop()
	}
}

// draw renders the map, trails and robot footprints onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.view.Border()

	st := m.pg.State()
	if mp := st.Map(); mp != nil {
		for _, o := range mp.Obstacles() {
			m.view.Point(o)
		}
	}

	arrow := 0.05 * math.Min(m.view.Width, m.view.Height)
	for _, uid := range m.uids {
		for _, p := range m.trails[uid] {
			m.view.Point(p)
		}
		r, err := st.GetRobot(uid)
		if err != nil {
			continue
		}
		d := r.State().Data()
		if r.State().PoseSize() < 2 {
			continue
		}
		heading := 0.0
		if r.State().PoseSize() >= 3 {
			heading = d[2]
		}
		center := r2.Point{X: d[0], Y: d[1]}
		m.view.Polygon(r.Footprint().Transform(d[0], d[1], heading))
		m.view.Line(center, center.Add(r2.Point{X: math.Cos(heading), Y: math.Sin(heading)}.Mul(arrow)))
	}
}

func (m *Model) status() string {
	switch {
	case m.err != nil:
		return "FAILED"
	case m.done():
		return "DONE"
	case m.running:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

// View renders the TUI.
func (m *Model) View() string {
	m.draw()
	canvasView := canvasStyle().Render(m.canvas.String())

	var s strings.Builder
	name := m.pg.Spec().Name
	if name == "" {
		name = "playground"
	}
	s.WriteString(headerStyle().Render(strings.ToUpper(name)) + "\n")
	s.WriteString(statusStyle(m.running, m.err != nil).Render(m.status()) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.pg.Time()))
	row("Ticks", fmt.Sprintf("%d", m.ticks))
	if m.maxTicks > 0 {
		row("Progress", ProgressBar(float64(m.ticks)/float64(m.maxTicks), 20))
	}
	row("Speed", fmt.Sprintf("%d ticks/frame", m.ticksPerFrame))
	row("Robots", fmt.Sprintf("%d", len(m.uids)))
	row("Theme", CurrentTheme.Name)

	if len(m.uids) > 0 {
		uid := m.uids[m.selected]
		s.WriteString("\n" + selectedStyle().Render(fmt.Sprintf("ROBOT %d", uid)) + "\n")
		if r, err := m.pg.State().GetRobot(uid); err == nil {
			row("Model", playground.ModelName(r.KinematicModel()))
			row("State", r.State().String())
		}
		if m.manual != nil && uid == m.manualUID {
			row("Control", m.manual.Control().String())
		}
		if hist := m.headings[uid]; len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("heading (rad)"))
			s.WriteString(graphStyle().Render(chart) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Width(40).Render(m.err.Error()) + "\n")
	}

	help := "SP:Pause TAB:Robot Q:Quit\nT:Theme +/-:Speed ?:Help"
	if m.manual != nil {
		help += "\n↑↓←→:Drive S:Stop"
	}
	s.WriteString(helpStyle().Render(help))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
  Space    pause or resume
  Tab      select next robot
  + / -    double or halve ticks per frame
  T        cycle themes
  ↑ / ↓    change the first manual control
  ← / →    change the last manual control
  S        zero the manual control
  Q        quit
`

// Run shows m until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
