package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stringverse/internal/physics"
	"github.com/san-kum/stringverse/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	pokeStrength    = 0.5
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives either engine at a fixed frame rate and renders it to a
// braille canvas next to a stats column.
type Model struct {
	s       sim.Simulation
	factory func() sim.Simulation
	name    string

	t, dt    float64
	fps      int
	coupling float64
	mass     float64
	running  bool

	canvas        *Canvas
	energyHistory []float64
}

// NewModel wraps a freshly constructed simulation. factory rebuilds it
// from scratch on reset; coupling and mass mirror the engine's current
// values so the tuning keys stay in sync.
func NewModel(name string, factory func() sim.Simulation, dt float64, fps int, coupling, mass float64) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		s:             factory(),
		factory:       factory,
		name:          name,
		dt:            dt,
		fps:           fps,
		coupling:      coupling,
		mass:          mass,
		running:       true,
		canvas:        NewCanvas(width, height),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.s = m.factory()
			m.t = 0
			m.energyHistory = m.energyHistory[:0]
		case "p":
			if mm, ok := m.s.(*physics.MatrixModel); ok {
				mm.Poke(pokeStrength)
			}
		case "+", "=":
			m.setCoupling(m.coupling * 1.1)
		case "-", "_":
			m.setCoupling(m.coupling * 0.9)
		case "m":
			m.setMass(m.mass * 1.1)
		case "M":
			m.setMass(m.mass * 0.9)
		}
	case TickMsg:
		if m.running {
			m.s.Step(m.dt)
			m.t += m.dt
			m.energyHistory = append(m.energyHistory, m.s.Energy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) setCoupling(c float64) {
	m.coupling = c
	switch s := m.s.(type) {
	case *physics.StringSimulation:
		s.SetCoupling(c)
	case *physics.MatrixModel:
		s.SetCoupling(c)
	}
}

func (m *Model) setMass(mass float64) {
	m.mass = mass
	if mm, ok := m.s.(*physics.MatrixModel); ok {
		mm.SetMass(mass)
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	switch s := m.s.(type) {
	case *physics.StringSimulation:
		m.drawLoops(s)
	case *physics.MatrixModel:
		m.drawMatrix(s)
	}

	canvasView := canvasStyle.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		b.WriteString("RUNNING\n\n")
	} else {
		b.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		b.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	b.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if len(m.energyHistory) > 0 {
		b.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}
	b.WriteString(labelStyle.Render("Coupling") + valueStyle.Render(fmt.Sprintf("%.3f", m.coupling)) + "\n")

	switch s := m.s.(type) {
	case *physics.StringSimulation:
		b.WriteString(labelStyle.Render("Loops") + valueStyle.Render(fmt.Sprintf("%d", s.LoopCount())) + "\n")
		b.WriteString(labelStyle.Render("Splits") + valueStyle.Render(fmt.Sprintf("%d", (s.NextID()-2)/2)) + "\n")
	case *physics.MatrixModel:
		b.WriteString(labelStyle.Render("Size") + valueStyle.Render(fmt.Sprintf("%d", s.N())) + "\n")
		b.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.3f", m.mass)) + "\n")
	}

	help := "SP:Pause R:Reset Q:Quit\n+/-:Coupling"
	if _, ok := m.s.(*physics.MatrixModel); ok {
		help += " P:Poke m/M:Mass"
	}
	b.WriteString(helpStyle.Render("\n─────────────────────\n" + help))

	statsView := statsStyle.Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// drawLoops projects each loop's x/y onto the canvas as a closed
// polyline, z ignored.
func (m *Model) drawLoops(s *physics.StringSimulation) {
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	cx, cy := cw/2, ch/2
	scale := float64(ch) / 90.0

	for _, lp := range s.Loops() {
		n := lp.Len()
		if n < 2 {
			continue
		}
		prevX := cx + int(lp.Positions[n-1][0]*scale)
		prevY := cy - int(lp.Positions[n-1][1]*scale)
		for i := 0; i < n; i++ {
			px := cx + int(lp.Positions[i][0]*scale)
			py := cy - int(lp.Positions[i][1]*scale)
			m.canvas.DrawLine(prevX, prevY, px, py)
			prevX, prevY = px, py
		}
	}
}

// drawMatrix scatters the eigenvalue proxies along the x axis, one row
// per matrix, and draws the strongest off-diagonal links between the
// first-matrix rows.
func (m *Model) drawMatrix(s *physics.MatrixModel) {
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	cx := cw / 2
	scale := float64(cw) / 5.0

	eigs := s.Eigenvalues()
	n := s.N()

	rowY := func(i int) int { return ch * (i + 1) / 4 }
	xPos := make([]int, n)
	for a := 0; a < n; a++ {
		for i := 0; i < 3; i++ {
			px := cx + int(eigs[a*3+i]*scale)
			py := rowY(i)
			if i == 0 {
				xPos[a] = px
			}
			m.canvas.Dot(px, py, 1)
		}
	}

	conns := s.Connections()
	for k := 0; k+2 < len(conns); k += 3 {
		if conns[k+2] < 0.05 {
			continue
		}
		a, b := int(conns[k]), int(conns[k+1])
		m.canvas.DrawLine(xPos[a], rowY(0), xPos[b], rowY(0))
	}
}
