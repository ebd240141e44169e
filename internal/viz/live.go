package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	tickRate        = time.Second / 60
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model animates the cylinder bank on a braille canvas and exposes RPM
// control, pause, and reset. One snapshot per tick feeds the whole frame.
type Model struct {
	eng      *engine.Engine
	governor *engine.Governor
	canvas   *Canvas
	running  bool
	t        float64
	dt       float64
	rpmHist  []float64
	showHelp bool
}

func NewModel(eng *engine.Engine) Model {
	return Model{
		eng:      eng,
		governor: engine.NewGovernor(eng.State.RPM),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
		dt:       1.0 / 60.0,
		rpmHist:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.eng.Reset()
			m.t = 0
			m.rpmHist = m.rpmHist[:0]
		case "up", "k":
			m.governor.SetTarget(m.governor.Target + 100)
		case "down", "j":
			m.governor.SetTarget(m.governor.Target - 100)
		case "K", "pgup":
			m.governor.SetTarget(m.governor.Target + 500)
		case "J", "pgdown":
			m.governor.SetTarget(m.governor.Target - 500)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step spools the governor and advances the crank by one frame.
func (m *Model) step() {
	m.eng.State.RPM = m.governor.Step(m.eng.State.RPM, m.dt)
	m.eng.Advance(m.dt)
	m.t += m.dt

	m.rpmHist = append(m.rpmHist, m.eng.State.RPM)
	if len(m.rpmHist) > historyCapacity {
		m.rpmHist = m.rpmHist[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.eng.Snapshot()
	m.drawBank(snap)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("INLINE-4 CRANK KINEMATICS") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.rpmHist) > 1 {
		chart := asciigraph.Plot(m.rpmHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("RPM"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Crank") + valueStyle.Render(fmt.Sprintf("%.1f°", snap.CrankAngleDeg)) + "\n")
	s.WriteString(labelStyle.Render("RPM") + valueStyle.Render(fmt.Sprintf("%.0f → %.0f", snap.RPM, m.governor.Target)) + "\n")

	// RPM bar against the governed range.
	barWidth := 20
	ratio := (snap.RPM - engine.MinRPM) / (engine.MaxRPM - engine.MinRPM)
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(ratio * float64(barWidth))
	s.WriteString(labelStyle.Render("") + "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]\n")

	s.WriteString("\nCYLINDERS\n")
	for _, cv := range snap.Cylinders {
		strokeStyle := lipgloss.NewStyle().Foreground(CurrentTheme.StrokeColor(cv.Stroke)).Bold(cv.Stroke == engine.Power)
		line := fmt.Sprintf("  #%d %6.1f°  %s", cv.Index+1, cv.EffectiveAngleDeg, strokeStyle.Render(strings.ToUpper(cv.Stroke.String())))
		s.WriteString(line + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n↑↓:RPM ±100 K/J:±500\nT:Theme ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space      - Pause/Resume           ║
║  R          - Reset crank to 0°      ║
║  Q          - Quit                   ║
║  Up/K       - Target RPM +100        ║
║  Down/J     - Target RPM -100        ║
║  Shift+K/J  - Target RPM ±500        ║
║  T          - Cycle themes           ║
║  ?          - Toggle this help       ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Geometry of the drawing, in canvas sub-pixels.
const (
	headY     = 8
	travelPx  = 28
	pistonPx  = 6
	boreHalf  = 9
	crankY    = 76
	crankRPx  = 12
	bankLeftX = 24
	bankStepX = 38
)

// drawBank renders every piston assembly from one snapshot.
func (m *Model) drawBank(snap engine.Snapshot) {
	m.canvas.Clear()
	for i, cv := range snap.Cylinders {
		if i >= 4 {
			break
		}
		m.drawAssembly(cv, bankLeftX+i*bankStepX)
	}
}

// drawAssembly draws one cylinder: liner, gas charge, piston, rod, crank
// throw, and valves. cx is the bore centerline in sub-pixels.
func (m *Model) drawAssembly(cv engine.CylinderView, cx int) {
	frac := engine.StrokeFraction(cv.Displacement, m.eng.Geometry)
	pistonTop := headY + 4 + int((1-frac)*float64(travelPx))

	// Liner: open at the bottom toward the crankcase.
	linerBottom := headY + 4 + travelPx + pistonPx + 2
	m.canvas.DrawLine(cx-boreHalf-1, headY, cx+boreHalf+1, headY)
	m.canvas.DrawLine(cx-boreHalf-1, headY, cx-boreHalf-1, linerBottom)
	m.canvas.DrawLine(cx+boreHalf+1, headY, cx+boreHalf+1, linerBottom)

	// Gas charge above the piston; combustion shows as a denser stipple.
	density := 0.15
	if cv.FlameIntensity > 0 {
		density = 0.3 + 0.7*cv.FlameIntensity
	}
	if pistonTop-1 > headY+1 {
		m.canvas.Stipple(cx-boreHalf+1, headY+1, cx+boreHalf-1, pistonTop-1, density)
	}

	// Piston crown and skirt.
	m.canvas.FillRect(cx-boreHalf, pistonTop, cx+boreHalf, pistonTop+1)
	m.canvas.DrawRect(cx-boreHalf, pistonTop, cx+boreHalf, pistonTop+pistonPx)

	// Crank throw: journal angle repeats every revolution.
	theta := cv.EffectiveAngleDeg * math.Pi / 180.0
	pinX := cx + int(float64(crankRPx)*math.Sin(theta))
	pinY := crankY - int(float64(crankRPx)*math.Cos(theta))
	m.canvas.DrawCircle(cx, crankY, crankRPx)
	m.canvas.DrawLine(cx, crankY, pinX, pinY)

	// Connecting rod to the piston pin.
	m.canvas.DrawLine(pinX, pinY, cx, pistonTop+pistonPx)

	// Valves: small tees at the head, pushed down by lift.
	intakeY := headY - 3 + int(cv.IntakeLift*3)
	exhaustY := headY - 3 + int(cv.ExhaustLift*3)
	m.canvas.DrawLine(cx-6, intakeY, cx-2, intakeY)
	m.canvas.DrawLine(cx-4, intakeY, cx-4, headY-1)
	m.canvas.DrawLine(cx+2, exhaustY, cx+6, exhaustY)
	m.canvas.DrawLine(cx+4, exhaustY, cx+4, headY-1)
}
