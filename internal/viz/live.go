package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dhkin/internal/config"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/symbolic"
)

const (
	width           = 48
	height          = 20
	historyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Model is a Bubble Tea program that binds the robot's free symbols and
// redraws the chain whenever one of them is nudged.
type Model struct {
	name     string
	table    kinematics.Table[symbolic.Expr]
	vars     []string
	values   map[string]float64
	initial  map[string]float64
	selected int
	step     float64
	reach    float64
	canvas   *Canvas
	frames   []kinematics.Transform[float64]
	trail    []mgl64.Vec3
	distance []float64
	err      error
}

// NewModel starts from the robot's bindings; unbound symbols start at 0.
func NewModel(cfg *config.Config) (Model, error) {
	table, err := cfg.SymbolicTable()
	if err != nil {
		return Model{}, err
	}
	vars := kinematics.FreeSymbols(table)
	values := make(map[string]float64, len(vars))
	initial := make(map[string]float64, len(vars))
	for _, v := range vars {
		values[v] = cfg.Bindings[v]
		initial[v] = cfg.Bindings[v]
	}

	step := 0.05
	if cfg.AngleUnit == config.UnitDeg {
		step = 5
	}

	m := Model{
		name:    cfg.Name,
		table:   table,
		vars:    vars,
		values:  values,
		initial: initial,
		step:    step,
		canvas:  NewCanvas(width, height),
	}
	m.rebuild()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "up", "k":
		m.nudge(m.step)
	case "down", "j":
		m.nudge(-m.step)
	case "+", "=":
		m.step *= 2
	case "-", "_":
		m.step /= 2
	case "r":
		m.reset()
	}
	return m, nil
}

// Selected returns the variable being nudged, or "" for a constant table.
func (m Model) Selected() string {
	if len(m.vars) == 0 {
		return ""
	}
	return m.vars[m.selected]
}

// Value returns the current binding of name.
func (m Model) Value(name string) float64 {
	return m.values[name]
}

// Tip returns the current end-effector position.
func (m Model) Tip() (mgl64.Vec3, bool) {
	if len(m.frames) == 0 {
		return mgl64.Vec3{}, false
	}
	return kinematics.PoseOf(m.frames[len(m.frames)-1]).Position, true
}

func (m *Model) cycle(dir int) {
	if len(m.vars) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.vars)) % len(m.vars)
}

func (m *Model) nudge(delta float64) {
	name := m.Selected()
	if name == "" {
		return
	}
	m.values[name] += delta
	m.rebuild()
}

func (m *Model) reset() {
	for k, v := range m.initial {
		m.values[k] = v
	}
	m.trail = m.trail[:0]
	m.distance = m.distance[:0]
	m.rebuild()
}

func (m *Model) rebuild() {
	numTable, err := kinematics.Bind(m.table, m.values)
	if err == nil {
		m.frames, err = kinematics.Frames(kinematics.Float, numTable)
	}
	m.err = err
	if err != nil {
		m.frames = nil
		return
	}

	for _, f := range m.frames {
		m.reach = math.Max(m.reach, kinematics.PoseOf(f).Position.Len())
	}
	tip, _ := m.Tip()
	m.trail = append(m.trail, tip)
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	m.distance = append(m.distance, tip.Len())
	if len(m.distance) > historyCapacity {
		m.distance = m.distance[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Set(m.canvas.Project(p, m.reach))
	}
	points := []mgl64.Vec3{{}}
	for _, f := range m.frames {
		points = append(points, kinematics.PoseOf(f).Position)
	}
	m.canvas.DrawChain(points, m.reach)
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.name)) + "\n\n")

	if len(m.vars) == 0 {
		s.WriteString(Subtle.Render("  (no variables)") + "\n")
	}
	for i, v := range m.vars {
		line := fmt.Sprintf("%-6s %10.4f", v, m.values[v])
		if i == m.selected {
			s.WriteString(Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + Subtle.Render(line) + "\n")
		}
	}
	s.WriteString(Label.Render("step") + Value.Render(fmt.Sprintf("%g", m.step)) + "\n\n")

	if m.err != nil {
		s.WriteString(Fail.Render(m.err.Error()) + "\n")
	} else {
		h := m.frames[len(m.frames)-1]
		cells := kinematics.Result{Mode: kinematics.ModeNumeric, Numeric: h}.Cells()
		RenderMatrix(&s, "", cells, true)
		tip, _ := m.Tip()
		s.WriteString(Label.Render("tip") + Value.Render(fmt.Sprintf("(%.4f, %.4f, %.4f)", tip.X(), tip.Y(), tip.Z())) + "\n")
	}

	if len(m.distance) > 1 {
		chart := asciigraph.Plot(m.distance, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("|tip|"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(KeyHint.Render("\nTab:Select ↑↓:Nudge +/-:Step R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), Panel.Render(s.String()))
}
