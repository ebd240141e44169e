package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

func countSetPixels(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			bits := int(cell - 0x2800)
			for b := 0; b < 8; b++ {
				if bits&(1<<b) != 0 {
					n++
				}
			}
		}
	}
	return n
}

func TestCanvasPixelSize(t *testing.T) {
	c := NewCanvas(40, 12)
	w, h := c.PixelSize()
	if w != 80 || h != 48 {
		t.Errorf("PixelSize() = (%d, %d), want (80, 48)", w, h)
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Set(3, 5)
	if got := countSetPixels(c); got != 1 {
		t.Errorf("after Set: %d pixels, want 1", got)
	}

	// Out-of-bounds sets are ignored.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(200, 200)
	if got := countSetPixels(c); got != 1 {
		t.Errorf("after out-of-bounds sets: %d pixels, want 1", got)
	}

	c.Clear()
	if got := countSetPixels(c); got != 0 {
		t.Errorf("after Clear: %d pixels, want 0", got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(20, 20)

	// A horizontal line sets exactly one pixel per column.
	c.DrawLine(2, 10, 12, 10)
	if got := countSetPixels(c); got != 11 {
		t.Errorf("horizontal line: %d pixels, want 11", got)
	}

	// A diagonal covers the longer axis.
	c.Clear()
	c.DrawLine(0, 0, 9, 9)
	if got := countSetPixels(c); got != 10 {
		t.Errorf("diagonal line: %d pixels, want 10", got)
	}
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillRect(2, 2, 5, 4)
	if got := countSetPixels(c); got != 4*3 {
		t.Errorf("FillRect 4x3: %d pixels, want 12", got)
	}
}

func TestCanvasStippleDensity(t *testing.T) {
	c := NewCanvas(40, 40)
	c.Stipple(0, 0, 39, 39, 0)
	if got := countSetPixels(c); got != 0 {
		t.Errorf("density 0: %d pixels, want 0", got)
	}

	c.Stipple(0, 0, 39, 39, 1)
	full := countSetPixels(c)

	c.Clear()
	c.Stipple(0, 0, 39, 39, 0.5)
	half := countSetPixels(c)
	if half == 0 || half >= full {
		t.Errorf("density 0.5 set %d pixels, full density set %d", half, full)
	}

	// Deterministic: same call, same pattern.
	s1 := c.String()
	c.Clear()
	c.Stipple(0, 0, 39, 39, 0.5)
	if c.String() != s1 {
		t.Error("Stipple is not deterministic")
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(8, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("String() has %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 8 {
			t.Errorf("line %d has %d runes, want 8", i, n)
		}
	}
}

func TestThemeStrokeColors(t *testing.T) {
	th := ThemeWorkshop
	strokes := []engine.Stroke{engine.Intake, engine.Compression, engine.Power, engine.Exhaust}
	seen := map[string]bool{}
	for _, s := range strokes {
		col := string(th.StrokeColor(s))
		if col == "" {
			t.Errorf("stroke %v has no color", s)
		}
		seen[col] = true
	}
	if len(seen) != 4 {
		t.Errorf("strokes map to %d distinct colors, want 4", len(seen))
	}
}

func TestSetTheme(t *testing.T) {
	orig := CurrentTheme
	defer SetTheme(orig.Name)

	if !SetTheme("blueprint") {
		t.Fatal("SetTheme(blueprint) failed")
	}
	if CurrentTheme.Name != "blueprint" {
		t.Errorf("CurrentTheme = %q, want blueprint", CurrentTheme.Name)
	}
	if SetTheme("no-such-theme") {
		t.Error("SetTheme accepted an unknown theme")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(engine.DefaultGeometry(), engine.InlineFour(), 1000)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return NewModel(eng)
}

func TestModelPauseAndReset(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if m.running {
		t.Error("space did not pause")
	}

	m.eng.State.CrankAngleDeg = 123
	m.t = 4
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.eng.State.CrankAngleDeg != 0 || m.t != 0 {
		t.Errorf("reset left angle=%g t=%g", m.eng.State.CrankAngleDeg, m.t)
	}
}

func TestModelRPMTargetClamped(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 50; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(Model)
	}
	if m.governor.Target != engine.MaxRPM {
		t.Errorf("target = %g after holding up, want %g", m.governor.Target, engine.MaxRPM)
	}

	for i := 0; i < 100; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	if m.governor.Target != engine.MinRPM {
		t.Errorf("target = %g after holding down, want %g", m.governor.Target, engine.MinRPM)
	}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule a follow-up")
	}
	if m.eng.State.CrankAngleDeg == 0 {
		t.Error("tick did not advance the crank")
	}
	if m.t == 0 {
		t.Error("tick did not advance time")
	}
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "RPM") {
		t.Error("view is missing the RPM readout")
	}
	for i := 1; i <= 4; i++ {
		if !strings.Contains(out, "#"+string(rune('0'+i))) {
			t.Errorf("view is missing cylinder #%d", i)
		}
	}
}
