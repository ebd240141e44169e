package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Harshavardhan3015/cranksim/internal/audio"
	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// Theme colors (monochrome chassis, colored gas charge)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft white
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright white
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark gray

	// Gas charge per stroke: fresh mixture, squeezed mixture, flame, spent gas.
	ColIntake      = rl.NewColor(80, 140, 255, 120)
	ColCompression = rl.NewColor(230, 200, 60, 120)
	ColPower       = rl.NewColor(255, 100, 20, 180)
	ColExhaust     = rl.NewColor(120, 120, 120, 100)
)

func strokeColor(s engine.Stroke) rl.Color {
	switch s {
	case engine.Intake:
		return ColIntake
	case engine.Compression:
		return ColCompression
	case engine.Power:
		return ColPower
	default:
		return ColExhaust
	}
}

type App struct {
	Eng       *engine.Engine
	Gov       *engine.Governor
	Time      float64
	Dt        float64
	Camera    rl.Camera3D
	Running   bool
	InLanding bool
	RPMHist   []float64
	Font      rl.Font

	// Smooth camera
	CamPosTarget rl.Vector3
	CamTgtTarget rl.Vector3

	// Audio
	Audio *audio.Synth
}

// initWindow initializes the Raylib window with size 1280×720 and title
// "cranksim", sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.InitWindow(1280, 720, "cranksim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wraps an engine in the GUI shell. The app starts on the landing
// screen with the crank parked until the user hits start.
func NewApp(eng *engine.Engine) *App {
	synth := audio.NewSynth()
	synth.Start()

	app := &App{
		Eng: eng,
		Gov: engine.NewGovernor(eng.State.RPM),
		Dt:  1.0 / 60.0,
		Camera: rl.NewCamera3D(
			rl.NewVector3(9, 8, 30),
			rl.NewVector3(9, 6, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		InLanding: true,
		Running:   false,
		RPMHist:   make([]float64, 0, 200),
		Font:      loadFont(),
		Audio:     synth,
	}
	app.CamPosTarget = app.Camera.Position
	app.CamTgtTarget = app.Camera.Target
	return app
}

// Run starts the GUI session for the given engine and blocks until the
// window is closed.
func Run(eng *engine.Engine) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(eng)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Audio.Stop()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Audio.Stop()
		os.Exit(0)
	}

	if a.InLanding {
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			a.InLanding = false
			a.Running = true
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InLanding = true
		a.Running = false
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Eng.Reset()
		a.Time = 0
		a.RPMHist = a.RPMHist[:0]
	}
	// Throttle: arrow keys nudge the governor target, shift for big steps.
	step := 100.0
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 500.0
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Gov.SetTarget(a.Gov.Target + step)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Gov.SetTarget(a.Gov.Target - step)
	}

	if a.Running {
		a.Eng.State.RPM = a.Gov.Step(a.Eng.State.RPM, a.Dt)
		a.Eng.Advance(a.Dt)
		a.Time += a.Dt

		a.RPMHist = append(a.RPMHist, a.Eng.State.RPM)
		if len(a.RPMHist) > 200 {
			a.RPMHist = a.RPMHist[1:]
		}
	}

	if a.Audio != nil && a.Audio.Active {
		rpm := 0.0
		if a.Running {
			rpm = a.Eng.State.RPM
		}
		a.Audio.SetRPM(rpm)
	}

	// Camera: WASD pans the target, wheel zooms, input drives a lerp target
	// so motion has inertia.
	if rl.IsKeyDown(rl.KeyW) {
		a.CamPosTarget.Y += 0.5
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.CamPosTarget.Y -= 0.5
	}
	if rl.IsKeyDown(rl.KeyA) {
		a.CamPosTarget.X -= 0.5
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.CamPosTarget.X += 0.5
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.CamPosTarget.X -= delta.X * 0.2
		a.CamPosTarget.Y += delta.Y * 0.2
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		zoom := float32(wheel) * 3.0
		diff := rl.Vector3Subtract(a.CamTgtTarget, a.CamPosTarget)
		dist := rl.Vector3Length(diff)
		if dist > 5.0 || zoom < 0 {
			dir := rl.Vector3Normalize(diff)
			a.CamPosTarget = rl.Vector3Add(a.CamPosTarget, rl.Vector3Scale(dir, zoom))
		}
	}

	lerp := float32(5.0 * a.Dt)
	if lerp > 1.0 {
		lerp = 1.0
	}
	a.Camera.Position = rl.Vector3Lerp(a.Camera.Position, a.CamPosTarget, lerp)
	a.Camera.Target = rl.Vector3Lerp(a.Camera.Target, a.CamTgtTarget, lerp)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InLanding {
		a.drawLanding()
	} else {
		snap := a.Eng.Snapshot()
		rl.BeginMode3D(a.Camera)
		a.RenderBank(snap)
		rl.EndMode3D()
		a.DrawHUD(snap)
	}

	rl.EndDrawing()
}

func (a *App) drawLanding() {
	a.drawText("cranksim", 50, 60, 56, ColSelect)
	a.drawText("inline-4 crank kinematics", 50, 130, 20, ColText)

	g := a.Eng.Geometry
	y := 220
	a.drawText(fmt.Sprintf("crank radius   %.2f", g.CrankRadius), 50, y, 18, ColText)
	a.drawText(fmt.Sprintf("rod length     %.2f", g.RodLength), 50, y+28, 18, ColText)
	a.drawText(fmt.Sprintf("stroke         %.2f", g.StrokeLength()), 50, y+56, 18, ColText)
	a.drawText(fmt.Sprintf("cylinders      %d", len(a.Eng.Cylinders)), 50, y+84, 18, ColText)
	a.drawText(fmt.Sprintf("rpm            %.0f", a.Eng.State.RPM), 50, y+112, 18, ColText)

	a.drawText("firing order 1-3-4-2: one cylinder on each stroke at all times", 50, 420, 16, ColTextDim)

	a.drawText("[ENTER] START", 50, 560, 24, ColSelect)
	a.drawText("[Q] QUIT", 50, 600, 18, ColTextDim)
}

func (a *App) DrawHUD(snap engine.Snapshot) {
	a.drawText("cranksim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %.0f rpm", snap.RPM), 140, 34, 16, ColText)
	a.drawText(fmt.Sprintf("crank %.1f", snap.CrankAngleDeg), 300, 34, 16, ColTextDim)

	// Per-cylinder stroke readout, gas-colored.
	y := 70
	for _, cv := range snap.Cylinders {
		col := strokeColor(cv.Stroke)
		col.A = 255
		a.drawText(fmt.Sprintf("#%d %-11s %6.1f", cv.Index+1, cv.Stroke, cv.EffectiveAngleDeg), 30, y, 16, col)
		y += 24
	}

	a.DrawRPMTrace()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [R] RESET  [UP/DOWN] RPM  [ESC] MENU  [Q] QUIT", 680, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)

	if a.Audio != nil && a.Audio.Active {
		a.drawText("SOUND [ON]", 30, 650, 14, ColAccent)
	} else {
		a.drawText("SOUND [OFF]", 30, 650, 14, ColTextDim)
	}
}

// DrawRPMTrace plots the recent RPM history as a line strip.
func (a *App) DrawRPMTrace() {
	if len(a.RPMHist) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.RPMHist[0], a.RPMHist[0]
	for _, v := range a.RPMHist {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.RPMHist))
	for i, val := range a.RPMHist {
		px := float32(rectX) + (float32(i)/float32(len(a.RPMHist)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("RPM %.0f", a.RPMHist[len(a.RPMHist)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
