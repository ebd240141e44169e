package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

// World layout: crank axis along X at y=0, one cylinder every cylSpacing
// units, everything scaled up from geometry units by renderScale.
const (
	renderScale = 3.0
	cylSpacing  = 6.0
	pistonH     = 0.8
	chamberGap  = 0.3
)

// RenderBank draws the whole engine from one snapshot: liners, gas charge,
// pistons, rods, and crank throws.
func (a *App) RenderBank(snap engine.Snapshot) {
	g := a.Eng.Geometry
	bore := float32(g.Bore * renderScale)
	crankR := float32(g.CrankRadius * renderScale)
	headY := float32(engine.TDC(g)*renderScale) + pistonH + chamberGap
	bdcY := float32(engine.BDC(g) * renderScale)

	// Crankshaft axis.
	axisLen := float32(len(snap.Cylinders)-1)*cylSpacing + 4
	rl.DrawLine3D(rl.NewVector3(-2, 0, 0), rl.NewVector3(axisLen-2, 0, 0), ColTextDim)

	for i, cv := range snap.Cylinders {
		cx := float32(i) * cylSpacing
		a.renderCylinder(cv, cx, bore, crankR, headY, bdcY)
	}
}

func (a *App) renderCylinder(cv engine.CylinderView, cx, bore, crankR, headY, bdcY float32) {
	pistonY := float32(cv.Displacement * renderScale)

	// Liner: wireframe box from just under BDC to the head.
	linerH := headY - bdcY + pistonH
	linerCenter := rl.NewVector3(cx, bdcY-pistonH/2+linerH/2, 0)
	rl.DrawCubeWires(linerCenter, bore+0.2, linerH, bore+0.2, rl.Gray)

	// Head plate.
	rl.DrawCube(rl.NewVector3(cx, headY+0.1, 0), bore+0.4, 0.2, bore+0.4, rl.DarkGray)

	// Gas charge between the piston crown and the head, colored by stroke.
	crownY := pistonY + pistonH/2
	if headY > crownY {
		col := strokeColor(cv.Stroke)
		if cv.FlameIntensity > 0 {
			col.A = uint8(120 + 135*cv.FlameIntensity)
		}
		gasH := headY - crownY
		rl.DrawCube(rl.NewVector3(cx, crownY+gasH/2, 0), bore*0.95, gasH, bore*0.95, col)
	}

	// Piston.
	rl.DrawCube(rl.NewVector3(cx, pistonY, 0), bore*0.9, pistonH, bore*0.9, rl.White)

	// Crank throw: the pin orbits in the cylinder's Y-Z plane.
	theta := cv.EffectiveAngleDeg * math.Pi / 180.0
	pin := rl.NewVector3(
		cx,
		crankR*float32(math.Cos(theta)),
		crankR*float32(math.Sin(theta)),
	)
	rl.DrawCircle3D(rl.NewVector3(cx, 0, 0), crankR, rl.NewVector3(0, 1, 0), 90, ColTextDim)
	rl.DrawLine3D(rl.NewVector3(cx, 0, 0), pin, rl.LightGray)
	rl.DrawSphere(pin, 0.2, rl.LightGray)

	// Connecting rod from the pin up to the piston pin.
	rl.DrawLine3D(pin, rl.NewVector3(cx, pistonY-pistonH/2, 0), rl.Gray)

	// Valves poke down from the head by their lift.
	intake := rl.NewVector3(cx-bore/4, headY-0.1-float32(cv.IntakeLift)*0.5, 0)
	exhaust := rl.NewVector3(cx+bore/4, headY-0.1-float32(cv.ExhaustLift)*0.5, 0)
	rl.DrawSphere(intake, 0.15, rl.NewColor(80, 140, 255, 255))
	rl.DrawSphere(exhaust, 0.15, rl.NewColor(150, 150, 150, 255))
}
