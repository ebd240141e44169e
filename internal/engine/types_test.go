package engine

import (
	"math"
	"testing"
)

func TestWrap720(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside", 450, 450},
		{"exact cycle", 720, 0},
		{"over", 900, 180},
		{"many cycles", 720*3 + 15, 15},
		{"negative", -90, 630},
		{"negative cycle", -720, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap720(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Wrap720(%g) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrap720Range(t *testing.T) {
	for a := -2000.0; a <= 2000.0; a += 7.3 {
		got := Wrap720(a)
		if got < 0 || got >= CycleDeg {
			t.Fatalf("Wrap720(%g) = %g, outside [0,720)", a, got)
		}
		if math.Abs(Wrap720(got)-got) > 1e-12 {
			t.Fatalf("Wrap720 not idempotent at %g", a)
		}
	}
}

func TestStrokeAtBoundaries(t *testing.T) {
	tests := []struct {
		angle float64
		want  Stroke
	}{
		{0, Intake},
		{179.999, Intake},
		{180, Compression},
		{359.999, Compression},
		{360, Power},
		{539.999, Power},
		{540, Exhaust},
		{719.999, Exhaust},
		{720, Intake},
		{-1, Exhaust},
	}

	for _, tt := range tests {
		if got := StrokeAt(tt.angle); got != tt.want {
			t.Errorf("StrokeAt(%g) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestAdvanceFullRevolutionTick(t *testing.T) {
	// 600 rpm is 3600 deg/s; a 0.1s tick is exactly one revolution.
	s := State{CrankAngleDeg: 0, RPM: 600}
	s = Advance(s, 0.1)

	if math.Abs(s.CrankAngleDeg-360) > 1e-9 {
		t.Errorf("expected 360 after one revolution, got %g", s.CrankAngleDeg)
	}

	s = Advance(s, 0.1)
	if math.Abs(s.CrankAngleDeg) > 1e-9 {
		t.Errorf("expected wrap to 0 after two revolutions, got %g", s.CrankAngleDeg)
	}
	if StrokeAt(s.CrankAngleDeg) != Intake {
		t.Errorf("reference cylinder should be back in intake")
	}
}

func TestAdvanceStopped(t *testing.T) {
	s := State{CrankAngleDeg: 123.4, RPM: 0}
	for _, dt := range []float64{0, 0.016, 1, 3600} {
		if got := Advance(s, dt); got.CrankAngleDeg != 123.4 {
			t.Errorf("rpm=0 dt=%g moved the crank to %g", dt, got.CrankAngleDeg)
		}
	}
}

func TestAdvanceAdditive(t *testing.T) {
	s := State{CrankAngleDeg: 42, RPM: 1730}

	split := Advance(Advance(s, 0.013), 0.029)
	whole := Advance(s, 0.042)

	if math.Abs(split.CrankAngleDeg-whole.CrankAngleDeg) > 1e-9 {
		t.Errorf("advance not additive: %g vs %g", split.CrankAngleDeg, whole.CrankAngleDeg)
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		geom    Geometry
		wantErr bool
	}{
		{"default", DefaultGeometry(), false},
		{"rod equals crank", Geometry{CrankRadius: 1, RodLength: 1}, true},
		{"rod shorter", Geometry{CrankRadius: 2, RodLength: 1}, true},
		{"zero crank", Geometry{CrankRadius: 0, RodLength: 1}, true},
		{"negative crank", Geometry{CrankRadius: -1, RodLength: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geom.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
