package systems

import (
	"math"
	"testing"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

func newTestWorld(d config.Difficulty) *game.World {
	return game.NewWorld(config.DefaultArena(), d, config.DefaultDifficultyTable().Get(d), 42)
}

// TestResolveCollision_Symmetry 等质量、等大反向速度碰撞后速度仍等大反向
func TestResolveCollision_Symmetry(t *testing.T) {
	a := &components.TargetComponent{X: 100, Y: 200, VX: 2, Radius: 20, Kind: components.TargetNormal}
	b := &components.TargetComponent{X: 130, Y: 200, VX: -2, Radius: 20, Kind: components.TargetNormal}

	if !ResolveCollision(a, b) {
		t.Fatal("expected a collision")
	}

	if math.Abs(a.VX+b.VX) > 1e-9 || math.Abs(a.VY+b.VY) > 1e-9 {
		t.Errorf("velocities not equal-opposite: a=(%v,%v) b=(%v,%v)", a.VX, a.VY, b.VX, b.VY)
	}
	if math.Abs(a.VX-(-1.8)) > 1e-9 {
		t.Errorf("restitution: got a.VX=%v, want -1.8", a.VX)
	}
	before := 2.0*2.0 + 2.0*2.0
	after := a.VX*a.VX + b.VX*b.VX
	if !(after < before) {
		t.Errorf("energy should decrease: before=%v after=%v", before, after)
	}
	// 位置修正对称
	if math.Abs((a.X-100)+(b.X-130)) > 1e-9 {
		t.Errorf("correction not symmetric: a.X=%v b.X=%v", a.X, b.X)
	}
}

// TestResolveCollision_SeparatingPairGetsNoImpulse 已分离的一对只做位置修正
func TestResolveCollision_SeparatingPairGetsNoImpulse(t *testing.T) {
	a := &components.TargetComponent{X: 100, Y: 200, VX: -1, Radius: 20}
	b := &components.TargetComponent{X: 130, Y: 200, VX: 1, Radius: 20}

	ResolveCollision(a, b)
	if a.VX != -1 || b.VX != 1 {
		t.Errorf("separating pair should keep velocities, got a=%v b=%v", a.VX, b.VX)
	}
}

// TestResolveCollision_Stationary 静止目标不受碰撞影响
func TestResolveCollision_Stationary(t *testing.T) {
	tests := []struct {
		name  string
		other components.TargetKind
	}{
		{"普通目标撞击", components.TargetNormal},
		{"坚固目标撞击", components.TargetTough},
		{"首领撞击", components.TargetBoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &components.TargetComponent{X: 200, Y: 300, Radius: 30, Kind: components.TargetStationary}
			o := &components.TargetComponent{X: 240, Y: 300, VX: -5, Radius: 30, Kind: tt.other}

			ResolveCollision(s, o)
			ResolveCollision(o, s)

			if s.X != 200 || s.Y != 300 || s.VX != 0 || s.VY != 0 {
				t.Errorf("stationary target moved: %+v", *s)
			}
			if o.VX <= 0 {
				t.Errorf("other target should bounce off, got VX=%v", o.VX)
			}
		})
	}
}

// TestResolveCollision_Degenerate 零距离与非有限坐标被跳过
func TestResolveCollision_Degenerate(t *testing.T) {
	a := &components.TargetComponent{X: 100, Y: 100, Radius: 20}
	b := &components.TargetComponent{X: 100, Y: 100, Radius: 20}
	if ResolveCollision(a, b) {
		t.Error("zero-distance pair must be skipped")
	}

	c := &components.TargetComponent{X: math.NaN(), Y: 100, Radius: 20}
	if ResolveCollision(a, c) {
		t.Error("non-finite pair must be skipped")
	}
	if math.IsNaN(a.X) || math.IsNaN(a.VX) {
		t.Error("NaN leaked into a")
	}
}

// TestResolveCollision_MassRatio 首领几乎不被普通目标推动
func TestResolveCollision_MassRatio(t *testing.T) {
	boss := &components.TargetComponent{X: 200, Y: 200, Radius: 60, Kind: components.TargetBoss}
	small := &components.TargetComponent{X: 270, Y: 200, VX: -3, Radius: 20, Kind: components.TargetNormal}

	ResolveCollision(boss, small)

	bossShift := 200 - boss.X
	smallShift := small.X - 270
	if !(smallShift > bossShift*50) {
		t.Errorf("mass weighting wrong: boss moved %v, small moved %v", bossShift, smallShift)
	}
}

func TestPhysicsUpdate_Integration(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	normal := w.AddTarget(&components.TargetComponent{X: 100, Y: 100, VX: 2, VY: 1, Radius: 20, RotationSpeed: 0.05})
	sine := w.AddTarget(&components.TargetComponent{
		X: 300, Y: 200, VX: -1, Radius: 20, Kind: components.TargetSineWave,
		InitialY: 200, TimeOffset: math.Pi / 2,
	})

	w.State.ElapsedMs = 0
	NewPhysicsSystem().Update(w, 2)

	if normal.X != 104 || normal.Y != 102 {
		t.Errorf("normal position: (%v,%v)", normal.X, normal.Y)
	}
	if math.Abs(normal.Rotation-0.1) > 1e-9 {
		t.Errorf("rotation: %v", normal.Rotation)
	}
	if sine.X != 298 {
		t.Errorf("sine x: %v", sine.X)
	}
	if math.Abs(sine.Y-(200+config.SineAmplitude)) > 1e-9 {
		t.Errorf("sine y: got %v, want %v", sine.Y, 200+config.SineAmplitude)
	}
}

func TestPhysicsUpdate_Walls(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	arena := w.Arena

	left := w.AddTarget(&components.TargetComponent{X: 15, Y: 300, VX: -10, Radius: 20})
	bottom := w.AddTarget(&components.TargetComponent{X: 200, Y: arena.PlayHeight() - 15, VY: 10, Radius: 20})
	boss := w.AddTarget(&components.TargetComponent{X: 200, Y: -60, VY: 1, Radius: 60, Kind: components.TargetBoss})

	NewPhysicsSystem().Update(w, 1)

	if left.X != 20 || math.Abs(left.VX-9) > 1e-9 {
		t.Errorf("left wall: x=%v vx=%v", left.X, left.VX)
	}
	if bottom.Y != arena.PlayHeight()-20 || math.Abs(bottom.VY-(-9)) > 1e-9 {
		t.Errorf("bottom wall: y=%v vy=%v", bottom.Y, bottom.VY)
	}
	if boss.Y != -59 {
		t.Errorf("boss must enter from above unconstrained, y=%v", boss.Y)
	}
}
