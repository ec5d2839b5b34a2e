package systems

import (
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

// PhysicsSystem 处理目标的运动与碰撞
// 先积分运动，再进行固定次数的碰撞与边界修正
type PhysicsSystem struct {
	passes int
}

// NewPhysicsSystem 创建物理系统
//
// 返回:
//   - *PhysicsSystem: 物理系统实例（修正次数为 2）
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{passes: config.PhysicsPasses}
}

// Update 更新物理系统
//
// 参数:
//   - w: 会话数据（目标列表、场地尺寸、模拟时间）
//   - timeFactor: 本帧相对参考帧的时间倍数
func (ps *PhysicsSystem) Update(w *game.World, timeFactor float64) {
	ps.integrate(w.Targets, w.State.ElapsedMs, timeFactor)

	for pass := 0; pass < ps.passes; pass++ {
		for i := 0; i < len(w.Targets); i++ {
			for j := i + 1; j < len(w.Targets); j++ {
				ResolveCollision(w.Targets[i], w.Targets[j])
			}
		}
		for _, t := range w.Targets {
			constrainToArena(t, w.Arena)
		}
	}
}

// integrate 推进位置与旋转
// 正弦目标的纵坐标由相位决定，不参与速度积分
func (ps *PhysicsSystem) integrate(targets []*components.TargetComponent, elapsedMs, tf float64) {
	for _, t := range targets {
		switch t.Kind {
		case components.TargetSineWave:
			t.X += t.VX * tf
			phase := elapsedMs/1000*config.SineFrequency + t.TimeOffset
			t.Y = t.InitialY + config.SineAmplitude*math.Sin(phase)
		default:
			t.X += t.VX * tf
			t.Y += t.VY * tf
		}
		t.Rotation += t.RotationSpeed * tf
	}
}

// InverseMass 返回目标的质量倒数，静止目标为 0（不可推动）
func InverseMass(t *components.TargetComponent) float64 {
	switch t.Kind {
	case components.TargetStationary:
		return 0
	case components.TargetBoss:
		return 1 / config.BossMass
	case components.TargetTough:
		return 1 / config.ToughMass
	default:
		return 1
	}
}

// ResolveCollision 解决一对目标的重叠
//
// 按质量倒数分摊 80% 的重叠量，并仅在两者相互接近时施加冲量。
// 距离为 0 或出现非有限值时跳过本对。
//
// 返回:
//   - bool: 是否发生了修正
func ResolveCollision(a, b *components.TargetComponent) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist == 0 || !finite(dist) {
		return false
	}

	invA := InverseMass(a)
	invB := InverseMass(b)
	invSum := invA + invB
	if invSum == 0 {
		return false
	}

	nx, ny := dx/dist, dy/dist

	correction := (minDist - dist) * config.CorrectionFraction / invSum
	a.X -= nx * correction * invA
	a.Y -= ny * correction * invA
	b.X += nx * correction * invB
	b.Y += ny * correction * invB

	rv := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	if rv < 0 {
		j := -(1 + config.Restitution) * rv / invSum
		a.VX -= j * nx * invA
		a.VY -= j * ny * invA
		b.VX += j * nx * invB
		b.VY += j * ny * invB
	}
	return true
}

// constrainToArena 把目标限制在可游玩区域内
// 左右墙对所有目标生效；上下墙跳过正弦目标和首领
func constrainToArena(t *components.TargetComponent, arena config.Arena) {
	if t.Kind == components.TargetStationary {
		t.X = clamp(t.X, t.Radius, arena.Width-t.Radius)
		t.Y = clamp(t.Y, t.Radius, arena.PlayHeight()-t.Radius)
		return
	}

	if t.X-t.Radius < 0 {
		t.X = t.Radius
		t.VX = math.Abs(t.VX) * config.WallRestitution
	} else if t.X+t.Radius > arena.Width {
		t.X = arena.Width - t.Radius
		t.VX = -math.Abs(t.VX) * config.WallRestitution
	}

	if t.Kind == components.TargetSineWave || t.Kind == components.TargetBoss {
		return
	}

	bottom := arena.PlayHeight()
	if t.Y-t.Radius < 0 {
		t.Y = t.Radius
		t.VY = math.Abs(t.VY) * config.WallRestitution
	} else if t.Y+t.Radius > bottom {
		t.Y = bottom - t.Radius
		t.VY = -math.Abs(t.VY) * config.WallRestitution
	}
}

// clamp 将 v 限制在 [lo, hi]；区间为空时取中点
func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
