package systems

import (
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
)

// AimAssist 瞄准辅助
// 把刚发射的弹丸速度朝锥形范围内最近的同色目标轻推一点，保持弹速不变
type AimAssist struct {
	cone     float64 // 锥形半角（弧度）
	strength float64 // 混合强度 0-1
}

// NewAimAssist 使用默认锥角和强度创建瞄准辅助
func NewAimAssist() *AimAssist {
	return &AimAssist{
		cone:     config.AimAssistConeDegrees * math.Pi / 180,
		strength: config.AimAssistStrength,
	}
}

// Adjust 计算辅助后的速度
//
// 参数：
//   - ox, oy: 发射点
//   - vx, vy: 原始速度
//   - selected: 当前选中的颜色
//   - targets: 存活目标
//
// 返回：
//   - 辅助后的速度；没有候选目标或原始速度退化时原样返回
func (a *AimAssist) Adjust(ox, oy, vx, vy float64, selected components.Color, targets []*components.TargetComponent) (float64, float64) {
	speed := math.Hypot(vx, vy)
	if speed == 0 || !finite(speed) {
		return vx, vy
	}
	rawAngle := math.Atan2(vy, vx)

	bestDev := math.Inf(1)
	var bestX, bestY float64
	found := false

	for _, t := range targets {
		if t.Color != selected {
			continue
		}
		ix, iy := interceptDirection(ox, oy, speed, t)
		if ix == 0 && iy == 0 {
			continue
		}
		dev := math.Abs(angleDiff(math.Atan2(iy, ix), rawAngle))
		if dev > a.cone || !finite(dev) {
			continue
		}
		// 偏差相同时先遇到的目标优先
		if dev < bestDev {
			bestDev = dev
			bestX, bestY = ix, iy
			found = true
		}
	}
	if !found {
		return vx, vy
	}

	// 两个分量都按弹速缩放后再混合
	il := math.Hypot(bestX, bestY)
	bx := vx*(1-a.strength) + bestX/il*speed*a.strength
	by := vy*(1-a.strength) + bestY/il*speed*a.strength
	bl := math.Hypot(bx, by)
	if bl == 0 || !finite(bl) {
		return vx, vy
	}
	return bx / bl * speed, by / bl * speed
}

// interceptDirection 求弹丸以 speed 直线飞行时与匀速目标相遇的方向
//
// 解 |d + v·t| = speed·t 的最小正根；无正根时退化为直接指向目标。
func interceptDirection(ox, oy, speed float64, t *components.TargetComponent) (float64, float64) {
	dx, dy := t.X-ox, t.Y-oy
	tvx, tvy := t.VX, t.VY
	if t.Kind == components.TargetSineWave {
		tvy = 0
	}

	a := tvx*tvx + tvy*tvy - speed*speed
	b := 2 * (dx*tvx + dy*tvy)
	c := dx*dx + dy*dy

	var hit float64
	if math.Abs(a) < 1e-9 {
		if b < 0 {
			hit = -c / b
		}
	} else {
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			t1 := (-b - sq) / (2 * a)
			t2 := (-b + sq) / (2 * a)
			hit = smallestPositive(t1, t2)
		}
	}
	if hit <= 0 || !finite(hit) {
		return dx, dy
	}
	return dx + tvx*hit, dy + tvy*hit
}

func smallestPositive(a, b float64) float64 {
	switch {
	case a > 0 && b > 0:
		return math.Min(a, b)
	case a > 0:
		return a
	case b > 0:
		return b
	default:
		return 0
	}
}

// angleDiff 返回 a-b 规约到 (-π, π]
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
