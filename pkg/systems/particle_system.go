package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/pool"
)

// ParticlePool 所有视觉特效共用的定长粒子环
type ParticlePool = pool.Ring[components.ParticleComponent, *components.ParticleComponent]

// 高画质下的默认发射数量
const (
	burstCount     = 12
	explosionBurst = 14
	explosionSpark = 6
	explosionChips = 4
)

// ParticleSystem 粒子系统
//
// 职责：
//   - 持有粒子环，按粒子种类各自的运动规则推进所有活跃粒子
//   - 提供爆散、碎片、拖尾、冲击环、火花以及组合特效的发射接口
//
// 发射永远不会失败：环满时覆盖最旧的槽位，仍可见的粒子可能被提前截断。
type ParticleSystem struct {
	particles *ParticlePool
	rng       *rand.Rand
	nextID    uint64

	countScale float64 // 发射数量倍率（高画质 1，低画质 0.5）
	trails     bool
}

// NewParticleSystem 创建粒子系统
//
// 参数：
//   - capacity: 粒子环容量
//   - rng: 会话随机源（与世界共用，保证同种子可复现）
//
// 返回：
//   - *ParticleSystem: 高画质、开启拖尾的粒子系统
func NewParticleSystem(capacity int, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		particles:  pool.NewRing[components.ParticleComponent](capacity),
		rng:        rng,
		countScale: 1,
		trails:     true,
	}
}

// SetQuality 应用粒子画质设置
// 低画质时发射数量减半并关闭弹丸拖尾
func (ps *ParticleSystem) SetQuality(high bool) {
	if high {
		ps.countScale = 1
		ps.trails = true
		return
	}
	ps.countScale = 0.5
	ps.trails = false
}

// TrailsEnabled 是否发射弹丸拖尾
func (ps *ParticleSystem) TrailsEnabled() bool {
	return ps.trails
}

// Update 把所有活跃粒子推进 timeFactor 个参考帧
// 生命或尺寸低于阈值、坐标非有限值的粒子被停用
func (ps *ParticleSystem) Update(timeFactor float64) {
	ps.particles.Each(func(p *components.ParticleComponent) {
		advanceParticle(p, timeFactor)
		if p.Life <= config.ParticleMinLife || p.Size < config.ParticleMinSize ||
			!finite(p.X) || !finite(p.Y) {
			p.Active = false
		}
	})
}

// advanceParticle 按粒子种类推进一次运动
func advanceParticle(p *components.ParticleComponent, tf float64) {
	switch p.Kind {
	case components.ParticleTrail:
		p.Size *= math.Pow(config.TrailShrink, tf)
		p.Life -= config.TrailDecay * tf
	case components.ParticleDebris:
		p.VY += config.ParticleGravity * tf
		p.X += p.VX * tf
		p.Y += p.VY * tf
		p.Life -= config.DebrisDecay * tf
		p.Rotation += config.DebrisSpin * tf
	case components.ParticleRing:
		p.Size += config.RingGrowth * tf
		p.Life -= config.RingDecay * tf
	case components.ParticleSpark:
		p.X += p.VX * tf
		p.Y += p.VY * tf
		p.Life -= config.SparkDecay * tf
	default:
		friction := math.Pow(config.ParticleFriction, tf)
		p.VX *= friction
		p.VY *= friction
		p.X += p.VX * tf
		p.Y += p.VY * tf
		p.Life -= config.BurstDecay * tf
		p.Size *= math.Pow(config.BurstShrink, tf)
	}
}

func (ps *ParticleSystem) emit(p components.ParticleComponent) *components.ParticleComponent {
	ps.nextID++
	p.ID = ps.nextID
	p.Life = 1
	return ps.particles.Acquire(p)
}

func (ps *ParticleSystem) scaled(n int) int {
	n = int(math.Round(float64(n) * ps.countScale))
	if n < 1 {
		n = 1
	}
	return n
}

// Burst 发射向四周散开并逐渐减速的粒子
//
// 参数：
//   - x, y: 发射位置
//   - color: 粒子颜色
//   - count: 高画质下的粒子数量
func (ps *ParticleSystem) Burst(x, y float64, color components.Color, count int) {
	for i := 0; i < ps.scaled(count); i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := 2 + ps.rng.Float64()*4
		ps.emit(components.ParticleComponent{
			X: x, Y: y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  3 + ps.rng.Float64()*3,
			Color: color,
			Kind:  components.ParticleBurst,
		})
	}
}

// Debris 发射受重力下落、自转的碎片
func (ps *ParticleSystem) Debris(x, y float64, color components.Color, count int) {
	for i := 0; i < ps.scaled(count); i++ {
		angle := -math.Pi/2 + (ps.rng.Float64()-0.5)*math.Pi
		speed := 2 + ps.rng.Float64()*3
		ps.emit(components.ParticleComponent{
			X: x, Y: y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Size:     4 + ps.rng.Float64()*4,
			Rotation: ps.rng.Float64() * 2 * math.Pi,
			Color:    color,
			Kind:     components.ParticleDebris,
		})
	}
}

// Trail 发射一个原地快速缩小的拖尾粒子
// 拖尾关闭时不做任何事
func (ps *ParticleSystem) Trail(x, y float64, color components.Color, size float64) {
	if !ps.trails {
		return
	}
	ps.emit(components.ParticleComponent{
		X: x, Y: y,
		Size:  size,
		Color: color,
		Kind:  components.ParticleTrail,
	})
}

// Ring 发射向外扩张的冲击环
func (ps *ParticleSystem) Ring(x, y float64, color components.Color, radius float64) {
	ps.emit(components.ParticleComponent{
		X: x, Y: y,
		Size:  math.Max(radius, config.ParticleMinSize),
		Color: color,
		Kind:  components.ParticleRing,
	})
}

// Sparks 发射沿直线高速飞行的火花
func (ps *ParticleSystem) Sparks(x, y float64, color components.Color, count int) {
	for i := 0; i < ps.scaled(count); i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := 5 + ps.rng.Float64()*5
		ps.emit(components.ParticleComponent{
			X: x, Y: y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  2,
			Color: color,
			Kind:  components.ParticleSpark,
		})
	}
}

// Explosion 目标被击毁时的组合特效：冲击环、爆散、火花、碎片
func (ps *ParticleSystem) Explosion(x, y float64, color components.Color, radius float64) {
	ps.Ring(x, y, color, radius*0.5)
	ps.Burst(x, y, color, explosionBurst)
	ps.Sparks(x, y, color, explosionSpark)
	ps.Debris(x, y, color, explosionChips)
}

// Pop 目标不计分移除时的小型特效
func (ps *ParticleSystem) Pop(x, y float64, color components.Color, radius float64) {
	ps.Ring(x, y, color, radius*0.3)
	ps.Burst(x, y, color, burstCount/2)
}

// Each 遍历所有活跃粒子
func (ps *ParticleSystem) Each(fn func(p *components.ParticleComponent)) {
	ps.particles.Each(fn)
}

// AppendActive 把所有活跃粒子的拷贝追加到 dst
//
// 返回：
//   - []components.ParticleComponent: 追加后的切片
func (ps *ParticleSystem) AppendActive(dst []components.ParticleComponent) []components.ParticleComponent {
	ps.particles.Each(func(p *components.ParticleComponent) {
		dst = append(dst, *p)
	})
	return dst
}

// ActiveCount 返回活跃粒子数量
func (ps *ParticleSystem) ActiveCount() int {
	return ps.particles.ActiveCount()
}

// Cap 返回粒子环容量
func (ps *ParticleSystem) Cap() int {
	return ps.particles.Cap()
}

// Clear 停用所有粒子
func (ps *ParticleSystem) Clear() {
	ps.particles.Clear()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
