package components

// ParticleKind 粒子效果类型
// 每种类型在 ParticleSystem 中对应一套独立的运动/衰减规则
type ParticleKind int

const (
	// ParticleBurst 爆散粒子（默认）：带摩擦的扩散，生命与尺寸同时衰减
	ParticleBurst ParticleKind = iota
	// ParticleDebris 碎片：受重力下落并旋转
	ParticleDebris
	// ParticleTrail 拖尾：原地缩小
	ParticleTrail
	// ParticleRing 冲击环：原地线性扩大
	ParticleRing
	// ParticleSpark 火花：匀速直线运动
	ParticleSpark
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleBurst:
		return "burst"
	case ParticleDebris:
		return "debris"
	case ParticleTrail:
		return "trail"
	case ParticleRing:
		return "ring"
	case ParticleSpark:
		return "spark"
	default:
		return "unknown"
	}
}

// ParticleComponent 单个视觉粒子
//
// 粒子保存在固定容量的环形池中。Life 从 1 衰减到 0，
// 渲染端可直接把 Life 当作透明度使用。
type ParticleComponent struct {
	ID uint64

	X, Y   float64
	VX, VY float64

	Life     float64 // 剩余生命（0-1）
	Size     float64 // 当前尺寸（像素）
	Rotation float64 // 当前旋转（弧度），仅碎片使用
	Color    Color
	Kind     ParticleKind
	Active   bool
}

// IsActive 返回槽位是否处于激活状态
func (p *ParticleComponent) IsActive() bool { return p.Active }

// SetActive 设置槽位激活状态
func (p *ParticleComponent) SetActive(active bool) { p.Active = active }
