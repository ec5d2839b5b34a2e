package components

// TargetKind 目标行为类型
type TargetKind int

const (
	TargetNormal TargetKind = iota
	// TargetSplit 被摧毁时分裂成两个普通目标
	TargetSplit
	// TargetTough 多点生命值，移动较慢
	TargetTough
	// TargetStationary 静止不动，碰撞时视为无穷质量
	TargetStationary
	// TargetColorShift 周期性随机变色
	TargetColorShift
	// TargetSineWave 水平移动，竖直方向按正弦相位摆动
	TargetSineWave
	// TargetBoss 首领，同一时间最多一个
	TargetBoss
)

// TargetKinds 全部目标类型，按枚举顺序
var TargetKinds = []TargetKind{
	TargetNormal, TargetSplit, TargetTough, TargetStationary,
	TargetColorShift, TargetSineWave, TargetBoss,
}

// SpecialKinds 可随机出现的特殊目标类型（不含普通与首领）
var SpecialKinds = []TargetKind{
	TargetTough, TargetSplit, TargetStationary, TargetColorShift, TargetSineWave,
}

func (k TargetKind) String() string {
	switch k {
	case TargetNormal:
		return "normal"
	case TargetSplit:
		return "split"
	case TargetTough:
		return "tough"
	case TargetStationary:
		return "stationary"
	case TargetColorShift:
		return "colorShift"
	case TargetSineWave:
		return "sineWave"
	case TargetBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Shape 目标外形（仅用于绘制）
// 唯一的物理含义：首领固定为星形
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeHexagon
	ShapeDiamond
	ShapeStar
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeHexagon:
		return "hexagon"
	case ShapeDiamond:
		return "diamond"
	case ShapeStar:
		return "star"
	default:
		return "unknown"
	}
}

// TargetComponent 目标实体数据
//
// 字段说明：
//   - Health: 存活期间始终 >= 1，坚固目标与首领初始值大于 1
//   - ColorShiftTimer: 距上次变色经过的毫秒数（变色目标与首领）
//   - InitialY/TimeOffset: 正弦目标的竖直锚点与相位偏移
//   - SummonTimer: 首领召唤倒计时（毫秒）
//   - Enraged: 首领是否已进入狂暴（只触发一次）
type TargetComponent struct {
	ID uint64

	X, Y   float64
	VX, VY float64

	Color  Color
	Radius float64

	Rotation      float64
	RotationSpeed float64

	Kind  TargetKind
	Shape Shape

	Health    int
	MaxHealth int

	ColorShiftTimer float64
	InitialY        float64
	TimeOffset      float64
	SummonTimer     float64
	Enraged         bool
}

// IsDamageOnly 判断一次同色命中是否只扣血而不摧毁
func (t *TargetComponent) IsDamageOnly() bool {
	return (t.Kind == TargetTough || t.Kind == TargetBoss) && t.Health > 1
}
