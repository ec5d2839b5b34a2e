package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

// DifficultyEngine 难度引擎
// 负责由难度档位和当前进度推导密度上限、首领阈值、生成间隔与计分倍率，
// 为生成系统和战斗系统提供难度数据支持
type DifficultyEngine struct {
	name       config.Difficulty
	difficulty config.DifficultyConfig
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(name config.Difficulty, difficulty config.DifficultyConfig) *DifficultyEngine {
	return &DifficultyEngine{
		name:       name,
		difficulty: difficulty,
	}
}

// Config 返回难度参数
func (d *DifficultyEngine) Config() config.DifficultyConfig {
	return d.difficulty
}

// DensityCap 计算同时存活目标的上限
// 公式: min(maxTargets + floor((speedMultiplier - 1) * 10), 16)
// 参数:
//
//	speedMultiplier - 当前全局速度倍率
//
// 返回:
//
//	目标数量上限（至少为 1）
func (d *DifficultyEngine) DensityCap(speedMultiplier float64) int {
	capacity := d.difficulty.MaxTargets + int(math.Floor((speedMultiplier-1)*config.DensityPerSpeed))
	if capacity > config.AbsoluteMaxTargets {
		capacity = config.AbsoluteMaxTargets
	}
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// OrdinaryCap 返回当前允许的普通目标上限
// 首领存活时普通目标被限制为很少几个
func (d *DifficultyEngine) OrdinaryCap(state *game.SimulationState) int {
	if state.BossActive {
		return config.BossOrdinaryCap
	}
	return d.DensityCap(state.SpeedMultiplier)
}

// BossThreshold 计算触发首领所需的进度
// 公式: 300 + 200 * (level - 1)
func (d *DifficultyEngine) BossThreshold(level int) float64 {
	if level < 1 {
		level = 1
	}
	return config.BossBaseThreshold + config.BossThresholdPerLevel*float64(level-1)
}

// BossHealth 计算首领生命值
// 公式: round((12 + 4 * (level - 1)) * bossHealthMultiplier)，至少为 2
func (d *DifficultyEngine) BossHealth(level int) int {
	if level < 1 {
		level = 1
	}
	base := float64(config.BossBaseHealth + config.BossHealthPerLevel*(level-1))
	health := int(math.Round(base * d.difficulty.BossHealthMultiplier))
	if health < 2 {
		health = 2
	}
	return health
}

// LevelProgress 返回距下一个首领的进度（0-1）
// 首领存活期间固定为 1
func (d *DifficultyEngine) LevelProgress(state *game.SimulationState) float64 {
	if state.BossActive {
		return 1
	}
	p := state.BossProgress / d.BossThreshold(state.Level)
	return math.Max(0, math.Min(1, p))
}

// EffectiveSpawnInterval 返回本轮实际生效的生成间隔（毫秒）
func (d *DifficultyEngine) EffectiveSpawnInterval(state *game.SimulationState) float64 {
	if state.BossActive {
		return state.SpawnInterval * config.BossSpawnIntervalFactor
	}
	return state.SpawnInterval
}

// RollSpawnInterval 以基础间隔为中心随机抖动出下一轮间隔
func (d *DifficultyEngine) RollSpawnInterval(base float64, rng *rand.Rand) float64 {
	jitter := config.SpawnJitterMin + rng.Float64()*(config.SpawnJitterMax-config.SpawnJitterMin)
	return base * jitter
}

// ShrinkBaseInterval 首领被击败后缩短基础间隔（不低于下限）
func (d *DifficultyEngine) ShrinkBaseInterval(base float64) float64 {
	return math.Max(config.MinSpawnIntervalMs, base*config.SpawnIntervalShrink)
}

// SpecialsUnlocked 特殊目标是否已解锁
// 困难档位从一开始就解锁，其余档位需要先得到一定分数
func (d *DifficultyEngine) SpecialsUnlocked(score float64) bool {
	return d.name == config.DifficultyHard || score >= config.SpecialScoreGate
}

// ScoreMultiplier 返回难度计分倍率
func (d *DifficultyEngine) ScoreMultiplier() float64 {
	return d.difficulty.ScoreMultiplier
}

// TargetSpeed 返回目标基础速度（像素/参考帧）
func (d *DifficultyEngine) TargetSpeed(state *game.SimulationState, rng *rand.Rand) float64 {
	base := config.TargetMinSpeed + rng.Float64()*(config.TargetMaxSpeed-config.TargetMinSpeed)
	return base * state.SpeedMultiplier * d.difficulty.SpeedMultiplier
}

// StreakMultiplier 连击倍率（取满足的最高档，不累乘）
//
//	streak > 20 → 3
//	streak > 10 → 2
//	streak > 5  → 1.5
//	其余       → 1
func StreakMultiplier(streak int) float64 {
	switch {
	case streak > 20:
		return 3
	case streak > 10:
		return 2
	case streak > 5:
		return 1.5
	default:
		return 1
	}
}

// BaseScore 各类型目标被摧毁时的基础分
func BaseScore(kind components.TargetKind) float64 {
	switch kind {
	case components.TargetNormal, components.TargetStationary:
		return 10
	case components.TargetSplit:
		return 15
	case components.TargetSineWave, components.TargetColorShift:
		return 20
	case components.TargetTough:
		return 30
	case components.TargetBoss:
		return 250
	default:
		return 10
	}
}

// ShapesForLevel 返回该等级已解锁的外形
func ShapesForLevel(level int) []components.Shape {
	shapes := []components.Shape{components.ShapeCircle, components.ShapeSquare}
	if level >= 2 {
		shapes = append(shapes, components.ShapeTriangle)
	}
	if level >= 3 {
		shapes = append(shapes, components.ShapeHexagon)
	}
	if level >= 4 {
		shapes = append(shapes, components.ShapeDiamond)
	}
	return shapes
}
