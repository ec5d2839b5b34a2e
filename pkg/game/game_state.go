package game

import (
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
)

// Phase 会话阶段
type Phase int

const (
	// PhasePlaying 正常游戏中
	PhasePlaying Phase = iota
	// PhaseEnding 颜色不匹配后等待交接（固定延迟）
	PhaseEnding
	// PhaseOver 已完成交接，会话不再变化
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseEnding:
		return "ending"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// SimulationState 会话级可变聚合状态
//
// 每个系统的 Update 都显式接收该结构的指针，不存在全局单例。
// 生命周期与一次会话相同：新会话创建新的实例。
type SimulationState struct {
	SelectedColor components.Color

	Score  float64 // 累计得分（显示时向下取整）
	Streak int     // 连续同色命中数
	Level  int     // 当前等级，从 1 开始

	BossProgress float64 // 距上次首领被击败以来累积的进度
	BossActive   bool

	SpeedMultiplier   float64 // 全局速度倍率，每击败一次首领提升
	BaseSpawnInterval float64 // 基础生成间隔（毫秒）
	SpawnInterval     float64 // 本轮生成间隔（毫秒，随机抖动后）
	SpawnTimer        float64 // 距上次生成经过的毫秒数

	ElapsedMs     float64 // 模拟时间，受慢动作与教学减速影响
	RealElapsedMs float64 // 真实时间
	Phase         Phase

	ShakeTimerMs float64 // 屏幕震动剩余时长
	SlowMoMs     float64 // 慢动作剩余时长
	SlowMoScale  float64 // 慢动作期间的时间倍率

	LastShotMs float64 // 上次射击时的 RealElapsedMs，-1 表示尚未射击

	Tutorial     bool // 是否处于教学模式
	TutorialHits int  // 教学期间的同色命中数
}

// NewSimulationState 创建初始状态
//
// 参数：
//   - difficulty: 当前难度档位配置
//
// 返回：
//   - *SimulationState: 等级 1、速度倍率 1 的初始状态
func NewSimulationState(difficulty config.DifficultyConfig) *SimulationState {
	base := config.BaseSpawnIntervalMs * difficulty.SpawnIntervalMultiplier
	return &SimulationState{
		SelectedColor:     components.ColorRed,
		Level:             1,
		SpeedMultiplier:   1.0,
		BaseSpawnInterval: base,
		SpawnInterval:     base,
		Phase:             PhasePlaying,
		SlowMoScale:       1.0,
		LastShotMs:        -1,
	}
}

// DisplayScore 返回向下取整后的得分
func (s *SimulationState) DisplayScore() int {
	return int(math.Floor(s.Score))
}

// AddScore 增加得分，非正数被忽略以保证得分单调不减
func (s *SimulationState) AddScore(points float64) {
	if points > 0 && !math.IsInf(points, 0) {
		s.Score += points
	}
}

// Shake 触发屏幕震动，取剩余时长与新时长的较大值
func (s *SimulationState) Shake(durationMs float64) {
	if durationMs > s.ShakeTimerMs {
		s.ShakeTimerMs = durationMs
	}
}

// SlowMotion 开启一段慢动作
func (s *SimulationState) SlowMotion(scale, durationMs float64) {
	s.SlowMoScale = scale
	if durationMs > s.SlowMoMs {
		s.SlowMoMs = durationMs
	}
}

// TimeScale 返回当前时间倍率（慢动作与教学减速叠加）
func (s *SimulationState) TimeScale() float64 {
	scale := 1.0
	if s.SlowMoMs > 0 {
		scale *= s.SlowMoScale
	}
	if s.Tutorial {
		scale *= config.TutorialTimeScale
	}
	return scale
}

// AdvanceTimers 推进与真实时间挂钩的计时器（真实时钟、震动、慢动作）
func (s *SimulationState) AdvanceTimers(deltaMs float64) {
	s.RealElapsedMs += deltaMs
	s.ShakeTimerMs = math.Max(0, s.ShakeTimerMs-deltaMs)
	s.SlowMoMs = math.Max(0, s.SlowMoMs-deltaMs)
}

// IsPlaying 是否处于可交互阶段
func (s *SimulationState) IsPlaying() bool {
	return s.Phase == PhasePlaying
}
