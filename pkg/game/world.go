package game

import (
	"math/rand"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/pool"
)

// ProjectilePool 弹丸对象池
type ProjectilePool = pool.Pool[components.ProjectileComponent, *components.ProjectileComponent]

// World 一次会话的全部可变数据
//
// 包含：
//   - State: 计分/等级/阶段等聚合状态
//   - Stats: 本局统计
//   - Targets: 存活目标（生成、分裂、召唤时追加，摧毁时移除）
//   - Projectiles: 弹丸对象池
//
// 粒子池不在这里，它由 ParticleSystem 独占。
type World struct {
	State *SimulationState
	Stats *SessionStats

	Arena          config.Arena
	DifficultyName config.Difficulty
	Difficulty     config.DifficultyConfig

	Targets     []*components.TargetComponent
	Projectiles *ProjectilePool

	Rng *rand.Rand

	nextID uint64
}

// NewWorld 创建会话数据
//
// 参数：
//   - arena: 场地尺寸
//   - name: 难度档位名称（写入统计的难度标签）
//   - difficulty: 难度参数
//   - seed: 随机种子，相同种子得到可复现的生成序列
func NewWorld(arena config.Arena, name config.Difficulty, difficulty config.DifficultyConfig, seed int64) *World {
	return &World{
		State:          NewSimulationState(difficulty),
		Stats:          NewSessionStats(name),
		Arena:          arena,
		DifficultyName: name,
		Difficulty:     difficulty,
		Targets:        make([]*components.TargetComponent, 0, config.AbsoluteMaxTargets),
		Projectiles:    pool.NewPool[components.ProjectileComponent](config.InitialProjectileSlots),
		Rng:            rand.New(rand.NewSource(seed)),
		nextID:         1,
	}
}

// NextID 分配一个实体ID（从 1 开始，0 保留为无效ID）
func (w *World) NextID() uint64 {
	id := w.nextID
	w.nextID++
	return id
}

// AddTarget 追加目标，ID 为 0 时自动分配
func (w *World) AddTarget(t *components.TargetComponent) *components.TargetComponent {
	if t.ID == 0 {
		t.ID = w.NextID()
	}
	w.Targets = append(w.Targets, t)
	return t
}

// RemoveTarget 按ID移除目标，保持其余目标的相对顺序
//
// 返回：
//   - bool: 目标是否存在
func (w *World) RemoveTarget(id uint64) bool {
	for i, t := range w.Targets {
		if t.ID == id {
			copy(w.Targets[i:], w.Targets[i+1:])
			w.Targets[len(w.Targets)-1] = nil
			w.Targets = w.Targets[:len(w.Targets)-1]
			return true
		}
	}
	return false
}

// Boss 返回当前存活的首领（没有时返回 nil）
func (w *World) Boss() *components.TargetComponent {
	for _, t := range w.Targets {
		if t.Kind == components.TargetBoss {
			return t
		}
	}
	return nil
}

// OrdinaryCount 返回非首领目标数量
func (w *World) OrdinaryCount() int {
	n := 0
	for _, t := range w.Targets {
		if t.Kind != components.TargetBoss {
			n++
		}
	}
	return n
}
