package game

import (
	"github.com/decker502/chromashot/pkg/components"
)

// Snapshot 每帧交给渲染协作者的只读视图
//
// 切片中的元素是世界状态的拷贝，修改它们不会影响核心。
// FillSnapshot 复用同一快照的切片容量，内容只在下一次填充前有效；
// 需要跨帧保留数据时使用 SessionController.Snapshot 取得独立副本。
type Snapshot struct {
	Projectiles []components.ProjectileComponent
	Targets     []components.TargetComponent
	Particles   []components.ParticleComponent

	Score         int
	Streak        int
	Level         int
	BossActive    bool
	LevelProgress float64 // 0-1，距下一个首领的进度

	ShakeActive bool
	ShakeMs     float64

	Phase         Phase
	SelectedColor components.Color
	TutorialHint  string
}

// Reset 清空切片但保留容量，供 FillSnapshot 复用
func (s *Snapshot) Reset() {
	s.Projectiles = s.Projectiles[:0]
	s.Targets = s.Targets[:0]
	s.Particles = s.Particles[:0]
}
