package game

import (
	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
)

// SessionStats 单局统计
//
// 由 CombatSystem 在局内累积，会话结束时整体交给进度协作者。
// 核心从不跨会话合并，合并由 ProgressionManager 负责。
type SessionStats struct {
	ShotsFired        int            `yaml:"shotsFired"`
	TargetsHit        int            `yaml:"targetsHit"`
	TargetsMissed     int            `yaml:"targetsMissed"`
	HighestStreak     int            `yaml:"highestStreak"`
	KillsByKind       map[string]int `yaml:"killsByKind"`
	HighestLevel      int            `yaml:"highestLevel"`
	BossKills         int            `yaml:"bossKills"`
	GamesByDifficulty map[string]int `yaml:"gamesByDifficulty"`
	TotalScore        int            `yaml:"totalScore"`
}

// NewSessionStats 创建一局的统计，并记录本局的难度标签
func NewSessionStats(difficulty config.Difficulty) *SessionStats {
	return &SessionStats{
		KillsByKind:       make(map[string]int),
		HighestLevel:      1,
		GamesByDifficulty: map[string]int{string(difficulty): 1},
	}
}

// RecordKill 记录一次摧毁
func (s *SessionStats) RecordKill(kind components.TargetKind) {
	if s.KillsByKind == nil {
		s.KillsByKind = make(map[string]int)
	}
	s.KillsByKind[kind.String()]++
	if kind == components.TargetBoss {
		s.BossKills++
	}
}

// ObserveStreak 更新最高连击
func (s *SessionStats) ObserveStreak(streak int) {
	if streak > s.HighestStreak {
		s.HighestStreak = streak
	}
}

// ObserveLevel 更新最高等级
func (s *SessionStats) ObserveLevel(level int) {
	if level > s.HighestLevel {
		s.HighestLevel = level
	}
}

// TotalKills 返回所有类型的摧毁总数
func (s *SessionStats) TotalKills() int {
	total := 0
	for _, n := range s.KillsByKind {
		total += n
	}
	return total
}

// Clone 深拷贝统计（交接时使用，避免调用方持有内部 map）
func (s *SessionStats) Clone() SessionStats {
	c := *s
	c.KillsByKind = make(map[string]int, len(s.KillsByKind))
	for k, v := range s.KillsByKind {
		c.KillsByKind[k] = v
	}
	c.GamesByDifficulty = make(map[string]int, len(s.GamesByDifficulty))
	for k, v := range s.GamesByDifficulty {
		c.GamesByDifficulty[k] = v
	}
	return c
}
