package game

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LifetimeStats 跨会话累计统计
type LifetimeStats struct {
	GamesPlayed       int            `yaml:"gamesPlayed"`
	TotalScore        int            `yaml:"totalScore"`
	ShotsFired        int            `yaml:"shotsFired"`
	TargetsHit        int            `yaml:"targetsHit"`
	TargetsMissed     int            `yaml:"targetsMissed"`
	HighestStreak     int            `yaml:"highestStreak"`
	HighestLevel      int            `yaml:"highestLevel"`
	BossKills         int            `yaml:"bossKills"`
	KillsByKind       map[string]int `yaml:"killsByKind"`
	GamesByDifficulty map[string]int `yaml:"gamesByDifficulty"`
	BestScores        map[string]int `yaml:"bestScores"` // 难度 -> 最高分
}

// Merge 把单局统计累加到累计统计中
//
// 计数字段相加，最高值字段取最大值。
func (l *LifetimeStats) Merge(result SessionResult) {
	s := result.Stats
	l.GamesPlayed++
	l.TotalScore += s.TotalScore
	l.ShotsFired += s.ShotsFired
	l.TargetsHit += s.TargetsHit
	l.TargetsMissed += s.TargetsMissed
	l.BossKills += s.BossKills
	if s.HighestStreak > l.HighestStreak {
		l.HighestStreak = s.HighestStreak
	}
	if s.HighestLevel > l.HighestLevel {
		l.HighestLevel = s.HighestLevel
	}

	l.KillsByKind = addCounts(l.KillsByKind, s.KillsByKind)
	l.GamesByDifficulty = addCounts(l.GamesByDifficulty, s.GamesByDifficulty)

	if l.BestScores == nil {
		l.BestScores = make(map[string]int)
	}
	key := string(result.Difficulty)
	if result.Score > l.BestScores[key] {
		l.BestScores[key] = result.Score
	}
}

// TotalKills 返回累计摧毁的目标总数（不含只造成伤害的命中）
func (l *LifetimeStats) TotalKills() int {
	total := 0
	for _, n := range l.KillsByKind {
		total += n
	}
	return total
}

func addCounts(dst, src map[string]int) map[string]int {
	if dst == nil {
		dst = make(map[string]int, len(src))
	}
	for k, v := range src {
		dst[k] += v
	}
	return dst
}

// Achievement 成就定义
type Achievement struct {
	ID          string
	Name        string
	Description string
	check       func(l *LifetimeStats) bool
}

// Achievements 全部成就，按解锁难度排列
var Achievements = []Achievement{
	{ID: "first-blood", Name: "First Blood", Description: "Destroy your first target",
		check: func(l *LifetimeStats) bool { return l.TotalKills() >= 1 }},
	{ID: "streak-10", Name: "On Fire", Description: "Reach a streak of 10",
		check: func(l *LifetimeStats) bool { return l.HighestStreak >= 10 }},
	{ID: "streak-25", Name: "Unstoppable", Description: "Reach a streak of 25",
		check: func(l *LifetimeStats) bool { return l.HighestStreak >= 25 }},
	{ID: "boss-slayer", Name: "Boss Slayer", Description: "Defeat a boss",
		check: func(l *LifetimeStats) bool { return l.BossKills >= 1 }},
	{ID: "level-5", Name: "Veteran", Description: "Reach level 5",
		check: func(l *LifetimeStats) bool { return l.HighestLevel >= 5 }},
	{ID: "sharpshooter", Name: "Sharpshooter", Description: "Land 500 hits in total",
		check: func(l *LifetimeStats) bool { return l.TargetsHit >= 500 }},
	{ID: "marathon", Name: "Marathon", Description: "Play 100 games",
		check: func(l *LifetimeStats) bool { return l.GamesPlayed >= 100 }},
}

// progressionData 持久化格式
type progressionData struct {
	Stats    LifetimeStats `yaml:"stats"`
	Unlocked []string      `yaml:"unlocked"`
}

const (
	progressionObject   = "progression"
	progressionProperty = "lifetime"
)

// ProgressionManager 进度管理器
//
// 职责：
//   - 实现 ProgressionSink，会话结束时合并单局统计
//   - 重新评估成就解锁条件，新解锁时播放成就音效
//   - 通过 gdata 持久化（gdataManager 为 nil 时仅保存在内存）
type ProgressionManager struct {
	gdataManager *gdata.Manager
	sound        SoundSink
	data         progressionData
	lastResult   *SessionResult
	lastUnlocked []Achievement
}

// NewProgressionManager 创建进度管理器并加载已有数据
//
// 参数：
//   - gdataManager: 存储管理器，可为 nil（降级模式）
//   - sound: 成就音效输出端，可为 nil
func NewProgressionManager(gdataManager *gdata.Manager, sound SoundSink) *ProgressionManager {
	pm := &ProgressionManager{
		gdataManager: gdataManager,
		sound:        sound,
	}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressionManager] Warning: Failed to load progression: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载累计数据
func (pm *ProgressionManager) Load() error {
	pm.data = progressionData{}
	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(progressionObject, progressionProperty) {
		return nil
	}

	raw, err := pm.gdataManager.LoadObjectProp(progressionObject, progressionProperty)
	if err != nil {
		return fmt.Errorf("failed to load progression: %w", err)
	}

	var loaded progressionData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progression: %w", err)
	}
	pm.data = loaded
	return nil
}

// Save 保存累计数据到 gdata
func (pm *ProgressionManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(&pm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal progression: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressionObject, progressionProperty, raw); err != nil {
		return fmt.Errorf("failed to save progression: %w", err)
	}
	return nil
}

// OnSessionEnd 实现 ProgressionSink
func (pm *ProgressionManager) OnSessionEnd(result SessionResult) {
	pm.data.Stats.Merge(result)
	pm.lastResult = &result
	pm.lastUnlocked = pm.evaluate()

	for _, a := range pm.lastUnlocked {
		log.Printf("[ProgressionManager] Achievement unlocked: %s", a.ID)
	}
	if len(pm.lastUnlocked) > 0 {
		PlaySound(pm.sound, SoundAchievement)
	}

	if err := pm.Save(); err != nil {
		log.Printf("[ProgressionManager] Warning: %v", err)
	}

	log.Printf("[ProgressionManager] Session merged: score=%d difficulty=%s games=%d",
		result.Score, result.Difficulty, pm.data.Stats.GamesPlayed)
}

// evaluate 返回本次新解锁的成就
func (pm *ProgressionManager) evaluate() []Achievement {
	unlocked := make(map[string]bool, len(pm.data.Unlocked))
	for _, id := range pm.data.Unlocked {
		unlocked[id] = true
	}

	var fresh []Achievement
	for _, a := range Achievements {
		if unlocked[a.ID] || !a.check(&pm.data.Stats) {
			continue
		}
		pm.data.Unlocked = append(pm.data.Unlocked, a.ID)
		fresh = append(fresh, a)
	}
	return fresh
}

// Stats 返回累计统计
func (pm *ProgressionManager) Stats() LifetimeStats {
	return pm.data.Stats
}

// IsUnlocked 检查成就是否已解锁
func (pm *ProgressionManager) IsUnlocked(id string) bool {
	for _, u := range pm.data.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// LastUnlocked 返回最近一次会话新解锁的成就
func (pm *ProgressionManager) LastUnlocked() []Achievement {
	return pm.lastUnlocked
}

// LastResult 返回最近一次会话结果（尚无会话时为 nil）
func (pm *ProgressionManager) LastResult() *SessionResult {
	return pm.lastResult
}

// FormatReport 生成单局结果的文本报告
func FormatReport(result SessionResult) string {
	var b strings.Builder
	s := result.Stats
	fmt.Fprintf(&b, "score: %d (%s)\n", result.Score, result.Difficulty)
	fmt.Fprintf(&b, "level: %d  bosses: %d\n", s.HighestLevel, s.BossKills)
	fmt.Fprintf(&b, "shots: %d  hits: %d  missed: %d\n", s.ShotsFired, s.TargetsHit, s.TargetsMissed)
	fmt.Fprintf(&b, "best streak: %d\n", s.HighestStreak)
	fmt.Fprintf(&b, "duration: %.1fs\n", result.DurationMs/1000)

	kinds := make([]string, 0, len(s.KillsByKind))
	for k := range s.KillsByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-10s %d\n", k, s.KillsByKind[k])
	}
	return b.String()
}
