package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

func newTestEngine(d config.Difficulty) *DifficultyEngine {
	return NewDifficultyEngine(d, config.DefaultDifficultyTable().Get(d))
}

func TestDensityCap(t *testing.T) {
	tests := []struct {
		name       string
		difficulty config.Difficulty
		speedMult  float64
		expected   int
	}{
		{"简单初始", config.DifficultyEasy, 1.0, 6},
		{"普通初始", config.DifficultyMedium, 1.0, 8},
		{"困难初始", config.DifficultyHard, 1.0, 10},
		{"普通击败一次首领", config.DifficultyMedium, 1.15, 9},
		{"普通击败两次首领", config.DifficultyMedium, 1.3, 11},
		{"困难封顶", config.DifficultyHard, 2.0, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestEngine(tt.difficulty).DensityCap(tt.speedMult)
			if got != tt.expected {
				t.Errorf("DensityCap(%v): expected %d, got %d", tt.speedMult, tt.expected, got)
			}
		})
	}
}

func TestBossThresholdAndHealth(t *testing.T) {
	medium := newTestEngine(config.DifficultyMedium)
	hard := newTestEngine(config.DifficultyHard)

	tests := []struct {
		name      string
		engine    *DifficultyEngine
		level     int
		threshold float64
		health    int
	}{
		{"普通1级", medium, 1, 300, 12},
		{"普通2级", medium, 2, 500, 16},
		{"普通4级", medium, 4, 900, 24},
		{"困难1级", hard, 1, 300, 16}, // 12 * 1.3 = 15.6
		{"困难3级", hard, 3, 700, 26}, // 20 * 1.3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.engine.BossThreshold(tt.level); got != tt.threshold {
				t.Errorf("BossThreshold: expected %v, got %v", tt.threshold, got)
			}
			if got := tt.engine.BossHealth(tt.level); got != tt.health {
				t.Errorf("BossHealth: expected %d, got %d", tt.health, got)
			}
		})
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak   int
		expected float64
	}{
		{0, 1}, {1, 1}, {5, 1}, {6, 1.5}, {10, 1.5}, {11, 2}, {20, 2}, {21, 3}, {100, 3},
	}
	for _, tt := range tests {
		if got := StreakMultiplier(tt.streak); got != tt.expected {
			t.Errorf("StreakMultiplier(%d): expected %v, got %v", tt.streak, tt.expected, got)
		}
	}
}

func TestBaseScoreCoversAllKinds(t *testing.T) {
	for _, kind := range components.TargetKinds {
		if BaseScore(kind) <= 0 {
			t.Errorf("BaseScore(%s) must be positive", kind)
		}
	}
	if BaseScore(components.TargetBoss) != 250 {
		t.Errorf("boss base score: got %v", BaseScore(components.TargetBoss))
	}
}

func TestShapesForLevel(t *testing.T) {
	tests := []struct {
		level int
		count int
	}{
		{1, 2}, {2, 3}, {3, 4}, {4, 5}, {9, 5},
	}
	for _, tt := range tests {
		shapes := ShapesForLevel(tt.level)
		if len(shapes) != tt.count {
			t.Errorf("level %d: expected %d shapes, got %d", tt.level, tt.count, len(shapes))
		}
		for _, s := range shapes {
			if s == components.ShapeStar {
				t.Errorf("level %d: star is reserved for bosses", tt.level)
			}
		}
	}
}

func TestSpawnIntervals(t *testing.T) {
	engine := newTestEngine(config.DifficultyMedium)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		v := engine.RollSpawnInterval(1000, rng)
		if v < 750 || v > 1250 {
			t.Fatalf("RollSpawnInterval out of band: %v", v)
		}
	}

	if got := engine.ShrinkBaseInterval(1000); got != 900 {
		t.Errorf("ShrinkBaseInterval(1000): got %v", got)
	}
	if got := engine.ShrinkBaseInterval(460); got != config.MinSpawnIntervalMs {
		t.Errorf("ShrinkBaseInterval floor: got %v", got)
	}

	state := game.NewSimulationState(engine.Config())
	state.SpawnInterval = 1000
	state.BossActive = true
	if got := engine.EffectiveSpawnInterval(state); got != 2500 {
		t.Errorf("boss interval: got %v", got)
	}
	if got := engine.OrdinaryCap(state); got != config.BossOrdinaryCap {
		t.Errorf("boss ordinary cap: got %d", got)
	}
}

func TestSpecialsUnlocked(t *testing.T) {
	if newTestEngine(config.DifficultyMedium).SpecialsUnlocked(49) {
		t.Error("medium should gate specials below 50")
	}
	if !newTestEngine(config.DifficultyMedium).SpecialsUnlocked(50) {
		t.Error("medium should unlock specials at 50")
	}
	if !newTestEngine(config.DifficultyHard).SpecialsUnlocked(0) {
		t.Error("hard unlocks specials immediately")
	}
}

func TestLevelProgress(t *testing.T) {
	engine := newTestEngine(config.DifficultyMedium)
	state := game.NewSimulationState(engine.Config())

	state.BossProgress = 150
	if got := engine.LevelProgress(state); got != 0.5 {
		t.Errorf("LevelProgress: got %v, want 0.5", got)
	}
	state.BossProgress = 1000
	if got := engine.LevelProgress(state); got != 1 {
		t.Errorf("LevelProgress should clamp to 1, got %v", got)
	}
}
