package systems

import (
	"math"
	"testing"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

type soundRecorder struct {
	events []game.SoundEvent
}

func (r *soundRecorder) Notify(ev game.SoundEvent) { r.events = append(r.events, ev) }

func (r *soundRecorder) has(ev game.SoundEvent) bool {
	for _, e := range r.events {
		if e == ev {
			return true
		}
	}
	return false
}

func newTestCombat(w *game.World, sound game.SoundSink) *CombatSystem {
	engine := NewDifficultyEngine(w.DifficultyName, w.Difficulty)
	return NewCombatSystem(engine, newTestParticles(config.ParticleCapacity), sound)
}

// fireUntilResolved 从发射点朝 (tx, ty) 发射并推进直到弹丸被回收
func fireUntilResolved(t *testing.T, w *game.World, cs *CombatSystem, tx, ty float64, color components.Color) CombatResult {
	t.Helper()
	ox, oy := w.Arena.ShotOrigin()
	dx, dy := tx-ox, ty-oy
	l := math.Hypot(dx, dy)
	p := cs.Fire(w, ox, oy, dx/l*config.ProjectileSpeed, dy/l*config.ProjectileSpeed, color)

	var total CombatResult
	for i := 0; i < 200 && p.Active; i++ {
		r := cs.Update(w, 1)
		total.Kills += r.Kills
		total.Damaged += r.Damaged
		total.Mismatch = total.Mismatch || r.Mismatch
		total.BossDown = total.BossDown || r.BossDown
	}
	if p.Active {
		t.Fatal("projectile never resolved")
	}
	return total
}

// TestCombat_StationaryScenario 400x800 场地上击毁静止红色目标得 15 分
func TestCombat_StationaryScenario(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.AddTarget(&components.TargetComponent{
		X: 200, Y: 300, Radius: 32, Color: components.ColorRed,
		Kind: components.TargetStationary, Health: 1, MaxHealth: 1,
	})

	ox, oy := w.Arena.ShotOrigin()
	if ox != 200 || oy != 680 {
		t.Fatalf("shot origin: (%v,%v)", ox, oy)
	}

	result := fireUntilResolved(t, w, newTestCombat(w, nil), 200, 300, components.ColorRed)

	if result.Kills != 1 {
		t.Errorf("Kills: got %d, want 1", result.Kills)
	}
	if w.State.Score != 15 {
		t.Errorf("Score: got %v, want 15", w.State.Score)
	}
	if w.State.Streak != 1 || w.State.Level != 1 {
		t.Errorf("streak=%d level=%d", w.State.Streak, w.State.Level)
	}
	if len(w.Targets) != 0 {
		t.Errorf("target not removed: %d left", len(w.Targets))
	}
	if w.Stats.KillsByKind["stationary"] != 1 || w.Stats.TargetsHit != 1 {
		t.Errorf("stats: %+v", w.Stats)
	}
	if w.State.BossProgress != 15 {
		t.Errorf("BossProgress: got %v, want 15", w.State.BossProgress)
	}
}

// TestCombat_Split 分裂目标被摧毁后净增一个目标且颜色相同
func TestCombat_Split(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.AddTarget(&components.TargetComponent{X: 60, Y: 100, Radius: 25, Color: components.ColorGreen, Health: 1, MaxHealth: 1})
	parent := w.AddTarget(&components.TargetComponent{
		X: 200, Y: 300, VX: 1, Radius: 30, Color: components.ColorBlue,
		Kind: components.TargetSplit, Health: 1, MaxHealth: 1,
	})
	before := len(w.Targets)
	sound := &soundRecorder{}

	fireUntilResolved(t, w, newTestCombat(w, sound), parent.X, parent.Y, components.ColorBlue)

	if len(w.Targets) != before+1 {
		t.Fatalf("target count: got %d, want %d", len(w.Targets), before+1)
	}
	for _, c := range w.Targets[1:] {
		if c.Color != components.ColorBlue {
			t.Errorf("child color: got %s", c.Color)
		}
		if c.Kind != components.TargetNormal {
			t.Errorf("child kind: got %s", c.Kind)
		}
		if math.Abs(c.Radius-19.5) > 1e-9 {
			t.Errorf("child radius: got %v", c.Radius)
		}
		if math.Abs(math.Hypot(c.VX, c.VY)-config.SplitMinSpeed) > 1e-9 {
			t.Errorf("child speed: got %v", math.Hypot(c.VX, c.VY))
		}
		if c.ID == parent.ID {
			t.Error("child reused parent ID")
		}
	}
	a, b := w.Targets[1], w.Targets[2]
	angle := math.Abs(angleDiff(math.Atan2(a.VY, a.VX), math.Atan2(b.VY, b.VX)))
	if math.Abs(angle-2*math.Pi/3) > 1e-9 {
		t.Errorf("children should diverge by 120°, got %v", angle*180/math.Pi)
	}
	if !sound.has(game.SoundPop) {
		t.Error("split should play pop")
	}
}

// TestCombat_DamageOnly 坚固目标扣血不摧毁，得分较小且不计入首领进度
func TestCombat_DamageOnly(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	tough := w.AddTarget(&components.TargetComponent{
		X: 200, Y: 300, Radius: 30, Color: components.ColorYellow,
		Kind: components.TargetTough, Health: 3, MaxHealth: 3,
	})
	sound := &soundRecorder{}
	cs := newTestCombat(w, sound)

	result := fireUntilResolved(t, w, cs, 200, 300, components.ColorYellow)

	if result.Damaged != 1 || result.Kills != 0 {
		t.Errorf("result: %+v", result)
	}
	if tough.Health != 2 || len(w.Targets) != 1 {
		t.Errorf("tough health=%d targets=%d", tough.Health, len(w.Targets))
	}
	if w.State.Score != 7.5 {
		t.Errorf("Score: got %v, want 7.5", w.State.Score)
	}
	if w.State.BossProgress != 0 {
		t.Errorf("tough damage must not feed progress, got %v", w.State.BossProgress)
	}
	if !sound.has(game.SoundHeavyHit) {
		t.Error("expected heavy-hit sound")
	}

	// 打到最后一点生命值时才摧毁
	fireUntilResolved(t, w, cs, 200, 300, components.ColorYellow)
	fireUntilResolved(t, w, cs, 200, 300, components.ColorYellow)
	if len(w.Targets) != 0 {
		t.Fatalf("tough should be destroyed on the third hit")
	}
	// 7.5 + 7.5 + 30*1.5
	if w.State.Score != 60 {
		t.Errorf("Score: got %v, want 60", w.State.Score)
	}
}

// TestCombat_BossLifecycle 首领扣血与击败
func TestCombat_BossLifecycle(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.State.BossActive = true
	w.State.BossProgress = 40
	boss := w.AddTarget(&components.TargetComponent{
		X: 200, Y: 200, Radius: 60, Color: components.ColorRed,
		Kind: components.TargetBoss, Shape: components.ShapeStar, Health: 2, MaxHealth: 12,
	})
	sound := &soundRecorder{}
	cs := newTestCombat(w, sound)

	fireUntilResolved(t, w, cs, 200, 200, components.ColorRed)
	if boss.Health != 1 || w.State.BossProgress != 45 {
		t.Fatalf("boss damage: health=%d progress=%v", boss.Health, w.State.BossProgress)
	}

	baseInterval := w.State.BaseSpawnInterval
	result := fireUntilResolved(t, w, cs, 200, 200, components.ColorRed)

	if !result.BossDown {
		t.Fatal("boss should be down")
	}
	st := w.State
	if st.BossActive || st.BossProgress != 0 || st.Level != 2 {
		t.Errorf("after defeat: active=%v progress=%v level=%d", st.BossActive, st.BossProgress, st.Level)
	}
	if math.Abs(st.SpeedMultiplier-1.15) > 1e-9 {
		t.Errorf("SpeedMultiplier: got %v", st.SpeedMultiplier)
	}
	if math.Abs(st.BaseSpawnInterval-baseInterval*0.9) > 1e-9 {
		t.Errorf("BaseSpawnInterval: got %v, want %v", st.BaseSpawnInterval, baseInterval*0.9)
	}
	if w.Stats.BossKills != 1 || w.Stats.HighestLevel != 2 {
		t.Errorf("stats: bossKills=%d highestLevel=%d", w.Stats.BossKills, w.Stats.HighestLevel)
	}
	if st.TimeScale() != config.BossSlowMoScale {
		t.Errorf("slow motion not applied: %v", st.TimeScale())
	}
	if !sound.has(game.SoundLevelUp) {
		t.Error("expected levelUp sound")
	}
	if w.Boss() != nil {
		t.Error("boss still in target list")
	}
}

// TestCombat_Mismatch 颜色不匹配立即进入 ENDING
func TestCombat_Mismatch(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.State.Streak = 7
	w.State.Score = 123.9
	target := w.AddTarget(&components.TargetComponent{X: 200, Y: 300, Radius: 30, Color: components.ColorBlue, Health: 1, MaxHealth: 1})
	sound := &soundRecorder{}
	cs := newTestCombat(w, sound)

	result := fireUntilResolved(t, w, cs, 200, 300, components.ColorRed)

	if !result.Mismatch {
		t.Fatal("expected mismatch")
	}
	if w.State.Phase != game.PhaseEnding || w.State.Streak != 0 {
		t.Errorf("phase=%v streak=%d", w.State.Phase, w.State.Streak)
	}
	if w.Stats.TargetsMissed != 1 || w.Stats.TotalScore != 123 {
		t.Errorf("stats: missed=%d total=%d", w.Stats.TargetsMissed, w.Stats.TotalScore)
	}
	if len(w.Targets) != 1 || w.Targets[0] != target {
		t.Error("mismatched target should survive")
	}
	if !sound.has(game.SoundGameOver) {
		t.Error("expected gameover sound")
	}

	// ENDING 阶段的弹丸穿过目标直到离开场地
	result = fireUntilResolved(t, w, cs, 200, 300, components.ColorBlue)
	if result.Kills != 0 || len(w.Targets) != 1 {
		t.Error("hits must not resolve after the session ended")
	}
}

// TestCombat_StreakMultiplier 连击倍率按命中后的连击数计算
func TestCombat_StreakMultiplier(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.State.Streak = 10
	w.AddTarget(&components.TargetComponent{X: 200, Y: 300, Radius: 30, Color: components.ColorGreen, Health: 1, MaxHealth: 1})
	sound := &soundRecorder{}

	fireUntilResolved(t, w, newTestCombat(w, sound), 200, 300, components.ColorGreen)

	if w.State.Streak != 11 {
		t.Errorf("Streak: got %d", w.State.Streak)
	}
	if w.State.Score != 30 {
		t.Errorf("Score: got %v, want 30", w.State.Score)
	}
	if w.Stats.HighestStreak != 11 {
		t.Errorf("HighestStreak: got %d", w.Stats.HighestStreak)
	}
}

func TestCombat_StreakSound(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	w.State.Streak = 4
	w.AddTarget(&components.TargetComponent{X: 200, Y: 300, Radius: 30, Color: components.ColorGreen, Health: 1, MaxHealth: 1})
	sound := &soundRecorder{}

	fireUntilResolved(t, w, newTestCombat(w, sound), 200, 300, components.ColorGreen)
	if !sound.has(game.SoundStreak) {
		t.Error("streak 5 should play the streak sound")
	}
}

// TestCombat_OffscreenRelease 未命中的弹丸离开场地后回收，槽位复用
func TestCombat_OffscreenRelease(t *testing.T) {
	w := newTestWorld(config.DifficultyMedium)
	cs := newTestCombat(w, nil)

	first := cs.Fire(w, 200, 680, 0, -14, components.ColorRed)
	for i := 0; i < 60; i++ {
		cs.Update(w, 1)
	}
	if first.Active {
		t.Fatal("projectile should leave the arena")
	}
	capBefore := w.Projectiles.Cap()
	second := cs.Fire(w, 200, 680, 0, -14, components.ColorRed)
	if w.Projectiles.Cap() != capBefore {
		t.Error("pool grew although a slot was free")
	}
	if second != first {
		t.Error("expected the released slot to be reused")
	}
}
