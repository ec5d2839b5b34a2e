package systems

import (
	"log"
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

// CombatResult 一帧战斗结算的汇总
type CombatResult struct {
	Kills    int  // 本帧摧毁的目标数
	Damaged  int  // 本帧只扣血未摧毁的命中数
	Mismatch bool // 本帧是否发生了颜色不匹配
	BossDown bool // 本帧是否击败了首领
}

// CombatSystem 战斗系统
//
// 职责：
//   - 推进弹丸并检测与目标的接触
//   - 同色命中：连击、计分、扣血或摧毁、分裂、首领击败
//   - 异色命中：清零连击并把会话切换到 ENDING
//   - 弹丸离开场地后归还对象池
type CombatSystem struct {
	engine    *DifficultyEngine
	particles *ParticleSystem
	sound     game.SoundSink
}

// NewCombatSystem 创建战斗系统
//
// 参数：
//   - engine: 难度引擎（计分倍率、生成间隔收缩）
//   - particles: 粒子系统（拖尾与命中效果，可为 nil）
//   - sound: 音效输出端（可为 nil）
func NewCombatSystem(engine *DifficultyEngine, particles *ParticleSystem, sound game.SoundSink) *CombatSystem {
	return &CombatSystem{
		engine:    engine,
		particles: particles,
		sound:     sound,
	}
}

// Fire 从对象池取出一个弹丸
func (cs *CombatSystem) Fire(w *game.World, x, y, vx, vy float64, color components.Color) *components.ProjectileComponent {
	return w.Projectiles.Acquire(components.ProjectileComponent{
		ID:     w.NextID(),
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Color:  color,
		Radius: config.ProjectileRadius,
	})
}

// Update 推进弹丸并结算命中
//
// 非 PLAYING 阶段弹丸继续飞行但不再结算命中。
func (cs *CombatSystem) Update(w *game.World, timeFactor float64) CombatResult {
	var result CombatResult
	arena := w.Arena

	w.Projectiles.Each(func(p *components.ProjectileComponent) {
		p.X += p.VX * timeFactor
		p.Y += p.VY * timeFactor
		if cs.particles != nil && cs.particles.TrailsEnabled() {
			cs.particles.Trail(p.X, p.Y, p.Color, p.Radius)
		}

		if w.State.IsPlaying() {
			if target := findHit(w.Targets, p); target != nil {
				w.Projectiles.Release(p)
				cs.resolveHit(w, p, target, &result)
				return
			}
		}

		if p.X < -config.OffscreenMargin || p.X > arena.Width+config.OffscreenMargin ||
			p.Y < -config.OffscreenMargin || p.Y > arena.Height+config.OffscreenMargin ||
			!finite(p.X) || !finite(p.Y) {
			w.Projectiles.Release(p)
		}
	})
	return result
}

// findHit 返回第一个与弹丸接触的目标
func findHit(targets []*components.TargetComponent, p *components.ProjectileComponent) *components.TargetComponent {
	for _, t := range targets {
		if math.Hypot(t.X-p.X, t.Y-p.Y) < t.Radius+config.HitTolerance {
			return t
		}
	}
	return nil
}

func (cs *CombatSystem) resolveHit(w *game.World, p *components.ProjectileComponent, t *components.TargetComponent, result *CombatResult) {
	if p.Color != t.Color {
		cs.mismatch(w, p, t)
		result.Mismatch = true
		return
	}

	st := w.State
	stats := w.Stats
	st.Streak++
	stats.TargetsHit++
	stats.ObserveStreak(st.Streak)
	if st.Tutorial {
		st.TutorialHits++
	}
	if st.Streak%config.StreakSoundEvery == 0 {
		game.PlaySound(cs.sound, game.SoundStreak)
	}

	if t.IsDamageOnly() {
		t.Health--
		st.AddScore(config.DamageScore * cs.engine.ScoreMultiplier())
		if t.Kind == components.TargetBoss {
			st.BossProgress += config.BossDamageProgress
		}
		st.Shake(config.HeavyHitShakeMs)
		if cs.particles != nil {
			cs.particles.Sparks(p.X, p.Y, t.Color, 6)
		}
		game.PlaySound(cs.sound, game.SoundHeavyHit)
		result.Damaged++
		return
	}

	points := BaseScore(t.Kind) * cs.engine.ScoreMultiplier() * StreakMultiplier(st.Streak)
	st.AddScore(points)
	stats.RecordKill(t.Kind)
	w.RemoveTarget(t.ID)
	if cs.particles != nil {
		cs.particles.Explosion(t.X, t.Y, t.Color, t.Radius)
	}
	result.Kills++

	switch t.Kind {
	case components.TargetBoss:
		// 击败首领只计入很小的固定进度，随后进度被清零
		st.BossProgress += config.BossKillProgress
		cs.defeatBoss(w)
		result.BossDown = true
	case components.TargetSplit:
		st.BossProgress += points
		cs.split(w, t)
		game.PlaySound(cs.sound, game.SoundPop)
	case components.TargetNormal, components.TargetTough, components.TargetStationary,
		components.TargetColorShift, components.TargetSineWave:
		st.BossProgress += points
		game.PlaySound(cs.sound, game.SoundScore)
	}
}

// defeatBoss 首领被击败后的等级提升
func (cs *CombatSystem) defeatBoss(w *game.World) {
	st := w.State
	st.Level++
	st.BossActive = false
	st.BossProgress = 0
	st.SpeedMultiplier += config.SpeedupPerBoss
	st.BaseSpawnInterval = cs.engine.ShrinkBaseInterval(st.BaseSpawnInterval)
	st.SpawnInterval = st.BaseSpawnInterval
	w.Stats.ObserveLevel(st.Level)

	st.SlowMotion(config.BossSlowMoScale, config.BossSlowMoMs)
	st.Shake(config.BossDefeatShakeMs)
	game.PlaySound(cs.sound, game.SoundLevelUp)

	log.Printf("[CombatSystem] Boss defeated: level=%d speed=%.2f interval=%.0fms",
		st.Level, st.SpeedMultiplier, st.BaseSpawnInterval)
}

// split 在父目标位置生成两个普通子目标，沿父目标航向 ±60° 飞出
func (cs *CombatSystem) split(w *game.World, parent *components.TargetComponent) {
	speed := math.Hypot(parent.VX, parent.VY)
	heading := -math.Pi / 2
	if speed > 0 {
		heading = math.Atan2(parent.VY, parent.VX)
	}
	childSpeed := math.Max(speed*config.SplitSpeedFactor, config.SplitMinSpeed)
	radius := math.Max(parent.Radius*config.SplitRadiusFactor, config.SplitMinRadius)
	spread := config.SplitAngleDegrees * math.Pi / 180

	for _, side := range []float64{-1, 1} {
		angle := heading + side*spread
		dx, dy := math.Cos(angle), math.Sin(angle)
		w.AddTarget(&components.TargetComponent{
			X:             parent.X + dx*radius*0.5,
			Y:             parent.Y + dy*radius*0.5,
			VX:            dx * childSpeed,
			VY:            dy * childSpeed,
			Color:         parent.Color,
			Radius:        radius,
			RotationSpeed: parent.RotationSpeed,
			Kind:          components.TargetNormal,
			Shape:         parent.Shape,
			Health:        1,
			MaxHealth:     1,
		})
	}
}

// mismatch 颜色不匹配：清零连击并进入 ENDING
func (cs *CombatSystem) mismatch(w *game.World, p *components.ProjectileComponent, t *components.TargetComponent) {
	st := w.State
	st.Streak = 0
	st.Phase = game.PhaseEnding
	w.Stats.TargetsMissed++
	w.Stats.TotalScore = st.DisplayScore()

	st.Shake(config.MismatchShakeMs)
	if cs.particles != nil {
		cs.particles.Sparks(p.X, p.Y, p.Color, 10)
		cs.particles.Ring(t.X, t.Y, t.Color, t.Radius)
	}
	game.PlaySound(cs.sound, game.SoundGameOver)

	log.Printf("[CombatSystem] Color mismatch: projectile=%s target=%s score=%d",
		p.Color, t.Color, w.Stats.TotalScore)
}
