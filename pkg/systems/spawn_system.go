package systems

import (
	"log"
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

// SpawnSystem 目标生成系统
//
// 职责：
//   - 按随机抖动的间隔生成普通/特殊目标，遵守密度上限与最小间距
//   - 进度达到阈值时生成首领，并随机清理一部分现有目标
//   - 驱动首领能力（变色、召唤、狂暴）与变色目标的周期变色
type SpawnSystem struct {
	engine    *DifficultyEngine
	particles *ParticleSystem
	sound     game.SoundSink
}

// NewSpawnSystem 创建生成系统
//
// 参数：
//   - engine: 难度引擎
//   - particles: 粒子系统（清场时播放消散效果，可为 nil）
//   - sound: 音效输出端（可为 nil）
func NewSpawnSystem(engine *DifficultyEngine, particles *ParticleSystem, sound game.SoundSink) *SpawnSystem {
	return &SpawnSystem{
		engine:    engine,
		particles: particles,
		sound:     sound,
	}
}

// Update 推进生成计时器和首领行为
//
// 参数：
//   - w: 会话数据
//   - simMs: 本帧经过的模拟毫秒（已含时间倍率）
func (s *SpawnSystem) Update(w *game.World, simMs float64) {
	st := w.State
	if !st.IsPlaying() {
		return
	}

	s.updateColorShifters(w, simMs)
	if boss := w.Boss(); boss != nil {
		s.updateBoss(w, boss, simMs)
	}

	if !st.Tutorial && !st.BossActive && st.BossProgress > s.engine.BossThreshold(st.Level) {
		s.SpawnBoss(w)
	}

	st.SpawnTimer += simMs
	if st.SpawnTimer < s.engine.EffectiveSpawnInterval(st) {
		return
	}
	if !s.hasRoom(w) {
		return
	}
	// 所有位置都被拒绝时计时器保持到期，下一帧重试
	if s.SpawnTarget(w) == nil {
		return
	}
	st.SpawnTimer = 0
	st.SpawnInterval = s.engine.RollSpawnInterval(st.BaseSpawnInterval, w.Rng)
}

// hasRoom 检查当前是否允许再生成一个普通目标
func (s *SpawnSystem) hasRoom(w *game.World) bool {
	st := w.State
	if st.Tutorial {
		return len(w.Targets) < 1
	}
	return w.OrdinaryCount() < s.engine.OrdinaryCap(st)
}

// SpawnTarget 尝试生成一个普通或特殊目标
//
// 返回：
//   - *components.TargetComponent: 新目标；找不到合适位置时返回 nil
func (s *SpawnSystem) SpawnTarget(w *game.World) *components.TargetComponent {
	rng := w.Rng
	st := w.State
	radius := config.TargetMinRadius + rng.Float64()*(config.TargetMaxRadius-config.TargetMinRadius)

	x, y, ok := s.findPosition(w, radius)
	if !ok {
		return nil
	}

	shapes := ShapesForLevel(st.Level)
	t := &components.TargetComponent{
		X:             x,
		Y:             y,
		Color:         components.RandomColor(rng),
		Radius:        radius,
		RotationSpeed: (rng.Float64()*2 - 1) * config.MaxRotationSpeed,
		Kind:          s.rollKind(w),
		Shape:         shapes[rng.Intn(len(shapes))],
		Health:        1,
		MaxHealth:     1,
	}

	speed := s.engine.TargetSpeed(st, rng)
	heading := rng.Float64() * 2 * math.Pi
	t.VX = math.Cos(heading) * speed
	t.VY = math.Sin(heading) * speed

	switch t.Kind {
	case components.TargetTough:
		t.Health = config.ToughHealth
		t.MaxHealth = config.ToughHealth
		t.VX *= config.ToughSpeedFactor
		t.VY *= config.ToughSpeedFactor
	case components.TargetStationary:
		t.VX, t.VY = 0, 0
	case components.TargetSineWave:
		t.VY = 0
		t.VX = speed
		if rng.Intn(2) == 0 {
			t.VX = -speed
		}
		playH := w.Arena.PlayHeight()
		t.InitialY = clamp(y, playH*config.SineBandTop+config.SineAmplitude, playH*config.SineBandBottom-config.SineAmplitude)
		t.TimeOffset = rng.Float64() * 2 * math.Pi
		t.Y = t.InitialY + config.SineAmplitude*math.Sin(st.ElapsedMs/1000*config.SineFrequency+t.TimeOffset)
	case components.TargetColorShift:
		t.ColorShiftTimer = 0
	case components.TargetNormal, components.TargetSplit, components.TargetBoss:
	}

	return w.AddTarget(t)
}

// findPosition 在场地上部随机选取不与现有目标重叠的位置
func (s *SpawnSystem) findPosition(w *game.World, radius float64) (float64, float64, bool) {
	rng := w.Rng
	minX, maxX := radius, w.Arena.Width-radius
	minY := radius + config.SpawnTopMargin
	maxY := w.Arena.PlayHeight() * config.SpawnBandFraction
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}

	for attempt := 0; attempt < config.SpawnAttempts; attempt++ {
		x := minX + rng.Float64()*(maxX-minX)
		y := minY + rng.Float64()*(maxY-minY)
		if s.isClear(w, x, y, radius) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (s *SpawnSystem) isClear(w *game.World, x, y, radius float64) bool {
	for _, t := range w.Targets {
		if math.Hypot(t.X-x, t.Y-y) < t.Radius+radius+config.SpawnClearance {
			return false
		}
	}
	return true
}

// rollKind 决定目标类型
// 教学模式只生成普通目标；特殊目标在解锁前不会出现
func (s *SpawnSystem) rollKind(w *game.World) components.TargetKind {
	st := w.State
	if st.Tutorial || !s.engine.SpecialsUnlocked(st.Score) {
		return components.TargetNormal
	}
	if w.Rng.Float64() >= s.engine.Config().SpecialChance {
		return components.TargetNormal
	}
	return components.SpecialKinds[w.Rng.Intn(len(components.SpecialKinds))]
}

// SpawnBoss 生成首领并以 50% 概率清理每个现有目标
//
// 已有首领存活时不做任何事。
func (s *SpawnSystem) SpawnBoss(w *game.World) *components.TargetComponent {
	st := w.State
	if st.BossActive || w.Boss() != nil {
		return nil
	}

	kept := w.Targets[:0]
	for _, t := range w.Targets {
		if w.Rng.Float64() < config.BossThinChance {
			if s.particles != nil {
				s.particles.Pop(t.X, t.Y, t.Color, t.Radius)
			}
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(w.Targets); i++ {
		w.Targets[i] = nil
	}
	w.Targets = kept

	health := s.engine.BossHealth(st.Level)
	drift := st.SpeedMultiplier
	if w.Rng.Intn(2) == 0 {
		drift = -drift
	}
	boss := w.AddTarget(&components.TargetComponent{
		X:             w.Arena.Width / 2,
		Y:             -config.BossRadius,
		VX:            drift,
		VY:            config.BossEntrySpeed,
		Color:         components.RandomColor(w.Rng),
		Radius:        config.BossRadius,
		RotationSpeed: config.MaxRotationSpeed / 2,
		Kind:          components.TargetBoss,
		Shape:         components.ShapeStar,
		Health:        health,
		MaxHealth:     health,
		SummonTimer:   config.BossSummonMs,
	})

	st.BossActive = true
	game.PlaySound(s.sound, game.SoundWhir)
	log.Printf("[SpawnSystem] Boss spawned: level=%d health=%d remaining=%d", st.Level, health, len(w.Targets)-1)
	return boss
}

// updateBoss 首领能力：活动带限制、周期变色、召唤、狂暴
func (s *SpawnSystem) updateBoss(w *game.World, boss *components.TargetComponent, simMs float64) {
	bandBottom := w.Arena.PlayHeight() * config.BossBandFraction
	if boss.Y < boss.Radius && boss.VY < 0 {
		boss.VY = -boss.VY
	} else if boss.Y > bandBottom {
		boss.Y = bandBottom
		boss.VY = -math.Abs(boss.VY)
	}

	boss.ColorShiftTimer += simMs
	if boss.ColorShiftTimer >= config.BossColorShiftMs {
		boss.ColorShiftTimer = 0
		boss.Color = components.RandomOtherColor(w.Rng, boss.Color)
		game.PlaySound(s.sound, game.SoundWhir)
	}

	boss.SummonTimer -= simMs
	if boss.SummonTimer <= 0 {
		boss.SummonTimer = config.BossSummonMs
		s.summonMinions(w, boss)
		game.PlaySound(s.sound, game.SoundWhir)
	}

	if !boss.Enraged && float64(boss.Health) < float64(boss.MaxHealth)*config.BossEnrageFraction {
		boss.Enraged = true
		boss.RotationSpeed *= config.BossEnrageSpin
		boss.VX *= config.BossEnrageSpeedup
		boss.VY *= config.BossEnrageSpeedup
		log.Printf("[SpawnSystem] Boss enraged: health=%d/%d", boss.Health, boss.MaxHealth)
	}
}

// summonMinions 在首领两侧生成两个同色普通目标
func (s *SpawnSystem) summonMinions(w *game.World, boss *components.TargetComponent) {
	offset := boss.Radius + config.BossMinionGap
	r := config.BossMinionRadius
	for _, side := range []float64{-1, 1} {
		speed := s.engine.TargetSpeed(w.State, w.Rng)
		heading := w.Rng.Float64() * 2 * math.Pi
		w.AddTarget(&components.TargetComponent{
			X:         clamp(boss.X+side*offset, r, w.Arena.Width-r),
			Y:         math.Max(boss.Y, r),
			VX:        math.Cos(heading) * speed,
			VY:        math.Sin(heading) * speed,
			Color:     boss.Color,
			Radius:    r,
			Kind:      components.TargetNormal,
			Shape:     components.ShapeCircle,
			Health:    1,
			MaxHealth: 1,
		})
	}
}

// updateColorShifters 变色目标每隔固定时间换成另一种颜色
func (s *SpawnSystem) updateColorShifters(w *game.World, simMs float64) {
	for _, t := range w.Targets {
		if t.Kind != components.TargetColorShift {
			continue
		}
		t.ColorShiftTimer += simMs
		if t.ColorShiftTimer >= config.ColorShiftIntervalMs {
			t.ColorShiftTimer = 0
			t.Color = components.RandomOtherColor(w.Rng, t.Color)
		}
	}
}
