package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
	"github.com/decker502/chromashot/pkg/systems"
)

// SessionOptions 创建会话所需的参数与协作者
//
// 外部 Scheduler 需要在每帧调用 Tick 之前推进时钟，交接延迟才从不匹配所在帧结束起算。
type SessionOptions struct {
	Arena      config.Arena
	Difficulty config.Difficulty
	Table      *config.DifficultyTable // 为 nil 时使用内置默认值
	Seed       int64

	AimAssist      bool
	Tutorial       bool
	HighQuality    bool // 粒子质量；false 时减半爆散并关闭拖尾
	ParticleSlots  int  // 粒子环容量，0 表示默认值
	InitialTargets int  // 开局立即生成的目标数量（调试工具使用）

	Sound       game.SoundSink       // 可为 nil
	Progression game.ProgressionSink // 可为 nil
	Scheduler   game.Scheduler       // 为 nil 时使用内部的 TickScheduler
}

// DefaultSessionOptions 返回默认场地、普通难度的会话参数
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Arena:       config.DefaultArena(),
		Difficulty:  config.DifficultyMedium,
		Table:       config.DefaultDifficultyTable(),
		AimAssist:   true,
		HighQuality: true,
	}
}

// SessionController 会话控制器
//
// 职责：
//   - 按固定顺序驱动一帧：粒子 → 生成 → 物理 → 战斗
//   - 计算 timeFactor（慢动作与教学减速叠加）
//   - 处理射击（限速、控制栏过滤、瞄准辅助）和选色输入
//   - 颜色不匹配后通过 Scheduler 延迟交接，交接只发生一次，之后控制器不再响应
type SessionController struct {
	world *game.World

	engine    *systems.DifficultyEngine
	particles *systems.ParticleSystem
	aim       *systems.AimAssist
	spawn     *systems.SpawnSystem
	physics   *systems.PhysicsSystem
	combat    *systems.CombatSystem

	sound       game.SoundSink
	progression game.ProgressionSink
	scheduler   game.Scheduler
	ticker      *TickScheduler // 仅在使用内部调度器时非 nil

	aimAssist         bool
	tutorialCompleted bool
	handoffScheduled  bool
	handedOff         bool
	result            *game.SessionResult
}

// NewSessionController 创建一局新的会话
//
// 参数：
//   - opts: 会话参数，Arena 非法时回退到默认场地
//
// 返回：
//   - *SessionController: 处于 PLAYING 阶段的会话
func NewSessionController(opts SessionOptions) *SessionController {
	if err := opts.Arena.Validate(); err != nil {
		log.Printf("[SessionController] Warning: %v (using default arena)", err)
		opts.Arena = config.DefaultArena()
	}
	if opts.Table == nil {
		opts.Table = config.DefaultDifficultyTable()
	}
	difficultyCfg := opts.Table.Get(opts.Difficulty)
	if err := difficultyCfg.Validate(); err != nil {
		log.Printf("[SessionController] Warning: %v (using defaults)", err)
		difficultyCfg = config.DefaultDifficultyTable().Get(opts.Difficulty)
	}
	slots := opts.ParticleSlots
	if slots <= 0 {
		slots = config.ParticleCapacity
	}

	w := game.NewWorld(opts.Arena, opts.Difficulty, difficultyCfg, opts.Seed)
	w.State.Tutorial = opts.Tutorial

	engine := systems.NewDifficultyEngine(opts.Difficulty, difficultyCfg)
	particles := systems.NewParticleSystem(slots, w.Rng)
	particles.SetQuality(opts.HighQuality)

	c := &SessionController{
		world:       w,
		engine:      engine,
		particles:   particles,
		aim:         systems.NewAimAssist(),
		spawn:       systems.NewSpawnSystem(engine, particles, opts.Sound),
		physics:     systems.NewPhysicsSystem(),
		combat:      systems.NewCombatSystem(engine, particles, opts.Sound),
		sound:       opts.Sound,
		progression: opts.Progression,
		scheduler:   opts.Scheduler,
		aimAssist:   opts.AimAssist,
	}
	if c.scheduler == nil {
		c.ticker = NewTickScheduler()
		c.scheduler = c.ticker
	}

	for i := 0; i < opts.InitialTargets; i++ {
		c.spawn.SpawnTarget(w)
	}

	log.Printf("[SessionController] Session started: difficulty=%s arena=%.0fx%.0f tutorial=%v",
		opts.Difficulty, opts.Arena.Width, opts.Arena.Height, opts.Tutorial)
	return c
}

// Tick 推进一帧
//
// 参数：
//   - deltaMs: 距上一帧的真实毫秒数（负数与非有限值按 0 处理）
func (c *SessionController) Tick(deltaMs float64) {
	if c.handedOff {
		return
	}
	if deltaMs < 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		deltaMs = 0
	}

	// 调度时钟先走到本帧，之后登记的延迟从本帧结束起算
	if c.ticker != nil {
		c.ticker.Advance(deltaMs)
		if c.handedOff {
			return
		}
	}

	w := c.world
	st := w.State

	tf := math.Min(deltaMs/config.ExpectedFrameMs, config.MaxTimeFactor) * st.TimeScale()
	simMs := tf * config.ExpectedFrameMs
	st.ElapsedMs += simMs
	st.AdvanceTimers(deltaMs)

	c.particles.Update(tf)
	c.spawn.Update(w, simMs)
	c.physics.Update(w, tf)
	result := c.combat.Update(w, tf)

	if result.Mismatch {
		c.scheduleHandoff()
	}
	c.updateTutorial()
}

// updateTutorial 教学命中数达标后结束教学
func (c *SessionController) updateTutorial() {
	st := c.world.State
	if !st.Tutorial || st.TutorialHits < config.TutorialHits {
		return
	}
	st.Tutorial = false
	c.tutorialCompleted = true
	game.PlaySound(c.sound, game.SoundLevelUp)
	log.Printf("[SessionController] Tutorial completed")
}

// scheduleHandoff 登记一次延迟交接，重复调用无效
func (c *SessionController) scheduleHandoff() {
	if c.handoffScheduled {
		return
	}
	c.handoffScheduled = true

	st := c.world.State
	result := game.SessionResult{
		Score:             st.DisplayScore(),
		Difficulty:        c.world.DifficultyName,
		Stats:             c.world.Stats.Clone(),
		DurationMs:        st.ElapsedMs,
		TutorialCompleted: c.tutorialCompleted,
	}
	c.scheduler.After(config.HandoffDelayMs, func() { c.handoff(result) })
}

// handoff 把结果交给进度协作者；只执行一次
func (c *SessionController) handoff(result game.SessionResult) {
	if c.handedOff {
		return
	}
	c.handedOff = true
	c.world.State.Phase = game.PhaseOver
	c.result = &result

	log.Printf("[SessionController] Session over: score=%d missed=%d duration=%.1fs",
		result.Score, result.Stats.TargetsMissed, result.DurationMs/1000)
	game.DeliverResult(c.progression, result)
}

// Shoot 朝屏幕坐标发射一枚当前颜色的弹丸
//
// 返回：
//   - bool: 是否真的发射（阶段、控制栏、射速限制都会拒绝射击）
func (c *SessionController) Shoot(x, y float64) bool {
	w := c.world
	st := w.State
	if !st.IsPlaying() || c.handedOff {
		return false
	}
	if w.Arena.InControlBar(y) {
		return false
	}
	if st.LastShotMs >= 0 && st.RealElapsedMs-st.LastShotMs < config.ShotCooldownMs {
		return false
	}

	ox, oy := w.Arena.ShotOrigin()
	dx, dy := x-ox, y-oy
	length := math.Hypot(dx, dy)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return false
	}
	vx := dx / length * config.ProjectileSpeed
	vy := dy / length * config.ProjectileSpeed
	if c.aimAssist {
		vx, vy = c.aim.Adjust(ox, oy, vx, vy, st.SelectedColor, w.Targets)
	}

	c.combat.Fire(w, ox, oy, vx, vy, st.SelectedColor)
	st.LastShotMs = st.RealElapsedMs
	w.Stats.ShotsFired++
	game.PlaySound(c.sound, game.SoundShoot)
	return true
}

// SelectColor 切换当前颜色
func (c *SessionController) SelectColor(color components.Color) bool {
	st := c.world.State
	if !st.IsPlaying() || c.handedOff || !color.Valid() {
		return false
	}
	if st.SelectedColor != color {
		st.SelectedColor = color
		game.PlaySound(c.sound, game.SoundRotate)
	}
	return true
}

// CycleColor 按步长轮换颜色（滚轮输入）
func (c *SessionController) CycleColor(step int) bool {
	current := int(c.world.State.SelectedColor)
	next := ((current+step)%components.ColorCount + components.ColorCount) % components.ColorCount
	return c.SelectColor(components.Color(next))
}

// SetAimAssist 开关瞄准辅助
func (c *SessionController) SetAimAssist(enabled bool) {
	c.aimAssist = enabled
}

// Resize 在运行时改变场地尺寸
// 目标会在下一帧的边界修正中被推回可游玩区域
func (c *SessionController) Resize(arena config.Arena) error {
	if err := arena.Validate(); err != nil {
		return fmt.Errorf("resize rejected: %w", err)
	}
	c.world.Arena = arena
	log.Printf("[SessionController] Arena resized to %.0fx%.0f", arena.Width, arena.Height)
	return nil
}

// FillSnapshot 把当前状态写入调用方提供的快照（复用其切片容量）
// 上一次填充得到的切片内容会被覆盖
func (c *SessionController) FillSnapshot(s *game.Snapshot) {
	w := c.world
	st := w.State

	s.Reset()
	w.Projectiles.Each(func(p *components.ProjectileComponent) {
		s.Projectiles = append(s.Projectiles, *p)
	})
	for _, t := range w.Targets {
		s.Targets = append(s.Targets, *t)
	}
	s.Particles = c.particles.AppendActive(s.Particles)

	s.Score = st.DisplayScore()
	s.Streak = st.Streak
	s.Level = st.Level
	s.BossActive = st.BossActive
	s.LevelProgress = c.engine.LevelProgress(st)
	s.ShakeActive = st.ShakeTimerMs > 0
	s.ShakeMs = st.ShakeTimerMs
	s.Phase = st.Phase
	s.SelectedColor = st.SelectedColor
	s.TutorialHint = c.tutorialHint()
}

// Snapshot 返回新分配的快照，可以跨帧保留
func (c *SessionController) Snapshot() game.Snapshot {
	var s game.Snapshot
	c.FillSnapshot(&s)
	return s
}

// tutorialHint 教学提示文本
func (c *SessionController) tutorialHint() string {
	st := c.world.State
	if !st.Tutorial || !st.IsPlaying() {
		return ""
	}
	if len(c.world.Targets) == 0 {
		return "Get ready..."
	}
	target := c.world.Targets[0]
	if target.Color != st.SelectedColor {
		return fmt.Sprintf("Select %s to match the target", target.Color)
	}
	return fmt.Sprintf("Tap the target to shoot (%d/%d)", st.TutorialHits, config.TutorialHits)
}

// World 返回会话数据（供驱动与调试工具读取）
func (c *SessionController) World() *game.World {
	return c.world
}

// Particles 返回粒子系统
func (c *SessionController) Particles() *systems.ParticleSystem {
	return c.particles
}

// Phase 返回当前阶段
func (c *SessionController) Phase() game.Phase {
	return c.world.State.Phase
}

// Result 返回交接后的会话结果（交接前为 nil）
func (c *SessionController) Result() *game.SessionResult {
	return c.result
}

// HandedOff 是否已完成交接
func (c *SessionController) HandedOff() bool {
	return c.handedOff
}
