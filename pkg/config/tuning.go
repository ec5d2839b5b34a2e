package config

// 时间基准
const (
	// ExpectedFrameMs 参考帧时长（60 FPS），所有速度单位均为“像素/参考帧”
	ExpectedFrameMs = 1000.0 / 60.0
	// MaxTimeFactor timeFactor 上限，防止掉帧时物理发散
	MaxTimeFactor   = 4.0
)

// 弹丸
const (
	ProjectileSpeed        = 14.0
	ProjectileRadius       = 6.0
	// HitTolerance 命中判定在目标半径之外额外放宽的距离
	HitTolerance           = 10.0
	// OffscreenMargin 弹丸越过场地边缘多远后回收
	OffscreenMargin        = 50.0
	// ShotCooldownMs 最小射击间隔（真实时间，慢动作期间不拉长）
	ShotCooldownMs         = 150.0
	// ShotOriginOffset 发射点距控制栏顶部的距离
	ShotOriginOffset       = 20.0
	// InitialProjectileSlots 弹丸池预分配槽位
	InitialProjectileSlots = 16
)

// 瞄准辅助
const (
	AimAssistConeDegrees = 15.0
	AimAssistStrength    = 0.3
)

// 粒子
const (
	ParticleCapacity = 600
	ParticleMinLife  = 0.01
	ParticleMinSize  = 0.5
	ParticleFriction = 0.92
	ParticleGravity  = 0.3
	TrailShrink      = 0.75
	RingGrowth       = 3.0
	BurstShrink      = 0.97
	TrailDecay       = 0.08
	DebrisDecay      = 0.025
	RingDecay        = 0.05
	SparkDecay       = 0.04
	BurstDecay       = 0.03
	DebrisSpin       = 0.2
)

// 生成
const (
	BaseSpawnIntervalMs     = 1500.0
	MinSpawnIntervalMs      = 450.0
	SpawnIntervalShrink     = 0.9
	SpawnJitterMin          = 0.75
	SpawnJitterMax          = 1.25
	AbsoluteMaxTargets      = 16
	DensityPerSpeed         = 10.0
	BossSpawnIntervalFactor = 2.5
	BossOrdinaryCap         = 2
	SpawnAttempts           = 12
	SpawnClearance          = 20.0
	SpawnTopMargin          = 20.0
	SpawnBandFraction       = 0.45
	TargetMinRadius         = 25.0
	TargetMaxRadius         = 35.0
	TargetMinSpeed          = 1.2
	TargetMaxSpeed          = 2.4
	ToughHealth             = 3
	ToughSpeedFactor        = 0.6
	SpecialScoreGate        = 50.0
	SineAmplitude           = 40.0
	SineFrequency           = 2.5
	SineBandTop             = 0.15
	SineBandBottom          = 0.6
	ColorShiftIntervalMs    = 2000.0
	MaxRotationSpeed        = 0.05
)

// 首领
const (
	BossRadius            = 60.0
	BossBaseThreshold     = 300.0
	BossThresholdPerLevel = 200.0
	BossBaseHealth        = 12
	BossHealthPerLevel    = 4
	BossBandFraction      = 0.35
	BossColorShiftMs      = 2500.0
	BossSummonMs          = 5000.0
	BossMinionRadius      = 22.0
	BossMinionGap         = 30.0
	BossEnrageFraction    = 0.4
	BossEnrageSpin        = 3.0
	BossEnrageSpeedup     = 1.25
	BossEntrySpeed        = 1.0
	BossThinChance        = 0.5
)

// 物理
const (
	PhysicsPasses      = 2
	CorrectionFraction = 0.8
	Restitution        = 0.9
	WallRestitution    = 0.9
	BossMass           = 100.0
	ToughMass          = 3.0
)

// 计分
const (
	DamageScore        = 5.0
	BossDamageProgress = 5.0
	BossKillProgress   = 1.0
	StreakSoundEvery   = 5
	SpeedupPerBoss     = 0.15
	SplitAngleDegrees  = 60.0
	SplitSpeedFactor   = 1.5
	SplitMinSpeed      = 2.0
	SplitRadiusFactor  = 0.65
	SplitMinRadius     = 14.0
	HandoffDelayMs     = 1000.0
	MismatchShakeMs    = 500.0
	BossDefeatShakeMs  = 600.0
	HeavyHitShakeMs    = 120.0
	BossSlowMoScale    = 0.35
	BossSlowMoMs       = 700.0
)

// 教学
const (
	TutorialHits      = 3
	TutorialTimeScale = 0.6
)
