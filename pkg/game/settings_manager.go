package game

import (
	"fmt"
	"log"

	"github.com/decker502/chromashot/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ParticleQuality 粒子质量
type ParticleQuality string

const (
	// ParticleQualityHigh 完整粒子效果（含弹丸拖尾）
	ParticleQualityHigh ParticleQuality = "high"
	// ParticleQualityLow 减半爆散粒子并关闭拖尾
	ParticleQualityLow ParticleQuality = "low"
)

// GameSettings 全局游戏设置
type GameSettings struct {
	// 音频设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 玩法设置
	Difficulty        config.Difficulty `yaml:"difficulty"`        // 上次选择的难度
	AimAssist         bool              `yaml:"aimAssist"`         // 瞄准辅助开关
	TutorialCompleted bool              `yaml:"tutorialCompleted"` // 是否已完成教学

	// 显示设置
	ParticleQuality ParticleQuality `yaml:"particleQuality"` // 粒子质量
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:       0.8,
		SoundEnabled:      true,
		Difficulty:        config.DifficultyMedium,
		AimAssist:         true,
		TutorialCompleted: false,
		ParticleQuality:   ParticleQualityHigh,
	}
}

// TrailsEnabled 是否绘制弹丸拖尾
func (s *GameSettings) TrailsEnabled() bool {
	return s.ParticleQuality != ParticleQualityLow
}

// SettingsManager 设置管理器
// 负责游戏设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方检查，加载失败不会导致创建失败
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上反序列化，旧存档缺失的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if _, err := config.ParseDifficulty(string(loaded.Difficulty)); err != nil {
		loaded.Difficulty = config.DifficultyMedium
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetDifficulty 设置难度
func (sm *SettingsManager) SetDifficulty(d config.Difficulty) {
	sm.settings.Difficulty = d
}

// SetAimAssist 设置瞄准辅助开关
func (sm *SettingsManager) SetAimAssist(enabled bool) {
	sm.settings.AimAssist = enabled
}

// SetParticleQuality 设置粒子质量
func (sm *SettingsManager) SetParticleQuality(q ParticleQuality) {
	sm.settings.ParticleQuality = q
}

// MarkTutorialCompleted 标记教学完成并立即保存
func (sm *SettingsManager) MarkTutorialCompleted() error {
	if sm.settings.TutorialCompleted {
		return nil
	}
	sm.settings.TutorialCompleted = true
	return sm.Save()
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
