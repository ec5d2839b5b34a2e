package game

import (
	"testing"

	"github.com/decker502/chromashot/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// newTestGdataManager 在临时 HOME 下创建 gdata Manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Difficulty != config.DifficultyMedium {
		t.Errorf("Difficulty: got %q, want medium", settings.Difficulty)
	}
	if !settings.AimAssist {
		t.Error("AimAssist: got false, want true")
	}
	if settings.TutorialCompleted {
		t.Error("TutorialCompleted: got true, want false")
	}
	if !settings.TrailsEnabled() {
		t.Error("TrailsEnabled: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("Degraded mode SoundVolume: got %v, want 0.8", sm.GetSettings().SoundVolume)
	}

	// 降级模式下 Save() 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdataManager(t, "chromashot_test_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSoundVolume(0.4)
	sm1.SetSoundEnabled(false)
	sm1.SetDifficulty(config.DifficultyHard)
	sm1.SetAimAssist(false)
	sm1.SetParticleQuality(ParticleQualityLow)
	if err := sm1.MarkTutorialCompleted(); err != nil {
		t.Fatalf("MarkTutorialCompleted() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()

	if settings.SoundVolume != 0.4 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.4", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if settings.Difficulty != config.DifficultyHard {
		t.Errorf("Loaded Difficulty: got %q, want hard", settings.Difficulty)
	}
	if settings.AimAssist {
		t.Error("Loaded AimAssist: got true, want false")
	}
	if settings.TrailsEnabled() {
		t.Error("Loaded ParticleQuality should disable trails")
	}
	if !settings.TutorialCompleted {
		t.Error("Loaded TutorialCompleted: got false, want true")
	}
}

// TestSettingsLoadRepairsInvalidValues 测试损坏字段回退到合法值
func TestSettingsLoadRepairsInvalidValues(t *testing.T) {
	gdataManager := newTestGdataManager(t, "chromashot_test_settings_repair")

	raw := []byte("soundVolume: 7\ndifficulty: nightmare\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()
	if settings.SoundVolume != 1.0 {
		t.Errorf("SoundVolume should clamp to 1.0, got %v", settings.SoundVolume)
	}
	if settings.Difficulty != config.DifficultyMedium {
		t.Errorf("unknown difficulty should fall back to medium, got %q", settings.Difficulty)
	}
	// 缺失字段保留默认值
	if !settings.SoundEnabled {
		t.Error("missing soundEnabled should keep default true")
	}
}

// TestSetSoundVolumeClamp 测试 SetSoundVolume 范围校验
func TestSetSoundVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},  // 正常值
		{0.0, 0.0},  // 下限
		{1.0, 1.0},  // 上限
		{-0.5, 0.0}, // 低于下限
		{1.5, 1.0},  // 高于上限
	}

	for _, tt := range tests {
		sm.SetSoundVolume(tt.input)
		if sm.GetSettings().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().SoundVolume, tt.expected)
		}
	}
}
