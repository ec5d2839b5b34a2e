// Package app 提供游戏应用的核心逻辑
// 此包可被桌面端 (main.go) 和移动端 (mobile/) 共同使用
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	sfx "github.com/decker502/chromashot/pkg/audio"
	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
	"github.com/decker502/chromashot/pkg/scenes"
)

// Config 应用配置
type Config struct {
	Verbose    bool                    // 是否启用详细日志
	Difficulty string                  // 指定难度（空字符串使用上次保存的难度）
	Seed       int64                   // 随机种子，0 表示每局使用新的种子
	Table      *config.DifficultyTable // 难度表，为 nil 时使用内置默认值
}

// colorKeys 数字键与调色板颜色的对应关系
var colorKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// App 游戏应用
// 实现 ebiten.Game 接口，把宿主输入与帧时钟转交给 SessionController
type App struct {
	verbose bool
	cfg     Config

	audioContext    *audio.Context
	settingsManager *game.SettingsManager
	progression     *game.ProgressionManager
	audioManager    *sfx.AudioManager
	sound           game.SoundSink // 会话与界面音效的输出端

	session   *scenes.SessionController
	scheduler *scenes.TickScheduler
	snapshot  game.Snapshot
	arena     config.Arena
	sessions  int64

	renderer *renderer
	notice   string // 底部状态提示（复制报告等）

	// 窗口大小重置标志（退出全屏后需要延迟设置）
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建新的游戏应用实例
//
// 参数：
//   - cfg: 应用配置
//
// 返回：
//   - *App: 应用实例
//   - error: 如果初始化失败返回错误
func NewApp(cfg Config) (*App, error) {
	// 如果不是 verbose 模式，禁用日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	// 创建音频上下文（全局只能创建一次）
	audioContext := audio.NewContext(sfx.SampleRate)

	storage := game.OpenStorage(game.AppName)
	settingsManager, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}

	if cfg.Difficulty != "" {
		d, err := config.ParseDifficulty(cfg.Difficulty)
		if err != nil {
			return nil, err
		}
		settingsManager.SetDifficulty(d)
	}
	if cfg.Table == nil {
		cfg.Table = config.DefaultDifficultyTable()
	}

	audioManager := sfx.NewAudioManager(audioContext, settingsManager)
	audioManager.PreloadSounds()

	a := &App{
		verbose:         cfg.Verbose,
		cfg:             cfg,
		audioContext:    audioContext,
		settingsManager: settingsManager,
		progression:     game.NewProgressionManager(storage, audioManager),
		audioManager:    audioManager,
		sound:           audioManager,
		arena:           config.DefaultArena(),
		renderer:        newRenderer(),
	}
	a.startSession()

	log.Printf("[App] Application initialized (difficulty=%s)", settingsManager.GetSettings().Difficulty)
	return a, nil
}

// startSession 用当前设置开始一局新的会话
func (a *App) startSession() {
	settings := a.settingsManager.GetSettings()

	seed := a.cfg.Seed
	if seed != 0 {
		seed += a.sessions
	} else {
		seed = int64(ebiten.Tick()) + a.sessions*7919 + 1
	}
	a.sessions++

	a.scheduler = scenes.NewTickScheduler()
	a.session = scenes.NewSessionController(scenes.SessionOptions{
		Arena:       a.arena,
		Difficulty:  settings.Difficulty,
		Table:       a.cfg.Table,
		Seed:        seed,
		AimAssist:   settings.AimAssist,
		Tutorial:    !settings.TutorialCompleted,
		HighQuality: settings.TrailsEnabled(),
		Sound:       a.sound,
		Progression: game.ProgressionFunc(a.onSessionEnd),
		Scheduler:   a.scheduler,
	})
	a.notice = ""
}

// onSessionEnd 交接回调：记录教学完成并转交给进度管理器
func (a *App) onSessionEnd(result game.SessionResult) {
	if result.TutorialCompleted {
		if err := a.settingsManager.MarkTutorialCompleted(); err != nil {
			log.Printf("[App] Warning: failed to save tutorial flag: %v", err)
		}
	}
	a.progression.OnSessionEnd(result)
}

// Update 更新游戏逻辑
// 每帧调用一次（默认 60 TPS）
func (a *App) Update() error {
	// 处理延迟的窗口大小重置（退出全屏后）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(int(a.arena.Width), int(a.arena.Height))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleInput()

	deltaMs := 1000.0 / float64(ebiten.TPS())
	a.scheduler.Advance(deltaMs)
	a.session.Tick(deltaMs)

	a.session.FillSnapshot(&a.snapshot)
	return nil
}

// handleInput 处理键盘、鼠标与触摸输入
func (a *App) handleInput() {
	if a.session.HandedOff() {
		a.handleGameOverInput()
		return
	}

	for i, key := range colorKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.session.SelectColor(components.Color(i))
		}
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		a.session.CycleColor(-1)
	} else if dy < 0 {
		a.session.CycleColor(1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		enabled := !a.settingsManager.GetSettings().AimAssist
		a.settingsManager.SetAimAssist(enabled)
		a.session.SetAimAssist(enabled)
		a.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.settingsManager.SetSoundEnabled(!a.settingsManager.GetSettings().SoundEnabled)
		a.save()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.press(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.press(float64(x), float64(y))
	}
}

// press 处理一次点击：控制栏内选色，其余位置射击
// 点击已选中的颜色只播放按键音
func (a *App) press(x, y float64) {
	if !a.arena.InControlBar(y) {
		a.session.Shoot(x, y)
		return
	}
	slot := int(x / (a.arena.Width / components.ColorCount))
	if slot < 0 || slot >= components.ColorCount || a.session.Phase() != game.PhasePlaying {
		return
	}
	color := components.Color(slot)
	if color == a.session.World().State.SelectedColor {
		game.PlaySound(a.sound, game.SoundUITap)
		return
	}
	a.session.SelectColor(color)
}

// handleGameOverInput 结算界面：R 或点击重新开始，C 复制报告
func (a *App) handleGameOverInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if result := a.session.Result(); result != nil {
			if err := clipboard.WriteAll(game.FormatReport(*result)); err != nil {
				log.Printf("[App] Warning: clipboard unavailable: %v", err)
				a.notice = "clipboard unavailable"
			} else {
				a.notice = "report copied"
			}
		}
	}

	restart := inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	if restart {
		a.restart()
	}
}

// restart 结算界面重新开始
func (a *App) restart() {
	game.PlaySound(a.sound, game.SoundUITap)
	a.startSession()
}

// save 保存设置，失败只记录日志
func (a *App) save() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.draw(screen, &a.snapshot, a.arena)
	a.renderer.drawHUD(screen, &a.snapshot, a.arena, a.hudLines())
}

// hudLines 结算界面显示的文本
func (a *App) hudLines() []string {
	result := a.session.Result()
	if result == nil {
		return nil
	}
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("score %d  level %d", result.Score, result.Stats.HighestLevel),
		fmt.Sprintf("best %d", a.progression.Stats().BestScores[string(result.Difficulty)]),
	}
	for _, ach := range a.progression.LastUnlocked() {
		lines = append(lines, "unlocked: "+ach.Name)
	}
	lines = append(lines, "R restart  C copy report")
	if a.notice != "" {
		lines = append(lines, a.notice)
	}
	return lines
}

// Layout 返回游戏的逻辑屏幕尺寸
// 窗口尺寸变化时同步调整场地，控制栏高度保持不变
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w > 0 && h > 0 && (w != a.arena.Width || h != a.arena.Height) {
		arena := config.Arena{Width: w, Height: h, ControlBarHeight: a.arena.ControlBarHeight}
		if err := a.session.Resize(arena); err != nil {
			log.Printf("[App] Warning: %v", err)
			return int(a.arena.Width), int(a.arena.Height)
		}
		a.arena = arena
	}
	return int(a.arena.Width), int(a.arena.Height)
}

// Arena 返回当前场地尺寸
func (a *App) Arena() config.Arena {
	return a.arena
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
