// Package audio 把模拟核心的音效事件合成为 PCM 并通过 ebiten 播放
//
// 核心只依赖 game.SoundSink，本包由驱动层（pkg/app）装配。
package audio

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/chromashot/pkg/game"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// tone 单个音效的合成参数：从 startHz 线性滑到 endHz
type tone struct {
	startHz    float64
	endHz      float64
	durationMs float64
	gain       float64
}

// toneTable 每种事件对应的合成参数
var toneTable = map[game.SoundEvent]tone{
	game.SoundUITap:       {startHz: 880, endHz: 880, durationMs: 40, gain: 0.3},
	game.SoundRotate:      {startHz: 520, endHz: 660, durationMs: 60, gain: 0.3},
	game.SoundShoot:       {startHz: 900, endHz: 400, durationMs: 70, gain: 0.25},
	game.SoundScore:       {startHz: 660, endHz: 990, durationMs: 90, gain: 0.35},
	game.SoundHeavyHit:    {startHz: 180, endHz: 90, durationMs: 120, gain: 0.5},
	game.SoundPop:         {startHz: 300, endHz: 1200, durationMs: 80, gain: 0.35},
	game.SoundStreak:      {startHz: 990, endHz: 1480, durationMs: 160, gain: 0.4},
	game.SoundWhir:        {startHz: 120, endHz: 480, durationMs: 300, gain: 0.35},
	game.SoundGameOver:    {startHz: 440, endHz: 110, durationMs: 600, gain: 0.5},
	game.SoundLevelUp:     {startHz: 523, endHz: 1046, durationMs: 400, gain: 0.45},
	game.SoundAchievement: {startHz: 784, endHz: 1568, durationMs: 350, gain: 0.4},
}

// maxVoices 同时保留引用的播放器数量上限
const maxVoices = 16

// AudioManager 音频管理器
// 职责：
//   - 实现 SoundSink，把模拟核心的音效事件播放出来
//   - 音效由正弦扫频合成，首次播放时生成 PCM 并缓存
//   - 与设置联动：自动应用 game.SettingsManager 中的音量与开关
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager
	pcmCache        map[game.SoundEvent][]byte
	voices          []*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文（进程内只能创建一个），为 nil 时所有播放请求被忽略
//   - sm: game.SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcmCache:        make(map[game.SoundEvent][]byte),
	}
}

// Notify 实现 SoundSink
func (am *AudioManager) Notify(event game.SoundEvent) {
	am.PlaySound(event)
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(event game.SoundEvent) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	pcm := am.getPCM(event)
	if pcm == nil {
		return false
	}

	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.getSoundVolume())
	player.Play()
	am.track(player)
	return true
}

// track 保留播放器引用直到播放结束，并回收已结束的播放器
func (am *AudioManager) track(player *audio.Player) {
	alive := am.voices[:0]
	for _, v := range am.voices {
		if v.IsPlaying() {
			alive = append(alive, v)
		} else {
			_ = v.Close()
		}
	}
	am.voices = alive

	if len(am.voices) >= maxVoices {
		oldest := am.voices[0]
		oldest.Pause()
		_ = oldest.Close()
		am.voices = am.voices[1:]
	}
	am.voices = append(am.voices, player)
}

// getPCM 获取或合成音效数据
func (am *AudioManager) getPCM(event game.SoundEvent) []byte {
	if pcm, ok := am.pcmCache[event]; ok {
		return pcm
	}
	t, ok := toneTable[event]
	if !ok {
		log.Printf("[AudioManager] Warning: no tone for event %s", event)
		return nil
	}
	pcm := synthesize(t, SampleRate)
	am.pcmCache[event] = pcm
	return pcm
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// PreloadSounds 预合成全部音效
// 在会话开始前调用，避免首次播放时的卡顿
func (am *AudioManager) PreloadSounds() {
	for _, ev := range game.SoundEvents {
		am.getPCM(ev)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.pcmCache))
}

// synthesize 生成 16 位小端立体声 PCM
// 包络为 5ms 起音加线性衰减，避免爆音
func synthesize(t tone, sampleRate int) []byte {
	n := int(float64(sampleRate) * t.durationMs / 1000)
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n*4)
	attack := float64(sampleRate) * 0.005
	phase := 0.0

	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.startHz + (t.endHz-t.startHz)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		env := 1 - progress
		if float64(i) < attack {
			env *= float64(i) / attack
		}

		v := int16(math.Sin(phase) * env * t.gain * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
