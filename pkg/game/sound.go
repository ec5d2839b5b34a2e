package game

import "log"

// SoundEvent 音效事件类型
type SoundEvent int

const (
	SoundUITap SoundEvent = iota
	SoundRotate
	SoundShoot
	SoundScore
	SoundHeavyHit
	SoundPop
	SoundStreak
	SoundWhir
	SoundGameOver
	SoundLevelUp
	SoundAchievement
)

// SoundEvents 全部音效事件
var SoundEvents = []SoundEvent{
	SoundUITap, SoundRotate, SoundShoot, SoundScore, SoundHeavyHit, SoundPop,
	SoundStreak, SoundWhir, SoundGameOver, SoundLevelUp, SoundAchievement,
}

func (e SoundEvent) String() string {
	switch e {
	case SoundUITap:
		return "ui-tap"
	case SoundRotate:
		return "rotate"
	case SoundShoot:
		return "shoot"
	case SoundScore:
		return "score"
	case SoundHeavyHit:
		return "heavy-hit"
	case SoundPop:
		return "pop"
	case SoundStreak:
		return "streak"
	case SoundWhir:
		return "whir"
	case SoundGameOver:
		return "gameover"
	case SoundLevelUp:
		return "levelUp"
	case SoundAchievement:
		return "achievement"
	default:
		return "unknown"
	}
}

// SoundSink 音效输出端（发出即忘）
type SoundSink interface {
	Notify(event SoundEvent)
}

// NopSound 丢弃所有音效
type NopSound struct{}

// Notify 实现 SoundSink
func (NopSound) Notify(SoundEvent) {}

// PlaySound 安全地通知音效输出端
// 输出端的任何 panic 都在这里被吞掉，不会中断当前帧
func PlaySound(sink SoundSink, event SoundEvent) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Sound] Warning: sink failed on %s: %v", event, r)
		}
	}()
	sink.Notify(event)
}
