package game

import (
	"log"

	"github.com/decker502/chromashot/pkg/config"
)

// SessionResult 会话结束时交给进度协作者的数据
type SessionResult struct {
	Score             int               // 向下取整后的最终得分
	Difficulty        config.Difficulty // 本局难度
	Stats             SessionStats      // 本局统计（已包含 targetsMissed 与 totalScore 快照）
	DurationMs        float64           // 模拟时长
	TutorialCompleted bool              // 本局是否完成了教学
}

// ProgressionSink 进度协作者
// 负责把单局统计合并到持久化的累计数据中并重新评估解锁条件
type ProgressionSink interface {
	OnSessionEnd(result SessionResult)
}

// ProgressionFunc 允许用普通函数实现 ProgressionSink
type ProgressionFunc func(result SessionResult)

// OnSessionEnd 实现 ProgressionSink
func (f ProgressionFunc) OnSessionEnd(result SessionResult) { f(result) }

// Scheduler 一次性延迟回调
//
// 由驱动环境实现，回调必须在驱动 Tick 的同一 goroutine 上执行。
type Scheduler interface {
	After(delayMs float64, fn func())
}

// DeliverResult 把结果交给进度协作者，协作者的 panic 在边界处被吞掉
func DeliverResult(sink ProgressionSink, result SessionResult) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Session] Warning: progression sink panicked: %v", r)
		}
	}()
	sink.OnSessionEnd(result)
}
