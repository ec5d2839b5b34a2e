package scenes

// TickScheduler 由 Tick 驱动的一次性延迟回调队列
//
// 回调只会在 Advance 内同步执行，因此与模拟处于同一 goroutine。
type TickScheduler struct {
	nowMs   float64
	pending []scheduledCall
}

type scheduledCall struct {
	dueMs float64
	fn    func()
}

// NewTickScheduler 创建空的调度器
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// After 实现 game.Scheduler
func (s *TickScheduler) After(delayMs float64, fn func()) {
	if fn == nil {
		return
	}
	if delayMs < 0 {
		delayMs = 0
	}
	s.pending = append(s.pending, scheduledCall{dueMs: s.nowMs + delayMs, fn: fn})
}

// Advance 推进时钟并按登记顺序执行所有到期回调
func (s *TickScheduler) Advance(deltaMs float64) {
	if deltaMs > 0 {
		s.nowMs += deltaMs
	}
	if len(s.pending) == 0 {
		return
	}

	var due []func()
	remaining := s.pending[:0]
	for _, call := range s.pending {
		if call.dueMs <= s.nowMs {
			due = append(due, call.fn)
		} else {
			remaining = append(remaining, call)
		}
	}
	for i := len(remaining); i < len(s.pending); i++ {
		s.pending[i] = scheduledCall{}
	}
	s.pending = remaining

	for _, fn := range due {
		fn()
	}
}

// Pending 返回尚未执行的回调数量
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}
