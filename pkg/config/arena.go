package config

import "fmt"

// Arena 场地尺寸，由宿主提供，可在运行时改变（窗口缩放）
//
// 坐标系：原点在左上角，Y 轴向下。
// 底部 ControlBarHeight 高度为控制栏，不属于可游玩区域。
type Arena struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	ControlBarHeight float64 `yaml:"controlBarHeight"`
}

// DefaultArena 默认竖屏场地
func DefaultArena() Arena {
	return Arena{Width: 400, Height: 800, ControlBarHeight: 100}
}

// PlayHeight 返回可游玩区域高度（控制栏以上）
func (a Arena) PlayHeight() float64 {
	return a.Height - a.ControlBarHeight
}

// ShotOrigin 返回弹丸发射点（底部居中，控制栏上方）
func (a Arena) ShotOrigin() (float64, float64) {
	return a.Width / 2, a.PlayHeight() - ShotOriginOffset
}

// InControlBar 判断屏幕坐标是否落在控制栏区域
func (a Arena) InControlBar(y float64) bool {
	return y >= a.PlayHeight()
}

// Validate 检查场地尺寸
func (a Arena) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %.0fx%.0f", a.Width, a.Height)
	}
	if a.ControlBarHeight < 0 || a.ControlBarHeight >= a.Height {
		return fmt.Errorf("controlBarHeight %.0f out of range for height %.0f", a.ControlBarHeight, a.Height)
	}
	return nil
}
