package components

import "math/rand"

// Color 调色板颜色标识
// 弹丸与目标都携带颜色，命中判定只比较颜色标识
type Color int

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
)

// ColorCount 调色板颜色数量
const ColorCount = 4

// Palette 返回全部颜色（按标识顺序）
func Palette() []Color {
	return []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}
}

// Valid 检查颜色标识是否在调色板范围内
func (c Color) Valid() bool {
	return c >= 0 && c < ColorCount
}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// RandomColor 从调色板中均匀随机选择一个颜色
func RandomColor(rng *rand.Rand) Color {
	return Color(rng.Intn(ColorCount))
}

// RandomOtherColor 从除 exclude 之外的颜色中均匀随机选择一个
//
// 参数：
//   - rng: 随机数源
//   - exclude: 需要排除的当前颜色
//
// 返回：
//   - Color: 与 exclude 不同的颜色
func RandomOtherColor(rng *rand.Rand, exclude Color) Color {
	c := Color(rng.Intn(ColorCount - 1))
	if c >= exclude {
		c++
	}
	return c
}
