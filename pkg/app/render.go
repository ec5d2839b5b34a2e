package app

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 20, B: 32, A: 255}
	controlBarColor = color.RGBA{R: 30, G: 34, B: 52, A: 255}
	progressColor   = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	textColor       = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 170}
)

// paletteColors 调色板颜色对应的绘制颜色
var paletteColors = map[components.Color]color.RGBA{
	components.ColorRed:    {R: 235, G: 70, B: 80, A: 255},
	components.ColorBlue:   {R: 70, G: 140, B: 240, A: 255},
	components.ColorGreen:  {R: 80, G: 200, B: 110, A: 255},
	components.ColorYellow: {R: 245, G: 210, B: 70, A: 255},
}

// rgba 返回调色板颜色，alpha 取值 0-1
func rgba(c components.Color, alpha float64) color.RGBA {
	base, ok := paletteColors[c]
	if !ok {
		base = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(base.R) * a),
		G: uint8(float64(base.G) * a),
		B: uint8(float64(base.B) * a),
		A: uint8(255 * a),
	}
}

// renderer 把快照绘制为矢量图形
type renderer struct {
	face *text.GoXFace

	whiteSubImage *ebiten.Image
	vs            []ebiten.Vertex
	is            []uint16
}

func newRenderer() *renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &renderer{
		face:          text.NewGoXFace(basicfont.Face7x13),
		whiteSubImage: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// shakeOffset 震动期间的画面偏移（按剩余时长衰减）
func shakeOffset(s *game.Snapshot) (float32, float32) {
	if !s.ShakeActive {
		return 0, 0
	}
	mag := math.Min(s.ShakeMs/60, 8)
	return float32(math.Sin(s.ShakeMs*0.9) * mag), float32(math.Cos(s.ShakeMs*1.3) * mag)
}

// draw 绘制场地、目标、弹丸、粒子与控制栏
func (r *renderer) draw(screen *ebiten.Image, s *game.Snapshot, arena config.Arena) {
	screen.Fill(backgroundColor)
	ox, oy := shakeOffset(s)

	for i := range s.Particles {
		r.drawParticle(screen, &s.Particles[i], ox, oy)
	}
	for i := range s.Targets {
		r.drawTarget(screen, &s.Targets[i], ox, oy)
	}
	for _, p := range s.Projectiles {
		vector.FillCircle(screen, float32(p.X)+ox, float32(p.Y)+oy, float32(p.Radius), rgba(p.Color, 1), true)
	}

	r.drawControlBar(screen, s, arena)
}

func (r *renderer) drawParticle(screen *ebiten.Image, p *components.ParticleComponent, ox, oy float32) {
	x, y := float32(p.X)+ox, float32(p.Y)+oy
	clr := rgba(p.Color, p.Life)
	switch p.Kind {
	case components.ParticleRing:
		vector.StrokeCircle(screen, x, y, float32(p.Size), 2, clr, true)
	case components.ParticleDebris:
		half := float32(p.Size) / 2
		vector.FillRect(screen, x-half, y-half, half*2, half*2, clr, false)
	case components.ParticleSpark:
		vector.StrokeLine(screen, x, y, x-float32(p.VX)*2, y-float32(p.VY)*2, float32(p.Size)/2, clr, true)
	default:
		vector.FillCircle(screen, x, y, float32(p.Size)/2, clr, true)
	}
}

func (r *renderer) drawTarget(screen *ebiten.Image, t *components.TargetComponent, ox, oy float32) {
	x, y := t.X+float64(ox), t.Y+float64(oy)
	clr := rgba(t.Color, 1)

	switch t.Shape {
	case components.ShapeCircle:
		vector.FillCircle(screen, float32(x), float32(y), float32(t.Radius), clr, true)
	case components.ShapeSquare:
		r.fillPolygon(screen, x, y, t.Radius, 4, t.Rotation+math.Pi/4, 1, clr)
	case components.ShapeTriangle:
		r.fillPolygon(screen, x, y, t.Radius, 3, t.Rotation-math.Pi/2, 1, clr)
	case components.ShapeHexagon:
		r.fillPolygon(screen, x, y, t.Radius, 6, t.Rotation, 1, clr)
	case components.ShapeDiamond:
		r.fillPolygon(screen, x, y, t.Radius, 4, t.Rotation, 1, clr)
	case components.ShapeStar:
		r.fillPolygon(screen, x, y, t.Radius, 10, t.Rotation-math.Pi/2, 0.5, clr)
	}

	if t.MaxHealth > 1 {
		w := float32(t.Radius * 1.6)
		frac := float32(t.Health) / float32(t.MaxHealth)
		bx, by := float32(x)-w/2, float32(y-t.Radius-10)
		vector.FillRect(screen, bx, by, w, 4, overlayColor, false)
		vector.FillRect(screen, bx, by, w*frac, 4, textColor, false)
	}
}

// fillPolygon 绘制正多边形；inner < 1 时奇数顶点向内收缩（星形）
func (r *renderer) fillPolygon(screen *ebiten.Image, cx, cy, radius float64, n int, rotation, inner float64, clr color.RGBA) {
	var path vector.Path
	for i := 0; i < n; i++ {
		rad := radius
		if i%2 == 1 {
			rad *= inner
		}
		angle := rotation + 2*math.Pi*float64(i)/float64(n)
		px := float32(cx + rad*math.Cos(angle))
		py := float32(cy + rad*math.Sin(angle))
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()

	r.vs, r.is = path.AppendVerticesAndIndicesForFilling(r.vs[:0], r.is[:0])
	for i := range r.vs {
		r.vs[i].SrcX = 1
		r.vs[i].SrcY = 1
		r.vs[i].ColorR = float32(clr.R) / 255
		r.vs[i].ColorG = float32(clr.G) / 255
		r.vs[i].ColorB = float32(clr.B) / 255
		r.vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(r.vs, r.is, r.whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// drawControlBar 底部控制栏：每种颜色一个按钮，当前颜色高亮
func (r *renderer) drawControlBar(screen *ebiten.Image, s *game.Snapshot, arena config.Arena) {
	top := float32(arena.PlayHeight())
	width := float32(arena.Width)
	height := float32(arena.ControlBarHeight)
	vector.FillRect(screen, 0, top, width, height, controlBarColor, false)

	slot := width / components.ColorCount
	radius := float32(math.Min(float64(slot), float64(height))) * 0.3
	for _, c := range components.Palette() {
		cx := slot*float32(c) + slot/2
		cy := top + height/2
		vector.FillCircle(screen, cx, cy, radius, rgba(c, 1), true)
		if c == s.SelectedColor {
			vector.StrokeCircle(screen, cx, cy, radius+5, 3, textColor, true)
		}
	}

	ox, oy := arena.ShotOrigin()
	vector.FillCircle(screen, float32(ox), float32(oy), 8, rgba(s.SelectedColor, 1), true)
}

// drawHUD 分数、等级进度与提示文本；overlay 非空时绘制结算面板
func (r *renderer) drawHUD(screen *ebiten.Image, s *game.Snapshot, arena config.Arena, overlay []string) {
	r.drawText(screen, fmt.Sprintf("score %d  x%d", s.Score, s.Streak), 10, 8)
	r.drawText(screen, fmt.Sprintf("level %d", s.Level), arena.Width-70, 8)

	barW := float32(arena.Width - 20)
	vector.FillRect(screen, 10, 28, barW, 4, controlBarColor, false)
	fill := progressColor
	if s.BossActive {
		fill = paletteColors[components.ColorRed]
	}
	vector.FillRect(screen, 10, 28, barW*float32(s.LevelProgress), 4, fill, false)

	if s.TutorialHint != "" {
		r.drawText(screen, s.TutorialHint, 10, arena.PlayHeight()-60)
	}

	if len(overlay) == 0 {
		return
	}
	vector.FillRect(screen, 0, 0, float32(arena.Width), float32(arena.Height), overlayColor, false)
	y := arena.Height/2 - float64(len(overlay))*10
	for _, line := range overlay {
		r.drawText(screen, line, 20, y)
		y += 20
	}
}

func (r *renderer) drawText(screen *ebiten.Image, str string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, str, r.face, op)
}
