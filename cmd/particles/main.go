// Particle effect viewer.
//
// Click anywhere to emit the selected effect at the cursor.
//
//	1-7    select effect (burst, debris, trail, ring, sparks, explosion, pop)
//	C      cycle color
//	Q      toggle high/low quality
//	Space  toggle auto-play (emits every 30 frames at a random position)
//	X      clear all particles
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/systems"
)

const (
	screenWidth  = 480
	screenHeight = 640
)

var (
	capacityFlag = flag.Int("capacity", config.ParticleCapacity, "Particle ring capacity")
	autoPlayFlag = flag.Bool("auto-play", false, "Emit the current effect automatically")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// effect is one emitter preset shown by the viewer.
type effect struct {
	name string
	emit func(ps *systems.ParticleSystem, x, y float64, c components.Color)
}

var effects = []effect{
	{"burst", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Burst(x, y, c, 14) }},
	{"debris", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Debris(x, y, c, 6) }},
	{"trail", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Trail(x, y, c, 8) }},
	{"ring", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Ring(x, y, c, 30) }},
	{"sparks", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Sparks(x, y, c, 8) }},
	{"explosion", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Explosion(x, y, c, 30) }},
	{"pop", func(ps *systems.ParticleSystem, x, y float64, c components.Color) { ps.Pop(x, y, c, 30) }},
}

var swatches = map[components.Color]color.RGBA{
	components.ColorRed:    {R: 235, G: 70, B: 80, A: 255},
	components.ColorBlue:   {R: 70, G: 140, B: 240, A: 255},
	components.ColorGreen:  {R: 80, G: 200, B: 110, A: 255},
	components.ColorYellow: {R: 245, G: 210, B: 70, A: 255},
}

// ParticleViewerGame drives a bare ParticleSystem without a session.
type ParticleViewerGame struct {
	particles *systems.ParticleSystem
	rng       *rand.Rand

	current  int
	color    components.Color
	high     bool
	autoPlay bool
	frame    int
	peak     int
}

// NewParticleViewerGame creates the viewer with an empty particle ring.
func NewParticleViewerGame(capacity int, autoPlay bool) *ParticleViewerGame {
	rng := rand.New(rand.NewSource(1))
	return &ParticleViewerGame{
		particles: systems.NewParticleSystem(capacity, rng),
		rng:       rng,
		high:      true,
		autoPlay:  autoPlay,
	}
}

// Update handles input and advances particles by one reference frame.
func (g *ParticleViewerGame) Update() error {
	for i := range effects {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			g.current = i
			log.Printf("Current effect: %s", effects[i].name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.color = components.Color((int(g.color) + 1) % components.ColorCount)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.high = !g.high
		g.particles.SetQuality(g.high)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.autoPlay = !g.autoPlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.particles.Clear()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		effects[g.current].emit(g.particles, float64(x), float64(y), g.color)
	}

	g.frame++
	if g.autoPlay && g.frame%30 == 0 {
		x := 60 + g.rng.Float64()*(screenWidth-120)
		y := 60 + g.rng.Float64()*(screenHeight-120)
		effects[g.current].emit(g.particles, x, y, components.RandomColor(g.rng))
	}

	g.particles.Update(1)
	if n := g.particles.ActiveCount(); n > g.peak {
		g.peak = n
	}
	return nil
}

// Draw renders every active particle and the status line.
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 20, B: 32, A: 255})

	g.particles.Each(func(p *components.ParticleComponent) {
		base := swatches[p.Color]
		a := p.Life
		clr := color.RGBA{R: uint8(float64(base.R) * a), G: uint8(float64(base.G) * a), B: uint8(float64(base.B) * a), A: uint8(255 * a)}
		x, y := float32(p.X), float32(p.Y)
		switch p.Kind {
		case components.ParticleRing:
			vector.StrokeCircle(screen, x, y, float32(p.Size), 2, clr, true)
		case components.ParticleSpark:
			vector.StrokeLine(screen, x, y, x-float32(p.VX)*2, y-float32(p.VY)*2, float32(p.Size)/2, clr, true)
		default:
			vector.FillCircle(screen, x, y, float32(p.Size)/2, clr, true)
		}
	})

	status := fmt.Sprintf("effect: %s  color: %s  quality high: %v  auto: %v\nactive: %d / %d  peak: %d",
		effects[g.current].name, g.color, g.high, g.autoPlay,
		g.particles.ActiveCount(), g.particles.Cap(), g.peak)
	ebitenutil.DebugPrintAt(screen, status, 10, 10)
}

// Layout returns the fixed logical screen size.
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	game := NewParticleViewerGame(*capacityFlag, *autoPlayFlag)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ChromaShot Particle Viewer")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
