package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/chromashot/pkg/app"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/embedded"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "启用详细日志")
	difficultyFlag = flag.String("difficulty", "", "难度: easy / medium / hard（默认使用上次保存的难度）")
	seedFlag       = flag.Int64("seed", 0, "随机种子（0 表示随机）")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	table, err := embedded.LoadDifficultyTable()
	if err != nil {
		log.Printf("Warning: %v (using built-in difficulty table)", err)
		table = config.DefaultDifficultyTable()
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Difficulty: *difficultyFlag,
		Seed:       *seedFlag,
		Table:      table,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	arena := gameApp.Arena()
	ebiten.SetWindowSize(int(arena.Width), int(arena.Height))
	ebiten.SetWindowTitle("ChromaShot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
