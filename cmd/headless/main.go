// headless 在没有窗口的情况下跑完整局会话
//
// 内置一个脚本机器人：每次射击前选中第一个目标的颜色并瞄准它，
// 按 -miss 概率故意选错颜色。会话结束（或 tick 数耗尽）后打印结果报告
// 以及对象池的槽位数量，用于长时间运行时检查内存是否有界。
//
// 用法：
//
//	go run ./cmd/headless -seed 42 -difficulty hard -ticks 20000
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/chromashot/pkg/components"
	"github.com/decker502/chromashot/pkg/config"
	"github.com/decker502/chromashot/pkg/game"
	"github.com/decker502/chromashot/pkg/scenes"
)

var (
	seedFlag       = flag.Int64("seed", 1, "随机种子")
	difficultyFlag = flag.String("difficulty", "medium", "难度: easy / medium / hard")
	ticksFlag      = flag.Int("ticks", 36000, "最多运行的帧数（60 帧 = 1 秒）")
	missFlag       = flag.Float64("miss", 0.002, "每次射击故意选错颜色的概率")
	configFlag     = flag.String("config", "", "难度配置文件路径（默认使用内置配置）")
	verboseFlag    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	difficulty, err := config.ParseDifficulty(*difficultyFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	table := config.DefaultDifficultyTable()
	if *configFlag != "" {
		table, err = config.LoadDifficultyTable(*configFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	var result *game.SessionResult
	opts := scenes.DefaultSessionOptions()
	opts.Difficulty = difficulty
	opts.Table = table
	opts.Seed = *seedFlag
	opts.Progression = game.ProgressionFunc(func(r game.SessionResult) { result = &r })

	session := scenes.NewSessionController(opts)
	bot := rand.New(rand.NewSource(*seedFlag ^ 0x5eed))

	ticks := 0
	peakParticles := 0
	for ; ticks < *ticksFlag && !session.HandedOff(); ticks++ {
		if session.Phase() == game.PhasePlaying {
			act(session, bot, *missFlag)
		}
		session.Tick(config.ExpectedFrameMs)
		if n := session.Particles().ActiveCount(); n > peakParticles {
			peakParticles = n
		}
	}

	w := session.World()
	if result == nil {
		fmt.Printf("session still running after %d ticks (phase=%s)\n", ticks, session.Phase())
		snap := session.Snapshot()
		fmt.Printf("score: %d  level: %d  streak: %d\n", snap.Score, snap.Level, snap.Streak)
	} else {
		fmt.Printf("session over after %d ticks\n", ticks)
		fmt.Print(game.FormatReport(*result))
	}
	fmt.Printf("projectile slots: %d (active %d)\n", w.Projectiles.Cap(), w.Projectiles.ActiveCount())
	fmt.Printf("particle slots: %d (peak active %d)\n", session.Particles().Cap(), peakParticles)
	fmt.Printf("targets alive: %d\n", len(w.Targets))
}

// act 机器人的一帧：选色后朝第一个目标射击
func act(session *scenes.SessionController, bot *rand.Rand, miss float64) {
	w := session.World()
	if len(w.Targets) == 0 {
		return
	}

	target := w.Targets[0]
	if boss := w.Boss(); boss != nil {
		target = boss
	}

	c := target.Color
	if bot.Float64() < miss {
		c = components.RandomOtherColor(bot, c)
	}
	session.SelectColor(c)
	session.Shoot(target.X, target.Y)
}
