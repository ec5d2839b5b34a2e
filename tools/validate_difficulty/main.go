// validate_difficulty 检查难度配置文件
//
// 用法：
//
//	go run ./tools/validate_difficulty [data/difficulty.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/chromashot/pkg/config"
)

func main() {
	path := "data/difficulty.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	fmt.Printf("Validating %s...\n", path)
	table, err := config.LoadDifficultyTable(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	for _, d := range config.Difficulties {
		cfg := table.Get(d)
		fmt.Printf("  %-6s speed=%.2f spawn=%.2f maxTargets=%d score=%.2f bossHealth=%.2f special=%.2f\n",
			d, cfg.SpeedMultiplier, cfg.SpawnIntervalMultiplier, cfg.MaxTargets,
			cfg.ScoreMultiplier, cfg.BossHealthMultiplier, cfg.SpecialChance)
	}
	fmt.Println("✅ OK")
}
