package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty 难度档位
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties 全部难度档位（从易到难）
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty 解析难度名称（大小写不敏感）
func ParseDifficulty(name string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", name)
}

// DifficultyConfig 单个难度档位的参数
//
// 配置文件位置: data/difficulty.yaml
type DifficultyConfig struct {
	// SpeedMultiplier 目标移动速度倍率
	SpeedMultiplier float64 `yaml:"speedMultiplier"`

	// SpawnIntervalMultiplier 生成间隔倍率（越小生成越快）
	SpawnIntervalMultiplier float64 `yaml:"spawnIntervalMultiplier"`

	// MaxTargets 普通状态下同屏目标数量基础上限
	MaxTargets int `yaml:"maxTargets"`

	// ScoreMultiplier 得分倍率
	ScoreMultiplier float64 `yaml:"scoreMultiplier"`

	// BossHealthMultiplier 首领生命值倍率
	BossHealthMultiplier float64 `yaml:"bossHealthMultiplier"`

	// SpecialChance 特殊目标出现概率（0-1）
	SpecialChance float64 `yaml:"specialChance"`
}

// DifficultyTable 三档难度配置
type DifficultyTable struct {
	Easy   DifficultyConfig `yaml:"easy"`
	Medium DifficultyConfig `yaml:"medium"`
	Hard   DifficultyConfig `yaml:"hard"`
}

// DefaultDifficultyTable 返回内置默认难度表
// 与 data/difficulty.yaml 保持一致，配置文件缺失时使用
func DefaultDifficultyTable() *DifficultyTable {
	return &DifficultyTable{
		Easy: DifficultyConfig{
			SpeedMultiplier:         0.8,
			SpawnIntervalMultiplier: 1.3,
			MaxTargets:              6,
			ScoreMultiplier:         1.0,
			BossHealthMultiplier:    0.8,
			SpecialChance:           0.15,
		},
		Medium: DifficultyConfig{
			SpeedMultiplier:         1.0,
			SpawnIntervalMultiplier: 1.0,
			MaxTargets:              8,
			ScoreMultiplier:         1.5,
			BossHealthMultiplier:    1.0,
			SpecialChance:           0.25,
		},
		Hard: DifficultyConfig{
			SpeedMultiplier:         1.3,
			SpawnIntervalMultiplier: 0.75,
			MaxTargets:              10,
			ScoreMultiplier:         2.0,
			BossHealthMultiplier:    1.3,
			SpecialChance:           0.35,
		},
	}
}

// Get 返回指定档位的配置，未知档位回退到中等难度
func (t *DifficultyTable) Get(d Difficulty) DifficultyConfig {
	switch d {
	case DifficultyEasy:
		return t.Easy
	case DifficultyHard:
		return t.Hard
	default:
		return t.Medium
	}
}

// LoadDifficultyTable 从 YAML 文件加载难度表
//
// 参数:
//   - path: 配置文件路径（如 "data/difficulty.yaml"）
//
// 返回:
//   - *DifficultyTable: 加载并验证后的难度表
//   - error: 读取、解析或验证失败时返回错误
func LoadDifficultyTable(path string) (*DifficultyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty config: %w", err)
	}
	return ParseDifficultyTable(data)
}

// ParseDifficultyTable 解析 YAML 格式的难度表
func ParseDifficultyTable(data []byte) (*DifficultyTable, error) {
	var table DifficultyTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty config: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid difficulty config: %w", err)
	}

	return &table, nil
}

// Validate 验证三个档位的参数
func (t *DifficultyTable) Validate() error {
	tiers := []struct {
		name string
		cfg  DifficultyConfig
	}{
		{"easy", t.Easy},
		{"medium", t.Medium},
		{"hard", t.Hard},
	}

	for _, tier := range tiers {
		if err := tier.cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", tier.name, err)
		}
	}
	return nil
}

// Validate 检查单个档位的参数范围
//
// 规则：
//   - 所有倍率必须为正数
//   - MaxTargets 必须 >= 1
//   - SpecialChance 必须在 [0, 1] 之间
func (c DifficultyConfig) Validate() error {
	if c.SpeedMultiplier <= 0 {
		return fmt.Errorf("speedMultiplier must be > 0, got %.2f", c.SpeedMultiplier)
	}
	if c.SpawnIntervalMultiplier <= 0 {
		return fmt.Errorf("spawnIntervalMultiplier must be > 0, got %.2f", c.SpawnIntervalMultiplier)
	}
	if c.MaxTargets < 1 {
		return fmt.Errorf("maxTargets must be >= 1, got %d", c.MaxTargets)
	}
	if c.ScoreMultiplier <= 0 {
		return fmt.Errorf("scoreMultiplier must be > 0, got %.2f", c.ScoreMultiplier)
	}
	if c.BossHealthMultiplier <= 0 {
		return fmt.Errorf("bossHealthMultiplier must be > 0, got %.2f", c.BossHealthMultiplier)
	}
	if c.SpecialChance < 0 || c.SpecialChance > 1 {
		return fmt.Errorf("specialChance must be within [0, 1], got %.2f", c.SpecialChance)
	}
	return nil
}
