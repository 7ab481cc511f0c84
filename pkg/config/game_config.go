package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GameConfig 游戏调参配置
//
// 包含竞技场尺寸、循环频率、计分规则和每种实体的物理/动画参数。
// 默认值来自 Defaults()，配置文件只需覆盖需要修改的字段。
//
// 配置文件位置: data/game.yaml（也支持 .toml）
type GameConfig struct {
	Arena       ArenaConfig       `yaml:"arena" toml:"arena"`
	Loop        LoopConfig        `yaml:"loop" toml:"loop"`
	Scoring     ScoringConfig     `yaml:"scoring" toml:"scoring"`
	Player      PlayerConfig      `yaml:"player" toml:"player"`
	Spike       SpikeConfig       `yaml:"spike" toml:"spike"`
	Collision   CollisionConfig   `yaml:"collision" toml:"collision"`
	HitEffect   HitEffectConfig   `yaml:"hitEffect" toml:"hit_effect"`
	ScoreEffect ScoreEffectConfig `yaml:"scoreEffect" toml:"score_effect"`
	Explosion   ExplosionConfig   `yaml:"explosion" toml:"explosion"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
}

// ArenaConfig 竞技场尺寸（像素），整局不变
type ArenaConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// MaxTicksPerSecond 模拟频率上限
const MaxTicksPerSecond = 1000

// LoopConfig 固定步长循环配置
type LoopConfig struct {
	// TicksPerSecond 每秒模拟步数
	TicksPerSecond int `yaml:"ticksPerSecond" toml:"ticks_per_second"`

	// MaxCatchUpSteps 单帧最多追赶的步数，0 表示不限制
	MaxCatchUpSteps int `yaml:"maxCatchUpSteps" toml:"max_catch_up_steps"`
}

// ScoringConfig 计分规则
type ScoringConfig struct {
	PointsPerSecond float64 `yaml:"pointsPerSecond" toml:"points_per_second"`
	PointsPerHit    int     `yaml:"pointsPerHit" toml:"points_per_hit"`
}

// PlayerConfig 玩家物理参数
type PlayerConfig struct {
	Radius          float64 `yaml:"radius" toml:"radius"`
	Friction        float64 `yaml:"friction" toml:"friction"`
	MaxAcceleration float64 `yaml:"maxAcceleration" toml:"max_acceleration"`
	SteeringDivisor float64 `yaml:"steeringDivisor" toml:"steering_divisor"`
	SteeringReach   float64 `yaml:"steeringReach" toml:"steering_reach"` // 键盘模式下目标点与玩家的水平距离
	StartX          float64 `yaml:"startX" toml:"start_x"`
	StartY          float64 `yaml:"startY" toml:"start_y"`
}

// SpikeConfig 尖刺生成与物理参数
type SpikeConfig struct {
	PoolSize            int     `yaml:"poolSize" toml:"pool_size"`
	SpawnInterval       int     `yaml:"spawnInterval" toml:"spawn_interval"` // 每隔多少帧生成一个
	MinRadius           float64 `yaml:"minRadius" toml:"min_radius"`
	MaxRadius           float64 `yaml:"maxRadius" toml:"max_radius"`
	MaxSpawnVelocity    float64 `yaml:"maxSpawnVelocity" toml:"max_spawn_velocity"`
	Friction            float64 `yaml:"friction" toml:"friction"`
	FlashTicks          int     `yaml:"flashTicks" toml:"flash_ticks"`
	DespawnMargin       float64 `yaml:"despawnMargin" toml:"despawn_margin"`
	MultiplierChance    float64 `yaml:"multiplierChance" toml:"multiplier_chance"`
	MultiplierValue     int     `yaml:"multiplierValue" toml:"multiplier_value"`
	MaxMultiplierSpikes int     `yaml:"maxMultiplierSpikes" toml:"max_multiplier_spikes"`
}

// CollisionConfig 各调用点的冲量分配比例
// 比例表示第一个物体承担的分离冲量份额
type CollisionConfig struct {
	PlayerSpikeRatio float64 `yaml:"playerSpikeRatio" toml:"player_spike_ratio"`
	ExplosionRatio   float64 `yaml:"explosionRatio" toml:"explosion_ratio"`
}

// HitEffectConfig 命中闪光参数
type HitEffectConfig struct {
	PoolSize      int     `yaml:"poolSize" toml:"pool_size"`
	Ticks         int     `yaml:"ticks" toml:"ticks"`
	Friction      float64 `yaml:"friction" toml:"friction"`
	StrengthScale float64 `yaml:"strengthScale" toml:"strength_scale"`
	MinStrength   float64 `yaml:"minStrength" toml:"min_strength"`
}

// ScoreEffectConfig 得分飘字参数
type ScoreEffectConfig struct {
	PoolSize int `yaml:"poolSize" toml:"pool_size"`
	Ticks    int `yaml:"ticks" toml:"ticks"`
}

// ExplosionConfig 爆炸参数
type ExplosionConfig struct {
	PoolSize      int     `yaml:"poolSize" toml:"pool_size"`
	Ticks         int     `yaml:"ticks" toml:"ticks"`
	RadiusPerTick float64 `yaml:"radiusPerTick" toml:"radius_per_tick"`
	FlashStrength float64 `yaml:"flashStrength" toml:"flash_strength"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" 或 "console"
}

// Defaults 返回默认配置
func Defaults() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{
			Width:  500,
			Height: 500,
		},
		Loop: LoopConfig{
			TicksPerSecond:  60,
			MaxCatchUpSteps: 0,
		},
		Scoring: ScoringConfig{
			PointsPerSecond: 1,
			PointsPerHit:    1,
		},
		Player: PlayerConfig{
			Radius:          25,
			Friction:        0.85,
			MaxAcceleration: 2,
			SteeringDivisor: 30,
			SteeringReach:   100,
			StartX:          250,
			StartY:          250,
		},
		Spike: SpikeConfig{
			PoolSize:            20,
			SpawnInterval:       10,
			MinRadius:           10,
			MaxRadius:           40,
			MaxSpawnVelocity:    10,
			Friction:            0.8,
			FlashTicks:          50,
			DespawnMargin:       10,
			MultiplierChance:    0.1,
			MultiplierValue:     2,
			MaxMultiplierSpikes: 2,
		},
		Collision: CollisionConfig{
			PlayerSpikeRatio: 0.9,
			ExplosionRatio:   0.94,
		},
		HitEffect: HitEffectConfig{
			PoolSize:      5,
			Ticks:         20,
			Friction:      0.7,
			StrengthScale: 10,
			MinStrength:   10,
		},
		ScoreEffect: ScoreEffectConfig{
			PoolSize: 5,
			Ticks:    30,
		},
		Explosion: ExplosionConfig{
			PoolSize:      5,
			Ticks:         10,
			RadiusPerTick: 18,
			FlashStrength: 70,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Format 配置文件格式
type Format int

const (
	// FormatYAML YAML 格式（默认）
	FormatYAML Format = iota
	// FormatTOML TOML 格式
	FormatTOML
)

// FormatFromPath 根据扩展名判断格式，未知扩展名按 YAML 处理
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load 从文件加载配置
//
// 参数:
//   - path: 配置文件路径（.yaml / .yml / .toml）
//
// 返回:
//   - *GameConfig: 在默认值之上覆盖文件内容并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config %s: %w", path, err)
	}
	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse 从字节解析配置
// 未出现在数据中的字段保留默认值
func Parse(data []byte, format Format) (*GameConfig, error) {
	cfg := Defaults()

	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse toml game config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml game config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 竞技场尺寸、半径和帧率为正，帧率不超过 MaxTicksPerSecond
//   - 摩擦系数和冲量比例在 [0, 1]
//   - 尖刺半径范围 Min <= Max
//   - 池容量非负
//
// 返回:
//   - error: 第一个不合法的字段
func (c *GameConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %.1fx%.1f", c.Arena.Width, c.Arena.Height)
	}
	if c.Loop.TicksPerSecond <= 0 || c.Loop.TicksPerSecond > MaxTicksPerSecond {
		return fmt.Errorf("loop.ticksPerSecond must be in (0, %d], got %d", MaxTicksPerSecond, c.Loop.TicksPerSecond)
	}
	if c.Loop.MaxCatchUpSteps < 0 {
		return fmt.Errorf("loop.maxCatchUpSteps must not be negative, got %d", c.Loop.MaxCatchUpSteps)
	}
	if c.Player.Radius <= 0 {
		return fmt.Errorf("player.radius must be positive, got %.1f", c.Player.Radius)
	}
	if c.Player.SteeringDivisor <= 0 {
		return fmt.Errorf("player.steeringDivisor must be positive, got %.1f", c.Player.SteeringDivisor)
	}
	if c.Player.MaxAcceleration < 0 {
		return fmt.Errorf("player.maxAcceleration must not be negative, got %.1f", c.Player.MaxAcceleration)
	}
	if c.Spike.MinRadius <= 0 || c.Spike.MinRadius > c.Spike.MaxRadius {
		return fmt.Errorf("spike radius range invalid: min(%.1f) max(%.1f)", c.Spike.MinRadius, c.Spike.MaxRadius)
	}
	if c.Spike.SpawnInterval <= 0 {
		return fmt.Errorf("spike.spawnInterval must be positive, got %d", c.Spike.SpawnInterval)
	}
	if c.Spike.MaxSpawnVelocity < 0 {
		return fmt.Errorf("spike.maxSpawnVelocity must not be negative, got %.1f", c.Spike.MaxSpawnVelocity)
	}
	if c.Spike.MultiplierChance < 0 || c.Spike.MultiplierChance > 1 {
		return fmt.Errorf("spike.multiplierChance must be in [0,1], got %.2f", c.Spike.MultiplierChance)
	}
	if c.Spike.MultiplierValue < 1 {
		return fmt.Errorf("spike.multiplierValue must be at least 1, got %d", c.Spike.MultiplierValue)
	}

	unitRanges := []struct {
		name  string
		value float64
	}{
		{"player.friction", c.Player.Friction},
		{"spike.friction", c.Spike.Friction},
		{"hitEffect.friction", c.HitEffect.Friction},
		{"collision.playerSpikeRatio", c.Collision.PlayerSpikeRatio},
		{"collision.explosionRatio", c.Collision.ExplosionRatio},
	}
	for _, r := range unitRanges {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %.2f", r.name, r.value)
		}
	}

	pools := []struct {
		name string
		size int
	}{
		{"spike.poolSize", c.Spike.PoolSize},
		{"hitEffect.poolSize", c.HitEffect.PoolSize},
		{"scoreEffect.poolSize", c.ScoreEffect.PoolSize},
		{"explosion.poolSize", c.Explosion.PoolSize},
	}
	for _, p := range pools {
		if p.size < 0 {
			return fmt.Errorf("%s must not be negative, got %d", p.name, p.size)
		}
	}

	if c.HitEffect.Ticks <= 0 || c.ScoreEffect.Ticks <= 0 || c.Explosion.Ticks <= 0 {
		return fmt.Errorf("effect durations must be positive")
	}
	return nil
}

// TickSeconds 返回单步时长（秒）
func (c *GameConfig) TickSeconds() float64 {
	return 1 / float64(c.Loop.TicksPerSecond)
}
