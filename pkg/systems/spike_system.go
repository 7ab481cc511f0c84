package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/utils"
)

// SpikeSystem 尖刺的激活、更新与命中着色
type SpikeSystem struct {
	cfg   config.SpikeConfig
	arena config.ArenaConfig
	rng   *rand.Rand
}

// NewSpikeSystem 创建尖刺系统
// rng 用于随机采样生成参数，由调用方注入以便测试固定种子
func NewSpikeSystem(cfg *config.GameConfig, rng *rand.Rand) *SpikeSystem {
	return &SpikeSystem{
		cfg:   cfg.Spike,
		arena: cfg.Arena,
		rng:   rng,
	}
}

// SpawnInto 从池中激活一根尖刺
//
// 奖励倍率的上限通过扫描当前 active 尖刺来检查。
// 池满时请求被静默丢弃，返回 false。
func (ss *SpikeSystem) SpawnInto(pool *ecs.Pool[components.SpikeComponent]) (ecs.SlotID, bool) {
	boosted := pool.Count(func(s *components.SpikeComponent) bool {
		return s.Multiplier > 1
	})
	return pool.Spawn(func(_ ecs.SlotID, s *components.SpikeComponent) {
		ss.Spawn(s, boosted)
	})
}

// Spawn 重新初始化一根尖刺
//
// 参数:
//   - s: 待初始化的尖刺（可能是复用的旧实例）
//   - boosted: 当前已激活的带倍率尖刺数量
func (ss *SpikeSystem) Spawn(s *components.SpikeComponent, boosted int) {
	s.Scored = false
	s.Tint = components.TintNeutral
	s.FlashTicks = 0

	s.Radius = ss.cfg.MinRadius + ss.rng.Float64()*(ss.cfg.MaxRadius-ss.cfg.MinRadius)
	s.Position = utils.Vec2(ss.rng.Float64()*ss.arena.Width, -s.Radius)
	s.TargetVelocity = ss.rng.Float64() * ss.cfg.MaxSpawnVelocity
	s.Velocity = utils.Vec2(0, s.TargetVelocity)

	s.Multiplier = 1
	if ss.rng.Float64() > 1-ss.cfg.MultiplierChance && boosted < ss.cfg.MaxMultiplierSpikes {
		s.Multiplier = ss.cfg.MultiplierValue
	}
}

// Hit 设置命中闪烁，不影响物理
func (ss *SpikeSystem) Hit(s *components.SpikeComponent, tint components.Tint) {
	s.FlashTicks = ss.cfg.FlashTicks
	s.Tint = tint
}

// Update 非对称摩擦、积分、闪烁计时
//
// 水平速度始终衰减；竖直速度只在超过终端速度时衰减，
// 因此尖刺会回落到采样时的下落速度，而不是像玩家一样停下来。
func (ss *SpikeSystem) Update(s *components.SpikeComponent) {
	fy := 1.0
	if math.Abs(s.Velocity.Y) > math.Abs(s.TargetVelocity) {
		fy = ss.cfg.Friction
	}
	s.Velocity.ScaleXY(ss.cfg.Friction, fy)
	s.Position.Add(s.Velocity)

	if s.FlashTicks > 0 {
		s.FlashTicks--
		if s.FlashTicks == 0 {
			s.Tint = components.TintNeutral
		}
	}
}

// OutOfBounds 尖刺是否越过上/下边界超过回收余量
func (ss *SpikeSystem) OutOfBounds(s *components.SpikeComponent) bool {
	margin := ss.cfg.DespawnMargin
	return s.Position.Y-s.Radius > ss.arena.Height+margin ||
		s.Position.Y+s.Radius < -margin
}

// FlashFraction 闪烁剩余比例，渲染层用于渐变
func (ss *SpikeSystem) FlashFraction(s *components.SpikeComponent) float64 {
	if ss.cfg.FlashTicks <= 0 {
		return 0
	}
	return float64(s.FlashTicks) / float64(ss.cfg.FlashTicks)
}
