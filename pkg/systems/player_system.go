package systems

import (
	"math"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/utils"
)

// PlayerSystem 玩家圆盘的转向、积分与边界反弹
//
// 玩家没有重力：竖直速度只来自碰撞冲量并随摩擦衰减，
// 因此被尖刺一路压出竞技场底部就是唯一的失败方式。
type PlayerSystem struct {
	cfg   config.PlayerConfig
	arena config.ArenaConfig
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(cfg *config.GameConfig) *PlayerSystem {
	return &PlayerSystem{
		cfg:   cfg.Player,
		arena: cfg.Arena,
	}
}

// Reset 把玩家放回起始位置并清零速度
func (ps *PlayerSystem) Reset(p *components.PlayerComponent) {
	p.Position = utils.Vec2(ps.cfg.StartX, ps.cfg.StartY)
	p.Velocity = utils.Vector2{}
	p.Radius = ps.cfg.Radius
}

// MoveTowardsTarget 水平转向目标点
//
// 每帧只叠加一个有上限的加速度增量：
// vel.x += min(|dx| / divisor, maxAcceleration) * sign(dx)
// 这是加速度截断而非位置截断，玩家不会瞬移到目标点。
func (ps *PlayerSystem) MoveTowardsTarget(p *components.PlayerComponent, targetX float64) {
	dx := targetX - p.Position.X
	step := math.Min(math.Abs(dx)/ps.cfg.SteeringDivisor, ps.cfg.MaxAcceleration)
	p.Velocity.X += step * utils.Sign(dx)
}

// Update 摩擦、积分，然后左右墙壁完全弹性反弹（同一帧内）
func (ps *PlayerSystem) Update(p *components.PlayerComponent) {
	p.Velocity.Scale(ps.cfg.Friction)
	p.Position.Add(p.Velocity)

	if p.Position.X+p.Radius > ps.arena.Width {
		p.Position.X = ps.arena.Width - p.Radius
		p.Velocity.X = -p.Velocity.X
	}
	if p.Position.X-p.Radius < 0 {
		p.Position.X = p.Radius
		p.Velocity.X = -p.Velocity.X
	}
}

// FellOut 玩家圆盘是否已完全落到竞技场底部以下
func (ps *PlayerSystem) FellOut(p *components.PlayerComponent) bool {
	return p.Position.Y-p.Radius > ps.arena.Height
}
