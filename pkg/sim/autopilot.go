// Package sim 无界面地运行模拟，用于调参和回归
//
// Autopilot 根据快照给出转向目标：躲开头顶将要落下的尖刺，
// 追向身侧略低的尖刺以便从下方把它顶开得分。
package sim

import (
	"math"

	"github.com/decker502/spikedodge/pkg/game"
)

// Autopilot 基于快照的简单转向策略
type Autopilot struct {
	// Margin 躲避时与尖刺保持的额外水平距离
	Margin float64
	// Lookahead 只考虑垂直距离在此范围内的头顶尖刺
	Lookahead float64
}

// NewAutopilot 使用默认参数创建自动驾驶
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 10, Lookahead: 150}
}

// Steer 返回玩家的目标 x；false 表示不转向
func (a *Autopilot) Steer(snap *game.Snapshot) (float64, bool) {
	p := snap.Player

	if s, ok := a.threat(snap); ok {
		clearance := p.Radius + s.Radius + a.Margin
		side := 1.0
		if p.Position.X < s.Position.X {
			side = -1
		}
		target := s.Position.X + side*clearance
		// 靠墙时往另一侧躲
		if target < p.Radius || target > snap.Width-p.Radius {
			target = s.Position.X - side*clearance
		}
		return math.Max(p.Radius, math.Min(snap.Width-p.Radius, target)), true
	}

	if s, ok := chase(snap); ok {
		return s.Position.X, true
	}
	return p.Position.X, false
}

// threat 头顶水平范围内最近的尖刺
func (a *Autopilot) threat(snap *game.Snapshot) (game.EntityState, bool) {
	p := snap.Player
	var best game.EntityState
	found := false
	for _, s := range snap.Spikes {
		dy := p.Position.Y - s.Position.Y
		if dy <= 0 || dy > a.Lookahead+p.Radius+s.Radius {
			continue
		}
		if math.Abs(s.Position.X-p.Position.X) >= p.Radius+s.Radius+a.Margin {
			continue
		}
		if !found || s.Position.Y > best.Position.Y {
			best, found = s, true
		}
	}
	return best, found
}

// chase 与玩家同高或略低、水平最近的尖刺
func chase(snap *game.Snapshot) (game.EntityState, bool) {
	p := snap.Player
	var best game.EntityState
	bestDX := math.Inf(1)
	for _, s := range snap.Spikes {
		dy := s.Position.Y - p.Position.Y
		if dy < 0 || dy >= p.Radius+s.Radius {
			continue
		}
		if dx := math.Abs(s.Position.X - p.Position.X); dx < bestDX {
			best, bestDX = s, dx
		}
	}
	return best, !math.IsInf(bestDX, 1)
}
