package game

import (
	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/utils"
)

// EntityState 单个实体的渲染状态
type EntityState struct {
	Position utils.Vector2
	Radius   float64
	Tint     components.Tint
	Fraction float64 // 剩余动画比例（1 = 刚开始，0 = 结束）

	Multiplier int     // 尖刺得分倍率
	Score      int     // 得分飘字显示的分值
	Facing     float64 // 命中闪光的水平朝向（+1 或 -1）
}

// Snapshot 一帧的渲染快照
//
// 切片在多次 World.Snapshot 调用间复用，渲染层不应长期持有。
type Snapshot struct {
	Frame    int
	Score    int
	GameOver bool
	Width    float64
	Height   float64

	Player       EntityState
	Spikes       []EntityState
	HitEffects   []EntityState
	ScoreEffects []EntityState
	Explosions   []EntityState
}

// Snapshot 把当前状态写入 dst
//
// 纯读取，不修改任何模拟状态。实体按各自池的 active 顺序排列。
func (w *World) Snapshot(dst *Snapshot) {
	s := &w.Session
	dst.Frame = s.FrameCount
	dst.Score = s.DisplayScore()
	dst.GameOver = s.GameOver
	dst.Width = w.cfg.Arena.Width
	dst.Height = w.cfg.Arena.Height

	dst.Player = EntityState{
		Position: w.Player.Position,
		Radius:   w.Player.Radius,
		Tint:     components.TintNeutral,
		Fraction: 1,
	}

	dst.Spikes = dst.Spikes[:0]
	for _, id := range w.Spikes.Active() {
		spike := w.Spikes.Get(id)
		dst.Spikes = append(dst.Spikes, EntityState{
			Position:   spike.Position,
			Radius:     spike.Radius,
			Tint:       spike.Tint,
			Fraction:   w.spikeSystem.FlashFraction(spike),
			Multiplier: spike.Multiplier,
		})
	}

	es := w.Effects
	dst.HitEffects = appendStates(dst.HitEffects[:0], es.HitEffects, func(e *components.HitEffectComponent) EntityState {
		facing := 1.0
		if e.Velocity.X != 0 {
			facing = utils.Sign(e.Velocity.X)
		}
		return EntityState{
			Position: e.Position,
			Radius:   e.Strength,
			Tint:     e.Tint,
			Fraction: es.HitFraction(e),
			Facing:   facing,
		}
	})
	dst.ScoreEffects = appendStates(dst.ScoreEffects[:0], es.ScoreEffects, func(e *components.ScoreEffectComponent) EntityState {
		return EntityState{
			Position: e.Position,
			Tint:     components.TintNeutral,
			Fraction: es.ScoreFraction(e),
			Score:    e.Score,
		}
	})
	dst.Explosions = appendStates(dst.Explosions[:0], es.Explosions, func(e *components.ExplosionComponent) EntityState {
		return EntityState{
			Position: e.Position,
			Radius:   e.Radius,
			Tint:     components.TintNeutral,
			Fraction: es.ExplosionFraction(e),
		}
	})
}

func appendStates[T any](dst []EntityState, pool *ecs.Pool[T], fn func(e *T) EntityState) []EntityState {
	for _, id := range pool.Active() {
		dst = append(dst, fn(pool.Get(id)))
	}
	return dst
}
