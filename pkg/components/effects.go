package components

import "github.com/decker502/spikedodge/pkg/utils"

// HitEffectComponent 命中闪光（纯视觉）
type HitEffectComponent struct {
	Position utils.Vector2
	Velocity utils.Vector2 // 生成时拷贝玩家速度，用于方向感
	Tint     Tint
	Strength float64 // 渲染半径上限
	Ticks    int     // 剩余动画帧数
}

// ScoreEffectComponent 得分飘字（纯视觉）
type ScoreEffectComponent struct {
	Position utils.Vector2
	Score    int // 显示的分值
	Ticks    int // 剩余动画帧数
}

// ExplosionComponent 死亡爆炸
// 唯一参与碰撞的特效：作为施力方推开玩家和尖刺
type ExplosionComponent struct {
	Kinetics
	Ticks int // 剩余动画帧数
}
