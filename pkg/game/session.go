package game

import "math"

// Session 一局游戏的状态
//
// 由 World 独占持有。GameOver 与 FrameCount 单调变化：
// 一旦结束不会复位，重开一局需要新建 World。
type Session struct {
	Score          float64 // 累计得分（被动得分为小数）
	GameOver       bool
	FrameCount     int
	EffectCooldown int // 距离下一次允许生成命中闪光还剩的帧数

	// 统计（模拟器汇总与调试用）
	Contacts      int // 玩家与尖刺接触的帧次
	ScoredSpikes  int // 计过分的尖刺数量
	GameOverFrame int // 结束时的帧号，未结束为 0
}

// DisplayScore 返回四舍五入后的显示分数
func (s *Session) DisplayScore() int {
	return int(math.Round(s.Score))
}
