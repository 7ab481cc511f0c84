package components

// SpikeComponent 下落的尖刺圆盘
//
// 每次激活（Spawn）都会重置全部字段；Scored 只在激活时清零，
// 因此同一根尖刺在一次生命周期内最多计分一次。
type SpikeComponent struct {
	Kinetics

	// TargetVelocity 激活时采样的终端下落速度
	// 竖直速度只在超过它时才受摩擦衰减
	TargetVelocity float64

	// Multiplier 得分倍率（1 或奖励倍率）
	Multiplier int

	// Scored 本次激活是否已经计过分
	Scored bool

	// Tint 当前着色；闪烁计时归零时恢复为 TintNeutral
	Tint Tint

	// FlashTicks 命中闪烁剩余帧数
	FlashTicks int
}
