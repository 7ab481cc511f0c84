package components

// PlayerComponent 玩家圆盘
// 玩家是单例，不进入实体池
type PlayerComponent struct {
	Kinetics
}
