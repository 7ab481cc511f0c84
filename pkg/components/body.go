package components

import "github.com/decker502/spikedodge/pkg/utils"

// Kinetics 圆形刚体的运动学状态
// 玩家、尖刺和爆炸都内嵌它，以便参与圆-圆碰撞
type Kinetics struct {
	Position utils.Vector2 // 圆心位置（像素）
	Velocity utils.Vector2 // 速度（像素/帧）
	Radius   float64       // 半径（像素），参与碰撞时必须 > 0
}

// Body 参与碰撞解析的实体
type Body interface {
	Body() *Kinetics
}

// Body 返回自身，使内嵌 Kinetics 的结构体自动满足 Body 接口
func (k *Kinetics) Body() *Kinetics {
	return k
}
