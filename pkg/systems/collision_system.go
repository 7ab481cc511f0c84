package systems

import (
	"math"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/utils"
)

// CollisionResult 一次圆-圆碰撞的结果
// 只在当帧使用，不会被保存
type CollisionResult struct {
	// ImpulseA 施加到 A 速度上的冲量
	ImpulseA utils.Vector2
	// ImpulseB 施加到 B 速度上的冲量
	ImpulseB utils.Vector2
	// ContactPosition A 的圆周上朝向 B 的点，用作特效锚点
	ContactPosition utils.Vector2
	// Penetration 重叠深度
	Penetration float64
	// PushForce 分离力（重叠深度的两倍）
	PushForce float64
}

// ResolveCollision 解析两个圆形刚体的碰撞
//
// 两圆相离或恰好相切时不发生作用，返回 false 且不修改任何速度。
// 重叠时按 transferRatio 把分离冲量分配给双方并直接叠加到速度上：
// A 得到 ratio 份额（沿 B→A 方向），B 得到 1-ratio 份额（反方向）。
//
// 圆心完全重合时，atan2(0, 0) = 0，冲量沿 +X 方向；
// 归一化回退为零向量，接触点落在 A 的圆心。
//
// 参数:
//   - a, b: 参与碰撞的物体
//   - transferRatio: A 承担的冲量比例，超出 [0, 1] 时被截断
//
// 返回:
//   - CollisionResult: 碰撞结果
//   - bool: 是否发生碰撞
func ResolveCollision(a, b components.Body, transferRatio float64) (CollisionResult, bool) {
	ka, kb := a.Body(), b.Body()
	ratio := utils.Clamp01(transferRatio)

	d := ka.Position
	d.Subtract(kb.Position)
	distance := d.Length()
	reach := ka.Radius + kb.Radius

	if distance >= reach {
		return CollisionResult{}, false
	}

	penetration := reach - distance
	push := penetration * 2
	angle := math.Atan2(d.Y, d.X)
	dir := utils.Vec2(math.Cos(angle), math.Sin(angle))

	impulseA := dir
	impulseA.Scale(push * ratio)
	impulseB := dir.Negated()
	impulseB.Scale(push * (1 - ratio))

	ka.Velocity.Add(impulseA)
	kb.Velocity.Add(impulseB)

	contact := d
	contact.Normalize().Scale(-ka.Radius).Add(ka.Position)

	return CollisionResult{
		ImpulseA:        impulseA,
		ImpulseB:        impulseB,
		ContactPosition: contact,
		Penetration:     penetration,
		PushForce:       push,
	}, true
}
