package utils

import "math"

// Vector2 二维向量
//
// 值类型：作为位置快照存储时按值拷贝；作为运行中的速度/位置使用时，
// 通过指针接收者原地修改。所有修改方法返回接收者本身，便于链式调用。
type Vector2 struct {
	X float64
	Y float64
}

// Vec2 构造一个向量
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add 原地加上另一个向量
func (v *Vector2) Add(o Vector2) *Vector2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Subtract 原地减去另一个向量
func (v *Vector2) Subtract(o Vector2) *Vector2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Scale 原地等比缩放
func (v *Vector2) Scale(k float64) *Vector2 {
	v.X *= k
	v.Y *= k
	return v
}

// ScaleXY 原地按轴分别缩放
// 用于各向异性摩擦（例如尖刺只在超过终端速度时衰减竖直分量）
func (v *Vector2) ScaleXY(kx, ky float64) *Vector2 {
	v.X *= kx
	v.Y *= ky
	return v
}

// Normalize 原地归一化
// 零向量的模长按 1 处理，结果仍为零向量，永远不会除以零
func (v *Vector2) Normalize() *Vector2 {
	m := math.Hypot(v.X, v.Y)
	if m == 0 {
		m = 1
	}
	v.X /= m
	v.Y /= m
	return v
}

// Copy 返回一个独立副本
func (v Vector2) Copy() Vector2 {
	return v
}

// Length 返回模长
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Negated 返回反向向量（不修改接收者）
func (v Vector2) Negated() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}
