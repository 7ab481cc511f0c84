package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 渲染层用它把实体剩余动画比例映射为尺寸/透明度。
//
// 参考：https://easings.net/

// EaseOut 任意指数的缓出
// 公式：f(t) = 1 - (1-t)^exponent
// exponent=2 等价于 EaseOutQuad
func EaseOut(t, exponent float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), exponent)
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return EaseOut(t, 2)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Sign 返回 -1、0 或 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
