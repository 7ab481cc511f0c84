package scenes

import "github.com/decker502/spikedodge/pkg/systems"

// keyEdge 一次按键按下或松开
// mapped 为 false 表示非方向键，只切换焦点
type keyEdge struct {
	dir    systems.Direction
	down   bool
	mapped bool
}

// applyKeyEdges 按顺序把按键边沿交给输入系统
func applyKeyEdges(in *systems.InputSystem, edges []keyEdge) {
	for _, e := range edges {
		if !e.mapped {
			in.OtherKey()
			continue
		}
		in.Key(e.dir, e.down)
	}
}

// pointerTracker 检测指针移动
//
// 桌面端光标始终有位置，只有位置变化才算一次移动；
// 首次采样只记录位置，避免启动时光标停在窗口内就抢走键盘焦点。
// 触摸开始时无论位置是否变化都算一次移动。
type pointerTracker struct {
	x, y     int
	sampled  bool
	touching bool
}

// observe 记录一次采样，返回是否应视为指针移动
func (p *pointerTracker) observe(x, y int, touch bool) bool {
	moved := p.sampled && (x != p.x || y != p.y)
	switch {
	case touch && !p.touching:
		moved = true
	case !touch && p.touching:
		// 触摸结束后重新以光标位置为基准
		moved = false
	}
	p.x, p.y = x, y
	p.sampled = true
	p.touching = touch
	return moved
}
