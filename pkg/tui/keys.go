package tui

import (
	"time"

	"github.com/decker502/spikedodge/pkg/systems"
)

// defaultHoldDuration 终端不上报按键松开，一次按下后视为按住的时长
// 需覆盖终端自动重复的首次延迟
const defaultHoldDuration = 550 * time.Millisecond

// keyHold 用自动重复事件模拟按键按住
//
// 每个方向记录最近一次按下的时间，超过 hold 未再次收到按下
// 即视为松开。
type keyHold struct {
	hold    time.Duration
	pressed map[systems.Direction]time.Time
}

func newKeyHold(hold time.Duration) *keyHold {
	if hold <= 0 {
		hold = defaultHoldDuration
	}
	return &keyHold{hold: hold, pressed: make(map[systems.Direction]time.Time, 2)}
}

// press 记录一次按下，返回是否为新的按下边沿
func (k *keyHold) press(dir systems.Direction, now time.Time) bool {
	_, held := k.pressed[dir]
	k.pressed[dir] = now
	return !held
}

// expire 返回已超时的方向并移除
func (k *keyHold) expire(now time.Time) []systems.Direction {
	var released []systems.Direction
	for _, dir := range []systems.Direction{systems.DirectionLeft, systems.DirectionRight} {
		at, held := k.pressed[dir]
		if held && now.Sub(at) >= k.hold {
			delete(k.pressed, dir)
			released = append(released, dir)
		}
	}
	return released
}

// releaseAll 清空所有按住的方向
// 新的一局从没有按键开始，旧的按住状态不带入
func (k *keyHold) releaseAll() {
	clear(k.pressed)
}
