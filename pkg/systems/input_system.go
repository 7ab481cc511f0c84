package systems

// Focus 当前驱动玩家目标的输入源
type Focus int

const (
	// FocusKeyboard 键盘方向键（默认）
	FocusKeyboard Focus = iota
	// FocusPointer 鼠标或触摸的水平坐标
	FocusPointer
)

// String 返回输入源名称
func (f Focus) String() string {
	if f == FocusPointer {
		return "pointer"
	}
	return "keyboard"
}

// Direction 方向键
type Direction int

const (
	// DirectionLeft 左
	DirectionLeft Direction = iota
	// DirectionRight 右
	DirectionRight
)

// InputSignal 每帧交给模拟核心的归约后输入
// 核心只消费这个信号，从不接触原始设备事件
type InputSignal struct {
	Focus    Focus
	StickX   int     // -1、0 或 1（键盘模式）
	PointerX float64 // 竞技场坐标（指针模式）
}

// InputSystem 把设备事件归约为 InputSignal，并解析转向目标
//
// 任何按键事件都会把焦点切到键盘，任何指针移动都会切到指针。
// 方向键遵循"最后按下者优先，松开时回落到仍按住的另一键"。
type InputSystem struct {
	focus    Focus
	left     bool
	right    bool
	stickX   int
	pointerX float64
	reach    float64
}

// NewInputSystem 创建输入系统
// reach 是键盘模式下目标点相对玩家的水平距离
func NewInputSystem(reach float64) *InputSystem {
	return &InputSystem{
		focus: FocusKeyboard,
		reach: reach,
	}
}

// Key 处理方向键按下/松开
func (s *InputSystem) Key(dir Direction, down bool) {
	s.focus = FocusKeyboard

	switch dir {
	case DirectionLeft:
		s.left = down
	case DirectionRight:
		s.right = down
	default:
		return
	}

	switch {
	case down && dir == DirectionLeft:
		s.stickX = -1
	case down:
		s.stickX = 1
	case s.left:
		s.stickX = -1
	case s.right:
		s.stickX = 1
	default:
		s.stickX = 0
	}
}

// OtherKey 处理非方向键事件：只把焦点切回键盘
func (s *InputSystem) OtherKey() {
	s.focus = FocusKeyboard
}

// PointerMove 处理指针移动（x 为竞技场坐标）
func (s *InputSystem) PointerMove(x float64) {
	s.focus = FocusPointer
	s.pointerX = x
}

// Signal 返回当前输入信号
func (s *InputSystem) Signal() InputSignal {
	return InputSignal{
		Focus:    s.focus,
		StickX:   s.stickX,
		PointerX: s.pointerX,
	}
}

// SteeringTarget 根据输入信号解析玩家的目标 x
//
// 键盘模式下摇杆为 0 时不转向（返回 false），玩家只受摩擦影响；
// 指针模式下始终朝指针 x 转向。
func SteeringTarget(sig InputSignal, playerX, reach float64) (float64, bool) {
	switch sig.Focus {
	case FocusPointer:
		return sig.PointerX, true
	default:
		if sig.StickX == 0 {
			return playerX, false
		}
		return playerX + reach*float64(sig.StickX), true
	}
}

// Target 使用本系统的 reach 解析当前目标
func (s *InputSystem) Target(playerX float64) (float64, bool) {
	return SteeringTarget(s.Signal(), playerX, s.reach)
}
