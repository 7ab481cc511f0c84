package sim

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/game"
)

// Pilot 根据快照给出玩家的目标 x；false 表示不转向
type Pilot interface {
	Steer(snap *game.Snapshot) (float64, bool)
}

// steerFunc 脚本必须定义的全局函数名
const steerFunc = "steer"

// ScriptPilot 由 Lua 脚本决定转向
//
// 脚本定义全局函数 steer(state)，返回目标 x，返回 nil 表示不转向。
// state 结构：
//
//	{ frame, score, width, height,
//	  player = { x, y, r },
//	  spikes = { { x, y, r, multiplier }, ... } }
//
// 只能在单个 goroutine 中使用。
type ScriptPilot struct {
	vm     *lua.LState
	fn     lua.LValue
	logger *zap.Logger
	errors int
}

// NewScriptPilot 从源码创建脚本驾驶
func NewScriptPilot(source string, logger *zap.Logger) (*ScriptPilot, error) {
	vm := lua.NewState()
	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load pilot script: %w", err)
	}
	return newScriptPilot(vm, logger)
}

// LoadScriptPilot 从文件创建脚本驾驶
func LoadScriptPilot(path string, logger *zap.Logger) (*ScriptPilot, error) {
	vm := lua.NewState()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load pilot script %s: %w", path, err)
	}
	return newScriptPilot(vm, logger)
}

func newScriptPilot(vm *lua.LState, logger *zap.Logger) (*ScriptPilot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fn := vm.GetGlobal(steerFunc)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("pilot script must define function %s(state)", steerFunc)
	}
	return &ScriptPilot{vm: vm, fn: fn, logger: logger.Named("ScriptPilot")}, nil
}

// Steer 调用脚本的 steer 函数
// 脚本出错或返回非数字时不转向，只记录第一次错误
func (p *ScriptPilot) Steer(snap *game.Snapshot) (float64, bool) {
	if err := p.vm.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, p.stateTable(snap)); err != nil {
		p.fail("lua steer error", zap.Int("frame", snap.Frame), zap.Error(err))
		return snap.Player.Position.X, false
	}

	result := p.vm.Get(-1)
	p.vm.Pop(1)

	switch v := result.(type) {
	case lua.LNumber:
		return float64(v), true
	default:
		if result != lua.LNil {
			p.fail("lua steer returned non-number", zap.Int("frame", snap.Frame), zap.String("type", result.Type().String()))
		}
		return snap.Player.Position.X, false
	}
}

func (p *ScriptPilot) fail(msg string, fields ...zap.Field) {
	p.errors++
	if p.errors == 1 {
		p.logger.Warn(msg, fields...)
	}
}

// Errors 脚本出错的次数
func (p *ScriptPilot) Errors() int {
	return p.errors
}

// Close 关闭 Lua 虚拟机
func (p *ScriptPilot) Close() {
	p.vm.Close()
}

func (p *ScriptPilot) stateTable(snap *game.Snapshot) *lua.LTable {
	t := p.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(snap.Frame))
	t.RawSetString("score", lua.LNumber(snap.Score))
	t.RawSetString("width", lua.LNumber(snap.Width))
	t.RawSetString("height", lua.LNumber(snap.Height))

	player := p.vm.NewTable()
	player.RawSetString("x", lua.LNumber(snap.Player.Position.X))
	player.RawSetString("y", lua.LNumber(snap.Player.Position.Y))
	player.RawSetString("r", lua.LNumber(snap.Player.Radius))
	t.RawSetString("player", player)

	spikes := p.vm.NewTable()
	for i, s := range snap.Spikes {
		st := p.vm.NewTable()
		st.RawSetString("x", lua.LNumber(s.Position.X))
		st.RawSetString("y", lua.LNumber(s.Position.Y))
		st.RawSetString("r", lua.LNumber(s.Radius))
		st.RawSetString("multiplier", lua.LNumber(s.Multiplier))
		spikes.RawSetInt(i+1, st)
	}
	t.RawSetString("spikes", spikes)
	return t
}
