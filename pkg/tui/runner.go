// Package tui 终端前端
//
// 用 tcell 把模拟快照栅格化到字符屏幕，用 beep 播放命中提示音。
// 终端只上报按键按下，方向键的按住由自动重复事件模拟。
package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/game"
	"github.com/decker502/spikedodge/pkg/systems"
)

// EventSink 接收模拟事件（声音、统计等）
type EventSink interface {
	Play(e game.Event)
}

// Options 终端前端选项
type Options struct {
	// Seed 主随机种子，0 表示按当前时间播种
	Seed int64
	// HoldDuration 方向键按下后视为按住的时长，0 使用默认值
	HoldDuration time.Duration
	// Sink 模拟事件接收者，可为 nil
	Sink EventSink
}

// Runner 终端游戏主循环
//
// 屏幕由调用方创建和销毁，Runner 只负责事件处理和绘制。
type Runner struct {
	cfg      *config.GameConfig
	screen   tcell.Screen
	logger   *zap.Logger
	sink     EventSink
	seeds    *rand.Rand
	renderer *Renderer
	keys     *keyHold

	world    *game.World
	loop     *game.FixedStepLoop
	snapshot game.Snapshot
	events   []game.Event

	mouseCol     int
	mouseSampled bool
	restarts     int
	now          func() time.Time
}

// NewRunner 创建终端前端并开始第一局
func NewRunner(screen tcell.Screen, cfg *config.GameConfig, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Runner{
		cfg:      cfg,
		screen:   screen,
		logger:   logger.Named("TUI"),
		sink:     opts.Sink,
		seeds:    rand.New(rand.NewSource(seed)),
		renderer: NewRenderer(screen),
		keys:     newKeyHold(opts.HoldDuration),
		now:      time.Now,
	}
	r.newRound()
	return r
}

// World 当前一局的模拟世界
func (r *Runner) World() *game.World {
	return r.world
}

// Restarts 已重开的局数
func (r *Runner) Restarts() int {
	return r.restarts
}

// newRound 以主随机源派生的种子开始新的一局
func (r *Runner) newRound() {
	r.world = game.NewWorld(r.cfg, rand.New(rand.NewSource(r.seeds.Int63())), r.logger)
	r.loop = game.NewFixedStepLoop(r.cfg.Loop.TicksPerSecond, r.world.Update, nil)
	r.loop.SetMaxCatchUp(r.cfg.Loop.MaxCatchUpSteps)
	r.loop.SetLogger(r.logger)
	r.keys.releaseAll()
}

func (r *Runner) restart() {
	r.restarts++
	r.logger.Info("restart", zap.Int("round", r.restarts+1))
	r.newRound()
}

// Run 运行主循环，直到 ctx 取消或玩家退出
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse(tcell.MouseMotionEvents)
	r.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go r.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(r.loop.Interval())
	defer ticker.Stop()

	r.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if r.handleEvent(ev, r.now()) {
				return nil
			}
		case <-ticker.C:
			r.tick(r.now())
		}
	}
}

// handleEvent 处理一个终端事件，返回是否退出
func (r *Runner) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
		r.draw()
	case *tcell.EventKey:
		return r.handleKey(ev, now)
	case *tcell.EventMouse:
		r.handleMouse(ev)
	}
	return false
}

func (r *Runner) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape,
		ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
		return true
	}

	if r.world.Session.GameOver && isRestartKey(ev) {
		r.restart()
		return false
	}

	dir, ok := keyDirection(ev)
	if !ok {
		r.world.Input.OtherKey()
		return false
	}
	if r.keys.press(dir, now) {
		r.logger.Debug("key down", zap.Int("direction", int(dir)))
	}
	// 自动重复也会重新确认键盘焦点和方向
	r.world.Input.Key(dir, true)
	return false
}

func (r *Runner) handleMouse(ev *tcell.EventMouse) {
	col, _ := ev.Position()
	if r.world.Session.GameOver && ev.Buttons()&tcell.Button1 != 0 {
		r.restart()
		return
	}
	// 首次采样只记录位置，避免启动时光标停在终端内就抢走键盘焦点
	moved := r.mouseSampled && col != r.mouseCol
	r.mouseCol, r.mouseSampled = col, true
	if moved {
		r.world.Input.PointerMove(r.renderer.ArenaX(col))
	}
}

// tick 释放超时的方向键，推进模拟并重绘
func (r *Runner) tick(now time.Time) {
	for _, dir := range r.keys.expire(now) {
		r.world.Input.Key(dir, false)
	}

	r.loop.Frame(now)

	r.events = r.world.DrainEvents(r.events[:0])
	for _, e := range r.events {
		if r.sink != nil {
			r.sink.Play(e)
		}
		r.logger.Debug("event",
			zap.Stringer("kind", e.Kind),
			zap.Int("frame", e.Frame),
			zap.Float64("strength", e.Strength),
			zap.Int("points", e.Points))
	}

	r.draw()
}

func (r *Runner) draw() {
	r.world.Snapshot(&r.snapshot)
	r.renderer.Draw(&r.snapshot)
}

func keyDirection(ev *tcell.EventKey) (systems.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return systems.DirectionLeft, true
	case tcell.KeyRight:
		return systems.DirectionRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			return systems.DirectionLeft, true
		case 'd', 'D', 'l':
			return systems.DirectionRight, true
		}
	}
	return 0, false
}

func isRestartKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == ' ' || ev.Rune() == 'r' || ev.Rune() == 'R')
}
