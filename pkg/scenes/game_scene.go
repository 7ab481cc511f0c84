package scenes

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/game"
	"github.com/decker502/spikedodge/pkg/systems"
)

// keyBinding 方向键映射
var keyBindings = []struct {
	key ebiten.Key
	dir systems.Direction
}{
	{ebiten.KeyArrowLeft, systems.DirectionLeft},
	{ebiten.KeyA, systems.DirectionLeft},
	{ebiten.KeyArrowRight, systems.DirectionRight},
	{ebiten.KeyD, systems.DirectionRight},
}

// restartKeys 结束后用于重开的按键
var restartKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyR}

// GameScene 游戏主场景
//
// 每次 Update 把设备事件归约到 World.Input，再由 FixedStepLoop
// 按墙钟时间推进模拟；Draw 只读取快照。
type GameScene struct {
	cfg          *config.GameConfig
	sceneManager *SceneManager
	logger       *zap.Logger

	world    *game.World
	loop     *game.FixedStepLoop
	snapshot game.Snapshot
	events   []game.Event

	chimes *ChimePlayer // nil 时静音

	pointer  pointerTracker
	keys     []ebiten.Key
	keyEdges []keyEdge
	font     *text.GoTextFaceSource // nil 时回退到调试字体
	now      func() time.Time
}

// NewGameScene 创建一局新游戏的场景
//
// 参数:
//   - cfg: 已校验的游戏配置
//   - sm: 场景管理器，结束后用于重开
//   - rng: 随机源，nil 时按时间播种
//   - chimes: 提示音播放器，nil 时静音
//   - logger: 日志器
func NewGameScene(cfg *config.GameConfig, sm *SceneManager, rng *rand.Rand, chimes *ChimePlayer, logger *zap.Logger) *GameScene {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("GameScene")

	world := game.NewWorld(cfg, rng, logger)
	loop := game.NewFixedStepLoop(cfg.Loop.TicksPerSecond, world.Update, nil)
	loop.SetMaxCatchUp(cfg.Loop.MaxCatchUpSteps)
	loop.SetLogger(logger)

	font, err := loadHUDFont()
	if err != nil {
		logger.Warn("hud font unavailable, using debug font", zap.Error(err))
	}

	return &GameScene{
		cfg:          cfg,
		sceneManager: sm,
		logger:       logger,
		world:        world,
		loop:         loop,
		chimes:       chimes,
		font:         font,
		now:          time.Now,
	}
}

// World 返回场景驱动的模拟世界
func (s *GameScene) World() *game.World {
	return s.world
}

// Update 处理输入并推进模拟
// deltaTime 不参与模拟：步长由 FixedStepLoop 按墙钟时间决定
func (s *GameScene) Update(deltaTime float64) {
	if s.world.Session.GameOver && s.restartRequested() {
		s.sceneManager.Restart()
		return
	}

	s.collectKeyEdges()
	applyKeyEdges(s.world.Input, s.keyEdges)
	s.collectPointer()

	s.loop.Frame(s.now())

	s.events = s.world.DrainEvents(s.events[:0])
	for _, e := range s.events {
		s.chimes.Play(e)
		s.logger.Debug("event",
			zap.Stringer("kind", e.Kind),
			zap.Int("frame", e.Frame),
			zap.Bool("positive", e.Positive),
			zap.Float64("strength", e.Strength),
			zap.Int("points", e.Points))
	}
}

// Draw 绘制当前快照
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.world.Snapshot(&s.snapshot)
	drawSnapshot(screen, &s.snapshot, s.font)
}

func (s *GameScene) restartRequested() bool {
	for _, k := range restartKeys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// collectKeyEdges 收集本帧的按键边沿
func (s *GameScene) collectKeyEdges() {
	s.keyEdges = s.keyEdges[:0]
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			s.keyEdges = append(s.keyEdges, keyEdge{dir: b.dir, down: true, mapped: true})
		}
		if inpututil.IsKeyJustReleased(b.key) {
			// 另一个绑定键仍按住时不算松开
			if !s.directionHeld(b.dir) {
				s.keyEdges = append(s.keyEdges, keyEdge{dir: b.dir, down: false, mapped: true})
			}
		}
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if !isDirectionKey(k) {
			s.keyEdges = append(s.keyEdges, keyEdge{})
		}
	}
}

func (s *GameScene) directionHeld(dir systems.Direction) bool {
	for _, b := range keyBindings {
		if b.dir == dir && ebiten.IsKeyPressed(b.key) {
			return true
		}
	}
	return false
}

func isDirectionKey(k ebiten.Key) bool {
	for _, b := range keyBindings {
		if b.key == k {
			return true
		}
	}
	return false
}

// collectPointer 鼠标移动或触摸时把焦点切到指针
func (s *GameScene) collectPointer() {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		if s.pointer.observe(x, y, true) {
			s.world.Input.PointerMove(float64(x))
		}
		return
	}

	x, y := ebiten.CursorPosition()
	if s.pointer.observe(x, y, false) {
		s.world.Input.PointerMove(float64(x))
	}
}
