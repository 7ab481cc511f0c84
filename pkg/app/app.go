// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/logging"
	"github.com/decker502/spikedodge/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径（.yaml / .toml），为空则使用嵌入的默认配置
	ConfigPath string
	// Seed 随机种子，0 表示按当前时间播种
	Seed int64
	// Mute 不创建音频上下文
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	gameConfig               *config.GameConfig
	logger                   *zap.Logger
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入的默认配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	gameConfig, err := config.Resolve(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	logger, err := logging.New(gameConfig.Logging, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("日志初始化失败: %w", err)
	}
	logger = logger.Named("App")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// 每局使用主随机源派生的新种子，同一个 -seed 下重开的序列可复现
	seeds := rand.New(rand.NewSource(seed))

	// 整个进程只能有一个音频上下文，重复创建 App 时复用
	var chimes *scenes.ChimePlayer
	if !cfg.Mute {
		audioContext := audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(scenes.ChimeSampleRate)
		}
		chimes = scenes.NewChimePlayer(audioContext, logger)
	}

	sceneManager := scenes.NewSceneManager(logger)
	sceneManager.SetSceneFactory(func() scenes.Scene {
		return scenes.NewGameScene(gameConfig, sceneManager, rand.New(rand.NewSource(seeds.Int63())), chimes, logger)
	})
	if !sceneManager.Restart() {
		return nil, errors.New("游戏场景创建失败")
	}

	logger.Info("app initialized",
		zap.Int64("seed", seed),
		zap.String("config", configSource(cfg.ConfigPath)),
		zap.Int("tps", gameConfig.Loop.TicksPerSecond),
		zap.Bool("sound", chimes != nil))

	return &App{
		sceneManager: sceneManager,
		gameConfig:   gameConfig,
		logger:       logger,
	}, nil
}

func configSource(path string) string {
	if path == "" {
		return "embedded:" + config.DefaultConfigPath
	}
	return path
}

// Update 更新游戏逻辑
// 每个显示帧调用一次；模拟步长由场景内的 FixedStepLoop 决定
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			a.logger.Debug("delayed window resize", zap.Int("width", w), zap.Int("height", h))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(a.gameConfig.TickSeconds())
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸（竞技场尺寸）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 返回竞技场尺寸对应的窗口大小
func (a *App) WindowSize() (int, int) {
	return int(a.gameConfig.Arena.Width), int(a.gameConfig.Arena.Height)
}

// Logger 返回应用日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Close 刷新日志缓冲
func (a *App) Close() {
	_ = a.logger.Sync()
}
