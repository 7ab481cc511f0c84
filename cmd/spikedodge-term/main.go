// spikedodge-term 在终端里运行 Spike Dodge
//
// 方向键或 a/d 移动，鼠标横向移动切换到指针模式，q/Esc 退出。
// 终端被画面占用，日志写入 -log 指定的文件。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/logging"
	"github.com/decker502/spikedodge/pkg/tui"
)

var (
	verbose    = flag.Bool("verbose", false, "启用调试日志")
	configPath = flag.String("config", "", "游戏配置文件路径（.yaml 或 .toml），默认使用内置配置")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示按当前时间播种")
	logPath    = flag.String("log", "spikedodge.log", "日志文件路径")
	mute       = flag.Bool("mute", false, "关闭声音")
	hold       = flag.Duration("hold", 0, "方向键按下后视为按住的时长，0 使用默认值")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spikedodge-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return fmt.Errorf("游戏配置加载失败: %w", err)
	}

	logger, err := logging.NewFile(cfg.Logging, *verbose, *logPath)
	if err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink tui.EventSink
	if !*mute {
		sound := tui.NewSoundManager(logger)
		// 没有音频设备时静音运行
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, running muted", zap.Error(err))
		} else {
			defer sound.Cleanup()
			sink = sound
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	runner := tui.NewRunner(screen, cfg, tui.Options{
		Seed:         *seed,
		HoldDuration: *hold,
		Sink:         sink,
	}, logger)

	logger.Info("terminal frontend started",
		zap.Int64("seed", *seed),
		zap.Int("tps", cfg.Loop.TicksPerSecond),
		zap.Bool("sound", sink != nil))

	if err := runner.Run(ctx); err != nil {
		return err
	}

	w := runner.World()
	logger.Info("terminal frontend stopped",
		zap.Int("score", w.Session.DisplayScore()),
		zap.Int("restarts", runner.Restarts()))
	return nil
}
