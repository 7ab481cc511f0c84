// spikedodge-sim 无界面运行若干局模拟并输出统计
//
// 用于调参：修改配置后对比同一组种子下的得分、接触次数和池耗尽情况。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/game"
	"github.com/decker502/spikedodge/pkg/logging"
	"github.com/decker502/spikedodge/pkg/sim"
)

var (
	verbose    = flag.Bool("verbose", false, "启用调试日志")
	configPath = flag.String("config", "", "游戏配置文件路径（.yaml 或 .toml），默认使用内置配置")
	seed       = flag.Int64("seed", 1, "第一局的随机种子，后续各局依次加一")
	rounds     = flag.Int("rounds", 1, "模拟局数")
	ticks      = flag.Int("ticks", 3600, "每局最多模拟的帧数")
	autopilot  = flag.Bool("autopilot", true, "启用内置自动驾驶")
	script     = flag.String("script", "", "Lua 驾驶脚本路径，设置后替代内置自动驾驶")
	keepGoing  = flag.Bool("keep-going", false, "游戏结束后继续模拟到 -ticks")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spikedodge-sim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return fmt.Errorf("游戏配置加载失败: %w", err)
	}

	logger, err := logging.New(cfg.Logging, *verbose)
	if err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pilot sim.Pilot
	switch {
	case *script != "":
		sp, err := sim.LoadScriptPilot(*script, logger)
		if err != nil {
			return fmt.Errorf("驾驶脚本加载失败: %w", err)
		}
		defer sp.Close()
		pilot = sp
	case *autopilot:
		pilot = sim.NewAutopilot()
	}

	total, survived, played := 0, 0, 0
	for i := 0; i < *rounds && ctx.Err() == nil; i++ {
		s := sim.Run(ctx, cfg, sim.Options{
			Seed:           *seed + int64(i),
			Ticks:          *ticks,
			Pilot:          pilot,
			StopOnGameOver: !*keepGoing,
		}, logger)

		played++
		total += s.Score
		if !s.GameOver {
			survived++
		}
		logger.Info("round finished",
			zap.Int64("seed", s.Seed),
			zap.Int("ticks", s.Ticks),
			zap.Int("score", s.Score),
			zap.Bool("gameOver", s.GameOver),
			zap.Int("gameOverFrame", s.GameOverFrame),
			zap.Bool("canceled", s.Canceled),
			zap.Int("contacts", s.Contacts),
			zap.Int("scoredSpikes", s.ScoredSpikes),
			zap.Int("hits", s.Events[game.EventHit]),
			zap.Any("dropped", s.Dropped),
			zap.Int("droppedEvents", s.DroppedEvents))
	}

	if played > 0 {
		logger.Info("summary",
			zap.Int("rounds", played),
			zap.Int("survived", survived),
			zap.Float64("meanScore", float64(total)/float64(played)),
			zap.Bool("interrupted", ctx.Err() != nil))
	}
	return nil
}
