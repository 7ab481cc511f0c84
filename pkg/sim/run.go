package sim

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/game"
)

// Options 无界面运行参数
type Options struct {
	Seed  int64
	Ticks int
	// Pilot 为 nil 时玩家不转向
	Pilot Pilot
	// StopOnGameOver 游戏结束后停止，否则跑满 Ticks（爆炸和特效继续推进）
	StopOnGameOver bool
}

// Summary 一次运行的统计
type Summary struct {
	Seed          int64
	Ticks         int
	Score         int
	GameOver      bool
	GameOverFrame int
	// Canceled ctx 在跑满 Ticks 之前被取消，统计只覆盖已执行的帧
	Canceled bool
	Contacts      int
	ScoredSpikes  int

	Events        map[game.EventKind]int
	DroppedEvents int
	// Dropped 各实体池因容量耗尽丢弃的生成请求
	Dropped map[string]int
}

// Run 用合成时钟驱动 FixedStepLoop，每次 Frame 恰好推进一步
// ctx 取消后在当前帧结束时停止，返回已执行部分的统计
func Run(ctx context.Context, cfg *config.GameConfig, opts Options, logger *zap.Logger) Summary {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("Sim")

	world := game.NewWorld(cfg, rand.New(rand.NewSource(opts.Seed)), logger)
	var snap game.Snapshot

	step := func() {
		if opts.Pilot != nil {
			world.Snapshot(&snap)
			if x, ok := opts.Pilot.Steer(&snap); ok {
				world.Input.PointerMove(x)
			} else {
				world.Input.OtherKey()
			}
		}
		world.Update()
	}
	loop := game.NewFixedStepLoop(cfg.Loop.TicksPerSecond, step, nil)
	loop.SetLogger(logger)

	summary := Summary{
		Seed:    opts.Seed,
		Events:  make(map[game.EventKind]int),
		Dropped: make(map[string]int),
	}

	var events []game.Event
	now := time.Unix(0, 0)
	loop.Frame(now)
	for summary.Ticks < opts.Ticks {
		if ctx.Err() != nil {
			summary.Canceled = true
			break
		}
		now = now.Add(loop.Interval())
		summary.Ticks += loop.Frame(now)

		events = world.DrainEvents(events[:0])
		for _, e := range events {
			summary.Events[e.Kind]++
		}
		if opts.StopOnGameOver && world.Session.GameOver {
			break
		}
	}

	s := &world.Session
	summary.Score = s.DisplayScore()
	summary.GameOver = s.GameOver
	summary.GameOverFrame = s.GameOverFrame
	summary.Contacts = s.Contacts
	summary.ScoredSpikes = s.ScoredSpikes
	summary.DroppedEvents = world.DroppedEvents()
	summary.Dropped[world.Spikes.Name()] = world.Spikes.Dropped()
	summary.Dropped[world.Effects.HitEffects.Name()] = world.Effects.HitEffects.Dropped()
	summary.Dropped[world.Effects.ScoreEffects.Name()] = world.Effects.ScoreEffects.Dropped()
	summary.Dropped[world.Effects.Explosions.Name()] = world.Effects.Explosions.Dropped()

	logger.Debug("run finished",
		zap.Int64("seed", opts.Seed),
		zap.Int("ticks", summary.Ticks),
		zap.Int("score", summary.Score),
		zap.Bool("gameOver", summary.GameOver),
		zap.Bool("canceled", summary.Canceled))
	return summary
}
