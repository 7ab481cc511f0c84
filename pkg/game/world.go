// Package game 实现一局游戏的模拟核心
//
// World 持有玩家、尖刺池、特效系统和会话状态，每次 Update 推进一个固定步长。
// 渲染和设备输入都在核心之外：核心只消费 systems.InputSignal，
// 只通过 Snapshot 和 Event 向外暴露状态。
package game

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/systems"
)

// World 一局游戏的模拟世界
//
// World 不是并发安全的：所有方法都必须在同一个 goroutine 上调用。
type World struct {
	cfg    *config.GameConfig
	logger *zap.Logger

	Session Session
	Player  components.PlayerComponent
	Spikes  *ecs.Pool[components.SpikeComponent]
	Effects *systems.EffectSystem
	Input   *systems.InputSystem

	playerSystem *systems.PlayerSystem
	spikeSystem  *systems.SpikeSystem

	pointsPerTick float64
	events        eventBuffer
}

// NewWorld 创建一局新游戏
//
// 参数:
//   - cfg: 已校验的游戏配置，World 只读不写
//   - rng: 随机源，nil 时使用当前时间作为种子
//   - logger: 日志器，nil 时不输出
//
// 返回:
//   - *World: 玩家位于起始点、所有池为空的世界
func NewWorld(cfg *config.GameConfig, rng *rand.Rand, logger *zap.Logger) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &World{
		cfg:           cfg,
		logger:        logger.Named("World"),
		Spikes:        ecs.NewPool[components.SpikeComponent]("spike", cfg.Spike.PoolSize),
		Effects:       systems.NewEffectSystem(cfg),
		Input:         systems.NewInputSystem(cfg.Player.SteeringReach),
		playerSystem:  systems.NewPlayerSystem(cfg),
		spikeSystem:   systems.NewSpikeSystem(cfg, rng),
		pointsPerTick: cfg.Scoring.PointsPerSecond / float64(cfg.Loop.TicksPerSecond),
		events:        newEventBuffer(defaultEventCapacity),
	}
	w.playerSystem.Reset(&w.Player)

	w.logger.Debug("world created",
		zap.Float64("width", cfg.Arena.Width),
		zap.Float64("height", cfg.Arena.Height),
		zap.Int("spikePool", cfg.Spike.PoolSize))
	return w
}

// Config 返回世界使用的配置
func (w *World) Config() *config.GameConfig {
	return w.cfg
}

// Update 推进一个模拟步长
//
// 顺序固定：计帧与被动得分 → 生成尖刺 → 冷却递减 → 转向 →
// 爆炸 → 尖刺（更新、碰撞、回收）→ 玩家积分 → 结束判定 → 特效。
func (w *World) Update() {
	s := &w.Session

	s.FrameCount++
	if !s.GameOver {
		s.Score += w.pointsPerTick
	}

	if !s.GameOver && w.cfg.Spike.SpawnInterval > 0 && s.FrameCount%w.cfg.Spike.SpawnInterval == 0 {
		w.spawnSpike()
	}

	if s.EffectCooldown > 0 {
		s.EffectCooldown--
	}

	if targetX, ok := w.Input.Target(w.Player.Position.X); ok {
		w.playerSystem.MoveTowardsTarget(&w.Player, targetX)
	}

	w.updateExplosions()
	w.updateSpikes()

	w.playerSystem.Update(&w.Player)

	if !s.GameOver && w.playerSystem.FellOut(&w.Player) {
		w.endGame()
	}

	w.Effects.Update()
}

func (w *World) spawnSpike() {
	if _, ok := w.spikeSystem.SpawnInto(w.Spikes); !ok {
		w.logDrop(w.Spikes.Name(), w.Spikes.Dropped())
	}
}

// updateExplosions 爆炸作为施力方推开玩家和所有尖刺
// 爆炸本身被锚定：碰撞冲量会写入它的速度，但它的位置从不积分
func (w *World) updateExplosions() {
	ratio := w.cfg.Collision.ExplosionRatio
	w.Effects.Explosions.Each(func(id ecs.SlotID, e *components.ExplosionComponent) {
		if !w.Effects.UpdateExplosion(id, e) {
			return
		}
		systems.ResolveCollision(e, &w.Player, ratio)
		w.Spikes.Each(func(_ ecs.SlotID, spike *components.SpikeComponent) {
			systems.ResolveCollision(e, spike, ratio)
		})
	})
}

func (w *World) updateSpikes() {
	ratio := w.cfg.Collision.PlayerSpikeRatio
	w.Spikes.Each(func(id ecs.SlotID, spike *components.SpikeComponent) {
		w.spikeSystem.Update(spike)

		if result, ok := systems.ResolveCollision(&w.Player, spike, ratio); ok {
			w.onPlayerContact(spike, result)
		}

		if w.spikeSystem.OutOfBounds(spike) {
			w.Spikes.Despawn(id)
		}
	})
}

// onPlayerContact 处理玩家与尖刺的一次接触
//
// 玩家被向上推开（ImpulseA.Y < 0）即为正向命中。
// 正向命中每根尖刺每次激活最多计分一次；
// 命中闪光受冷却抑制：强度不超过当前冷却时不生成。
func (w *World) onPlayerContact(spike *components.SpikeComponent, result systems.CollisionResult) {
	s := &w.Session
	s.Contacts++

	positive := result.ImpulseA.Y < 0
	tint := components.TintNegative
	if positive {
		tint = components.TintPositive
	}
	w.spikeSystem.Hit(spike, tint)

	if positive && !spike.Scored {
		spike.Scored = true
		points := w.cfg.Scoring.PointsPerHit * spike.Multiplier
		s.Score += float64(points)
		s.ScoredSpikes++
		if !w.Effects.SpawnScoreEffect(result.ContactPosition, points) {
			w.logDrop(w.Effects.ScoreEffects.Name(), w.Effects.ScoreEffects.Dropped())
		}
		w.events.push(Event{
			Kind:     EventScore,
			Frame:    s.FrameCount,
			Position: result.ContactPosition,
			Points:   points,
		})
	}

	strength := math.Abs(result.ImpulseA.Y) * w.cfg.HitEffect.StrengthScale
	if strength > float64(s.EffectCooldown) {
		radius := math.Max(strength, w.cfg.HitEffect.MinStrength)
		if !w.Effects.SpawnHitEffect(result.ContactPosition, w.Player.Velocity, tint, radius) {
			w.logDrop(w.Effects.HitEffects.Name(), w.Effects.HitEffects.Dropped())
		}
		s.EffectCooldown = int(math.Round(strength))
		w.events.push(Event{
			Kind:     EventHit,
			Frame:    s.FrameCount,
			Position: result.ContactPosition,
			Positive: positive,
			Strength: strength,
		})
	}
}

// endGame 单向进入结束状态，在玩家位置生成爆炸
func (w *World) endGame() {
	s := &w.Session
	s.GameOver = true
	s.GameOverFrame = s.FrameCount

	pos := w.Player.Position
	if !w.Effects.SpawnExplosion(pos) {
		w.logDrop(w.Effects.Explosions.Name(), w.Effects.Explosions.Dropped())
	}
	w.events.push(Event{
		Kind:     EventGameOver,
		Frame:    s.FrameCount,
		Position: pos,
	})

	w.logger.Info("game over",
		zap.Int("frame", s.FrameCount),
		zap.Int("score", s.DisplayScore()),
		zap.Int("scoredSpikes", s.ScoredSpikes))
}

func (w *World) logDrop(pool string, dropped int) {
	w.logger.Debug("pool exhausted, spawn dropped",
		zap.String("pool", pool),
		zap.Int("frame", w.Session.FrameCount),
		zap.Int("dropped", dropped))
}

// DrainEvents 把自上次调用以来的事件追加到 dst 并清空内部缓冲
//
// 缓冲区有界：消费者长时间不取时最旧的事件会被丢弃。
func (w *World) DrainEvents(dst []Event) []Event {
	return w.events.drain(dst)
}

// DroppedEvents 返回因缓冲区满而丢弃的事件数
func (w *World) DroppedEvents() int {
	return w.events.dropped
}
