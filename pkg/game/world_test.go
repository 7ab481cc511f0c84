package game

import (
	"math"
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/systems"
	"github.com/decker502/spikedodge/pkg/utils"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// newTestWorld 创建不会自动生成尖刺的世界，尖刺由测试手动放置
func newTestWorld(t *testing.T, mutate func(cfg *config.GameConfig)) *World {
	t.Helper()
	cfg := config.Defaults()
	cfg.Spike.SpawnInterval = 1 << 30
	if mutate != nil {
		mutate(cfg)
	}
	return NewWorld(cfg, rand.New(rand.NewSource(1)), zap.NewNop())
}

// placeSpike 在指定位置放置一根静止的尖刺
func placeSpike(t *testing.T, w *World, x, y, r float64) *components.SpikeComponent {
	t.Helper()
	id, ok := w.Spikes.Spawn(func(_ ecs.SlotID, s *components.SpikeComponent) {
		*s = components.SpikeComponent{Multiplier: 1}
		s.Position = utils.Vec2(x, y)
		s.Radius = r
	})
	if !ok {
		t.Fatal("spike pool full")
	}
	return w.Spikes.Get(id)
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(t, nil)

	if w.Player.Position != utils.Vec2(250, 250) || w.Player.Radius != 25 {
		t.Errorf("unexpected player start: %+v", w.Player)
	}
	if w.Spikes.Cap() != 20 {
		t.Errorf("spike pool capacity = %d, want 20", w.Spikes.Cap())
	}
	if w.Session.GameOver || w.Session.FrameCount != 0 || w.Session.Score != 0 {
		t.Errorf("session should start empty: %+v", w.Session)
	}

	// nil 依赖使用默认值
	if NewWorld(config.Defaults(), nil, nil) == nil {
		t.Fatal("NewWorld with nil rng and logger returned nil")
	}
}

func TestWorldPassiveScore(t *testing.T) {
	w := newTestWorld(t, nil)
	for i := 0; i < 60; i++ {
		w.Update()
	}
	if math.Abs(w.Session.Score-1) > 1e-6 {
		t.Errorf("60 ticks at 1 point/s should give 1 point, got %v", w.Session.Score)
	}
	if w.Session.FrameCount != 60 {
		t.Errorf("frame count = %d, want 60", w.Session.FrameCount)
	}
}

func TestWorldSpawnsSpikesOnInterval(t *testing.T) {
	w := NewWorld(config.Defaults(), rand.New(rand.NewSource(9)), nil)

	for i := 0; i < 9; i++ {
		w.Update()
	}
	if w.Spikes.Len() != 0 {
		t.Fatalf("no spike expected before frame 10, got %d", w.Spikes.Len())
	}
	w.Update()
	if w.Spikes.Len() != 1 {
		t.Fatalf("one spike expected at frame 10, got %d", w.Spikes.Len())
	}
	for i := 0; i < 10; i++ {
		w.Update()
	}
	if w.Spikes.Len() != 2 {
		t.Errorf("two spikes expected at frame 20, got %d", w.Spikes.Len())
	}
}

func TestWorldPositiveHitScoresOncePerLifetime(t *testing.T) {
	w := newTestWorld(t, nil)
	spike := placeSpike(t, w, 250, 280, 20)

	w.Update()

	if !spike.Scored || spike.Tint != components.TintPositive {
		t.Fatalf("spike should be scored and green, got %+v", *spike)
	}
	if w.Session.ScoredSpikes != 1 || w.Effects.ScoreEffects.Len() != 1 {
		t.Fatalf("expected one score and one popup, got %d / %d", w.Session.ScoredSpikes, w.Effects.ScoreEffects.Len())
	}
	if !near(w.Session.Score, 1+1.0/60) {
		t.Errorf("score = %v, want %v", w.Session.Score, 1+1.0/60)
	}
	if w.Player.Velocity.Y >= 0 {
		t.Errorf("player should be knocked upwards, vel=%+v", w.Player.Velocity)
	}

	events := w.DrainEvents(nil)
	kinds := eventKinds(events)
	if len(kinds) != 2 || kinds[0] != EventScore || kinds[1] != EventHit {
		t.Fatalf("unexpected events %v", kinds)
	}
	if events[0].Points != 1 || events[0].Position != utils.Vec2(250, 275) {
		t.Errorf("unexpected score event %+v", events[0])
	}
	if !events[1].Positive || !near(events[1].Strength, 270) {
		t.Errorf("unexpected hit event %+v", events[1])
	}

	// 同一次激活内再次正向命中：不再计分
	spike.Position = w.Player.Position
	spike.Position.Add(utils.Vec2(0, 30))
	spike.Velocity = utils.Vector2{}
	w.Update()

	if w.Session.Contacts != 2 {
		t.Fatalf("second contact did not happen, contacts=%d", w.Session.Contacts)
	}
	if w.Session.ScoredSpikes != 1 || w.Effects.ScoreEffects.Len() != 1 {
		t.Errorf("spike scored twice in one lifetime")
	}
	if !near(w.Session.Score, 1+2.0/60) {
		t.Errorf("score = %v, want %v", w.Session.Score, 1+2.0/60)
	}
}

func TestWorldMultiplierScore(t *testing.T) {
	w := newTestWorld(t, nil)
	spike := placeSpike(t, w, 250, 280, 20)
	spike.Multiplier = 2

	w.Update()

	if w.Session.DisplayScore() != 2 {
		t.Errorf("boosted spike should score 2, got %v", w.Session.Score)
	}
}

func TestWorldNegativeHit(t *testing.T) {
	w := newTestWorld(t, nil)
	spike := placeSpike(t, w, 250, 220, 20)

	w.Update()

	if spike.Scored || spike.Tint != components.TintNegative {
		t.Errorf("downward contact must not score, got %+v", *spike)
	}
	if w.Player.Velocity.Y <= 0 {
		t.Errorf("player should be pushed down, vel=%+v", w.Player.Velocity)
	}
	if w.Effects.HitEffects.Len() != 1 {
		t.Fatalf("expected a hit flash, got %d", w.Effects.HitEffects.Len())
	}
	flash := w.Effects.HitEffects.Get(w.Effects.HitEffects.Active()[0])
	if flash.Tint != components.TintNegative {
		t.Errorf("flash should be red, got %v", flash.Tint)
	}
}

func TestWorldEffectCooldown(t *testing.T) {
	t.Run("强度不超过冷却时不生成闪光", func(t *testing.T) {
		w := newTestWorld(t, nil)
		w.Session.EffectCooldown = 1000
		placeSpike(t, w, 250, 280, 20)

		w.Update()

		if w.Effects.HitEffects.Len() != 0 {
			t.Error("hit flash should be suppressed by cooldown")
		}
		if w.Session.EffectCooldown != 999 {
			t.Errorf("cooldown should only tick down, got %d", w.Session.EffectCooldown)
		}
		for _, e := range w.DrainEvents(nil) {
			if e.Kind == EventHit {
				t.Error("suppressed flash must not emit a hit event")
			}
		}
	})

	t.Run("闪光后冷却等于四舍五入的强度", func(t *testing.T) {
		w := newTestWorld(t, nil)
		placeSpike(t, w, 250, 280, 20)

		w.Update()

		if w.Effects.HitEffects.Len() != 1 {
			t.Fatalf("expected a hit flash, got %d", w.Effects.HitEffects.Len())
		}
		if w.Session.EffectCooldown != 270 {
			t.Errorf("cooldown = %d, want 270", w.Session.EffectCooldown)
		}
		flash := w.Effects.HitEffects.Get(w.Effects.HitEffects.Active()[0])
		if !near(flash.Strength, 270) {
			t.Errorf("flash radius = %v, want 270", flash.Strength)
		}
	})

	t.Run("冷却逐帧递减到零", func(t *testing.T) {
		w := newTestWorld(t, nil)
		w.Session.EffectCooldown = 3
		for i := 0; i < 5; i++ {
			w.Update()
		}
		if w.Session.EffectCooldown != 0 {
			t.Errorf("cooldown should stop at 0, got %d", w.Session.EffectCooldown)
		}
	})
}

func TestWorldSteering(t *testing.T) {
	tests := []struct {
		name  string
		input func(in *systems.InputSystem)
		wantV float64
	}{
		{"无输入", func(in *systems.InputSystem) {}, 0},
		{"键盘向右", func(in *systems.InputSystem) { in.Key(systems.DirectionRight, true) }, 1.7},
		{"键盘向左", func(in *systems.InputSystem) { in.Key(systems.DirectionLeft, true) }, -1.7},
		{"指针在左侧", func(in *systems.InputSystem) { in.PointerMove(100) }, -1.7},
		{"指针靠近玩家", func(in *systems.InputSystem) { in.PointerMove(265) }, 0.425},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			tt.input(w.Input)
			w.Update()
			if !near(w.Player.Velocity.X, tt.wantV) {
				t.Errorf("vel.x = %v, want %v", w.Player.Velocity.X, tt.wantV)
			}
		})
	}
}

func TestWorldGameOverFiresOnce(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Player.Position.Y = 600

	w.Update()

	if !w.Session.GameOver || w.Session.GameOverFrame != 1 {
		t.Fatalf("game should be over at frame 1: %+v", w.Session)
	}
	if w.Effects.Explosions.Len() != 1 {
		t.Fatalf("expected one explosion, got %d", w.Effects.Explosions.Len())
	}
	flash := w.Effects.HitEffects.Get(w.Effects.HitEffects.Active()[0])
	if flash.Tint != components.TintNeutral || flash.Strength != 70 {
		t.Errorf("explosion flash should be black with strength 70, got %+v", *flash)
	}

	scoreAtEnd := w.Session.Score
	gameOvers := 0
	events := w.DrainEvents(nil)
	for i := 0; i < 60; i++ {
		w.Update()
		events = w.DrainEvents(events)
	}
	for _, e := range events {
		if e.Kind == EventGameOver {
			gameOvers++
		}
	}

	if gameOvers != 1 {
		t.Errorf("game over should fire exactly once, got %d", gameOvers)
	}
	if w.Session.Score != scoreAtEnd {
		t.Errorf("passive score must stop after game over: %v -> %v", scoreAtEnd, w.Session.Score)
	}
	if w.Effects.Explosions.Len() != 0 {
		t.Error("explosion should have expired")
	}
	if w.Session.FrameCount != 61 {
		t.Errorf("frame count keeps advancing, got %d", w.Session.FrameCount)
	}
}

func TestWorldStopsSpawningAfterGameOver(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.GameConfig) {
		cfg.Spike.SpawnInterval = 1
	})
	w.Player.Position.Y = 600

	for i := 0; i < 10; i++ {
		w.Update()
	}
	// 第 1 帧在结束判定之前生成了一根
	if w.Spikes.Len() != 1 {
		t.Errorf("expected spawning to stop after game over, got %d spikes", w.Spikes.Len())
	}
}

func TestWorldExplosionPushesSpikes(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Effects.SpawnExplosion(utils.Vec2(100, 100))
	spike := placeSpike(t, w, 100, 150, 20)

	w.Update()

	if spike.Velocity.Y <= 0 || spike.Position.Y <= 150 {
		t.Errorf("spike should be pushed away from the explosion: %+v", spike.Kinetics)
	}
	e := w.Effects.Explosions.Get(w.Effects.Explosions.Active()[0])
	if e.Position != utils.Vec2(100, 100) {
		t.Errorf("explosion must stay anchored, moved to %+v", e.Position)
	}
	if e.Radius != 180 {
		t.Errorf("explosion radius = %v, want 180", e.Radius)
	}
}

func TestWorldDespawnsOutOfBoundsSpikes(t *testing.T) {
	w := newTestWorld(t, nil)
	placeSpike(t, w, 50, 545, 20)

	w.Update()

	if w.Spikes.Len() != 0 || w.Spikes.InactiveLen() != 1 {
		t.Errorf("spike below the arena should be recycled: active=%d inactive=%d",
			w.Spikes.Len(), w.Spikes.InactiveLen())
	}
}

func TestWorldLogsPoolExhaustion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Defaults()
	cfg.Spike.PoolSize = 1
	cfg.Spike.SpawnInterval = 1
	w := NewWorld(cfg, rand.New(rand.NewSource(3)), zap.New(core))

	w.Update()
	w.Update()

	if w.Spikes.Dropped() != 1 {
		t.Fatalf("expected one dropped spawn, got %d", w.Spikes.Dropped())
	}
	entries := logs.FilterMessage("pool exhausted, spawn dropped").All()
	if len(entries) != 1 {
		t.Fatalf("expected one exhaustion log, got %d", len(entries))
	}
	if pool := entries[0].ContextMap()["pool"]; pool != "spike" {
		t.Errorf("logged pool = %v, want spike", pool)
	}
	if entries[0].LoggerName != "World" {
		t.Errorf("logger name = %q, want World", entries[0].LoggerName)
	}
}

func TestWorldDeterministicWithSeed(t *testing.T) {
	run := func() *World {
		w := NewWorld(config.Defaults(), rand.New(rand.NewSource(7)), nil)
		for i := 0; i < 900; i++ {
			switch {
			case i%120 == 0:
				w.Input.Key(systems.DirectionLeft, true)
			case i%120 == 60:
				w.Input.Key(systems.DirectionLeft, false)
				w.Input.PointerMove(float64(i % 500))
			}
			w.Update()
		}
		return w
	}

	a, b := run(), run()
	if a.Session != b.Session {
		t.Errorf("sessions diverged:\n%+v\n%+v", a.Session, b.Session)
	}
	if a.Player != b.Player {
		t.Errorf("players diverged: %+v vs %+v", a.Player, b.Player)
	}
}

func TestEventBufferDropsOldest(t *testing.T) {
	buf := newEventBuffer(4)
	for i := 0; i < 6; i++ {
		buf.push(Event{Kind: EventHit, Frame: i})
	}

	events := buf.drain(nil)
	if len(events) != 4 || events[0].Frame != 2 || events[3].Frame != 5 {
		t.Errorf("unexpected buffer contents %+v", events)
	}
	if buf.dropped != 2 {
		t.Errorf("dropped = %d, want 2", buf.dropped)
	}
	if len(buf.drain(nil)) != 0 {
		t.Error("drain should empty the buffer")
	}
}

func TestEventKindString(t *testing.T) {
	for kind, want := range map[EventKind]string{
		EventHit:      "hit",
		EventScore:    "score",
		EventGameOver: "gameOver",
		EventKind(99): "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
