package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/utils"
)

func newTestSpikeSystem(cfg *config.GameConfig, seed int64) *SpikeSystem {
	return NewSpikeSystem(cfg, rand.New(rand.NewSource(seed)))
}

func TestSpikeSpawnRanges(t *testing.T) {
	cfg := config.Defaults()
	ss := newTestSpikeSystem(cfg, 1)

	for i := 0; i < 500; i++ {
		var s components.SpikeComponent
		ss.Spawn(&s, 0)

		if s.Radius < cfg.Spike.MinRadius || s.Radius > cfg.Spike.MaxRadius {
			t.Fatalf("radius %v outside [%v, %v]", s.Radius, cfg.Spike.MinRadius, cfg.Spike.MaxRadius)
		}
		if s.Position.X < 0 || s.Position.X >= cfg.Arena.Width {
			t.Fatalf("x %v outside arena", s.Position.X)
		}
		// 从顶部边缘外侧进入
		if s.Position.Y != -s.Radius {
			t.Fatalf("y = %v, want %v", s.Position.Y, -s.Radius)
		}
		if s.TargetVelocity < 0 || s.TargetVelocity > cfg.Spike.MaxSpawnVelocity {
			t.Fatalf("target velocity %v out of range", s.TargetVelocity)
		}
		if s.Velocity != utils.Vec2(0, s.TargetVelocity) {
			t.Fatalf("initial velocity %+v should be straight down at target speed", s.Velocity)
		}
		if s.Multiplier != 1 && s.Multiplier != cfg.Spike.MultiplierValue {
			t.Fatalf("unexpected multiplier %d", s.Multiplier)
		}
	}
}

func TestSpikeSpawnResetsRecycledState(t *testing.T) {
	ss := newTestSpikeSystem(config.Defaults(), 2)
	s := components.SpikeComponent{
		Scored:     true,
		Tint:       components.TintPositive,
		FlashTicks: 12,
		Multiplier: 2,
	}
	s.Velocity = utils.Vec2(7, -3)

	// 倍率上限已满：复用的实例必须回到 1 倍
	ss.Spawn(&s, 2)

	if s.Scored || s.Tint != components.TintNeutral || s.FlashTicks != 0 {
		t.Errorf("spawn should reset hit state, got %+v", s)
	}
	if s.Multiplier != 1 {
		t.Errorf("multiplier should reset to 1 when the cap is reached, got %d", s.Multiplier)
	}
	if s.Velocity.X != 0 {
		t.Errorf("horizontal velocity should reset, got %v", s.Velocity.X)
	}
}

func TestSpikeMultiplierCap(t *testing.T) {
	cfg := config.Defaults()
	cfg.Spike.MultiplierChance = 1 // 每次都想要倍率
	cfg.Spike.PoolSize = 10
	ss := newTestSpikeSystem(cfg, 3)
	pool := ecs.NewPool[components.SpikeComponent]("spike", cfg.Spike.PoolSize)

	for i := 0; i < cfg.Spike.PoolSize; i++ {
		if _, ok := ss.SpawnInto(pool); !ok {
			t.Fatalf("spawn %d dropped", i)
		}
	}

	boosted := pool.Count(func(s *components.SpikeComponent) bool { return s.Multiplier > 1 })
	if boosted != cfg.Spike.MaxMultiplierSpikes {
		t.Errorf("expected %d boosted spikes, got %d", cfg.Spike.MaxMultiplierSpikes, boosted)
	}
}

func TestSpikeUpdateAsymmetricFriction(t *testing.T) {
	cfg := config.Defaults()
	ss := newTestSpikeSystem(cfg, 4)

	t.Run("超过终端速度时竖直衰减", func(t *testing.T) {
		s := components.SpikeComponent{TargetVelocity: 5}
		s.Velocity = utils.Vec2(10, 20)
		ss.Update(&s)

		if !near(s.Velocity.X, 8) || !near(s.Velocity.Y, 16) {
			t.Errorf("velocity = %+v, want (8, 16)", s.Velocity)
		}
	})

	t.Run("低于终端速度时保持竖直速度", func(t *testing.T) {
		s := components.SpikeComponent{TargetVelocity: 5}
		s.Velocity = utils.Vec2(10, 4)
		ss.Update(&s)

		if !near(s.Velocity.X, 8) || s.Velocity.Y != 4 {
			t.Errorf("velocity = %+v, want (8, 4)", s.Velocity)
		}
		if !near(s.Position.X, 8) || s.Position.Y != 4 {
			t.Errorf("position = %+v, want (8, 4)", s.Position)
		}
	})

	t.Run("被弹飞后回落到终端速度", func(t *testing.T) {
		s := components.SpikeComponent{TargetVelocity: 3}
		s.Velocity = utils.Vec2(0, -40)
		for i := 0; i < 60; i++ {
			ss.Update(&s)
		}
		if s.Velocity.Y < -3-epsilon || s.Velocity.Y > 3+epsilon {
			t.Errorf("vertical speed should settle within terminal velocity, got %v", s.Velocity.Y)
		}
	})
}

func TestSpikeHitFlash(t *testing.T) {
	cfg := config.Defaults()
	cfg.Spike.FlashTicks = 3
	ss := newTestSpikeSystem(cfg, 5)

	var s components.SpikeComponent
	ss.Hit(&s, components.TintNegative)
	if s.Tint != components.TintNegative || s.FlashTicks != 3 {
		t.Fatalf("hit should set tint and timer, got %+v", s)
	}
	if ss.FlashFraction(&s) != 1 {
		t.Errorf("flash fraction = %v, want 1", ss.FlashFraction(&s))
	}

	for i := 0; i < 2; i++ {
		ss.Update(&s)
		if s.Tint != components.TintNegative {
			t.Fatalf("tint reverted too early at tick %d", i)
		}
	}
	ss.Update(&s)
	if s.Tint != components.TintNeutral || s.FlashTicks != 0 {
		t.Errorf("tint should revert when the timer reaches 0, got %+v", s)
	}

	// 计时为 0 时不再递减
	ss.Update(&s)
	if s.FlashTicks != 0 {
		t.Errorf("flash timer went negative: %d", s.FlashTicks)
	}
}

func TestSpikeOutOfBounds(t *testing.T) {
	ss := newTestSpikeSystem(config.Defaults(), 6)

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"刚生成", -20, false},
		{"场内", 250, false},
		{"底部余量内", 525, false},
		{"越过底部余量", 530.5, true},
		{"顶部余量内", -25, false},
		{"越过顶部余量", -30.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := components.SpikeComponent{}
			s.Radius = 20
			s.Position.Y = tt.y
			if got := ss.OutOfBounds(&s); got != tt.want {
				t.Errorf("OutOfBounds(y=%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}
