package systems

import (
	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/config"
	"github.com/decker502/spikedodge/pkg/ecs"
	"github.com/decker502/spikedodge/pkg/utils"
)

// EffectSystem 管理命中闪光、得分飘字和爆炸三种短生命周期特效
//
// 三者都按固定帧数倒计时，计时归零后从所属池中回收自身。
// 渲染层只需要剩余比例（Fraction），缓动由渲染层完成。
type EffectSystem struct {
	hit       config.HitEffectConfig
	score     config.ScoreEffectConfig
	explosion config.ExplosionConfig

	HitEffects   *ecs.Pool[components.HitEffectComponent]
	ScoreEffects *ecs.Pool[components.ScoreEffectComponent]
	Explosions   *ecs.Pool[components.ExplosionComponent]
}

// NewEffectSystem 创建特效系统及其三个实体池
func NewEffectSystem(cfg *config.GameConfig) *EffectSystem {
	return &EffectSystem{
		hit:          cfg.HitEffect,
		score:        cfg.ScoreEffect,
		explosion:    cfg.Explosion,
		HitEffects:   ecs.NewPool[components.HitEffectComponent]("hitEffect", cfg.HitEffect.PoolSize),
		ScoreEffects: ecs.NewPool[components.ScoreEffectComponent]("scoreEffect", cfg.ScoreEffect.PoolSize),
		Explosions:   ecs.NewPool[components.ExplosionComponent]("explosion", cfg.Explosion.PoolSize),
	}
}

// SpawnHitEffect 在 pos 处生成命中闪光
// pos 与 vel 按值拷贝，之后与来源实体互不影响
func (es *EffectSystem) SpawnHitEffect(pos, vel utils.Vector2, tint components.Tint, strength float64) bool {
	_, ok := es.HitEffects.Spawn(func(_ ecs.SlotID, e *components.HitEffectComponent) {
		e.Position = pos
		e.Velocity = vel
		e.Tint = tint
		e.Strength = strength
		e.Ticks = es.hit.Ticks
	})
	return ok
}

// SpawnScoreEffect 在 pos 处生成得分飘字
func (es *EffectSystem) SpawnScoreEffect(pos utils.Vector2, score int) bool {
	_, ok := es.ScoreEffects.Spawn(func(_ ecs.SlotID, e *components.ScoreEffectComponent) {
		e.Position = pos
		e.Score = score
		e.Ticks = es.score.Ticks
	})
	return ok
}

// SpawnExplosion 在 pos 处生成爆炸，并附带一个黑色的命中闪光
func (es *EffectSystem) SpawnExplosion(pos utils.Vector2) bool {
	_, ok := es.Explosions.Spawn(func(_ ecs.SlotID, e *components.ExplosionComponent) {
		e.Position = pos
		e.Velocity = utils.Vector2{}
		e.Radius = 0
		e.Ticks = es.explosion.Ticks
	})
	if ok {
		es.SpawnHitEffect(pos, utils.Vector2{}, components.TintNeutral, es.explosion.FlashStrength)
	}
	return ok
}

// UpdateExplosion 更新一个爆炸
//
// 半径 = 剩余帧数 * RadiusPerTick，随时间收缩。
// 计时已经为 0 时回收并返回 false（本帧不再参与碰撞）。
func (es *EffectSystem) UpdateExplosion(id ecs.SlotID, e *components.ExplosionComponent) bool {
	e.Radius = float64(e.Ticks) * es.explosion.RadiusPerTick
	if e.Ticks == 0 {
		es.Explosions.Despawn(id)
		return false
	}
	e.Ticks--
	return true
}

// Update 推进所有命中闪光和得分飘字
func (es *EffectSystem) Update() {
	es.HitEffects.Each(func(id ecs.SlotID, e *components.HitEffectComponent) {
		e.Ticks--
		if e.Ticks <= 0 {
			e.Ticks = 0
			es.HitEffects.Despawn(id)
		}
		e.Velocity.Scale(es.hit.Friction)
		e.Position.Add(e.Velocity)
	})

	es.ScoreEffects.Each(func(id ecs.SlotID, e *components.ScoreEffectComponent) {
		e.Ticks--
		if e.Ticks <= 0 {
			e.Ticks = 0
			es.ScoreEffects.Despawn(id)
		}
	})
}

// HitFraction 命中闪光剩余比例
func (es *EffectSystem) HitFraction(e *components.HitEffectComponent) float64 {
	return fraction(e.Ticks, es.hit.Ticks)
}

// ScoreFraction 得分飘字剩余比例
func (es *EffectSystem) ScoreFraction(e *components.ScoreEffectComponent) float64 {
	return fraction(e.Ticks, es.score.Ticks)
}

// ExplosionFraction 爆炸剩余比例
func (es *EffectSystem) ExplosionFraction(e *components.ExplosionComponent) float64 {
	return fraction(e.Ticks, es.explosion.Ticks)
}

// Reset 回收全部特效
func (es *EffectSystem) Reset() {
	es.HitEffects.Reset()
	es.ScoreEffects.Reset()
	es.Explosions.Reset()
}

func fraction(ticks, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	return utils.Clamp01(float64(ticks) / float64(duration))
}
