package ecs

import "testing"

type benchmarkEntity struct {
	X, Y   float64
	VX, VY float64
	Timer  int
}

// BenchmarkPoolSpawnDespawn 测试满载池的生成/回收循环（不应分配内存）
func BenchmarkPoolSpawnDespawn(b *testing.B) {
	p := NewPool[benchmarkEntity]("bench", 64)
	for i := 0; i < 64; i++ {
		p.Spawn(nil)
	}
	init := func(_ SlotID, e *benchmarkEntity) {
		e.Timer = 20
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Despawn(p.Active()[0])
		p.Spawn(init)
	}
}

// BenchmarkPoolEach 测试遍历 20 个活跃实体
func BenchmarkPoolEach(b *testing.B) {
	p := NewPool[benchmarkEntity]("bench", 20)
	for i := 0; i < 20; i++ {
		p.Spawn(nil)
	}
	step := func(_ SlotID, e *benchmarkEntity) {
		e.X += e.VX
		e.Y += e.VY
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Each(step)
	}
}
