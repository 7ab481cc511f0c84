// Package ecs 提供实体存储
//
// 每种短生命周期实体（尖刺、击中特效、得分飘字、爆炸）各自拥有一个固定容量的
// Pool。实体对象只在首次需要时分配，之后在 active / inactive 两个索引集合之间
// 循环复用，永不释放，从而避免每帧分配并给每帧的碰撞开销设定上限。
package ecs

// SlotID 是实体在所属池中的槽位编号
// 槽位编号即实体身份：Despawn 按编号而非按值查找
type SlotID int

// InvalidSlot 表示生成失败（池已满）
const InvalidSlot SlotID = -1

// Pool 固定容量的实体池
//
// 不变量：
//   - len(active) + len(inactive) == Allocated() <= Cap()
//   - 每个已分配槽位恰好位于 active 或 inactive 之一
type Pool[T any] struct {
	name     string
	slots    []T      // 槽位数组，容量在创建时固定，append 不会重新分配
	live     []bool   // 槽位是否在 active 中
	active   []SlotID // 有序：更新与渲染顺序
	inactive []SlotID // 无序：按栈方式复用
	scratch  []SlotID // Each 迭代时的快照缓冲
	dropped  int      // 因池满而丢弃的生成请求数
}

// NewPool 创建一个容量为 capacity 的实体池
// capacity <= 0 时池永远为空，所有生成请求都会被丢弃
func NewPool[T any](name string, capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		name:     name,
		slots:    make([]T, 0, capacity),
		live:     make([]bool, 0, capacity),
		active:   make([]SlotID, 0, capacity),
		inactive: make([]SlotID, 0, capacity),
		scratch:  make([]SlotID, 0, capacity),
	}
}

// Name 返回池名称（用于日志）
func (p *Pool[T]) Name() string {
	return p.name
}

// Spawn 激活一个实体
//
// 优先复用 inactive 中的实体；否则在容量允许时分配新槽位；否则丢弃请求。
// init 在实体加入 active 之前调用，负责重新初始化实体的全部字段。
//
// 返回：
//   - SlotID: 被激活的槽位，丢弃时为 InvalidSlot
//   - bool: 是否成功
func (p *Pool[T]) Spawn(init func(id SlotID, e *T)) (SlotID, bool) {
	var id SlotID
	switch {
	case len(p.inactive) > 0:
		id = p.inactive[len(p.inactive)-1]
		p.inactive = p.inactive[:len(p.inactive)-1]
	case len(p.slots) < cap(p.slots):
		var zero T
		p.slots = append(p.slots, zero)
		p.live = append(p.live, false)
		id = SlotID(len(p.slots) - 1)
	default:
		p.dropped++
		return InvalidSlot, false
	}

	if init != nil {
		init(id, &p.slots[id])
	}
	p.live[id] = true
	p.active = append(p.active, id)
	return id, true
}

// Despawn 将实体从 active 移入 inactive
//
// 实体不会被销毁，调用方仍可在当前帧读取其最终状态用于渲染。
// 对未激活或不存在的槽位调用是空操作，返回 false。
func (p *Pool[T]) Despawn(id SlotID) bool {
	if !p.IsActive(id) {
		return false
	}
	for i, a := range p.active {
		if a == id {
			// 保持剩余实体的顺序
			copy(p.active[i:], p.active[i+1:])
			p.active = p.active[:len(p.active)-1]
			break
		}
	}
	p.live[id] = false
	p.inactive = append(p.inactive, id)
	return true
}

// Get 返回槽位上的实体指针
// 槽位未分配时返回 nil
func (p *Pool[T]) Get(id SlotID) *T {
	if id < 0 || int(id) >= len(p.slots) {
		return nil
	}
	return &p.slots[id]
}

// IsActive 检查槽位是否处于 active
func (p *Pool[T]) IsActive(id SlotID) bool {
	return id >= 0 && int(id) < len(p.live) && p.live[id]
}

// Active 返回 active 槽位列表（只读视图，不要修改或长期持有）
func (p *Pool[T]) Active() []SlotID {
	return p.active
}

// Each 按 active 顺序遍历实体
//
// 遍历的是 active 的快照，因此回调中可以安全地 Despawn 当前或其他实体；
// 在本轮中已被 Despawn 的实体会被跳过。
// Each 不可重入：回调中不能再对同一个池调用 Each。
func (p *Pool[T]) Each(fn func(id SlotID, e *T)) {
	p.scratch = append(p.scratch[:0], p.active...)
	for _, id := range p.scratch {
		if !p.live[id] {
			continue
		}
		fn(id, &p.slots[id])
	}
}

// Count 统计满足条件的 active 实体数量
func (p *Pool[T]) Count(pred func(e *T) bool) int {
	n := 0
	for _, id := range p.active {
		if pred(&p.slots[id]) {
			n++
		}
	}
	return n
}

// Reset 将所有 active 实体移入 inactive
func (p *Pool[T]) Reset() {
	for _, id := range p.active {
		p.live[id] = false
		p.inactive = append(p.inactive, id)
	}
	p.active = p.active[:0]
}

// Len 返回 active 实体数量
func (p *Pool[T]) Len() int {
	return len(p.active)
}

// InactiveLen 返回可复用实体数量
func (p *Pool[T]) InactiveLen() int {
	return len(p.inactive)
}

// Allocated 返回曾经分配过的槽位数量
func (p *Pool[T]) Allocated() int {
	return len(p.slots)
}

// Cap 返回池容量
func (p *Pool[T]) Cap() int {
	return cap(p.slots)
}

// Dropped 返回因池满而丢弃的生成请求总数
func (p *Pool[T]) Dropped() int {
	return p.dropped
}
