package game

import "github.com/decker502/spikedodge/pkg/utils"

// EventKind 模拟事件类型
type EventKind int

const (
	// EventHit 生成了命中闪光
	EventHit EventKind = iota
	// EventScore 尖刺被正向命中并计分
	EventScore
	// EventGameOver 玩家掉出竞技场
	EventGameOver
)

// String 返回事件名称
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventScore:
		return "score"
	case EventGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Event 一次模拟事件，供音效与诊断等旁路消费者使用
// 事件不会反过来影响模拟
type Event struct {
	Kind     EventKind
	Frame    int
	Position utils.Vector2

	Positive bool    // EventHit: 是否为正向命中
	Strength float64 // EventHit: 命中强度
	Points   int     // EventScore: 本次得分
}

// defaultEventCapacity 事件缓冲区默认容量
const defaultEventCapacity = 64

// eventBuffer 有界事件缓冲，满时丢弃最旧的事件
type eventBuffer struct {
	events  []Event
	limit   int
	dropped int
}

func newEventBuffer(limit int) eventBuffer {
	if limit <= 0 {
		limit = defaultEventCapacity
	}
	return eventBuffer{
		events: make([]Event, 0, limit),
		limit:  limit,
	}
}

func (b *eventBuffer) push(e Event) {
	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events = b.events[:len(b.events)-1]
		b.dropped++
	}
	b.events = append(b.events, e)
}

// drain 把缓冲区内容追加到 dst 并清空
func (b *eventBuffer) drain(dst []Event) []Event {
	dst = append(dst, b.events...)
	b.events = b.events[:0]
	return dst
}
