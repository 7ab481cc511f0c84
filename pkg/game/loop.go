package game

import (
	"time"

	"go.uber.org/zap"
)

// FixedStepLoop 固定步长调度器
//
// 外部时钟以任意频率调用 Frame，调度器把流逝的时间累加起来，
// 按固定间隔执行 step 追赶进度，追赶完毕后只渲染一次。
// 模拟速度因此与显示帧率无关。
type FixedStepLoop struct {
	interval time.Duration
	step     func()
	render   func()
	logger   *zap.Logger

	started     bool
	last        time.Time
	accumulator time.Duration
	maxCatchUp  int // 单帧最多追赶的步数，0 表示不限
	skipped     int // 因追赶上限被丢弃的步数
}

// NewFixedStepLoop 创建调度器
//
// 参数:
//   - ticksPerSecond: 每秒模拟步数，<= 0 时按 60 处理
//   - step: 单步模拟
//   - render: 每次 Frame 追赶完成后调用一次，可为 nil
func NewFixedStepLoop(ticksPerSecond int, step, render func()) *FixedStepLoop {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	// 频率超过 1e9 时整除结果为 0，Frame 会永远追赶
	interval := time.Second / time.Duration(ticksPerSecond)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &FixedStepLoop{
		interval: interval,
		step:     step,
		render:   render,
		logger:   zap.NewNop(),
	}
}

// SetLogger 设置日志器
func (l *FixedStepLoop) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l.logger = logger.Named("Loop")
}

// SetMaxCatchUp 设置单帧最多追赶的步数
// 长时间卡顿（如窗口被拖动）后超出部分直接丢弃，避免一次性执行大量步长
func (l *FixedStepLoop) SetMaxCatchUp(n int) {
	if n < 0 {
		n = 0
	}
	l.maxCatchUp = n
}

// Interval 返回单步间隔
func (l *FixedStepLoop) Interval() time.Duration {
	return l.interval
}

// Skipped 返回因追赶上限而丢弃的步数
func (l *FixedStepLoop) Skipped() int {
	return l.skipped
}

// Reset 清空累积时间，下一次 Frame 重新开始计时
func (l *FixedStepLoop) Reset() {
	l.started = false
	l.accumulator = 0
}

// Frame 由外部时钟驱动一帧
//
// 首次调用只记录时间；之后累加流逝时间并执行所有到期的步长，
// 最后调用一次 render。时钟回退视为没有流逝时间。
//
// 返回:
//   - int: 本帧执行的步数
func (l *FixedStepLoop) Frame(now time.Time) int {
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}

	elapsed := now.Sub(l.last)
	l.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	l.accumulator += elapsed

	steps := 0
	for l.accumulator >= l.interval {
		if l.maxCatchUp > 0 && steps >= l.maxCatchUp {
			backlog := int(l.accumulator / l.interval)
			l.accumulator %= l.interval
			l.skipped += backlog
			l.logger.Debug("catch-up limit reached, dropping backlog",
				zap.Int("steps", steps),
				zap.Int("dropped", backlog))
			break
		}
		l.accumulator -= l.interval
		l.step()
		steps++
	}

	if l.render != nil {
		l.render()
	}
	return steps
}
