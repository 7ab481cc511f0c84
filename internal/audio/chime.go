// Package audio 合成模拟事件对应的提示音
//
// 两个前端共用同一份事件到提示音的映射：终端前端交给 beep 播放，
// 图形前端把 Tone 生成的 PCM 交给 Ebitengine。
package audio

import (
	"math"
	"time"

	"github.com/decker502/spikedodge/pkg/game"
)

// Chime 一个短促的正弦提示音
type Chime struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // 0..1 的线性音量
}

// fullStrengthHit 音量达到最大时的命中强度
const fullStrengthHit = 300.0

const hitDuration = 80 * time.Millisecond

// 各事件的音高
const (
	FreqPositiveHit = 880.0
	FreqNegativeHit = 220.0
	FreqScore       = 1320.0
	FreqGameOver    = 110.0
)

// ChimeFor 模拟事件到提示音的映射
// 正向命中高音，负向命中低音，强度越大越响
func ChimeFor(e game.Event) (Chime, bool) {
	switch e.Kind {
	case game.EventHit:
		vol := math.Min(1, 0.3+0.7*e.Strength/fullStrengthHit)
		if e.Positive {
			return Chime{Freq: FreqPositiveHit, Duration: hitDuration, Volume: vol}, true
		}
		return Chime{Freq: FreqNegativeHit, Duration: hitDuration, Volume: vol}, true
	case game.EventScore:
		return Chime{Freq: FreqScore, Duration: 60 * time.Millisecond, Volume: 0.5}, true
	case game.EventGameOver:
		return Chime{Freq: FreqGameOver, Duration: 400 * time.Millisecond, Volume: 1}, true
	default:
		return Chime{}, false
	}
}

// Samples 在给定采样率下的采样帧数
func (c Chime) Samples(sampleRate int) int {
	return int(int64(sampleRate) * int64(c.Duration) / int64(time.Second))
}
