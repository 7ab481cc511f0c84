package tui

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	sfx "github.com/decker502/spikedodge/internal/audio"
	"github.com/decker502/spikedodge/pkg/game"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager 把模拟事件播放为提示音
//
// 所有声音混入同一个 Mixer；音频设备不可用时 Initialize 返回错误，
// 之后的 Play 全部静默忽略，游戏照常运行。
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      *zap.Logger
	initialized bool
}

// NewSoundManager 创建声音管理器
func NewSoundManager(logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger.Named("Sound"),
	}
}

// Initialize 打开音频设备
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play 播放事件对应的提示音
func (sm *SoundManager) Play(e game.Event) {
	c, ok := sfx.ChimeFor(e)
	if !ok {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}

	s, err := chimeStreamer(c)
	if err != nil {
		sm.logger.Debug("chime unavailable", zap.Stringer("event", e.Kind), zap.Error(err))
		return
	}
	// Mixer 在音频线程中读取，修改前需锁住扬声器
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup 停止所有声音并关闭设备
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// chimeStreamer 生成定长、按音量缩放的正弦波
func chimeStreamer(c sfx.Chime) (beep.Streamer, error) {
	if c.Volume <= 0 {
		return nil, errors.New("silent chime")
	}
	sine, err := generators.SineTone(sampleRate, c.Freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(c.Duration), &effects.Volume{
		Streamer: sine,
		Base:     2,
		Volume:   math.Log2(c.Volume),
	}), nil
}
