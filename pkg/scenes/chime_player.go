package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	sfx "github.com/decker502/spikedodge/internal/audio"
	"github.com/decker502/spikedodge/pkg/game"
)

// ChimeSampleRate 图形前端音频上下文的采样率
const ChimeSampleRate = 48000

type chimeKey struct {
	freq     float64
	duration time.Duration
}

// ChimePlayer 用 Ebitengine 音频播放模拟事件的提示音
//
// 同一音高和时长的提示音只合成一次，播放器按键缓存；
// 每次播放时按事件强度设置音量并从头播放。nil 接收者静音。
type ChimePlayer struct {
	ctx     *audio.Context
	players map[chimeKey]*audio.Player
	logger  *zap.Logger
}

// NewChimePlayer 创建提示音播放器
func NewChimePlayer(ctx *audio.Context, logger *zap.Logger) *ChimePlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChimePlayer{
		ctx:     ctx,
		players: make(map[chimeKey]*audio.Player),
		logger:  logger.Named("Chime"),
	}
}

// Play 播放事件对应的提示音，返回是否成功播放
func (p *ChimePlayer) Play(e game.Event) bool {
	if p == nil || p.ctx == nil {
		return false
	}
	c, ok := sfx.ChimeFor(e)
	if !ok {
		return false
	}

	player, err := p.player(c)
	if err != nil {
		p.logger.Warn("create chime player", zap.Stringer("event", e.Kind), zap.Error(err))
		return false
	}

	player.SetVolume(c.Volume)
	if err := player.Rewind(); err != nil {
		p.logger.Warn("rewind chime", zap.Stringer("event", e.Kind), zap.Error(err))
	}
	player.Play()
	return true
}

// player 获取或创建提示音播放器
// 合成时音量固定为 1，实际音量由 SetVolume 控制
func (p *ChimePlayer) player(c sfx.Chime) (*audio.Player, error) {
	key := chimeKey{freq: c.Freq, duration: c.Duration}
	if player, ok := p.players[key]; ok {
		return player, nil
	}

	unit := c
	unit.Volume = 1
	player, err := p.ctx.NewPlayer(sfx.NewTone(unit, p.ctx.SampleRate()))
	if err != nil {
		return nil, err
	}
	p.players[key] = player
	p.logger.Debug("chime synthesized", zap.Float64("freq", c.Freq), zap.Duration("duration", c.Duration))
	return player, nil
}
