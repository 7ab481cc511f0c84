package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/game"
	"github.com/decker502/spikedodge/pkg/utils"
)

// Surface 渲染器需要的屏幕能力，tcell.Screen 满足此接口
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

const (
	runePlayer = '█'
	runeSpike  = '●'
	runeFlash  = '·'
	runeBorder = '┊'

	gameOverText = "GAME OVER"
	restartHint  = "Enter: restart  q: quit"

	// scorePopupRise 得分飘字的上浮距离（竞技场单位）
	scorePopupRise = 10
)

// explosionShades 爆炸由内向外的灰度
var explosionShades = []rune{' ', '░', '▒', '▓'}

var (
	styleDefault  = tcell.StyleDefault
	styleInk      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePositive = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNegative = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// tintStyle 语义颜色到终端样式
func tintStyle(t components.Tint) tcell.Style {
	switch t {
	case components.TintPositive:
		return stylePositive
	case components.TintNegative:
		return styleNegative
	default:
		return styleInk
	}
}

// Renderer 把快照栅格化到字符屏幕
//
// 圆盘按单元格中心是否落在圆内填充；小于一个单元格的圆至少占一格。
type Renderer struct {
	screen Surface
	vp     viewport
	cols   int
	rows   int
}

// NewRenderer 创建渲染器
func NewRenderer(screen Surface) *Renderer {
	return &Renderer{screen: screen}
}

// ArenaX 屏幕列对应的竞技场 x，基于最近一次 Draw 的映射
func (r *Renderer) ArenaX(col int) float64 {
	return r.vp.arenaX(col)
}

// Draw 绘制一帧并刷新屏幕
// 顺序与图形前端一致：爆炸 → 命中闪光 → 玩家 → 尖刺 → 得分飘字 → HUD
func (r *Renderer) Draw(snap *game.Snapshot) {
	cols, rows := r.screen.Size()
	if cols != r.cols || rows != r.rows || r.vp.unit == 0 {
		r.cols, r.rows = cols, rows
		r.vp = newViewport(snap.Width, snap.Height, cols, rows)
	}

	r.screen.Clear()
	r.drawBorder()

	for i := range snap.Explosions {
		r.drawExplosion(&snap.Explosions[i])
	}
	for i := range snap.HitEffects {
		r.drawHitEffect(&snap.HitEffects[i])
	}
	r.fillDisc(snap.Player.Position, snap.Player.Radius, runePlayer, styleInk)
	for i := range snap.Spikes {
		r.drawSpike(&snap.Spikes[i])
	}
	for i := range snap.ScoreEffects {
		r.drawScoreEffect(&snap.ScoreEffects[i])
	}
	r.drawHUD(snap)

	r.screen.Show()
}

// drawBorder 竞技场左右边界
func (r *Renderer) drawBorder() {
	left, right := r.vp.offX-1, r.vp.offX+r.vp.cols
	for row := r.vp.offY; row < r.vp.offY+r.vp.rows; row++ {
		if left >= 0 {
			r.screen.SetContent(left, row, runeBorder, nil, styleBorder)
		}
		if right < r.cols {
			r.screen.SetContent(right, row, runeBorder, nil, styleBorder)
		}
	}
}

// drawSpike 命中后闪烁期间显示着色，之后恢复默认
func (r *Renderer) drawSpike(s *game.EntityState) {
	style := styleInk
	if s.Fraction > 0 {
		style = tintStyle(s.Tint)
	}
	r.fillDisc(s.Position, s.Radius, runeSpike, style)

	if s.Multiplier > 1 {
		r.drawTextCentered(s.Position, fmt.Sprintf("x%d", s.Multiplier), styleHUD)
	}
}

// drawHitEffect 扩张的圆环
func (r *Renderer) drawHitEffect(h *game.EntityState) {
	radius := h.Radius * utils.EaseOutQuad(1-h.Fraction)
	if radius <= 0 {
		return
	}
	// 线宽至少半个单元格，否则细环会断开
	half := math.Max(r.vp.unit/2, radius*h.Fraction/4)
	r.eachCell(h.Position, radius+half, func(col, row int, dist float64) {
		if math.Abs(dist-radius) <= half {
			r.screen.SetContent(col, row, runeFlash, nil, tintStyle(h.Tint))
		}
	})
}

func (r *Renderer) drawScoreEffect(s *game.EntityState) {
	pos := s.Position
	pos.Y += utils.EaseOutQuad(s.Fraction) * scorePopupRise
	r.drawTextCentered(pos, fmt.Sprintf("+%d", s.Score), styleHUD)
}

// drawExplosion 越靠外越浓，随时间整体变淡
func (r *Renderer) drawExplosion(e *game.EntityState) {
	if e.Radius <= 0 {
		return
	}
	stop := utils.EaseOut(1-e.Fraction, 5)
	r.eachCell(e.Position, e.Radius, func(col, row int, dist float64) {
		t := dist / e.Radius
		if t > 1 || t <= stop {
			return
		}
		mix := 1.0
		if stop < 1 {
			mix = (t - stop) / (1 - stop)
		}
		idx := int(math.Ceil(mix * float64(len(explosionShades)-1)))
		if idx <= 0 {
			return
		}
		if idx >= len(explosionShades) {
			idx = len(explosionShades) - 1
		}
		r.screen.SetContent(col, row, explosionShades[idx], nil, styleInk)
	})
}

func (r *Renderer) drawHUD(snap *game.Snapshot) {
	r.drawText(r.vp.offX, 0, fmt.Sprintf("score %d", snap.Score), styleHUD)

	if !snap.GameOver {
		return
	}
	center := utils.Vector2{X: snap.Width / 2, Y: snap.Height / 2}
	col, row := r.vp.toCell(center.X, center.Y)
	r.drawText(col-len(gameOverText)/2, row-1, gameOverText, styleHUD)
	r.drawText(col-len(restartHint)/2, row+1, restartHint, styleDefault)
}

// fillDisc 填充圆盘
func (r *Renderer) fillDisc(center utils.Vector2, radius float64, ch rune, style tcell.Style) {
	painted := false
	r.eachCell(center, radius, func(col, row int, dist float64) {
		if dist <= radius {
			r.screen.SetContent(col, row, ch, nil, style)
			painted = true
		}
	})
	if !painted {
		col, row := r.vp.toCell(center.X, center.Y)
		if r.vp.inArena(col, row) {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// eachCell 遍历圆外接矩形内属于竞技场的单元格，dist 为单元格中心到圆心的距离
func (r *Renderer) eachCell(center utils.Vector2, radius float64, fn func(col, row int, dist float64)) {
	c0, r0 := r.vp.toCell(center.X-radius, center.Y-radius)
	c1, r1 := r.vp.toCell(center.X+radius, center.Y+radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !r.vp.inArena(col, row) {
				continue
			}
			x, y := r.vp.cellCenter(col, row)
			fn(col, row, math.Hypot(x-center.X, y-center.Y))
		}
	}
}

func (r *Renderer) drawTextCentered(pos utils.Vector2, s string, style tcell.Style) {
	col, row := r.vp.toCell(pos.X, pos.Y)
	r.drawText(col-len(s)/2, row, s, style)
}

// drawText 写一行 ASCII 文本，超出屏幕的部分丢弃
func (r *Renderer) drawText(col, row int, s string, style tcell.Style) {
	if row < 0 || row >= r.rows {
		return
	}
	for i, ch := range s {
		x := col + i
		if x < 0 || x >= r.cols {
			continue
		}
		r.screen.SetContent(x, row, ch, nil, style)
	}
}
