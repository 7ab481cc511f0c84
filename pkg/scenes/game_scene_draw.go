package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/spikedodge/pkg/components"
	"github.com/decker502/spikedodge/pkg/game"
	"github.com/decker502/spikedodge/pkg/utils"
)

const (
	// gradientRings 径向渐变的近似环数
	gradientRings = 12
	// hudFontSize HUD 字号
	hudFontSize = 14
	// labelFontSize 尖刺倍率、得分飘字字号
	labelFontSize = 11
	// scorePopupRadius 得分飘字底圆半径
	scorePopupRadius = 10
	// scorePopupRise 得分飘字的上浮距离
	scorePopupRise = 10
	// hitStrokeWidth 命中闪光初始线宽
	hitStrokeWidth = 50
	// hitDashPeriod 命中闪光虚线周期
	hitDashPeriod = 100
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorInk        = color.RGBA{0, 0, 0, 255}
	colorPositive   = color.RGBA{0, 128, 0, 255}
	colorNegative   = color.RGBA{255, 0, 0, 255}
)

// tintColor 语义颜色到 RGB
func tintColor(t components.Tint) color.RGBA {
	switch t {
	case components.TintPositive:
		return colorPositive
	case components.TintNegative:
		return colorNegative
	default:
		return colorInk
	}
}

// loadHUDFont 加载内置的 Go Regular 字体
func loadHUDFont() (*text.GoTextFaceSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	return source, nil
}

// drawSnapshot 绘制一帧
// 顺序：爆炸 → 命中闪光 → 玩家 → 尖刺 → 得分飘字 → HUD
func drawSnapshot(screen *ebiten.Image, snap *game.Snapshot, font *text.GoTextFaceSource) {
	screen.Fill(colorBackground)

	for i := range snap.Explosions {
		drawExplosion(screen, &snap.Explosions[i])
	}
	for i := range snap.HitEffects {
		drawHitEffect(screen, &snap.HitEffects[i])
	}
	drawPlayer(screen, &snap.Player)
	for i := range snap.Spikes {
		drawSpike(screen, &snap.Spikes[i], font)
	}
	for i := range snap.ScoreEffects {
		drawScoreEffect(screen, &snap.ScoreEffects[i], font)
	}

	drawHUD(screen, snap, font)
}

func drawPlayer(screen *ebiten.Image, p *game.EntityState) {
	x, y, r := float32(p.Position.X), float32(p.Position.Y), float32(p.Radius)
	vector.DrawFilledCircle(screen, x, y, r, colorInk, true)
	vector.StrokeCircle(screen, x, y, r, 1, colorInk, true)
}

// drawSpike 白心渐变到着色的圆盘
// 刚被命中时白色区域最小，随闪烁衰减白色向外扩张
func drawSpike(screen *ebiten.Image, s *game.EntityState, font *text.GoTextFaceSource) {
	edge := tintColor(s.Tint)
	stop := utils.EaseOut(1-s.Fraction, 5)
	drawRadialGradient(screen, s.Position, s.Radius, stop, edge)
	vector.StrokeCircle(screen, float32(s.Position.X), float32(s.Position.Y), float32(s.Radius), 1, edge, true)

	if s.Multiplier > 1 {
		drawCenteredText(screen, fmt.Sprintf("x%d", s.Multiplier), s.Position.X, s.Position.Y, labelFontSize, colorInk, font)
	}
}

// drawHitEffect 扩张并变细的虚线圆环，按朝向镜像
func drawHitEffect(screen *ebiten.Image, h *game.EntityState) {
	eased := utils.EaseOutQuad(1-h.Fraction)
	radius := h.Radius * eased
	width := hitStrokeWidth * (1 - eased)
	if radius <= 0 || width <= 0 {
		return
	}

	dash := hitDashPeriod * (1 - eased)
	gap := hitDashPeriod * eased
	drawDashedCircle(screen, h.Position, radius, width, dash, gap, h.Facing, tintColor(h.Tint))
}

func drawScoreEffect(screen *ebiten.Image, s *game.EntityState, font *text.GoTextFaceSource) {
	x := s.Position.X
	y := s.Position.Y + utils.EaseOutQuad(s.Fraction)*scorePopupRise

	vector.DrawFilledCircle(screen, float32(x), float32(y), scorePopupRadius, colorBackground, true)
	vector.StrokeCircle(screen, float32(x), float32(y), scorePopupRadius, 1, colorInk, true)
	drawCenteredText(screen, fmt.Sprintf("+%d", s.Score), x, y, labelFontSize, colorInk, font)
}

func drawExplosion(screen *ebiten.Image, e *game.EntityState) {
	if e.Radius <= 0 {
		return
	}
	stop := utils.EaseOut(1-e.Fraction, 5)
	drawRadialGradient(screen, e.Position, e.Radius, stop, colorInk)
	vector.StrokeCircle(screen, float32(e.Position.X), float32(e.Position.Y), float32(e.Radius), 1, colorInk, true)
}

func drawHUD(screen *ebiten.Image, snap *game.Snapshot, font *text.GoTextFaceSource) {
	score := fmt.Sprintf("%d", snap.Score)
	if font == nil {
		ebitenutil.DebugPrintAt(screen, score, 10, 5)
	} else {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 5)
		op.ColorScale.ScaleWithColor(colorInk)
		text.Draw(screen, score, &text.GoTextFace{Source: font, Size: hudFontSize}, op)
	}

	if !snap.GameOver {
		return
	}
	cx, cy := snap.Width/2, snap.Height/2
	hint := "press Enter or click to restart"
	if utils.IsMobile() {
		hint = "tap to restart"
	}
	drawCenteredText(screen, "GAME OVER", cx, cy-12, hudFontSize*2, colorInk, font)
	drawCenteredText(screen, hint, cx, cy+16, hudFontSize, colorInk, font)
}

// drawRadialGradient 用同心圆近似径向渐变
// [0, stop] 区间为白色，(stop, 1] 线性过渡到 edge
func drawRadialGradient(screen *ebiten.Image, center utils.Vector2, radius, stop float64, edge color.RGBA) {
	if radius <= 0 {
		return
	}
	x, y := float32(center.X), float32(center.Y)
	for i := gradientRings; i >= 1; i-- {
		t := float64(i) / gradientRings
		mix := 0.0
		if stop < 1 && t > stop {
			mix = (t - stop) / (1 - stop)
		}
		vector.DrawFilledCircle(screen, x, y, float32(radius*t), lerpColor(colorBackground, edge, mix), true)
	}
}

// drawDashedCircle 用折线近似虚线圆
// facing 为 -1 时沿竖直轴镜像
func drawDashedCircle(screen *ebiten.Image, center utils.Vector2, radius, width, dash, gap, facing float64, clr color.RGBA) {
	if facing == 0 {
		facing = 1
	}
	circumference := 2 * math.Pi * radius
	if dash <= 0 {
		return
	}
	if gap <= 0 {
		dash, gap = circumference, 0
	}

	const segment = 4.0 // 折线段弧长
	point := func(s float64) (float32, float32) {
		a := s / radius
		return float32(center.X + math.Cos(a)*radius*facing), float32(center.Y + math.Sin(a)*radius)
	}

	for start := 0.0; start < circumference; start += dash + gap {
		end := math.Min(start+dash, circumference)
		x0, y0 := point(start)
		for s := start + segment; ; s += segment {
			s = math.Min(s, end)
			x1, y1 := point(s)
			vector.StrokeLine(screen, x0, y0, x1, y1, float32(width), clr, true)
			x0, y0 = x1, y1
			if s >= end {
				break
			}
		}
	}
}

func drawCenteredText(screen *ebiten.Image, s string, x, y, size float64, clr color.Color, font *text.GoTextFaceSource) {
	if font == nil {
		// 调试字体每字符 6x16 像素
		ebitenutil.DebugPrintAt(screen, s, int(x)-len(s)*3, int(y)-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, &text.GoTextFace{Source: font, Size: size}, op)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = utils.Clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(utils.Lerp(float64(x), float64(y), t)))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
