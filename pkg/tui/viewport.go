package tui

import "math"

// cellAspect 终端字符单元的高宽比
const cellAspect = 2.0

// hudRows 顶部留给 HUD 的行数
const hudRows = 1

// viewport 竞技场坐标与终端单元格之间的映射
//
// 每个单元格水平覆盖 unit 个竞技场单位，竖直覆盖 unit*cellAspect 个，
// 因此圆在终端里看起来仍然是圆。竞技场在可用区域内居中。
type viewport struct {
	arenaW, arenaH float64
	unit           float64
	cols, rows     int // 竞技场占用的单元格数
	offX, offY     int
}

// newViewport 按屏幕尺寸计算映射
func newViewport(arenaW, arenaH float64, screenCols, screenRows int) viewport {
	availRows := screenRows - hudRows
	if screenCols < 1 {
		screenCols = 1
	}
	if availRows < 1 {
		availRows = 1
	}

	unit := math.Max(arenaW/float64(screenCols), arenaH/(cellAspect*float64(availRows)))
	cols := int(math.Ceil(arenaW / unit))
	rows := int(math.Ceil(arenaH / (unit * cellAspect)))
	if cols > screenCols {
		cols = screenCols
	}
	if rows > availRows {
		rows = availRows
	}

	return viewport{
		arenaW: arenaW,
		arenaH: arenaH,
		unit:   unit,
		cols:   cols,
		rows:   rows,
		offX:   (screenCols - cols) / 2,
		offY:   hudRows + (availRows-rows)/2,
	}
}

// toCell 竞技场坐标到屏幕单元格
func (v viewport) toCell(x, y float64) (int, int) {
	col := int(math.Floor(x / v.unit))
	row := int(math.Floor(y / (v.unit * cellAspect)))
	return v.offX + col, v.offY + row
}

// cellCenter 屏幕单元格中心对应的竞技场坐标
func (v viewport) cellCenter(col, row int) (float64, float64) {
	x := (float64(col-v.offX) + 0.5) * v.unit
	y := (float64(row-v.offY) + 0.5) * v.unit * cellAspect
	return x, y
}

// inArena 单元格是否位于竞技场区域内
func (v viewport) inArena(col, row int) bool {
	return col >= v.offX && col < v.offX+v.cols &&
		row >= v.offY && row < v.offY+v.rows
}

// arenaX 鼠标所在列对应的竞技场 x，截断到竞技场宽度内
func (v viewport) arenaX(col int) float64 {
	x, _ := v.cellCenter(col, v.offY)
	return math.Max(0, math.Min(v.arenaW, x))
}
