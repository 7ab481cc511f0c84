package tui

import "testing"

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name                   string
		cols, rows             int
		wantCols, wantRows     int
		wantOffX, wantOffY     int
		wantUnit               float64
	}{
		// 500x500 的竞技场在 100x26 的终端里：高度受限
		{"高度受限", 100, 26, 50, 25, 25, 1, 10},
		// 在 50x101 的终端里：宽度受限
		{"宽度受限", 50, 101, 50, 25, 0, 38, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViewport(500, 500, tt.cols, tt.rows)
			if v.unit != tt.wantUnit {
				t.Errorf("unit = %v, want %v", v.unit, tt.wantUnit)
			}
			if v.cols != tt.wantCols || v.rows != tt.wantRows {
				t.Errorf("size = %dx%d, want %dx%d", v.cols, v.rows, tt.wantCols, tt.wantRows)
			}
			if v.offX != tt.wantOffX || v.offY != tt.wantOffY {
				t.Errorf("offset = (%d, %d), want (%d, %d)", v.offX, v.offY, tt.wantOffX, tt.wantOffY)
			}
		})
	}
}

func TestViewportMapping(t *testing.T) {
	v := newViewport(500, 500, 100, 26)

	col, row := v.toCell(250, 250)
	if col != 50 || row != 13 {
		t.Errorf("toCell(250, 250) = (%d, %d), want (50, 13)", col, row)
	}

	x, y := v.cellCenter(col, row)
	if x != 255 || y != 250 {
		t.Errorf("cellCenter(%d, %d) = (%v, %v), want (255, 250)", col, row, x, y)
	}

	if !v.inArena(col, row) || v.inArena(0, 0) || v.inArena(75, 13) {
		t.Error("inArena bounds are wrong")
	}

	if got := v.arenaX(0); got != 0 {
		t.Errorf("mouse left of the arena should clamp to 0, got %v", got)
	}
	if got := v.arenaX(99); got != 500 {
		t.Errorf("mouse right of the arena should clamp to 500, got %v", got)
	}
	if got := v.arenaX(30); got != 55 {
		t.Errorf("arenaX(30) = %v, want 55", got)
	}
}

func TestViewportDegenerateScreen(t *testing.T) {
	v := newViewport(500, 500, 0, 0)
	if v.cols < 1 || v.rows < 1 || v.unit <= 0 {
		t.Errorf("degenerate screen should still produce a usable viewport: %+v", v)
	}
}
