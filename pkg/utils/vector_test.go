package utils

import (
	"math"
	"testing"
)

func TestVector2Arithmetic(t *testing.T) {
	v := Vec2(1, 2)
	v.Add(Vec2(3, 4)).Scale(2).Subtract(Vec2(1, 1))

	if v.X != 7 || v.Y != 11 {
		t.Errorf("expected (7, 11), got (%v, %v)", v.X, v.Y)
	}
}

func TestVector2ScaleXY(t *testing.T) {
	v := Vec2(10, 10)
	v.ScaleXY(0.5, 1)

	if v.X != 5 || v.Y != 10 {
		t.Errorf("expected (5, 10), got (%v, %v)", v.X, v.Y)
	}
}

func TestVector2Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input Vector2
		want  Vector2
	}{
		{"水平", Vec2(5, 0), Vec2(1, 0)},
		{"3-4-5", Vec2(3, -4), Vec2(0.6, -0.8)},
		{"零向量不除零", Vec2(0, 0), Vec2(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.input
			v.Normalize()
			if math.IsNaN(v.X) || math.IsNaN(v.Y) {
				t.Fatalf("Normalize produced NaN: %+v", v)
			}
			if math.Abs(v.X-tt.want.X) > 1e-9 || math.Abs(v.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.input, v, tt.want)
			}
		})
	}
}

func TestVector2CopyIsIndependent(t *testing.T) {
	v := Vec2(1, 1)
	c := v.Copy()
	v.Add(Vec2(1, 1))

	if c.X != 1 || c.Y != 1 {
		t.Errorf("copy should not follow the original, got %+v", c)
	}
	if v.Negated() != Vec2(-2, -2) {
		t.Errorf("Negated() = %+v", v.Negated())
	}
	if Vec2(3, 4).Length() != 5 {
		t.Errorf("Length() = %v, want 5", Vec2(3, 4).Length())
	}
}
