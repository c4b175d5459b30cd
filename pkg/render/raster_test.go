package render

import (
	"image/color"
	"math"
	"testing"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRasterSize(t *testing.T) {
	r := NewRaster(80, 48, 8, 8)
	w, h := r.Size()
	if w != 640 || h != 384 {
		t.Errorf("expected logical size 640x384, got %vx%v", w, h)
	}

	r.Resize(10, 4)
	if cols, rows := r.PixelSize(); cols != 10 || rows != 4 {
		t.Errorf("expected 10x4 pixels after resize, got %dx%d", cols, rows)
	}
}

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(10, 10, 1, 1)
	r.FillRect(2, 2, 3, 3, white)

	if got := r.At(3, 3); !approx(got.R, 1) {
		t.Errorf("pixel inside rect should be white, got %v", got)
	}
	if got := r.At(6, 6); !approx(got.R, 0) {
		t.Errorf("pixel outside rect should stay black, got %v", got)
	}
}

func TestRasterFillCircleTiny(t *testing.T) {
	// 半径小于像素尺寸时至少点亮圆心所在像素
	r := NewRaster(10, 10, 8, 8)
	r.FillCircle(20, 20, 1, white)

	if got := r.At(2, 2); !approx(got.G, 1) {
		t.Errorf("tiny circle should light its center pixel, got %v", got)
	}
}

func TestRasterGlobalAlphaAndBlend(t *testing.T) {
	r := NewRaster(4, 4, 1, 1)

	r.SetGlobalAlpha(0.5)
	r.FillRect(0, 0, 4, 4, white)
	if got := r.At(1, 1); !approx(got.R, 0.5) {
		t.Errorf("half alpha over black should give 0.5, got %v", got.R)
	}

	r.SetBlend(BlendAdditive)
	r.FillRect(0, 0, 4, 4, white)
	if got := r.At(1, 1); !approx(got.R, 1) {
		t.Errorf("additive 0.5 + 0.5 should give 1, got %v", got.R)
	}

	r.FillRect(0, 0, 4, 4, white)
	if got := r.At(1, 1); got.R > 1 {
		t.Errorf("additive blending must clamp, got %v", got.R)
	}
}

func TestRasterFadeAndClear(t *testing.T) {
	r := NewRaster(2, 2, 1, 1)
	r.Clear(white)
	r.Fade(0.5)
	if got := r.At(0, 0); !approx(got.B, 0.5) {
		t.Errorf("fade 0.5 should halve brightness, got %v", got.B)
	}
	r.Clear(color.NRGBA{A: 255})
	if got := r.At(0, 0); !approx(got.B, 0) {
		t.Errorf("clear should reset to black, got %v", got.B)
	}
}

func TestRasterStrokeLineBlendsOnce(t *testing.T) {
	r := NewRaster(20, 1, 1, 1)
	r.SetGlobalAlpha(0.5)
	r.StrokeLine(0, 0.5, 19.9, 0.5, 1, white)

	for col := 0; col < 20; col++ {
		if got := r.At(col, 0); !approx(got.R, 0.5) {
			t.Fatalf("pixel %d: expected 0.5 after a single blend, got %v", col, got.R)
		}
	}
}

func TestRasterFillPolygon(t *testing.T) {
	r := NewRaster(10, 10, 1, 1)
	r.FillPolygon([]Point{{0, 5}, {10, 5}, {10, 10}, {0, 10}}, white)

	if got := r.At(5, 2); !approx(got.R, 0) {
		t.Errorf("pixel above polygon should be black, got %v", got)
	}
	if got := r.At(5, 7); !approx(got.R, 1) {
		t.Errorf("pixel inside polygon should be white, got %v", got)
	}
}

func TestRasterOutOfBounds(t *testing.T) {
	r := NewRaster(4, 4, 1, 1)
	// 越界绘制不应 panic
	r.FillCircle(-100, -100, 3, white)
	r.StrokeLine(-10, -10, 100, 100, 1, white)
	r.FillRect(50, 50, 10, 10, white)

	if got := r.At(-1, 0); got.R != 0 {
		t.Error("At out of bounds should return black")
	}
}
