package terminal

import (
	"image/color"
	"testing"

	"github.com/decker502/fireworks/pkg/render"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestPresenterResize(t *testing.T) {
	screen := newScreen(t, 40, 12)
	p := NewPresenter(screen)

	w, h := p.LogicalSize()
	if w != 40*8 || h != 12*16 {
		t.Errorf("LogicalSize() = %vx%v, want 320x192", w, h)
	}
	if cols, rows := p.Surface().PixelSize(); cols != 40 || rows != 24 {
		t.Errorf("PixelSize() = %dx%d, want 40x24", cols, rows)
	}

	screen.SetSize(20, 5)
	if w, h := p.Resize(); w != 160 || h != 80 {
		t.Errorf("Resize() = %vx%v, want 160x80", w, h)
	}
}

func TestCellToLogical(t *testing.T) {
	p := NewPresenter(newScreen(t, 10, 10))
	x, y := p.CellToLogical(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("CellToLogical(2, 3) = (%v, %v), want (20, 56)", x, y)
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	screen := newScreen(t, 4, 2)
	p := NewPresenter(screen)

	// 第一行字符：上半像素红色，下半像素蓝色
	surface := p.Surface()
	surface.Clear(color.NRGBA{A: 255})
	surface.FillRect(0, 0, 32, 8, color.NRGBA{R: 255, A: 255})
	surface.FillRect(0, 8, 32, 8, color.NRGBA{B: 255, A: 255})
	p.Present()

	mainc, _, style, _ := screen.GetContent(1, 0)
	if mainc != HalfBlock {
		t.Fatalf("cell rune = %q, want %q", mainc, HalfBlock)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v, want red", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("background = %v, want blue", bg)
	}

	_, _, style, _ = screen.GetContent(1, 1)
	fg, bg, _ = style.Decompose()
	black := tcell.NewRGBColor(0, 0, 0)
	if fg != black || bg != black {
		t.Errorf("second row = %v/%v, want black", fg, bg)
	}
}

var _ render.Surface = (*render.Raster)(nil)
