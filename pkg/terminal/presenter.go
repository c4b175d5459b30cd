// Package terminal 把场景渲染到终端
//
// 每个字符单元用半块字符 '▀' 表示上下两个像素：前景色是上半像素，背景色是下半像素。
package terminal

import (
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/gdamore/tcell/v2"
)

// HalfBlock 上半块字符
const HalfBlock = '▀'

// Presenter 持有光栅画布，并把它输出到 tcell 屏幕
type Presenter struct {
	screen tcell.Screen
	raster *render.Raster

	cols, rows int
}

// NewPresenter 按屏幕当前尺寸创建
func NewPresenter(screen tcell.Screen) *Presenter {
	p := &Presenter{
		screen: screen,
		raster: render.NewRaster(0, 0, config.TermCellWidth, config.TermCellHeight/2),
	}
	p.Resize()
	return p
}

// Surface 返回场景绘制用的画布
func (p *Presenter) Surface() *render.Raster {
	return p.raster
}

// Resize 按屏幕尺寸重建光栅，返回新的逻辑尺寸
func (p *Presenter) Resize() (float64, float64) {
	cols, rows := p.screen.Size()
	if cols != p.cols || rows != p.rows {
		p.cols, p.rows = cols, rows
		p.raster.Resize(cols, rows*2)
	}
	return p.raster.Size()
}

// LogicalSize 返回当前逻辑尺寸
func (p *Presenter) LogicalSize() (float64, float64) {
	return p.raster.Size()
}

// CellToLogical 把字符坐标转换成逻辑坐标（单元中心）
func (p *Presenter) CellToLogical(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) * config.TermCellWidth
	y := (float64(row) + 0.5) * config.TermCellHeight
	return x, y
}

// Present 把光栅写入屏幕并刷新
func (p *Presenter) Present() {
	for row := 0; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			p.screen.SetContent(col, row, HalfBlock, nil, CellStyle(p.raster, col, row))
		}
	}
	p.screen.Show()
}

// CellStyle 返回字符单元 (col, row) 的样式
func CellStyle(raster *render.Raster, col, row int) tcell.Style {
	top := raster.At(col, row*2)
	bottom := raster.At(col, row*2+1)
	return tcell.StyleDefault.
		Foreground(toTcell(top.Clamped().RGB255())).
		Background(toTcell(bottom.Clamped().RGB255()))
}

func toTcell(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
