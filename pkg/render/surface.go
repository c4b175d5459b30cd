// Package render 定义场景绘制所需的画布接口
//
// 场景只通过 Surface 发出绘制指令，不关心具体实现：
//   - canvas.Canvas: ebiten 图像（桌面端 / 移动端）
//   - Raster: 软件光栅化网格（终端版）
//   - Recorder: 记录指令序列（测试 / 无头运行）
package render

import "image/color"

// Point 逻辑坐标点
type Point struct {
	X, Y float64
}

// BlendMode 混合模式
type BlendMode int

const (
	// BlendNormal source-over
	BlendNormal BlendMode = iota
	// BlendAdditive 颜色相加（canvas 的 "lighter"）
	BlendAdditive
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// GradientStop 径向渐变的色标
// Offset 范围 0-1（0 = 圆心，1 = 边缘）
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface 接受基本绘制指令的画布
//
// 所有颜色都是非预乘的 NRGBA；实际透明度 = 颜色 alpha × 全局透明度。
// 坐标单位是逻辑像素，原点在左上角。
type Surface interface {
	// Size 返回当前逻辑尺寸，窗口缩放后可能变化
	Size() (width, height float64)

	// Clear 清空整个画布并填充颜色
	Clear(c color.NRGBA)

	// Fade 以 destination-out 方式把已有内容的不透明度降低 alpha，形成拖尾
	Fade(alpha float64)

	SetBlend(mode BlendMode)
	SetGlobalAlpha(alpha float64)
	GlobalAlpha() float64

	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillPolygon(points []Point, c color.NRGBA)
	FillEllipse(cx, cy, rx, ry float64, c color.NRGBA)
	FillRadialGradient(cx, cy, r float64, stops []GradientStop)
}
