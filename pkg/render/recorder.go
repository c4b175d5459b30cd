package render

import "image/color"

// Op 绘制指令类型
type Op string

const (
	OpClear          Op = "clear"
	OpFade           Op = "fade"
	OpFillRect       Op = "fillRect"
	OpFillCircle     Op = "fillCircle"
	OpStrokeCircle   Op = "strokeCircle"
	OpStrokeLine     Op = "strokeLine"
	OpFillPolygon    Op = "fillPolygon"
	OpFillEllipse    Op = "fillEllipse"
	OpRadialGradient Op = "radialGradient"
)

// Command 一条已记录的绘制指令
type Command struct {
	Op Op

	// X, Y 圆心 / 矩形左上角 / 线段起点
	X, Y float64
	// X2, Y2 线段终点
	X2, Y2 float64
	// W, H 矩形尺寸或椭圆半径
	W, H float64
	// R 半径；线宽记录在 Width
	R     float64
	Width float64

	Points []Point
	Stops  []GradientStop
	Color  color.NRGBA

	// Alpha 绘制时的全局透明度
	Alpha float64
	Blend BlendMode
}

// EffectiveAlpha 颜色透明度 × 全局透明度
func (c Command) EffectiveAlpha() float64 {
	return Alpha(c.Color) * c.Alpha
}

// Recorder 记录所有绘制指令的 Surface 实现
type Recorder struct {
	width, height float64
	alpha         float64
	blend         BlendMode

	Commands []Command
}

// NewRecorder 创建指定逻辑尺寸的 Recorder
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, alpha: 1}
}

// Resize 修改逻辑尺寸
func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

// Reset 清空已记录的指令（每帧开始前调用）
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.alpha = 1
	r.blend = BlendNormal
}

// Filter 返回指定类型的指令
func (r *Recorder) Filter(op Op) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) record(c Command) {
	c.Alpha = r.alpha
	c.Blend = r.blend
	r.Commands = append(r.Commands, c)
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Clear(c color.NRGBA) {
	r.record(Command{Op: OpClear, W: r.width, H: r.height, Color: c})
}

func (r *Recorder) Fade(alpha float64) {
	r.record(Command{Op: OpFade, W: r.width, H: r.height, Color: color.NRGBA{A: alphaByte(alpha)}})
}

func (r *Recorder) SetBlend(mode BlendMode)      { r.blend = mode }
func (r *Recorder) SetGlobalAlpha(alpha float64) { r.alpha = alpha }
func (r *Recorder) GlobalAlpha() float64         { return r.alpha }

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.record(Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.record(Command{Op: OpFillCircle, X: cx, Y: cy, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	r.record(Command{Op: OpStrokeCircle, X: cx, Y: cy, R: radius, Width: width, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.record(Command{Op: OpStrokeLine, X: x0, Y: y0, X2: x1, Y2: y1, Width: width, Color: c})
}

func (r *Recorder) FillPolygon(points []Point, c color.NRGBA) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.record(Command{Op: OpFillPolygon, Points: pts, Color: c})
}

func (r *Recorder) FillEllipse(cx, cy, rx, ry float64, c color.NRGBA) {
	r.record(Command{Op: OpFillEllipse, X: cx, Y: cy, W: rx, H: ry, Color: c})
}

func (r *Recorder) FillRadialGradient(cx, cy, radius float64, stops []GradientStop) {
	s := make([]GradientStop, len(stops))
	copy(s, stops)
	var c color.NRGBA
	if len(s) > 0 {
		c = s[0].Color
	}
	r.record(Command{Op: OpRadialGradient, X: cx, Y: cy, R: radius, Stops: s, Color: c})
}
