// Package canvas 在 ebiten.Image 上实现 render.Surface
//
// 所有图形都转换成三角形，用一张白色子图配合顶点颜色绘制，
// 这样全局透明度和混合模式可以统一通过 DrawTrianglesOptions 控制。
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/fireworks/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// additiveBlend 颜色相加（canvas 的 "lighter"）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// Canvas 包装一张 ebiten 图像
//
// 使用方式：每帧在 Draw(screen) 中调用 SetTarget(screen)，然后交给场景绘制。
// 拖尾效果要求目标图像在帧间保留内容，宿主需要关闭屏幕自动清空。
type Canvas struct {
	target *ebiten.Image
	blend  render.BlendMode
	alpha  float64

	vertices []ebiten.Vertex
	indices  []uint16
}

// New 创建画布，target 可以为 nil（稍后调用 SetTarget）
func New(target *ebiten.Image) *Canvas {
	return &Canvas{target: target, alpha: 1}
}

// SetTarget 设置绘制目标
func (c *Canvas) SetTarget(target *ebiten.Image) {
	c.target = target
}

// Target 返回当前绘制目标
func (c *Canvas) Target() *ebiten.Image {
	return c.target
}

func (c *Canvas) Size() (float64, float64) {
	if c.target == nil {
		return 0, 0
	}
	b := c.target.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) Clear(col color.NRGBA) {
	if c.target == nil {
		return
	}
	c.target.Fill(col)
}

// Fade 以 destination-out 绘制全屏矩形，已有像素的不透明度乘以 (1 - alpha)
func (c *Canvas) Fade(alpha float64) {
	if c.target == nil || alpha <= 0 {
		return
	}
	w, h := c.Size()
	c.vertices, c.indices = appendQuad(c.vertices[:0], c.indices[:0],
		0, 0, float32(w), 0, float32(w), float32(h), 0, float32(h),
		vertexColor(color.NRGBA{A: 255}, clamp01(alpha)))
	c.target.DrawTriangles(c.vertices, c.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		Blend: ebiten.BlendDestinationOut,
	})
}

func (c *Canvas) SetBlend(mode render.BlendMode) {
	c.blend = mode
}

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = clamp01(alpha)
}

func (c *Canvas) GlobalAlpha() float64 {
	return c.alpha
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	c.vertices, c.indices = appendQuad(c.vertices[:0], c.indices[:0],
		x0, y0, x1, y0, x1, y1, x0, y1, vertexColor(col, c.alpha))
	c.flush(ebiten.FillRuleFillAll)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	c.FillEllipse(cx, cy, r, r, col)
}

func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	vc := vertexColor(col, c.alpha)
	c.vertices, c.indices = appendFan(c.vertices[:0], c.indices[:0], cx, cy, rx, ry, vc, vc)
	c.flush(ebiten.FillRuleFillAll)
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	if r <= 0 || width <= 0 {
		return
	}
	var path vector.Path
	path.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	c.strokePath(&path, width, col)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	if width <= 0 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))
	c.strokePath(&path, width, col)
}

// FillPolygon 填充任意简单多边形（波浪水面不是凸多边形）
func (c *Canvas) FillPolygon(points []render.Point, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	c.paint(vertexColor(col, c.alpha))
	c.flush(ebiten.FillRuleNonZero)
}

// FillRadialGradient 用同心环近似径向渐变，每个色标一环，环间由顶点颜色插值
func (c *Canvas) FillRadialGradient(cx, cy, r float64, stops []render.GradientStop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	c.vertices, c.indices = appendGradient(c.vertices[:0], c.indices[:0], cx, cy, r, stops, c.alpha)
	c.flush(ebiten.FillRuleFillAll)
}

func (c *Canvas) strokePath(path *vector.Path, width float64, col color.NRGBA) {
	c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	c.paint(vertexColor(col, c.alpha))
	c.flush(ebiten.FillRuleNonZero)
}

// paint 给 Path 生成的顶点统一上色（Path 默认输出白色）
func (c *Canvas) paint(vc [4]float32) {
	for i := range c.vertices {
		c.vertices[i].SrcX, c.vertices[i].SrcY = 1, 1
		c.vertices[i].ColorR = vc[0]
		c.vertices[i].ColorG = vc[1]
		c.vertices[i].ColorB = vc[2]
		c.vertices[i].ColorA = vc[3]
	}
}

func (c *Canvas) flush(rule ebiten.FillRule) {
	if c.target == nil || len(c.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: true,
		Blend:     ebiten.BlendSourceOver,
	}
	if c.blend == render.BlendAdditive {
		op.Blend = additiveBlend
	}
	c.target.DrawTriangles(c.vertices, c.indices, whiteSubImage, op)
}

// vertexColor 把非预乘颜色和全局透明度转换成顶点颜色分量
func vertexColor(col color.NRGBA, alpha float64) [4]float32 {
	return [4]float32{
		float32(col.R) / 0xff,
		float32(col.G) / 0xff,
		float32(col.B) / 0xff,
		float32(float64(col.A) / 0xff * alpha),
	}
}

func vertex(x, y float32, vc [4]float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: 1, SrcY: 1,
		ColorR: vc[0], ColorG: vc[1], ColorB: vc[2], ColorA: vc[3],
	}
}

func appendQuad(vs []ebiten.Vertex, is []uint16, x0, y0, x1, y1, x2, y2, x3, y3 float32, vc [4]float32) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	vs = append(vs,
		vertex(x0, y0, vc),
		vertex(x1, y1, vc),
		vertex(x2, y2, vc),
		vertex(x3, y3, vc),
	)
	is = append(is, base, base+1, base+2, base, base+2, base+3)
	return vs, is
}

// segmentsFor 圆周分段数，随半径增大，限制在 [12, 96]
func segmentsFor(r float64) int {
	n := int(math.Ceil(r * 2))
	if n < 12 {
		return 12
	}
	if n > 96 {
		return 96
	}
	return n
}

// appendFan 以 (cx, cy) 为中心的三角扇，center 和 edge 分别是中心和边缘的顶点颜色
func appendFan(vs []ebiten.Vertex, is []uint16, cx, cy, rx, ry float64, center, edge [4]float32) ([]ebiten.Vertex, []uint16) {
	n := segmentsFor(math.Max(rx, ry))
	base := uint16(len(vs))
	vs = append(vs, vertex(float32(cx), float32(cy), center))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs = append(vs, vertex(float32(cx+rx*math.Cos(a)), float32(cy+ry*math.Sin(a)), edge))
	}
	for i := 0; i < n; i++ {
		next := (i+1)%n + 1
		is = append(is, base, base+uint16(i+1), base+uint16(next))
	}
	return vs, is
}

// appendGradient 径向渐变：中心扇形 + 每对相邻色标之间的环带
func appendGradient(vs []ebiten.Vertex, is []uint16, cx, cy, r float64, stops []render.GradientStop, alpha float64) ([]ebiten.Vertex, []uint16) {
	if len(stops) == 1 {
		vc := vertexColor(stops[0].Color, alpha)
		return appendFan(vs, is, cx, cy, r, r, vc, vc)
	}

	n := segmentsFor(r)
	base := uint16(len(vs))
	vs = append(vs, vertex(float32(cx), float32(cy), vertexColor(stops[0].Color, alpha)))

	// 每个色标一圈顶点；Offset 为 0 的色标退化成中心点所在的圈
	for _, stop := range stops {
		rr := r * clamp01(stop.Offset)
		vc := vertexColor(stop.Color, alpha)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			vs = append(vs, vertex(float32(cx+rr*math.Cos(a)), float32(cy+rr*math.Sin(a)), vc))
		}
	}

	ring := func(k, i int) uint16 { return base + 1 + uint16(k*n+i%n) }
	for i := 0; i < n; i++ {
		is = append(is, base, ring(0, i), ring(0, i+1))
	}
	for k := 0; k+1 < len(stops); k++ {
		for i := 0; i < n; i++ {
			is = append(is,
				ring(k, i), ring(k+1, i), ring(k+1, i+1),
				ring(k, i), ring(k+1, i+1), ring(k, i+1),
			)
		}
	}
	return vs, is
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
