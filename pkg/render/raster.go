package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Raster 软件光栅化画布
//
// 每个像素覆盖 scaleX × scaleY 个逻辑像素，按像素中心采样。
// 终端版用它把场景绘制成字符网格；像素只保存不透明的 RGB，
// Fade 等价于在黑色背景上做 destination-out。
type Raster struct {
	cols, rows     int
	scaleX, scaleY float64
	pix            []colorful.Color

	alpha float64
	blend BlendMode

	// covered 每条指令内复用的像素集合，避免同一像素被重复混合
	covered map[int]struct{}
}

// NewRaster 创建 cols × rows 像素的光栅，每像素对应 scaleX × scaleY 逻辑像素
func NewRaster(cols, rows int, scaleX, scaleY float64) *Raster {
	r := &Raster{
		scaleX:  scaleX,
		scaleY:  scaleY,
		alpha:   1,
		covered: make(map[int]struct{}),
	}
	r.Resize(cols, rows)
	return r
}

// Resize 重新分配像素网格（内容清空）
func (r *Raster) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.pix = make([]colorful.Color, cols*rows)
}

// PixelSize 返回像素网格尺寸
func (r *Raster) PixelSize() (int, int) {
	return r.cols, r.rows
}

// At 返回像素颜色；越界返回黑色
func (r *Raster) At(col, row int) colorful.Color {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return colorful.Color{}
	}
	return r.pix[row*r.cols+col]
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.cols) * r.scaleX, float64(r.rows) * r.scaleY
}

func (r *Raster) Clear(c color.NRGBA) {
	fill := ToColorful(c)
	for i := range r.pix {
		r.pix[i] = fill
	}
}

func (r *Raster) Fade(alpha float64) {
	keep := 1 - clamp01(alpha)
	for i, p := range r.pix {
		r.pix[i] = colorful.Color{R: p.R * keep, G: p.G * keep, B: p.B * keep}
	}
}

func (r *Raster) SetBlend(mode BlendMode)      { r.blend = mode }
func (r *Raster) SetGlobalAlpha(alpha float64) { r.alpha = alpha }
func (r *Raster) GlobalAlpha() float64         { return r.alpha }

// center 像素中心的逻辑坐标
func (r *Raster) center(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * r.scaleX, (float64(row) + 0.5) * r.scaleY
}

// pixelRange 把逻辑包围盒转换为像素范围（已裁剪）
func (r *Raster) pixelRange(minX, minY, maxX, maxY float64) (c0, r0, c1, r1 int) {
	c0 = int(math.Floor(minX / r.scaleX))
	r0 = int(math.Floor(minY / r.scaleY))
	c1 = int(math.Ceil(maxX / r.scaleX))
	r1 = int(math.Ceil(maxY / r.scaleY))
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 > r.cols-1 {
		c1 = r.cols - 1
	}
	if r1 > r.rows-1 {
		r1 = r.rows - 1
	}
	return
}

// scan 对包围盒内中心满足 inside 的像素混合颜色
// 没有任何像素中心落在图形内时（图形小于一个像素），退化为图形中心所在像素
func (r *Raster) scan(minX, minY, maxX, maxY float64, inside func(x, y float64) bool, shade func(x, y float64) color.NRGBA) {
	c0, r0, c1, r1 := r.pixelRange(minX, minY, maxX, maxY)
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := r.center(col, row)
			if inside(x, y) {
				r.blendPixel(col, row, shade(x, y))
				hit = true
			}
		}
	}
	if !hit {
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		r.blendPixel(int(math.Floor(cx/r.scaleX)), int(math.Floor(cy/r.scaleY)), shade(cx, cy))
	}
}

func (r *Raster) blendPixel(col, row int, c color.NRGBA) {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return
	}
	a := Alpha(c) * r.alpha
	if a <= 0 {
		return
	}
	i := row*r.cols + col
	src := ToColorful(c)
	dst := r.pix[i]
	switch r.blend {
	case BlendAdditive:
		r.pix[i] = colorful.Color{
			R: math.Min(1, dst.R+src.R*a),
			G: math.Min(1, dst.G+src.G*a),
			B: math.Min(1, dst.B+src.B*a),
		}
	default:
		r.pix[i] = dst.BlendRgb(src, math.Min(1, a))
	}
}

func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	r.scan(x, y, x+w, y+h, func(px, py float64) bool {
		return px >= x && px < x+w && py >= y && py < y+h
	}, func(float64, float64) color.NRGBA { return c })
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.FillEllipse(cx, cy, radius, radius, c)
}

func (r *Raster) FillEllipse(cx, cy, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	r.scan(cx-rx, cy-ry, cx+rx, cy+ry, func(px, py float64) bool {
		dx, dy := (px-cx)/rx, (py-cy)/ry
		return dx*dx+dy*dy <= 1
	}, func(float64, float64) color.NRGBA { return c })
}

func (r *Raster) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	half := math.Max(width, math.Min(r.scaleX, r.scaleY)) / 2
	r.scan(cx-radius-half, cy-radius-half, cx+radius+half, cy+radius+half, func(px, py float64) bool {
		d := math.Hypot(px-cx, py-cy)
		return math.Abs(d-radius) <= half
	}, func(float64, float64) color.NRGBA { return c })
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if r.cols == 0 || r.rows == 0 {
		return
	}
	// 沿线段按半个像素步长采样，同一像素只混合一次
	for k := range r.covered {
		delete(r.covered, k)
	}
	step := math.Min(r.scaleX, r.scaleY) / 2
	length := math.Hypot(x1-x0, y1-y0)
	n := int(math.Ceil(length/step)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		col := int(math.Floor(x / r.scaleX))
		row := int(math.Floor(y / r.scaleY))
		if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
			continue
		}
		idx := row*r.cols + col
		if _, done := r.covered[idx]; done {
			continue
		}
		r.covered[idx] = struct{}{}
		r.blendPixel(col, row, c)
	}
}

func (r *Raster) FillPolygon(points []Point, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r.scan(minX, minY, maxX, maxY, func(px, py float64) bool {
		return pointInPolygon(points, px, py)
	}, func(float64, float64) color.NRGBA { return c })
}

func (r *Raster) FillRadialGradient(cx, cy, radius float64, stops []GradientStop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	r.scan(cx-radius, cy-radius, cx+radius, cy+radius, func(px, py float64) bool {
		return math.Hypot(px-cx, py-cy) <= radius
	}, func(px, py float64) color.NRGBA {
		return GradientAt(stops, math.Hypot(px-cx, py-cy)/radius)
	})
}

// pointInPolygon 奇偶规则判断点是否在多边形内
func pointInPolygon(points []Point, x, y float64) bool {
	inside := false
	j := len(points) - 1
	for i := range points {
		pi, pj := points[i], points[j]
		if (pi.Y > y) != (pj.Y > y) {
			xCross := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
