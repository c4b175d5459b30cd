package render

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHex 解析 "#rrggbb" 格式的颜色
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return fromColorful(c, 1), nil
}

// ParsePalette 解析颜色表
func ParsePalette(hexes []string) ([]color.NRGBA, error) {
	palette := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// HSLA 由色相（度）、饱和度、亮度（0-1）和透明度构造颜色
func HSLA(hue, saturation, lightness, alpha float64) color.NRGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	return fromColorful(colorful.Hsl(hue, saturation, lightness), alpha)
}

// RGBA 由 0-255 的分量和 0-1 的透明度构造颜色（与 CSS rgba() 相同）
func RGBA(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// WithAlpha 替换颜色的透明度
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = alphaByte(alpha)
	return c
}

// ScaleAlpha 把颜色透明度乘以 factor
func ScaleAlpha(c color.NRGBA, factor float64) color.NRGBA {
	c.A = alphaByte(float64(c.A) / 255 * factor)
	return c
}

// Alpha 返回 0-1 的透明度
func Alpha(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

// ToColorful 转换为 go-colorful 的颜色（忽略透明度）
func ToColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

func alphaByte(alpha float64) uint8 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 255
	}
	return uint8(math.Round(alpha * 255))
}

// GradientAt 计算径向渐变在 t（0-1）处的颜色
func GradientAt(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev, next := stops[i-1], stops[i]
			span := next.Offset - prev.Offset
			if span <= 0 {
				return next.Color
			}
			k := (t - prev.Offset) / span
			mixed := ToColorful(prev.Color).BlendRgb(ToColorful(next.Color), k)
			a := Alpha(prev.Color) + (Alpha(next.Color)-Alpha(prev.Color))*k
			return fromColorful(mixed, a)
		}
	}
	return stops[len(stops)-1].Color
}
