package components

import "github.com/decker502/fireworks/pkg/render"

// TrailComponent 最近若干帧的历史位置，用于绘制拖尾线段
//
// Points[0] 是最新的历史点，Points[len-1] 是最旧的；长度固定为 Length。
type TrailComponent struct {
	Points []render.Point
	Length int
}
