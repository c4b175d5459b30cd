package components

// PositionComponent 实体的逻辑坐标（像素，原点在画布左上角）
type PositionComponent struct {
	X float64
	Y float64
}
