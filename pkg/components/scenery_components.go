package components

// WaveSample 水面上的一个波形采样点
type WaveSample struct {
	X         float64 // 横坐标（随时间缓慢右移，越界后回到 0）
	Y         float64 // 相对水面的偏移 = sin(Phase) * Amplitude
	Amplitude float64
	Phase     float64 // 弧度
}

// WaterComponent 水面
//
// 只读取其他实体的位置来计算倒影坐标，不拥有任何实体。
type WaterComponent struct {
	Y      float64 // 水面 Y 坐标
	Height float64 // 水体高度（Y 到画布底部）

	Waves      []WaveSample
	WaveHeight float64 // 最大振幅
	WaveLength float64 // 采样间距
	WaveSpeed  float64 // 每帧相位增量
}

// MoonComponent 月亮
type MoonComponent struct {
	X, Y   float64
	Radius float64

	// Shimmer 波光柱的当前水平偏移
	Shimmer float64
}

// CloudComponent 飘动的云
type CloudComponent struct {
	X     float64
	Y     float64 // 当前 Y = BaseY + 噪声浮动
	BaseY float64

	Width  float64 // 椭圆水平半径
	Height float64 // 椭圆竖直半径
	Speed  float64 // 每帧右移像素

	// NoiseOffset 每朵云在噪声空间中的独立偏移
	NoiseOffset float64
}
