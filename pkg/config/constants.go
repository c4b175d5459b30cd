package config

// 窗口与逻辑画布尺寸
const (
	// WindowWidth 桌面端初始窗口宽度
	WindowWidth = 1024
	// WindowHeight 桌面端初始窗口高度
	WindowHeight = 768

	// TicksPerSecond 模拟频率，所有预设常量都按每帧定义
	TicksPerSecond = 60
)

// 终端版每个字符单元对应的逻辑像素
// 使用半块字符 '▀'，每个单元上下各一个像素，因此纵向分辨率是行数的两倍
const (
	TermCellWidth  = 8
	TermCellHeight = 16
)

// 音效
const (
	// ExplosionVolume 爆炸音效固定音量
	ExplosionVolume = 0.3

	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000
)
