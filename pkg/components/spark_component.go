package components

import (
	"image/color"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
)

// SparkComponent 爆炸产生的单个火花
//
// 每帧由 SparkSystem 更新：位置 += 速度，vy += 重力，y += 漂移，
// 速度 *= 摩擦，Alpha -= Decay。Alpha 单调递减，达到过期阈值后实体被删除。
//
// This is a pure data component following ECS principles - it contains no methods.
type SparkComponent struct {
	// Velocity (像素/帧)
	VX float64
	VY float64

	Gravity  float64 // 每帧加到 VY 上
	Drift    float64 // 每帧直接加到 Y 上的恒定下坠（不累积到速度）
	Friction float64 // 每帧速度乘数，1 = 无阻尼

	// Transparency (透明度, 1 → 0)
	Alpha  float64
	Decay  float64       // 每帧透明度减少量
	Cutoff config.Cutoff // 过期判定方式

	Size  float64
	Color color.NRGBA

	// 随机色相模式（targeted 预设）：轨迹和光晕使用自己的色相
	UseHue     bool
	Hue        float64 // 0-360
	Brightness float64 // 0-1，仅用于轨迹

	// Glow 使用径向渐变绘制（否则为实心圆）
	Glow bool

	// Owner 产生该火花的发射体
	Owner ecs.EntityID

	// Expired 已达到过期阈值，等待清理
	Expired bool
}
