package components

import (
	"image/color"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
)

// ProjectileState 发射体状态
type ProjectileState int

const (
	// ProjectileRising 上升中
	ProjectileRising ProjectileState = iota
	// ProjectileExploded 已爆炸，仅作为火花的宿主存在，直到所有火花消失
	ProjectileExploded
)

func (s ProjectileState) String() string {
	switch s {
	case ProjectileRising:
		return "rising"
	case ProjectileExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// ProjectileComponent 上升的烟花弹
//
// 状态机：Rising → Exploded（单向）。爆炸时一次性生成火花，
// 之后 Sparks 只会减少，全部消失后发射体被删除。
//
// This is a pure data component following ECS principles - it contains no methods.
type ProjectileComponent struct {
	State   ProjectileState
	Trigger config.Trigger

	// 竖直上升（apex / altitude 触发）
	SpeedY  float64 // 向上速度（像素/帧，正值向上）
	Gravity float64 // 每帧从 SpeedY 中减去

	// ExplodeY altitude 触发的爆炸高度（y 小于该值时爆炸）
	ExplodeY float64

	// 目标追踪（target 触发）
	StartX, StartY   float64
	TargetX, TargetY float64
	Angle            float64 // 弧度
	Speed            float64
	Acceleration     float64 // 每帧速度乘数
	DistanceToTarget float64
	TargetRadius     float64 // 目标点脉冲圆半径（1 → 8 循环）

	Size  float64
	Color color.NRGBA

	// Particle tracking (火花追踪)
	Sparks        []ecs.EntityID // 仍然存活的火花
	SparksSpawned int            // 爆炸时生成的火花总数（只写一次）

	// ExplodedX/ExplodedY 爆炸点
	ExplodedX float64
	ExplodedY float64
}
