package systems

import (
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

// SparkSystem 推进所有火花并标记过期的火花
//
// 每帧顺序：记录轨迹 → 位置 += 速度 → vy += 重力 → y += 漂移 →
// 速度 *= 摩擦 → 透明度 -= 衰减。过期的火花通过 DestroyEntity 延迟删除，
// 由场景的清理阶段统一移除。
type SparkSystem struct {
	entityManager *ecs.EntityManager
}

// NewSparkSystem 创建火花系统
func NewSparkSystem(em *ecs.EntityManager) *SparkSystem {
	return &SparkSystem{entityManager: em}
}

// Update 推进一帧，返回本帧过期的火花数量
func (s *SparkSystem) Update() int {
	expired := 0

	ids := ecs.GetEntitiesWith2[*components.SparkComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		spark, _ := ecs.GetComponent[*components.SparkComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if spark.Expired {
			continue
		}

		if trail, ok := ecs.GetComponent[*components.TrailComponent](s.entityManager, id); ok {
			PushTrail(trail, pos.X, pos.Y)
		}

		pos.X += spark.VX
		pos.Y += spark.VY
		spark.VY += spark.Gravity
		pos.Y += spark.Drift
		spark.VX *= spark.Friction
		spark.VY *= spark.Friction
		spark.Alpha -= spark.Decay

		if SparkExpired(spark) {
			spark.Expired = true
			if spark.Alpha < 0 {
				spark.Alpha = 0
			}
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}

	return expired
}

// SparkExpired 判断火花是否达到过期阈值
func SparkExpired(spark *components.SparkComponent) bool {
	if spark.Cutoff == config.CutoffDecay {
		return spark.Alpha <= spark.Decay
	}
	return spark.Alpha <= 0
}

// PushTrail 丢弃最旧的轨迹点，把 (x,y) 放到最前
func PushTrail(trail *components.TrailComponent, x, y float64) {
	if len(trail.Points) == 0 {
		return
	}
	copy(trail.Points[1:], trail.Points[:len(trail.Points)-1])
	trail.Points[0] = render.Point{X: x, Y: y}
}
