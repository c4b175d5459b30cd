package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
)

const (
	// 目标点脉冲圆的半径范围和每帧增量
	targetRadiusMin  = 1.0
	targetRadiusMax  = 8.0
	targetRadiusStep = 0.3
)

// ExplosionHandler 爆炸回调（用于播放音效），在生成火花之后调用
type ExplosionHandler func(id ecs.EntityID, x, y float64, sparks int)

// ProjectileSystem 驱动发射体状态机 Rising → Exploded
//
// 爆炸时一次性生成火花并记录到发射体上；之后每帧剔除已经删除的火花，
// 全部消失后删除发射体本身。状态不会回到 Rising。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	profile       *config.Profile

	// OnExplode 可选的爆炸回调
	OnExplode ExplosionHandler
}

// NewProjectileSystem 创建发射体系统
func NewProjectileSystem(em *ecs.EntityManager, rng *rand.Rand, profile *config.Profile) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		rng:           rng,
		profile:       profile,
	}
}

// Update 推进一帧，返回本帧爆炸的发射体数量
func (s *ProjectileSystem) Update() int {
	exploded := 0

	ids := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		switch proj.State {
		case components.ProjectileRising:
			if s.rise(id, proj, pos) {
				exploded++
			}
		case components.ProjectileExploded:
			s.pruneSparks(id, proj)
		}
	}

	return exploded
}

// rise 推进上升中的发射体，触发爆炸时返回 true
func (s *ProjectileSystem) rise(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent) bool {
	if trail, ok := ecs.GetComponent[*components.TrailComponent](s.entityManager, id); ok {
		PushTrail(trail, pos.X, pos.Y)
	}

	switch proj.Trigger {
	case config.TriggerTarget:
		if proj.TargetRadius < targetRadiusMax {
			proj.TargetRadius += targetRadiusStep
		} else {
			proj.TargetRadius = targetRadiusMin
		}

		proj.Speed *= proj.Acceleration
		vx := math.Cos(proj.Angle) * proj.Speed
		vy := math.Sin(proj.Angle) * proj.Speed

		traveled := math.Hypot(pos.X+vx-proj.StartX, pos.Y+vy-proj.StartY)
		if traveled >= proj.DistanceToTarget {
			pos.X, pos.Y = proj.TargetX, proj.TargetY
			s.explode(id, proj, pos.X, pos.Y)
			return true
		}
		pos.X += vx
		pos.Y += vy

	case config.TriggerAltitude:
		pos.Y -= proj.SpeedY
		proj.SpeedY -= proj.Gravity
		if pos.Y < proj.ExplodeY || proj.SpeedY <= 0 {
			s.explode(id, proj, pos.X, pos.Y)
			return true
		}

	default:
		pos.Y -= proj.SpeedY
		proj.SpeedY -= proj.Gravity
		if proj.SpeedY <= 0 {
			s.explode(id, proj, pos.X, pos.Y)
			return true
		}
	}

	return false
}

// explode 切换到 Exploded 并一次性生成火花
func (s *ProjectileSystem) explode(id ecs.EntityID, proj *components.ProjectileComponent, x, y float64) {
	if proj.State == components.ProjectileExploded {
		return
	}
	proj.State = components.ProjectileExploded
	proj.ExplodedX, proj.ExplodedY = x, y
	proj.Sparks = entities.CreateSparkBurst(s.entityManager, s.rng, s.profile, id, x, y, proj.Color)
	proj.SparksSpawned = len(proj.Sparks)

	if s.OnExplode != nil {
		s.OnExplode(id, x, y, proj.SparksSpawned)
	}
}

// pruneSparks 剔除已删除的火花，全部消失后删除发射体
func (s *ProjectileSystem) pruneSparks(id ecs.EntityID, proj *components.ProjectileComponent) {
	alive := proj.Sparks[:0]
	for _, sparkID := range proj.Sparks {
		if s.entityManager.Exists(sparkID) && !s.entityManager.IsMarkedForDestroy(sparkID) {
			alive = append(alive, sparkID)
		}
	}
	proj.Sparks = alive

	if len(proj.Sparks) == 0 {
		s.entityManager.DestroyEntity(id)
		log.Printf("[ProjectileSystem] projectile %d finished (%d sparks)", id, proj.SparksSpawned)
	}
}
