package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/render"
)

// LaunchSystem 负责生成新的发射体
//
// 点击只进入等待队列，下一次 Update 时才真正创建发射体；
// 自动发射按每帧固定概率触发，MaxActive > 0 时上升中的发射体数量受限。
type LaunchSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	profile       *config.Profile

	pending []render.Point
}

// NewLaunchSystem 创建发射系统
func NewLaunchSystem(em *ecs.EntityManager, rng *rand.Rand, profile *config.Profile) *LaunchSystem {
	return &LaunchSystem{
		entityManager: em,
		rng:           rng,
		profile:       profile,
	}
}

// Click 记录一次点击，下一帧生效
func (s *LaunchSystem) Click(x, y float64) {
	s.pending = append(s.pending, render.Point{X: x, Y: y})
}

// Pending 返回等待中的点击数量
func (s *LaunchSystem) Pending() int {
	return len(s.pending)
}

// Update 处理等待中的点击，然后按概率自动发射；返回本帧创建的发射体
func (s *LaunchSystem) Update(width, height float64) []ecs.EntityID {
	var created []ecs.EntityID

	for _, click := range s.pending {
		var id ecs.EntityID
		var err error
		if s.profile.Projectile.Trigger == config.TriggerTarget && s.profile.Launch.ClickSetsTarget {
			id, err = s.Launch(render.Point{X: width / 2, Y: height}, click)
		} else {
			id, err = s.Launch(render.Point{X: click.X, Y: height}, click)
		}
		if err != nil {
			log.Printf("[LaunchSystem] click launch failed: %v", err)
			continue
		}
		created = append(created, id)
	}
	s.pending = s.pending[:0]

	if s.shouldAutoLaunch() {
		id, err := s.Launch(s.autoOrigin(width, height), render.Point{
			X: s.rng.Float64() * width,
			Y: s.rng.Float64() * height / 2,
		})
		if err != nil {
			log.Printf("[LaunchSystem] auto launch failed: %v", err)
		} else {
			created = append(created, id)
		}
	}

	return created
}

// Launch 立即创建一个发射体
//
// target 触发的预设飞向 to；竖直触发的预设从 from 竖直上升，忽略 to。
func (s *LaunchSystem) Launch(from, to render.Point) (ecs.EntityID, error) {
	if s.profile.Projectile.Trigger == config.TriggerTarget {
		return entities.NewTargetedProjectile(s.entityManager, s.rng, s.profile, from.X, from.Y, to.X, to.Y)
	}
	return entities.NewRisingProjectile(s.entityManager, s.rng, s.profile, from.X, from.Y)
}

// Rising 返回仍在上升中的发射体数量
func (s *LaunchSystem) Rising() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		if proj.State == components.ProjectileRising {
			count++
		}
	}
	return count
}

func (s *LaunchSystem) shouldAutoLaunch() bool {
	lc := s.profile.Launch
	if lc.Probability <= 0 {
		return false
	}
	if lc.MaxActive > 0 && s.Rising() >= lc.MaxActive {
		return false
	}
	return s.rng.Float64() < lc.Probability
}

func (s *LaunchSystem) autoOrigin(width, height float64) render.Point {
	if s.profile.Launch.Origin == config.OriginCenter {
		return render.Point{X: width / 2, Y: height}
	}
	return render.Point{X: s.rng.Float64() * width, Y: height}
}
