package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

// NewRisingProjectile 创建竖直上升的烟花弹（apex / altitude 触发）
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机数源
//   - profile: 当前预设
//   - x, y: 发射点（通常是画布底部）
//
// 返回:
//   - ecs.EntityID: 创建的发射体实体ID
//   - error: 预设不是竖直触发或颜色表无法解析时返回错误
func NewRisingProjectile(em *ecs.EntityManager, rng *rand.Rand, profile *config.Profile, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if profile == nil {
		return 0, fmt.Errorf("profile cannot be nil")
	}
	pc := profile.Projectile
	if pc.Trigger == config.TriggerTarget {
		return 0, fmt.Errorf("profile %s launches targeted projectiles", profile.ID)
	}

	c, err := projectileColor(rng, profile)
	if err != nil {
		return 0, err
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})

	proj := &components.ProjectileComponent{
		State:   components.ProjectileRising,
		Trigger: pc.Trigger,
		SpeedY:  particle.RandomInRange(rng, pc.SpeedMin, pc.SpeedMax),
		Gravity: pc.Gravity,
		StartX:  x,
		StartY:  y,
		Size:    particle.RandomInRange(rng, pc.SizeMin, pc.SizeMax),
		Color:   c,
	}
	if pc.Trigger == config.TriggerAltitude {
		// 发射点在画布底部，y 即画布高度
		proj.ExplodeY = y * pc.Altitude
	}
	ecs.AddComponent(em, entityID, proj)

	if pc.TrailLength > 0 {
		ecs.AddComponent(em, entityID, NewTrail(pc.TrailLength, x, y))
	}

	return entityID, nil
}

// NewTargetedProjectile 创建飞向目标点的烟花弹（target 触发）
//
// 发射体沿 (sx,sy)→(tx,ty) 方向加速飞行，飞行距离达到目标距离时在目标点爆炸。
func NewTargetedProjectile(em *ecs.EntityManager, rng *rand.Rand, profile *config.Profile, sx, sy, tx, ty float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if profile == nil {
		return 0, fmt.Errorf("profile cannot be nil")
	}
	pc := profile.Projectile
	if pc.Trigger != config.TriggerTarget {
		return 0, fmt.Errorf("profile %s does not launch targeted projectiles", profile.ID)
	}

	c, err := projectileColor(rng, profile)
	if err != nil {
		return 0, err
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: sx, Y: sy})
	ecs.AddComponent(em, entityID, &components.ProjectileComponent{
		State:            components.ProjectileRising,
		Trigger:          config.TriggerTarget,
		StartX:           sx,
		StartY:           sy,
		TargetX:          tx,
		TargetY:          ty,
		Angle:            math.Atan2(ty-sy, tx-sx),
		Speed:            pc.Speed,
		Acceleration:     pc.Acceleration,
		DistanceToTarget: math.Hypot(tx-sx, ty-sy),
		TargetRadius:     1,
		Size:             particle.RandomInRange(rng, pc.SizeMin, pc.SizeMax),
		Color:            c,
	})

	if pc.TrailLength > 0 {
		ecs.AddComponent(em, entityID, NewTrail(pc.TrailLength, sx, sy))
	}

	return entityID, nil
}

// NewTrail 创建长度为 length、所有点都在 (x,y) 的轨迹
func NewTrail(length int, x, y float64) *components.TrailComponent {
	points := make([]render.Point, length)
	for i := range points {
		points[i] = render.Point{X: x, Y: y}
	}
	return &components.TrailComponent{Points: points, Length: length}
}

// projectileColor 随机色相模式使用纯色相，否则从颜色表中取色
func projectileColor(rng *rand.Rand, profile *config.Profile) (color.NRGBA, error) {
	if profile.Burst.ColorMode == config.ColorHue {
		return render.HSLA(rng.Float64()*360, 1, 0.5, 1), nil
	}
	palette, err := render.ParsePalette(profile.Palette)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("profile %s: %w", profile.ID, err)
	}
	if len(palette) == 0 {
		return color.NRGBA{}, fmt.Errorf("profile %s has an empty palette", profile.ID)
	}
	return particle.Pick(rng, palette), nil
}
