package entities

import (
	"image/color"
	"math/rand"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

// BurstSize 返回一次爆炸应生成的火花数量
//
// jitter 为 0 时固定为 count，否则在 [count, count+jitter) 内随机。
func BurstSize(rng *rand.Rand, burst config.BurstConfig) int {
	return particle.RandomIntJitter(rng, burst.Count, burst.Jitter)
}

// CreateSparkBurst 在 (x,y) 一次性生成一批火花
//
// 所有火花都记录 owner 作为宿主发射体，颜色默认继承 base。
// 随机色相模式下每个火花另有独立色相和亮度，用于轨迹和光晕。
//
// 返回按创建顺序排列的火花实体ID。
func CreateSparkBurst(em *ecs.EntityManager, rng *rand.Rand, profile *config.Profile, owner ecs.EntityID, x, y float64, base color.NRGBA) []ecs.EntityID {
	b := profile.Burst
	count := BurstSize(rng, b)
	ids := make([]ecs.EntityID, 0, count)

	for i := 0; i < count; i++ {
		var vx, vy float64
		switch b.VelocityMode {
		case config.VelocityPolar:
			vx, vy = particle.PolarVelocity(rng, b.SpeedMin, b.SpeedMax)
		default:
			vx, vy = particle.BoxVelocity(rng, b.SpeedMax)
		}

		spark := &components.SparkComponent{
			VX:       vx,
			VY:       vy,
			Gravity:  b.Gravity,
			Drift:    b.Drift,
			Friction: b.Friction,
			Alpha:    1,
			Decay:    particle.RandomInRange(rng, b.DecayMin, b.DecayMax),
			Cutoff:   b.Cutoff,
			Size:     particle.RandomInRange(rng, b.SizeMin, b.SizeMax),
			Color:    base,
			Glow:     b.Glow,
			Owner:    owner,
		}
		if b.ColorMode == config.ColorHue {
			spark.UseHue = true
			spark.Hue = rng.Float64() * 360
			spark.Brightness = particle.RandomInRange(rng, 0.4, 1.0)
			spark.Color = render.HSLA(spark.Hue, 1, 0.5, 1)
		}

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(em, id, spark)
		if b.TrailLength > 0 {
			ecs.AddComponent(em, id, NewTrail(b.TrailLength, x, y))
		}
		ids = append(ids, id)
	}

	return ids
}
