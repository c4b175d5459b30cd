package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

// 场景装饰的固定颜色
var (
	waterColor          = render.RGBA(0, 0, 50, 0.9)
	waveColor           = render.RGBA(0, 0, 100, 0.6)
	moonColor           = render.RGBA(255, 255, 224, 0.9)
	moonReflectionColor = render.RGBA(255, 255, 224, 0.5)
	cloudColor          = render.RGBA(255, 255, 255, 0.8)
)

const (
	// ReflectionAlpha 倒影相对本体的透明度
	ReflectionAlpha = 0.5

	// 月光波光柱：位于水面下方 refractionOffset 处，宽 2*refractionHalfWidth，
	// 由 refractionStrips 条 1 像素高的横条组成
	refractionOffset    = 10.0
	refractionHalfWidth = 50.0
	refractionStrips    = 100

	lineWidth = 1.0
)

// yTransform 竖直坐标变换：本体为恒等，倒影为关于水面的镜像
type yTransform func(y float64) float64

func identity(y float64) float64 { return y }

// RenderSystem 把场景绘制到 render.Surface
//
// 绘制顺序：
//  1. 背景（清屏或半透明淡出）
//  2. 月亮、云朵
//  3. 水面、波光柱、波浪、月亮倒影
//  4. 每个发射体（上升中画本体，爆炸后画它的火花），随后画倒影
//
// 倒影只在这里计算，实体本身不知道水面的存在。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	profile       *config.Profile
	water         *WaterSystem
	sky           *SkySystem

	background color.NRGBA
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, profile *config.Profile, water *WaterSystem, sky *SkySystem) (*RenderSystem, error) {
	bg := color.NRGBA{A: 255}
	if profile.Background.Color != "" {
		c, err := render.ParseHex(profile.Background.Color)
		if err != nil {
			return nil, fmt.Errorf("profile %s background: %w", profile.ID, err)
		}
		bg = c
	}
	return &RenderSystem{
		entityManager: em,
		profile:       profile,
		water:         water,
		sky:           sky,
		background:    bg,
	}, nil
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(surface render.Surface) {
	surface.SetBlend(render.BlendNormal)
	surface.SetGlobalAlpha(1)

	s.drawBackground(surface)
	s.drawSky(surface)
	waterY, hasWater := s.drawWater(surface)

	if s.profile.Additive {
		surface.SetBlend(render.BlendAdditive)
	}

	mirror := func(y float64) float64 { return ReflectY(waterY, y) }
	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.entityManager) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if proj.State == components.ProjectileRising {
			s.drawProjectile(surface, id, proj, pos, identity, 1)
			if hasWater {
				s.drawProjectile(surface, id, proj, pos, mirror, ReflectionAlpha)
			}
			continue
		}

		for _, sparkID := range proj.Sparks {
			s.drawSpark(surface, sparkID, identity, 1)
		}
		if hasWater {
			for _, sparkID := range proj.Sparks {
				s.drawSpark(surface, sparkID, mirror, ReflectionAlpha)
			}
		}
	}

	surface.SetBlend(render.BlendNormal)
	surface.SetGlobalAlpha(1)
}

func (s *RenderSystem) drawBackground(surface render.Surface) {
	if s.profile.Background.Mode == config.BackgroundFade {
		surface.Fade(s.profile.Background.FadeAlpha)
		return
	}
	surface.Clear(s.background)
}

func (s *RenderSystem) drawSky(surface render.Surface) {
	if s.sky == nil {
		return
	}
	if moon, ok := s.sky.Moon(); ok {
		surface.FillCircle(moon.X, moon.Y, moon.Radius, moonColor)
	}
	for _, id := range s.sky.Clouds() {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](s.entityManager, id)
		surface.FillEllipse(cloud.X, cloud.Y, cloud.Width, cloud.Height, cloudColor)
	}
}

// drawWater 绘制水面，返回水面 Y 坐标
func (s *RenderSystem) drawWater(surface render.Surface) (float64, bool) {
	if s.water == nil {
		return 0, false
	}
	water, ok := s.water.Water()
	if !ok {
		return 0, false
	}
	width, height := surface.Size()

	surface.FillRect(0, water.Y, width, water.Height, waterColor)

	var moon *components.MoonComponent
	if s.sky != nil {
		moon, _ = s.sky.Moon()
	}
	if moon != nil && s.profile.Water.Refraction {
		s.drawRefraction(surface, water.Y, moon)
	}

	if len(water.Waves) > 0 {
		points := make([]render.Point, 0, len(water.Waves)+2)
		for _, w := range water.Waves {
			points = append(points, render.Point{X: w.X, Y: water.Y + w.Y})
		}
		points = append(points, render.Point{X: width, Y: height}, render.Point{X: 0, Y: height})
		surface.FillPolygon(points, waveColor)
	}

	if moon != nil {
		surface.FillCircle(moon.X, ReflectY(water.Y, moon.Y), moon.Radius, moonReflectionColor)
	}

	return water.Y, true
}

// drawRefraction 月亮下方的波光柱，横条左右交错并裁剪到柱体范围内
func (s *RenderSystem) drawRefraction(surface render.Surface, waterY float64, moon *components.MoonComponent) {
	cx := moon.X + moon.Shimmer
	top := waterY + refractionOffset
	left, right := cx-refractionHalfWidth, cx+refractionHalfWidth

	for i := 0; i < refractionStrips; i++ {
		offset := -float64(i)
		if i%2 == 1 {
			offset = float64(i)
		}
		x0 := math.Max(left+offset, left)
		x1 := math.Min(left+offset+2*refractionHalfWidth, right)
		if x1 <= x0 {
			continue
		}
		alpha := math.Min(0.05+float64(i)*0.01, 1)
		surface.FillRect(x0, top+float64(i), x1-x0, 1, render.RGBA(255, 255, 224, alpha))
	}
}

// drawProjectile 绘制上升中的发射体
func (s *RenderSystem) drawProjectile(surface render.Surface, id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, ty yTransform, alpha float64) {
	surface.SetGlobalAlpha(alpha)

	trail, hasTrail := ecs.GetComponent[*components.TrailComponent](s.entityManager, id)
	if hasTrail && len(trail.Points) > 0 {
		oldest := trail.Points[len(trail.Points)-1]
		surface.StrokeLine(oldest.X, ty(oldest.Y), pos.X, ty(pos.Y), lineWidth, proj.Color)
	}

	if proj.Trigger == config.TriggerTarget {
		surface.StrokeCircle(proj.TargetX, ty(proj.TargetY), proj.TargetRadius, lineWidth, proj.Color)
		if !hasTrail {
			surface.FillCircle(pos.X, ty(pos.Y), proj.Size, proj.Color)
		}
		return
	}

	surface.FillCircle(pos.X, ty(pos.Y), proj.Size, proj.Color)
}

// drawSpark 绘制单个火花（轨迹、光晕或实心圆）
func (s *RenderSystem) drawSpark(surface render.Surface, id ecs.EntityID, ty yTransform, alpha float64) {
	spark, ok := ecs.GetComponent[*components.SparkComponent](s.entityManager, id)
	if !ok || spark.Expired {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}

	surface.SetGlobalAlpha(spark.Alpha * alpha)

	if trail, ok := ecs.GetComponent[*components.TrailComponent](s.entityManager, id); ok && len(trail.Points) > 0 {
		oldest := trail.Points[len(trail.Points)-1]
		trailColor := spark.Color
		if spark.UseHue {
			trailColor = render.HSLA(spark.Hue, 1, spark.Brightness, 1)
		}
		surface.StrokeLine(oldest.X, ty(oldest.Y), pos.X, ty(pos.Y), lineWidth, trailColor)
	}

	if spark.Glow {
		// 中心为火花颜色，边缘透明度减半
		surface.FillRadialGradient(pos.X, ty(pos.Y), spark.Size, []render.GradientStop{
			{Offset: 0, Color: spark.Color},
			{Offset: 1, Color: render.ScaleAlpha(spark.Color, 0.5)},
		})
		return
	}

	surface.FillCircle(pos.X, ty(pos.Y), spark.Size, spark.Color)
}
