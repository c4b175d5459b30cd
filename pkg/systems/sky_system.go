package systems

import (
	"math"
	"math/rand"

	perlin "github.com/aquilax/go-perlin"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
)

const (
	// 波光柱左右摆动的幅度（像素）和角速度（弧度/秒）
	shimmerAmplitude = 5.0
	shimmerRate      = 1.0

	// 云朵在噪声空间中的移动速度（每秒）
	cloudNoiseRate = 0.25
)

// SkySystem 管理月亮和云朵
//
// 月亮位置按画布比例计算，云朵向右飘动，越过右边界后从左侧重新出现，
// 竖直方向用 Perlin 噪声做轻微浮动。
type SkySystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	moonCfg       config.MoonConfig
	cloudCfg      config.CloudConfig
	noise         *perlin.Perlin

	moonID  ecs.EntityID
	width   float64
	height  float64
	elapsed float64 // 秒
}

// NewSkySystem 创建天空系统
func NewSkySystem(em *ecs.EntityManager, rng *rand.Rand, moon config.MoonConfig, clouds config.CloudConfig) *SkySystem {
	return &SkySystem{
		entityManager: em,
		rng:           rng,
		moonCfg:       moon,
		cloudCfg:      clouds,
		noise:         perlin.NewPerlin(2, 2, 3, rng.Int63()),
	}
}

// Resize 重新计算月亮位置；第一次调用时生成云朵
func (s *SkySystem) Resize(width, height float64) {
	first := s.width == 0 && s.height == 0
	oldHeight := s.height
	s.width, s.height = width, height

	if s.moonCfg.Enabled {
		moon, ok := s.Moon()
		if !ok {
			s.moonID = s.entityManager.CreateEntity()
			moon = &components.MoonComponent{Radius: s.moonCfg.Radius}
			ecs.AddComponent(s.entityManager, s.moonID, moon)
		}
		moon.X = width * s.moonCfg.X
		moon.Y = height * s.moonCfg.Y
	}

	if first {
		for i := 0; i < s.cloudCfg.Count; i++ {
			cloudWidth := particle.RandomInRange(s.rng, s.cloudCfg.WidthMin, s.cloudCfg.WidthMax)
			baseY := s.rng.Float64() * height * 0.5
			id := s.entityManager.CreateEntity()
			ecs.AddComponent(s.entityManager, id, &components.CloudComponent{
				X:           s.rng.Float64() * width,
				Y:           baseY,
				BaseY:       baseY,
				Width:       cloudWidth,
				Height:      cloudWidth * 0.5,
				Speed:       particle.RandomInRange(s.rng, s.cloudCfg.SpeedMin, s.cloudCfg.SpeedMax),
				NoiseOffset: s.rng.Float64() * 100,
			})
		}
		return
	}

	// 云朵保持在画布上半部分的相对位置
	if oldHeight > 0 {
		for _, id := range s.Clouds() {
			cloud, _ := ecs.GetComponent[*components.CloudComponent](s.entityManager, id)
			cloud.BaseY = cloud.BaseY / oldHeight * height
			cloud.Y = cloud.BaseY
		}
	}
}

// Update 推进一帧，dt 为秒
func (s *SkySystem) Update(dt float64) {
	s.elapsed += dt

	if moon, ok := s.Moon(); ok {
		moon.Shimmer = math.Sin(s.elapsed*shimmerRate) * shimmerAmplitude
	}

	for _, id := range s.Clouds() {
		cloud, _ := ecs.GetComponent[*components.CloudComponent](s.entityManager, id)
		cloud.X += cloud.Speed
		if cloud.X > s.width {
			cloud.X = -cloud.Width
		}
		bob := s.noise.Noise1D(cloud.NoiseOffset + s.elapsed*cloudNoiseRate)
		cloud.Y = cloud.BaseY + bob*s.cloudCfg.Bob
	}
}

// Moon 返回月亮组件；预设没有月亮时 ok 为 false
func (s *SkySystem) Moon() (*components.MoonComponent, bool) {
	if s.moonID == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.MoonComponent](s.entityManager, s.moonID)
}

// Clouds 返回所有云朵实体ID
func (s *SkySystem) Clouds() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.CloudComponent](s.entityManager)
}

// Elapsed 返回累计运行时间（秒）
func (s *SkySystem) Elapsed() float64 {
	return s.elapsed
}
