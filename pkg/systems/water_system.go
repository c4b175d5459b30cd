package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
)

// ReflectY 水面倒影坐标：waterY + (waterY - y)
func ReflectY(waterY, y float64) float64 {
	return 2*waterY - y
}

// WaterSystem 管理水面实体和波浪采样
//
// 水面只读取其他实体的坐标来计算倒影，不影响模拟状态。
type WaterSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	cfg           config.WaterConfig

	waterID ecs.EntityID
	width   float64
}

// NewWaterSystem 创建水面系统；cfg.Enabled 为 false 时所有方法都是空操作
func NewWaterSystem(em *ecs.EntityManager, rng *rand.Rand, cfg config.WaterConfig) *WaterSystem {
	return &WaterSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
	}
}

// Resize 按画布尺寸重新计算水面位置，并重新生成波浪采样
func (s *WaterSystem) Resize(width, height float64) {
	if !s.cfg.Enabled {
		return
	}
	s.width = width

	water, ok := s.water()
	if !ok {
		s.waterID = s.entityManager.CreateEntity()
		water = &components.WaterComponent{}
		ecs.AddComponent(s.entityManager, s.waterID, water)
	}

	water.Y = height * s.cfg.Level
	water.Height = height - water.Y
	water.WaveHeight = s.cfg.WaveHeight
	water.WaveLength = s.cfg.WaveLength
	water.WaveSpeed = s.cfg.WaveSpeed
	water.Waves = water.Waves[:0]

	if s.cfg.Waves {
		for x := 0.0; x < width; x += s.cfg.WaveLength {
			water.Waves = append(water.Waves, components.WaveSample{
				X:         x,
				Amplitude: s.rng.Float64() * s.cfg.WaveHeight,
				Phase:     s.rng.Float64() * 2 * math.Pi,
			})
		}
	}
}

// Update 推进波浪相位，采样点缓慢右移，越过右边界后回到 0
func (s *WaterSystem) Update() {
	water, ok := s.water()
	if !ok {
		return
	}
	for i := range water.Waves {
		w := &water.Waves[i]
		w.Phase += water.WaveSpeed
		w.Y = math.Sin(w.Phase) * w.Amplitude
		w.X += water.WaveSpeed
		if w.X > s.width {
			w.X = 0
		}
	}
}

// WaterY 返回水面 Y 坐标；没有水面时 ok 为 false
func (s *WaterSystem) WaterY() (y float64, ok bool) {
	water, ok := s.water()
	if !ok {
		return 0, false
	}
	return water.Y, true
}

// Water 返回水面组件（只读使用）
func (s *WaterSystem) Water() (*components.WaterComponent, bool) {
	return s.water()
}

func (s *WaterSystem) water() (*components.WaterComponent, bool) {
	if s.waterID == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.WaterComponent](s.entityManager, s.waterID)
}
