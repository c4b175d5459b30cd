package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/systems"
)

// FrameDelta 固定的每帧时长（秒）
const FrameDelta = 1.0 / config.TicksPerSecond

// Options 场景的可选依赖
type Options struct {
	// Rand 随机数源；为 nil 时使用当前时间作为种子
	Rand *rand.Rand

	// Sound 爆炸音效；为 nil 或预设关闭音效时不播放
	Sound game.SoundPlayer

	// Width/Height 初始画布尺寸；为 0 时使用窗口默认尺寸
	Width  float64
	Height float64
}

// Stats 场景累计统计
type Stats struct {
	Ticks    int
	Launched int
	Exploded int
	Expired  int // 已删除的火花数
	Removed  int // 清理阶段删除的实体数
}

// FireworksScene 烟花场景
//
// 每次 Update 依次执行：
//  1. 月亮/云朵、波浪推进
//  2. 火花推进（过期火花被标记删除）
//  3. 发射体推进（爆炸时生成火花；火花全部消失后标记删除）
//  4. 清理阶段：移除所有被标记的实体
//  5. 发射：处理上一帧之后的点击，并按概率自动发射
//
// Draw 只读取状态，不修改任何实体。
type FireworksScene struct {
	profile *config.Profile
	rng     *rand.Rand
	sound   game.SoundPlayer

	entityManager *ecs.EntityManager

	sparkSystem      *systems.SparkSystem
	projectileSystem *systems.ProjectileSystem
	waterSystem      *systems.WaterSystem
	skySystem        *systems.SkySystem
	launchSystem     *systems.LaunchSystem
	renderSystem     *systems.RenderSystem

	width, height float64
	stats         Stats
}

// NewFireworksScene 创建烟花场景
func NewFireworksScene(profile *config.Profile, opts Options) (*FireworksScene, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile cannot be nil")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.WindowWidth, config.WindowHeight
	}

	em := ecs.NewEntityManager()
	s := &FireworksScene{
		profile:          profile,
		rng:              rng,
		sound:            opts.Sound,
		entityManager:    em,
		sparkSystem:      systems.NewSparkSystem(em),
		projectileSystem: systems.NewProjectileSystem(em, rng, profile),
		waterSystem:      systems.NewWaterSystem(em, rng, profile.Water),
		skySystem:        systems.NewSkySystem(em, rng, profile.Moon, profile.Clouds),
		launchSystem:     systems.NewLaunchSystem(em, rng, profile),
	}

	rs, err := systems.NewRenderSystem(em, profile, s.waterSystem, s.skySystem)
	if err != nil {
		return nil, err
	}
	s.renderSystem = rs
	s.projectileSystem.OnExplode = s.onExplode

	s.Resize(width, height)
	log.Printf("[FireworksScene] 创建场景: profile=%s size=%.0fx%.0f", profile.ID, width, height)
	return s, nil
}

// Profile 返回场景使用的预设
func (s *FireworksScene) Profile() *config.Profile {
	return s.profile
}

// Size 返回当前画布尺寸
func (s *FireworksScene) Size() (float64, float64) {
	return s.width, s.height
}

// Update 推进一帧模拟
func (s *FireworksScene) Update(deltaTime float64) {
	s.stats.Ticks++

	s.skySystem.Update(deltaTime)
	s.waterSystem.Update()

	s.stats.Expired += s.sparkSystem.Update()
	s.stats.Exploded += s.projectileSystem.Update()

	s.stats.Removed += s.entityManager.RemoveMarkedEntities()

	s.stats.Launched += len(s.launchSystem.Update(s.width, s.height))
}

// Draw 绘制当前状态
func (s *FireworksScene) Draw(surface render.Surface) {
	s.renderSystem.Draw(surface)
}

// Tick 推进一帧并立即绘制（宿主每帧调用一次）
func (s *FireworksScene) Tick(surface render.Surface) {
	s.Update(FrameDelta)
	s.Draw(surface)
}

// Click 记录一次点击，下一帧生成发射体
func (s *FireworksScene) Click(x, y float64) {
	s.launchSystem.Click(x, y)
}

// Launch 立即从 from 发射一个发射体（target 触发的预设飞向 to）
func (s *FireworksScene) Launch(from, to render.Point) (ecs.EntityID, error) {
	id, err := s.launchSystem.Launch(from, to)
	if err != nil {
		return 0, err
	}
	s.stats.Launched++
	return id, nil
}

// Resize 更新画布尺寸，重新计算水面、波浪和月亮位置
func (s *FireworksScene) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.waterSystem.Resize(width, height)
	s.skySystem.Resize(width, height)
}

// ProjectileCount 返回场景中的发射体数量（包括已爆炸、仍有火花的）
func (s *FireworksScene) ProjectileCount() int {
	return len(ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager))
}

// SparkCount 返回场景中的火花数量
func (s *FireworksScene) SparkCount() int {
	return len(ecs.GetEntitiesWith1[*components.SparkComponent](s.entityManager))
}

// WaterY 返回水面 Y 坐标；预设没有水面时 ok 为 false
func (s *FireworksScene) WaterY() (float64, bool) {
	return s.waterSystem.WaterY()
}

// Stats 返回累计统计
func (s *FireworksScene) Stats() Stats {
	return s.stats
}

// Clear 删除所有发射体和火花（保留水面、月亮和云）
func (s *FireworksScene) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.SparkComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	removed := s.entityManager.RemoveMarkedEntities()
	s.stats.Removed += removed
	log.Printf("[FireworksScene] 清空场景: 删除 %d 个实体", removed)
}

// EntityManager 返回场景的实体管理器（用于调试和测试）
func (s *FireworksScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

func (s *FireworksScene) onExplode(_ ecs.EntityID, _, _ float64, _ int) {
	if s.profile.Sound && s.sound != nil {
		s.sound.PlayExplosion()
	}
}

// NewFactory 返回按预设ID创建 FireworksScene 的工厂
//
// opts.Rand 在所有场景间共享；尺寸由 SceneManager 在切换时应用。
func NewFactory(set *config.ProfileSet, opts Options) game.SceneFactory {
	return func(profileID string) (game.Scene, error) {
		profile, err := set.Get(profileID)
		if err != nil {
			return nil, err
		}
		scene, err := NewFireworksScene(profile, opts)
		if err != nil {
			return nil, err
		}
		return scene, nil
	}
}
