package game

import (
	"fmt"
	"log"

	"github.com/decker502/fireworks/pkg/render"
)

// SceneFactory 场景工厂函数类型
// 用于按预设ID创建场景，避免循环依赖
type SceneFactory func(profileID string) (Scene, error)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene   Scene
	currentProfile string
	sceneFactory   SceneFactory

	// 最近一次的画布尺寸，新场景创建后立即应用
	width, height float64
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadProfile to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentProfile 返回当前场景的预设ID
func (sm *SceneManager) CurrentProfile() string {
	return sm.currentProfile
}

// LoadProfile 用工厂创建指定预设的场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) LoadProfile(profileID string) error {
	log.Printf("[SceneManager] 加载预设: %s", profileID)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory is not set")
	}

	scene, err := sm.sceneFactory(profileID)
	if err != nil {
		return fmt.Errorf("failed to create scene for profile %q: %w", profileID, err)
	}
	if scene == nil {
		return fmt.Errorf("scene factory returned nil for profile %q", profileID)
	}

	sm.SwitchTo(scene)
	sm.currentProfile = profileID
	log.Printf("[SceneManager] 成功切换到预设: %s", profileID)
	return nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided surface.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(surface render.Surface) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(surface)
	}
}

// Click 把点击转发给当前场景（如果它接收点击）
func (sm *SceneManager) Click(x, y float64) {
	if c, ok := sm.currentScene.(Clickable); ok {
		c.Click(x, y)
	}
}

// Resize 记录画布尺寸并通知当前场景
func (sm *SceneManager) Resize(width, height float64) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}
