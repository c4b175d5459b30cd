package game

import (
	"github.com/decker502/fireworks/pkg/render"
)

// Scene represents a displayable scene driven by the host's frame clock.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided surface.
	Draw(surface render.Surface)
}

// Clickable 是一个可选接口，场景实现后可以接收指针点击
//
// 点击坐标是场景的逻辑坐标（与 Surface.Size 一致）。
type Clickable interface {
	Click(x, y float64)
}

// Resizable 是一个可选接口，场景实现后会在画布尺寸变化时收到通知
type Resizable interface {
	Resize(width, height float64)
}
