// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fireworks/pkg/canvas"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrQuit 用户请求退出（Esc），RunGame 返回此错误表示正常结束
var ErrQuit = errors.New("quit")

// profileKeys 数字键 1-4 切换预设（按预设文件顺序）
var profileKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Profile 启动时加载的预设ID，为空则使用默认预设
	Profile string
	// SoundPath 爆炸音效文件（mp3/ogg/wav/au），为空则不播放
	SoundPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// AllowQuit 允许 Esc 退出（移动端关闭）
	AllowQuit bool
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	profiles     *config.ProfileSet
	audio        *game.AudioManager

	// offscreen 跨帧保留内容的画布，拖尾效果依赖上一帧的像素
	offscreen *ebiten.Image
	canvas    *canvas.Canvas

	width, height int
	verbose       bool
	allowQuit     bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化烟花应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	profiles, err := config.LoadBuiltinProfiles()
	if err != nil {
		return nil, fmt.Errorf("预设加载失败: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(config.AudioSampleRate)
	audioManager := game.NewAudioManager(audioContext, config.ExplosionVolume)
	if cfg.SoundPath != "" {
		if err := audioManager.LoadFile(cfg.SoundPath); err != nil {
			// 没有音效也可以运行
			log.Printf("[App] 音效加载失败: %v", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] random seed: %d", seed)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewFactory(profiles, scenes.Options{
		Rand:  rand.New(rand.NewSource(seed)),
		Sound: audioManager,
	}))
	sceneManager.Resize(config.WindowWidth, config.WindowHeight)

	if err := sceneManager.LoadProfile(cfg.Profile); err != nil {
		return nil, err
	}
	log.Printf("[App] Starting profile: %s", sceneManager.CurrentProfile())

	return &App{
		sceneManager: sceneManager,
		profiles:     profiles,
		audio:        audioManager,
		canvas:       canvas.New(nil),
		verbose:      cfg.Verbose,
		allowQuit:    cfg.AllowQuit,
	}, nil
}

// Update 推进一帧并把场景绘制到离屏画布
//
// 场景绘制放在 Update 里，每个 tick 恰好绘制一次；
// Draw 可能以不同于 TPS 的频率调用，只负责把离屏画布贴到屏幕上。
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if a.allowQuit && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.handleProfileKeys()
	a.handlePointer()

	if a.offscreen == nil {
		return nil
	}
	a.sceneManager.Update(scenes.FrameDelta)
	a.canvas.SetTarget(a.offscreen)
	a.sceneManager.Draw(a.canvas)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
}

func (a *App) handleProfileKeys() {
	ids := a.profiles.IDs()
	for i, key := range profileKeys {
		if i >= len(ids) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if ids[i] == a.sceneManager.CurrentProfile() {
			return
		}
		if err := a.sceneManager.LoadProfile(ids[i]); err != nil {
			log.Printf("[App] 切换预设失败: %v", err)
			return
		}
		// 新场景从空白画布开始
		if a.offscreen != nil {
			a.offscreen.Clear()
		}
		return
	}
}

// handlePointer 鼠标左键和触摸都作为点击
func (a *App) handlePointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.sceneManager.Click(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.sceneManager.Click(float64(x), float64(y))
	}
}

// Draw 把离屏画布绘制到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	if a.offscreen == nil {
		screen.Fill(color.Black)
		return
	}
	screen.DrawImage(a.offscreen, nil)
}

// Layout 逻辑尺寸跟随窗口尺寸，窗口变化时重建离屏画布并通知场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.WindowWidth, config.WindowHeight
	}
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		if a.offscreen != nil {
			a.offscreen.Deallocate()
		}
		a.offscreen = ebiten.NewImage(outsideWidth, outsideHeight)
		a.sceneManager.Resize(float64(outsideWidth), float64(outsideHeight))
		log.Printf("[App] Layout: %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Profiles 返回内置预设集合
func (a *App) Profiles() *config.ProfileSet {
	return a.profiles
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
