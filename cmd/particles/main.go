// Package main provides a fireworks viewer tool for tuning and debugging
// the built-in profiles.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--profile <id>   Start with a specific profile (e.g., --profile=targeted)
//	--seed <n>       Random seed (0 = current time)
//	--quiet          Start with auto-launch disabled
//	--verbose        Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Launch a projectile (same rules as the main program)
//	Left/Right Arrow  - Switch to previous/next profile
//	Space             - Launch from the bottom center toward the screen center
//	A                 - Toggle auto-launch
//	P                 - Toggle pause
//	N                 - Step one tick while paused
//	R                 - Clear all projectiles and sparks
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/fireworks/pkg/canvas"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = config.WindowWidth
	screenHeight = config.WindowHeight
)

var (
	profileFlag = flag.String("profile", "", "Initial profile ID")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = current time)")
	quietFlag   = flag.Bool("quiet", false, "Start with auto-launch disabled")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game interface for the fireworks viewer
type ViewerGame struct {
	profiles     *config.ProfileSet
	profileIndex int
	rng          *rand.Rand

	scene     *scenes.FireworksScene
	offscreen *ebiten.Image
	canvas    *canvas.Canvas

	paused     bool
	autoLaunch bool

	statusMessage string
}

// NewViewerGame creates a new viewer instance
func NewViewerGame() (*ViewerGame, error) {
	profiles, err := config.LoadBuiltinProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &ViewerGame{
		profiles:   profiles,
		rng:        rand.New(rand.NewSource(seed)),
		offscreen:  ebiten.NewImage(screenWidth, screenHeight),
		canvas:     canvas.New(nil),
		autoLaunch: !*quietFlag,
	}
	g.canvas.SetTarget(g.offscreen)

	start := *profileFlag
	if start == "" {
		start = profiles.Default
	}
	for i, id := range profiles.IDs() {
		if id == start {
			g.profileIndex = i
		}
	}
	if err := g.loadProfile(); err != nil {
		return nil, err
	}

	log.Printf("Fireworks viewer initialized: %d profiles, seed=%d", len(profiles.IDs()), seed)
	return g, nil
}

// loadProfile 按当前索引重新创建场景
func (g *ViewerGame) loadProfile() error {
	id := g.profiles.IDs()[g.profileIndex]
	profile, err := g.profiles.Get(id)
	if err != nil {
		return err
	}
	// 预设是副本，关闭自动发射不影响其他场景
	if !g.autoLaunch {
		profile.Launch.Probability = 0
	}

	scene, err := scenes.NewFireworksScene(profile, scenes.Options{
		Rand:   g.rng,
		Width:  screenWidth,
		Height: screenHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to create scene for %s: %w", id, err)
	}
	g.scene = scene
	g.offscreen.Clear()
	g.statusMessage = fmt.Sprintf("Loaded profile %s", id)
	return nil
}

// Update updates the viewer state
func (g *ViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	count := len(g.profiles.IDs())
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.profileIndex = (g.profileIndex + 1) % count
		g.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.profileIndex = (g.profileIndex - 1 + count) % count
		g.reload()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.autoLaunch = !g.autoLaunch
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Clear()
		g.offscreen.Clear()
		g.statusMessage = "Cleared"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		from := render.Point{X: screenWidth / 2, Y: screenHeight}
		to := render.Point{X: screenWidth / 2, Y: screenHeight / 3}
		if _, err := g.scene.Launch(from, to); err != nil {
			g.statusMessage = err.Error()
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.scene.Click(float64(x), float64(y))
	}

	step := !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyN)
	if step {
		g.scene.Tick(g.canvas)
	}
	return nil
}

func (g *ViewerGame) reload() {
	if err := g.loadProfile(); err != nil {
		g.statusMessage = err.Error()
		log.Printf("Warning: %v", err)
	}
}

// Draw renders the scene and the overlay
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(g.offscreen, nil)
	g.drawUI(screen)
}

func (g *ViewerGame) drawUI(screen *ebiten.Image) {
	profile := g.scene.Profile()
	stats := g.scene.Stats()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Profile [%d/%d]: %s (%s)",
		g.profileIndex+1, len(g.profiles.IDs()), profile.ID, profile.Name), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Trigger: %s  Burst: %d+rand(%d)  Cutoff: %s",
		profile.Projectile.Trigger, profile.Burst.Count, profile.Burst.Jitter, profile.Burst.Cutoff), 10, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Projectiles: %d  Sparks: %d",
		g.scene.ProjectileCount(), g.scene.SparkCount()), 10, 50)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Ticks: %d  Launched: %d  Exploded: %d  Expired: %d",
		stats.Ticks, stats.Launched, stats.Exploded, stats.Expired), 10, 70)
	if y, ok := g.scene.WaterY(); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Water line: %.0f", y), 10, 90)
	}
	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 110)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 10, 130)

	controls := []string{
		"Click: Launch  Space: Launch center",
		"Left/Right: Profile  A: Auto-launch  P: Pause  N: Step",
		"R: Clear  Q/Esc: Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	// Pause indicator (top right)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "|| PAUSED (N to step)", screenWidth-200, 10)
	} else if !g.autoLaunch {
		ebitenutil.DebugPrintAt(screen, "AUTO-LAUNCH OFF", screenWidth-200, 10)
	}
}

// Layout returns the logical screen size
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	game, err := NewViewerGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Fireworks Viewer")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}
}
