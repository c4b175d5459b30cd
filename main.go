// Command fireworks 桌面版烟花
//
// 用法：
//
//	go run . [--profile night] [--sound boom.mp3] [--seed 42] [--verbose]
//
// 操作：
//
//	鼠标左键 / 触摸   在点击位置发射烟花
//	1-4              切换预设
//	F11              切换全屏
//	Esc              退出
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	profileFlag = flag.String("profile", "", "Profile to start with (targeted, waterline, waves, night)")
	soundFlag   = flag.String("sound", "", "Explosion sound file (mp3, ogg, wav, au)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = current time)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verboseFlag,
		Profile:   *profileFlag,
		SoundPath: *soundFlag,
		Seed:      *seedFlag,
		AllowQuit: true,
	})
	if err != nil {
		// NewApp 可能已关闭日志输出，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
