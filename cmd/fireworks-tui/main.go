// Command fireworks-tui 终端版烟花
//
// 用法：
//
//	go run ./cmd/fireworks-tui [--profile night] [--sound boom.wav] [--seed 42] [--verbose]
//
// 操作：
//
//	鼠标左键    在点击位置发射烟花
//	1-4        切换预设
//	c          清空
//	space      暂停 / 继续
//	q / Esc    退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/decker502/fireworks/pkg/terminal"
	"github.com/gdamore/tcell/v2"
)

var (
	profileFlag = flag.String("profile", "", "Profile to start with (targeted, waterline, waves, night)")
	soundFlag   = flag.String("sound", "", "Explosion sound file (mp3, ogg, wav, au)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = current time)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to fireworks-tui.log")
)

// TUI 终端宿主
type TUI struct {
	screen       tcell.Screen
	presenter    *terminal.Presenter
	sceneManager *game.SceneManager
	profiles     *config.ProfileSet
	sound        *game.BeepAudio

	paused bool
}

func NewTUI() (*TUI, error) {
	profiles, err := config.LoadBuiltinProfiles()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := &TUI{
		screen:       screen,
		presenter:    terminal.NewPresenter(screen),
		sceneManager: game.NewSceneManager(),
		profiles:     profiles,
	}

	var sound game.SoundPlayer = game.NopSound{}
	if *soundFlag != "" {
		t.sound = game.NewBeepAudio(config.AudioSampleRate, config.ExplosionVolume)
		if err := t.initSound(*soundFlag); err != nil {
			// 没有音效也可以运行
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			sound = t.sound
		}
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t.sceneManager.SetSceneFactory(scenes.NewFactory(profiles, scenes.Options{
		Rand:  rand.New(rand.NewSource(seed)),
		Sound: sound,
	}))
	t.sceneManager.Resize(t.presenter.LogicalSize())

	if err := t.sceneManager.LoadProfile(*profileFlag); err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

func (t *TUI) initSound(path string) error {
	if err := t.sound.Initialize(); err != nil {
		return err
	}
	return t.sound.LoadFile(path)
}

func (t *TUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case ' ':
			t.paused = !t.paused
		case 'c':
			if s, ok := t.sceneManager.GetCurrentScene().(*scenes.FireworksScene); ok {
				s.Clear()
			}
		case '1', '2', '3', '4':
			ids := t.profiles.IDs()
			if i := int(r - '1'); i < len(ids) {
				if err := t.sceneManager.LoadProfile(ids[i]); err != nil {
					log.Printf("[TUI] 切换预设失败: %v", err)
				}
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			t.sceneManager.Click(t.presenter.CellToLogical(col, row))
		}

	case *tcell.EventResize:
		t.screen.Sync()
		t.sceneManager.Resize(t.presenter.Resize())
	}
	return true
}

func (t *TUI) run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if t.paused {
				continue
			}
			t.sceneManager.Update(scenes.FrameDelta)
			t.sceneManager.Draw(t.presenter.Surface())
			t.presenter.Present()
		}
	}
}

func (t *TUI) cleanup() {
	if t.sound != nil {
		t.sound.Close()
	}
	t.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端被界面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		if f, err := os.Create("fireworks-tui.log"); err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	tui, err := NewTUI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer tui.cleanup()

	tui.run()
}
