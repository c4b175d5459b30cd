package game

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"

	clip "github.com/decker502/fireworks/internal/audio"
)

// SoundPlayer 爆炸音效的播放端
//
// 播放是即发即弃的：没有加载音效或播放失败时什么也不做。
type SoundPlayer interface {
	PlayExplosion() bool
}

// NopSound 不播放任何声音
type NopSound struct{}

// PlayExplosion 总是返回 false
func (NopSound) PlayExplosion() bool { return false }

// AudioManager 基于 Ebitengine 音频上下文的音效播放器
//
// 音效文件在加载时完整解码为 PCM，每次播放创建一个新的 Player，
// 多次爆炸的声音可以相互重叠。
type AudioManager struct {
	context *audio.Context
	volume  float64
	pcm     []byte
	name    string
	active  []*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 全局音频上下文（可为 nil，此时不播放任何声音）
//   - volume: 播放音量 (0.0 ~ 1.0)
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	return &AudioManager{
		context: ctx,
		volume:  volume,
	}
}

// LoadFile 从磁盘加载音效
func (am *AudioManager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sound %s: %w", path, err)
	}
	return am.LoadBytes(path, data)
}

// LoadBytes 解码内存中的音效；name 用于判断格式
func (am *AudioManager) LoadBytes(name string, data []byte) error {
	if am.context == nil {
		return fmt.Errorf("audio context is not available")
	}
	stream, err := clip.DecodeClip(name, data, am.context.SampleRate())
	if err != nil {
		return err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("failed to decode sound %s: %w", name, err)
	}
	am.pcm = pcm
	am.name = name
	log.Printf("[AudioManager] Loaded sound %s (%d bytes PCM)", name, len(pcm))
	return nil
}

// Loaded 是否已经加载音效
func (am *AudioManager) Loaded() bool {
	return len(am.pcm) > 0
}

// PlayExplosion 播放一次爆炸音效
func (am *AudioManager) PlayExplosion() bool {
	if am.context == nil || len(am.pcm) == 0 {
		return false
	}

	am.prune()

	player := am.context.NewPlayerFromBytes(am.pcm)
	player.SetVolume(am.volume)
	player.Play()
	am.active = append(am.active, player)
	return true
}

// SetVolume 设置后续播放的音量
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = volume
}

// prune 关闭已经播放完毕的 Player
func (am *AudioManager) prune() {
	alive := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player for %s: %v", am.name, err)
		}
	}
	am.active = alive
}
