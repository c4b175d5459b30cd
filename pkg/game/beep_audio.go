package game

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	clip "github.com/decker502/fireworks/internal/audio"
)

// BeepAudio 终端宿主使用的音效播放器（没有 Ebitengine 音频上下文）
type BeepAudio struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	volume      float64
	buffer      *beep.Buffer
	initialized bool
}

// NewBeepAudio 创建播放器；需要调用 Initialize 才会打开声卡
func NewBeepAudio(sampleRate int, volume float64) *BeepAudio {
	return &BeepAudio{
		sampleRate: beep.SampleRate(sampleRate),
		volume:     volume,
	}
}

// Initialize 初始化扬声器（100ms 缓冲）
func (ba *BeepAudio) Initialize() error {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	if ba.initialized {
		return nil
	}
	if err := speaker.Init(ba.sampleRate, ba.sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	ba.initialized = true
	return nil
}

// Close 关闭扬声器
func (ba *BeepAudio) Close() {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	if ba.initialized {
		speaker.Clear()
		speaker.Close()
		ba.initialized = false
	}
}

// LoadFile 解码音效文件并缓存到内存，采样率转换为扬声器采样率
func (ba *BeepAudio) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sound %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := decodeBeep(path, f)
	if err != nil {
		return err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(beep.Format{SampleRate: ba.sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate == ba.sampleRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, ba.sampleRate, streamer))
	}
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("failed to decode sound %s: %w", path, err)
	}

	ba.mu.Lock()
	ba.buffer = buffer
	ba.mu.Unlock()

	log.Printf("[BeepAudio] Loaded sound %s (%d samples)", path, buffer.Len())
	return nil
}

// PlayExplosion 播放一次爆炸音效
func (ba *BeepAudio) PlayExplosion() bool {
	ba.mu.Lock()
	defer ba.mu.Unlock()

	if !ba.initialized || ba.buffer == nil {
		return false
	}
	speaker.Play(newVolume(ba.buffer.Streamer(0, ba.buffer.Len()), ba.volume))
	return true
}

// newVolume 音量为 0 时静音（log2(0) 为 -Inf）
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// decodeBeep 按扩展名选择解码器
func decodeBeep(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".au":
		var d *clip.AUDecoder
		d, err = clip.DecodeAU(f)
		if err == nil {
			s = &pcmStreamer{src: d}
			format = beep.Format{SampleRate: beep.SampleRate(d.SampleRate()), NumChannels: 2, Precision: 2}
		}
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to decode sound %s: %w", path, err)
	}
	return s, format, nil
}

// pcmStreamer 把 16 位小端双声道 PCM 适配为 beep.StreamSeekCloser
type pcmStreamer struct {
	src *clip.AUDecoder
	buf [4]byte
	err error
}

func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if _, err := io.ReadFull(p.src, p.buf[:]); err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				p.err = err
			}
			break
		}
		samples[i][0] = float64(int16(binary.LittleEndian.Uint16(p.buf[0:]))) / 32768
		samples[i][1] = float64(int16(binary.LittleEndian.Uint16(p.buf[2:]))) / 32768
		n++
	}
	return n, n > 0
}

func (p *pcmStreamer) Err() error { return p.err }

func (p *pcmStreamer) Len() int { return int(p.src.Length() / 4) }

func (p *pcmStreamer) Position() int {
	pos, _ := p.src.Seek(0, io.SeekCurrent)
	return int(pos / 4)
}

func (p *pcmStreamer) Seek(frame int) error {
	_, err := p.src.Seek(int64(frame)*4, io.SeekStart)
	return err
}

func (p *pcmStreamer) Close() error { return nil }
