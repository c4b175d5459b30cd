package audio

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SupportedExtensions 可以解码的音效扩展名
var SupportedExtensions = []string{".mp3", ".ogg", ".wav", ".au"}

// Stream 解码后的 PCM 流
type Stream interface {
	io.ReadSeeker
	Length() int64
}

type resampled struct {
	io.ReadSeeker
	length int64
}

func (r *resampled) Length() int64 { return r.length }

// DecodeClip 按扩展名解码音效，并重采样到 sampleRate
//
// 参数:
//   - name: 文件名（只用于判断格式）
//   - data: 文件内容
//   - sampleRate: 目标采样率（音频上下文的采样率）
func DecodeClip(name string, data []byte, sampleRate int) (Stream, error) {
	reader := bytes.NewReader(data)
	ext := strings.ToLower(filepath.Ext(name))

	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 %s: %w", name, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG %s: %w", name, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV %s: %w", name, err)
		}
		return s, nil
	case ".au":
		d, err := DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU %s: %w", name, err)
		}
		if int(d.SampleRate()) == sampleRate {
			return d, nil
		}
		// 按采样率比例换算重采样后的字节长度（4 字节一帧）
		frames := d.Length() / 4 * int64(sampleRate) / d.SampleRate()
		return &resampled{
			ReadSeeker: ebitenaudio.Resample(d, d.Length(), int(d.SampleRate()), sampleRate),
			length:     frames * 4,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: %s)", ext, strings.Join(SupportedExtensions, ", "))
	}
}
