// Package audio 解码爆炸音效文件。
//
// 所有解码结果都是 Ebitengine 使用的格式：16 位有符号小端、双声道交错。
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// AUDecoder decodes Sun/NeXT audio (.au) files to PCM format.
// Supports μ-law and 16-bit linear encodings, mono or stereo.
// 单声道输入会复制到左右两个声道。
type AUDecoder struct {
	data       []byte // 16-bit signed little-endian stereo PCM
	sampleRate int64
	channels   int // 源文件声道数
	offset     int64
}

// AU file header structure (24 bytes minimum)
type auHeader struct {
	Magic      uint32 // 0x2e736e64 (".snd")
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF 表示未知
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64 // ".snd" in big-endian
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
	auEncodingULaw  = 1 // 8-bit μ-law
	auEncodingPCM16 = 3 // 16-bit linear PCM (big-endian)

	ulawBias = 0x84
)

// DecodeULaw 把一个 μ-law 字节解码为 16 位 PCM 采样（G.711）
func DecodeULaw(u byte) int16 {
	u = ^u
	sign := u & 0x80
	exponent := (u >> 4) & 0x07
	mantissa := int32(u & 0x0F)

	sample := ((mantissa << 3) + ulawBias) << exponent
	sample -= ulawBias
	if sign != 0 {
		sample = -sample
	}
	return int16(sample)
}

// DecodeAU decodes a Sun/NeXT audio file (.au) from the given reader.
func DecodeAU(r io.Reader) (*AUDecoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("AU file too short: %d bytes (minimum %d)", len(data), auHeaderSize)
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read AU header: %w", err)
	}
	if header.Magic != auMagic {
		return nil, fmt.Errorf("invalid AU magic number: 0x%08x (expected 0x%08x)", header.Magic, auMagic)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", header.Channels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}

	start := int(header.DataOffset)
	if start < auHeaderSize || start > len(data) {
		return nil, fmt.Errorf("invalid data offset: %d (file size: %d)", start, len(data))
	}
	payload := data[start:]
	if header.DataSize != auUnknownSize && int(header.DataSize) < len(payload) {
		payload = payload[:header.DataSize]
	}

	var samples []int16
	switch header.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(payload))
		for i, u := range payload {
			samples[i] = DecodeULaw(u)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(payload)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(payload[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d (supported: μ-law [1], PCM16 [3])", header.Encoding)
	}

	return &AUDecoder{
		data:       toStereoPCM(samples, int(header.Channels)),
		sampleRate: int64(header.SampleRate),
		channels:   int(header.Channels),
	}, nil
}

// toStereoPCM 交错的采样转换为双声道小端字节流
func toStereoPCM(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels == 2 {
			right = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(right))
	}
	return out
}

// Read reads decoded PCM data into p.
// Implements io.Reader interface.
func (d *AUDecoder) Read(p []byte) (n int, err error) {
	if d.offset >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n = copy(p, d.data[d.offset:])
	d.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (d *AUDecoder) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = d.offset + offset
	case io.SeekEnd:
		next = int64(len(d.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	d.offset = next
	return next, nil
}

// Length returns the total length of the decoded stereo stream in bytes.
func (d *AUDecoder) Length() int64 {
	return int64(len(d.data))
}

// SampleRate returns the sample rate of the audio in Hz.
func (d *AUDecoder) SampleRate() int64 {
	return d.sampleRate
}

// Channels returns the number of channels of the source file.
func (d *AUDecoder) Channels() int {
	return d.channels
}
