package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildAU 构造一个最小的 .au 文件
func buildAU(encoding, sampleRate, channels uint32, payload []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, auHeader{
		Magic:      auMagic,
		DataOffset: auHeaderSize,
		DataSize:   uint32(len(payload)),
		Encoding:   encoding,
		SampleRate: sampleRate,
		Channels:   channels,
	})
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecodeULaw(t *testing.T) {
	tests := []struct {
		in   byte
		want int16
	}{
		{in: 0x00, want: -32124},
		{in: 0x0F, want: -16764},
		{in: 0x7F, want: 0},
		{in: 0x80, want: 32124},
		{in: 0xF0, want: 120},
		{in: 0xFF, want: 0},
	}
	for _, tt := range tests {
		if got := DecodeULaw(tt.in); got != tt.want {
			t.Errorf("DecodeULaw(0x%02x) = %d, want %d", tt.in, got, tt.want)
		}
	}

	// 正负对称
	for u := 0; u < 128; u++ {
		if DecodeULaw(byte(u)) != -DecodeULaw(byte(u|0x80)) {
			t.Fatalf("DecodeULaw(0x%02x) is not the negation of 0x%02x", u, u|0x80)
		}
	}
}

func TestDecodeAUMonoULaw(t *testing.T) {
	data := buildAU(auEncodingULaw, 8000, 1, []byte{0x80, 0x00})
	d, err := DecodeAU(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAU() error = %v", err)
	}

	if d.SampleRate() != 8000 || d.Channels() != 1 {
		t.Errorf("rate/channels = %d/%d, want 8000/1", d.SampleRate(), d.Channels())
	}
	// 2 个单声道采样 → 2 帧双声道 → 8 字节
	if d.Length() != 8 {
		t.Fatalf("Length = %d, want 8", d.Length())
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := []int16{32124, 32124, -32124, -32124}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestDecodeAUStereoPCM16(t *testing.T) {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint16(payload[0:], uint16(1000))
	binary.BigEndian.PutUint16(payload[2:], uint16(0xFC18)) // -1000
	binary.BigEndian.PutUint16(payload[4:], 7)
	binary.BigEndian.PutUint16(payload[6:], 8)

	d, err := DecodeAU(bytes.NewReader(buildAU(auEncodingPCM16, 48000, 2, payload)))
	if err != nil {
		t.Fatalf("DecodeAU() error = %v", err)
	}
	pcm, _ := io.ReadAll(d)
	want := []int16{1000, -1000, 7, 8}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(pcm[i*2:])); got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}

	// Seek 回到开头可以再次读取
	if _, err := d.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	again, _ := io.ReadAll(d)
	if !bytes.Equal(pcm, again) {
		t.Error("reading after Seek(0) returned different data")
	}
}

func TestDecodeAUErrors(t *testing.T) {
	valid := buildAU(auEncodingULaw, 8000, 1, []byte{1, 2, 3})

	badMagic := append([]byte(nil), valid...)
	badMagic[0] = 'x'

	badEncoding := buildAU(27, 8000, 1, []byte{1})
	badChannels := buildAU(auEncodingULaw, 8000, 6, []byte{1})
	zeroRate := buildAU(auEncodingULaw, 0, 1, []byte{1})

	tests := map[string][]byte{
		"too short":    valid[:10],
		"bad magic":    badMagic,
		"bad encoding": badEncoding,
		"bad channels": badChannels,
		"zero rate":    zeroRate,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAU(bytes.NewReader(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeClip(t *testing.T) {
	au := buildAU(auEncodingULaw, 48000, 1, []byte{0x80, 0x80, 0x80, 0x80})

	s, err := DecodeClip("boom.AU", au, 48000)
	if err != nil {
		t.Fatalf("DecodeClip() error = %v", err)
	}
	if s.Length() != 16 {
		t.Errorf("Length = %d, want 16", s.Length())
	}

	resampled, err := DecodeClip("boom.au", au, 96000)
	if err != nil {
		t.Fatalf("DecodeClip() resampled error = %v", err)
	}
	if resampled.Length() != 32 {
		t.Errorf("resampled Length = %d, want 32", resampled.Length())
	}

	if _, err := DecodeClip("boom.flac", au, 48000); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
