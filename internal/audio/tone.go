package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// fadeSamples 结尾线性淡出的采样帧数
const fadeSamples = 256

// Tone 把 Chime 合成为 16 位有符号小端立体声 PCM
// 实现 io.ReadSeeker，可直接交给 Ebitengine 的 audio.Player
type Tone struct {
	data   []byte
	offset int64
}

// NewTone 以 sampleRate 合成提示音
func NewTone(c Chime, sampleRate int) *Tone {
	n := c.Samples(sampleRate)
	data := make([]byte, n*4) // 2 声道 x 2 字节
	for i := 0; i < n; i++ {
		v := c.Volume * math.Sin(2*math.Pi*c.Freq*float64(i)/float64(sampleRate))
		if rest := n - i; rest < fadeSamples {
			v *= float64(rest) / fadeSamples
		}
		s := uint16(int16(math.Round(v * math.MaxInt16)))
		binary.LittleEndian.PutUint16(data[i*4:], s)
		binary.LittleEndian.PutUint16(data[i*4+2:], s)
	}
	return &Tone{data: data}
}

// Read 实现 io.Reader
func (t *Tone) Read(p []byte) (n int, err error) {
	if t.offset >= int64(len(t.data)) {
		return 0, io.EOF
	}
	n = copy(p, t.data[t.offset:])
	t.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (t *Tone) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = t.offset + offset
	case io.SeekEnd:
		next = int64(len(t.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	t.offset = next
	return next, nil
}

// Length PCM 总字节数
func (t *Tone) Length() int64 {
	return int64(len(t.data))
}
