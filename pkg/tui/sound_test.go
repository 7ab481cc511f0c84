package tui

import (
	"testing"
	"time"

	sfx "github.com/decker502/spikedodge/internal/audio"
	"github.com/decker502/spikedodge/pkg/game"
)

func TestChimeStreamerLength(t *testing.T) {
	s, err := chimeStreamer(sfx.Chime{Freq: 440, Duration: 50 * time.Millisecond, Volume: 0.5})
	if err != nil {
		t.Fatalf("chimeStreamer: %v", err)
	}

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
		for _, frame := range buf[:n] {
			if frame[0] > 0.5+1e-9 || frame[0] < -0.5-1e-9 {
				t.Fatalf("sample %v exceeds volume 0.5", frame[0])
			}
		}
	}

	if want := sampleRate.N(50 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestChimeStreamerRejectsSilence(t *testing.T) {
	if _, err := chimeStreamer(sfx.Chime{Freq: 440, Duration: time.Millisecond}); err == nil {
		t.Error("zero volume chime should be rejected")
	}
}

func TestSoundManagerPlayWithoutDevice(t *testing.T) {
	sm := NewSoundManager(nil)
	// 未初始化时静默忽略
	sm.Play(game.Event{Kind: game.EventGameOver})
	sm.Cleanup()
}
