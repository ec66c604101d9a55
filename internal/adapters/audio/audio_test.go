package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			assert.Equal(t, buf[i][0], buf[i][1], "effects are mono")
		}
		total += n
		if !ok {
			break
		}
		require.Less(t, total, int(sampleRate)*5, "effect never ends")
	}
	return total, peak
}

func TestStreamerDurations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		effect   Effect
		duration time.Duration
	}{
		{effect: EffectFlap, duration: 60 * time.Millisecond},
		{effect: EffectScore, duration: 140 * time.Millisecond},
		{effect: EffectAchievement, duration: 450 * time.Millisecond},
		{effect: EffectCrash, duration: 350 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.effect.String(), func(t *testing.T) {
			t.Parallel()

			samples, peak := drain(t, Streamer(tt.effect, sampleRate))

			assert.InDelta(t, sampleRate.N(tt.duration), samples, 4)
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestStreamerUnknownEffect(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Streamer(Effect(99), sampleRate))
	assert.Equal(t, "unknown", Effect(99).String())
}

func TestToneFadesOut(t *testing.T) {
	t.Parallel()

	tn := newTone(440, 440, waveSquare, 100*time.Millisecond, sampleRate)
	buf := make([][2]float64, tn.total)

	n, ok := tn.Stream(buf)
	require.True(t, ok)
	require.Equal(t, tn.total, n)

	assert.Equal(t, 1.0, math.Abs(buf[0][0]))
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01)

	n, ok = tn.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestPlayerWithoutSpeakerIsSilent(t *testing.T) {
	t.Parallel()

	var nilPlayer *Player
	assert.False(t, nilPlayer.Play(EffectFlap))
	assert.NoError(t, nilPlayer.Initialize())
	nilPlayer.Close()

	player := NewPlayer()
	assert.False(t, player.Play(EffectScore))
	player.Close()
}
