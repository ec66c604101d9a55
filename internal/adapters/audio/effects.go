package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

type Effect int

const (
	EffectFlap Effect = iota
	EffectScore
	EffectAchievement
	EffectCrash
)

func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectScore:
		return "score"
	case EffectAchievement:
		return "achievement"
	case EffectCrash:
		return "crash"
	default:
		return "unknown"
	}
}

type wave int

const (
	waveSine wave = iota
	waveSquare
)

// tone is a fixed-length oscillator with a linear frequency sweep and a short release.
type tone struct {
	from, to float64
	wave     wave
	total    int
	release  int
	pos      int
	phase    float64
	rate     beep.SampleRate
}

func newTone(from, to float64, w wave, duration time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(duration)
	return &tone{from: from, to: to, wave: w, total: total, release: total / 4, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}

	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var val float64
		switch t.wave {
		case waveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}

		if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
			val *= float64(remaining) / float64(t.release)
		}

		samples[i][0] = val
		samples[i][1] = val

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}

	return len(samples), true
}

func (t *tone) Err() error { return nil }

func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Streamer synthesizes a fresh streamer for the effect. Unknown effects return nil.
func Streamer(effect Effect, rate beep.SampleRate) beep.Streamer {
	switch effect {
	case EffectFlap:
		return withVolume(newTone(440, 660, waveSine, 60*time.Millisecond, rate), 0.3)
	case EffectScore:
		return withVolume(beep.Seq(
			newTone(987.77, 987.77, waveSquare, 50*time.Millisecond, rate),
			newTone(1318.51, 1318.51, waveSquare, 90*time.Millisecond, rate),
		), 0.15)
	case EffectAchievement:
		return withVolume(beep.Seq(
			newTone(523.25, 523.25, waveSine, 90*time.Millisecond, rate),
			newTone(659.25, 659.25, waveSine, 90*time.Millisecond, rate),
			newTone(783.99, 783.99, waveSine, 90*time.Millisecond, rate),
			newTone(1046.5, 1046.5, waveSine, 180*time.Millisecond, rate),
		), 0.35)
	case EffectCrash:
		return withVolume(newTone(220, 55, waveSquare, 350*time.Millisecond, rate), 0.25)
	default:
		return nil
	}
}
