// Package audio synthesizes the arcade sound effects and plays them through the system
// speaker. A Player that was never initialized, or a nil Player, stays silent.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. It is safe to call more than once.
func (p *Player) Initialize() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the effect on the shared mixer and reports whether it was queued.
func (p *Player) Play(effect Effect) bool {
	if p == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	streamer := Streamer(effect, sampleRate)
	if streamer == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// Close silences pending effects. The speaker itself stays open for the process.
func (p *Player) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
