package metronome

import (
	"fmt"
	"log"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SampleRate is the rate the speaker is opened at.
const SampleRate beep.SampleRate = 44100

// Player owns the speaker and plays a Track through a pausable control.
type Player struct {
	track *Track
	ctrl  *beep.Ctrl
}

// NewPlayer opens the speaker and starts the track paused.
func NewPlayer(bpm int) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	track := NewTrack(SampleRate, bpm, SynthClick(SampleRate))
	ctrl := &beep.Ctrl{Streamer: track, Paused: true}
	speaker.Play(ctrl)
	log.Printf("metronome ready at %d bpm", bpm)
	return &Player{track: track, ctrl: ctrl}, nil
}

// SetPlaying pauses or resumes the clicks.
func (p *Player) SetPlaying(on bool) {
	speaker.Lock()
	p.ctrl.Paused = !on
	speaker.Unlock()
}

func (p *Player) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

func (p *Player) SetTempo(bpm int) { p.track.SetTempo(bpm) }

// LoadClick replaces the synthesized click with the sample at path.
func (p *Player) LoadClick(path string) error {
	c, err := LoadClick(path, SampleRate)
	if err != nil {
		return err
	}
	p.track.SetClick(c)
	log.Printf("metronome click loaded from %s (%d samples)", path, len(c))
	return nil
}

// Close silences the track and removes it from the speaker. Clear takes
// the speaker lock itself, so it must be called without holding it.
func (p *Player) Close() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
}
