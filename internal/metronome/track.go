package metronome

import (
	"sync"

	"github.com/faiface/beep"
)

// Track is an endless beep.Streamer that plays its click at the start of
// every beat and silence in between. The speaker goroutine streams it while
// the game goroutine changes its tempo, so both sides go through mu.
type Track struct {
	sampleRate beep.SampleRate

	mu      sync.Mutex
	click   Click
	bpm     int
	perBeat int
	pos     int
}

// NewTrack returns a track at bpm using click.
func NewTrack(sr beep.SampleRate, bpm int, click Click) *Track {
	t := &Track{sampleRate: sr, click: click}
	t.setTempo(bpm)
	return t
}

// SetTempo changes the beat length. The current beat restarts so the next
// click lands on the new grid.
func (t *Track) SetTempo(bpm int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setTempo(bpm)
	t.pos = 0
}

func (t *Track) setTempo(bpm int) {
	bpm = max(bpm, 1)
	t.bpm = bpm
	t.perBeat = max(int(int64(t.sampleRate)*60/int64(bpm)), 1)
}

// SetClick swaps the sample played on each beat.
func (t *Track) SetClick(c Click) {
	t.mu.Lock()
	t.click = c
	t.mu.Unlock()
}

func (t *Track) Tempo() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bpm
}

func (t *Track) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range samples {
		if t.pos < len(t.click) {
			samples[i] = t.click[t.pos]
		} else {
			samples[i] = [2]float64{}
		}
		t.pos++
		if t.pos >= t.perBeat {
			t.pos = 0
		}
	}
	return len(samples), true
}

func (t *Track) Err() error { return nil }
