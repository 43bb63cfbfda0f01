package metronome

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func constClick(n int, v float64) Click {
	c := make(Click, n)
	for i := range c {
		c[i] = [2]float64{v, v}
	}
	return c
}

func TestTrackClicksOnEveryBeat(t *testing.T) {
	// 120 bpm at 100 Hz: a beat every 50 samples
	tr := NewTrack(100, 120, constClick(5, 1))

	samples := make([][2]float64, 200)
	n, ok := tr.Stream(samples)
	if n != 200 || !ok {
		t.Fatalf("expected (200, true), got (%d, %v)", n, ok)
	}

	for i, s := range samples {
		want := 0.0
		if i%50 < 5 {
			want = 1
		}
		if s[0] != want || s[1] != want {
			t.Fatalf("sample %d: expected %.0f, got %v", i, want, s)
		}
	}
}

func TestTrackStreamAcrossCalls(t *testing.T) {
	tr := NewTrack(100, 120, constClick(5, 1))

	var all [][2]float64
	for i := 0; i < 10; i++ {
		buf := make([][2]float64, 13)
		tr.Stream(buf)
		all = append(all, buf...)
	}
	for i, s := range all {
		if on := i%50 < 5; on != (s[0] == 1) {
			t.Fatalf("sample %d: click state %v, got %v", i, on, s)
		}
	}
}

func TestTrackSetTempo(t *testing.T) {
	tr := NewTrack(100, 120, constClick(1, 1))
	buf := make([][2]float64, 7)
	tr.Stream(buf)

	tr.SetTempo(300) // a beat every 20 samples
	if tr.Tempo() != 300 {
		t.Errorf("expected tempo=300, got %d", tr.Tempo())
	}

	samples := make([][2]float64, 60)
	tr.Stream(samples)
	for _, i := range []int{0, 20, 40} {
		if samples[i][0] != 1 {
			t.Errorf("expected click at sample %d", i)
		}
	}
	if samples[10][0] != 0 {
		t.Error("expected silence mid-beat")
	}
}

func TestTrackTempoFloor(t *testing.T) {
	tr := NewTrack(100, 0, nil)
	if tr.Tempo() != 1 {
		t.Errorf("expected tempo floored at 1, got %d", tr.Tempo())
	}
	if tr.Err() != nil {
		t.Errorf("expected nil error, got %v", tr.Err())
	}
}

func TestSynthClickDecays(t *testing.T) {
	c := SynthClick(44100)
	if len(c) != 1323 {
		t.Fatalf("expected 1323 samples, got %d", len(c))
	}

	peak := func(part Click) float64 {
		var p float64
		for _, s := range part {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}
	head, tail := peak(c[:200]), peak(c[len(c)-200:])
	if tail >= head {
		t.Errorf("expected decay, head peak %.3f tail peak %.3f", head, tail)
	}
	if head > 1 {
		t.Errorf("click clips: peak %.3f", head)
	}
}

func writeWav(t *testing.T, sr beep.SampleRate, click Click) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "click.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	s := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if len(click) == 0 {
			return 0, false
		}
		n := copy(samples, click)
		click = click[n:]
		return n, true
	})
	if err := wav.Encode(f, s, format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	return path
}

func TestLoadClickWav(t *testing.T) {
	path := writeWav(t, 22050, constClick(300, 0.5))

	c, err := LoadClick(path, 22050)
	if err != nil {
		t.Fatalf("LoadClick: %v", err)
	}
	if len(c) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(c))
	}
	for i, s := range c {
		if math.Abs(s[0]-0.5) > 1e-3 || math.Abs(s[1]-0.5) > 1e-3 {
			t.Fatalf("sample %d: expected 0.5, got %v", i, s)
		}
	}
}

func TestLoadClickTrimsLongSamples(t *testing.T) {
	const sr = 8000
	path := writeWav(t, sr, constClick(sr, 0.25))

	c, err := LoadClick(path, sr)
	if err != nil {
		t.Fatalf("LoadClick: %v", err)
	}
	if want := beep.SampleRate(sr).N(MaxClickLength); len(c) != want {
		t.Errorf("expected %d samples, got %d", want, len(c))
	}
}

func TestLoadClickErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "click.txt")
	if err := os.WriteFile(txt, []byte("tick"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadClick(txt, 44100); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := LoadClick(filepath.Join(dir, "missing.wav"), 44100); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClick(bad, 44100); err == nil {
		t.Error("expected decode error for a malformed wav")
	}
}

func TestPlayerCloseReturns(t *testing.T) {
	track := NewTrack(SampleRate, 120, SynthClick(SampleRate))
	p := &Player{track: track, ctrl: &beep.Ctrl{Streamer: track}}

	done := make(chan struct{})
	go func() {
		p.Close()
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	if !p.ctrl.Paused {
		t.Error("expected track to be paused after Close")
	}
}
