package metronome

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// MaxClickLength caps how much of a loaded sample is kept per beat.
const MaxClickLength = 250 * time.Millisecond

// ErrUnsupportedFormat is returned for click samples that are not wav, mp3
// or flac.
var ErrUnsupportedFormat = errors.New("unsupported click sample format")

// Click is a short stereo sample played at the start of every beat.
type Click [][2]float64

// SynthClick renders a 1 kHz tone with an exponential decay, 30ms long.
func SynthClick(sr beep.SampleRate) Click {
	n := sr.N(30 * time.Millisecond)
	out := make(Click, n)
	for i := range out {
		t := float64(i) / float64(sr)
		v := 0.6 * math.Sin(2*math.Pi*1000*t) * math.Exp(-t*150)
		out[i] = [2]float64{v, v}
	}
	return out
}

// LoadClick decodes the sample at path, resamples it to sr and trims it to
// MaxClickLength.
func LoadClick(path string, sr beep.SampleRate) (Click, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open click sample: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode click sample %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sr {
		src = beep.Resample(4, format.SampleRate, sr, streamer)
	}

	limit := sr.N(MaxClickLength)
	out := make(Click, 0, limit)
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := src.Stream(buf[:min(len(buf), limit-len(out))])
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read click sample: %w", err)
	}
	return out, nil
}
