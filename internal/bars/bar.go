package bars

import (
	"image/color"
	"time"
)

// MinPeriod is the shortest animation period a bar accepts.
const MinPeriod = time.Millisecond

// State is the phase of a bar's animation loop.
type State int

const (
	Idle State = iota
	GrowingToMax
	ShrinkingToMin
)

func (s State) String() string {
	switch s {
	case GrowingToMax:
		return "growing"
	case ShrinkingToMin:
		return "shrinking"
	default:
		return "idle"
	}
}

// Bar is a single vertical bar whose height loops between its minimum and
// maximum. It does not own a timer: the host advances it with Tick once per
// frame, so a stopped bar can never change height on its own.
//
// Each cycle is split evenly: half the period growing to the maximum and
// half shrinking back to the minimum.
type Bar struct {
	frame        Rect
	cornerRadius float64
	color        color.RGBA

	minHeight float64
	maxHeight float64
	period    time.Duration

	height float64
	state  State

	// active tween
	from     float64
	elapsed  time.Duration
	phaseLen time.Duration
}

// BarOption customizes a Bar at construction.
type BarOption func(*barOptions)

type barOptions struct {
	period time.Duration
	rng    RandomSource
}

// WithPeriod fixes the bar's period instead of drawing a random one.
func WithPeriod(d time.Duration) BarOption {
	return func(o *barOptions) { o.period = d }
}

// WithBarRandom sets the source used to draw the bar's random period.
func WithBarRandom(src RandomSource) BarOption {
	return func(o *barOptions) { o.rng = src }
}

// NewBar returns a stopped bar at frame. The bar starts at the frame's
// height, clamped into [minHeight, maxHeight].
func NewBar(frame Rect, cornerRadius float64, c color.RGBA, minHeight, maxHeight float64, opts ...BarOption) *Bar {
	var o barOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.period == 0 {
		if o.rng == nil {
			o.rng = defaultRandomSource()
		}
		o.period = RandomPeriod(o.rng)
	}

	minHeight, maxHeight = clampRange(minHeight, maxHeight)
	b := &Bar{
		frame:        frame,
		cornerRadius: max(cornerRadius, 0),
		color:        c,
		minHeight:    minHeight,
		maxHeight:    maxHeight,
		period:       clampPeriod(o.period),
	}
	b.height = b.clampHeight(frame.Height)
	return b
}

// StartAnimation begins growing towards the maximum from the current
// height. Calling it on a running bar does nothing.
func (b *Bar) StartAnimation() {
	if b.state != Idle {
		return
	}
	b.beginPhase(GrowingToMax)
}

// StopAnimation halts the bar where it is. No further height change
// happens until the next StartAnimation.
func (b *Bar) StopAnimation() {
	b.state = Idle
	b.elapsed = 0
	b.phaseLen = 0
}

// SetPeriod changes the cycle length. A phase already under way keeps the
// length it started with.
func (b *Bar) SetPeriod(d time.Duration) {
	b.period = clampPeriod(d)
}

// Tick advances the animation by dt. Time left over after a phase
// completes carries into the next one.
func (b *Bar) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if cycle := 2 * b.phaseLen; cycle > 0 && dt > cycle {
		dt = cycle + dt%cycle
	}
	for b.state != Idle && dt > 0 {
		remaining := b.phaseLen - b.elapsed
		if dt < remaining {
			b.elapsed += dt
			b.height = b.interpolate()
			return
		}
		dt -= remaining
		b.height = b.target()
		if b.state == GrowingToMax {
			b.beginPhase(ShrinkingToMin)
		} else {
			b.beginPhase(GrowingToMax)
		}
	}
}

func (b *Bar) beginPhase(s State) {
	b.state = s
	b.from = b.height
	b.elapsed = 0
	b.phaseLen = max(b.period/2, MinPeriod/2)
}

func (b *Bar) target() float64 {
	if b.state == GrowingToMax {
		return b.maxHeight
	}
	return b.minHeight
}

func (b *Bar) interpolate() float64 {
	t := float64(b.elapsed) / float64(b.phaseLen)
	h := b.from + (b.target()-b.from)*easeInOut(t)
	return b.clampHeight(h)
}

func (b *Bar) clampHeight(h float64) float64 {
	return min(max(h, b.minHeight), b.maxHeight)
}

func (b *Bar) Frame() Rect { return b.frame }
func (b *Bar) CornerRadius() float64 { return b.cornerRadius }
func (b *Bar) Color() color.RGBA { return b.color }
func (b *Bar) Height() float64 { return b.height }
func (b *Bar) MinHeight() float64 { return b.minHeight }
func (b *Bar) MaxHeight() float64 { return b.maxHeight }
func (b *Bar) Period() time.Duration { return b.period }
func (b *Bar) State() State { return b.state }
func (b *Bar) IsAnimating() bool { return b.state != Idle }

// RenderedRect is the bar's visible rectangle: its frame, cut to the
// current height and anchored to the frame's bottom edge.
func (b *Bar) RenderedRect() Rect {
	return Rect{
		X:      b.frame.X,
		Y:      b.frame.MaxY() - b.height,
		Width:  b.frame.Width,
		Height: b.height,
	}
}

// easeInOut is a smoothstep curve over t in [0, 1].
func easeInOut(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampRange(lo, hi float64) (float64, float64) {
	lo, hi = max(lo, 0), max(hi, 0)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func clampPeriod(d time.Duration) time.Duration {
	if d < MinPeriod {
		return MinPeriod
	}
	return d
}
