package bars

import (
	"image/color"
	"time"
)

// Group defaults.
const (
	DefaultBarsCount        = 4
	DefaultCornerRadius     = 0.0
	DefaultRelativeBarWidth = 0.5
	DefaultTempo            = 120

	// MinHeightRatio is a bar's resting height relative to the container.
	MinHeightRatio = 0.2
)

// DefaultColor is the bar fill used when none is configured.
var DefaultColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Canvas receives the group's visual output. Rectangles are in the
// coordinate space of the group's parent.
type Canvas interface {
	FillRoundedRect(r Rect, radius float64, c color.RGBA)
}

// Group is the container widget: it splits its bounds into equal sections,
// places one Bar in each and fans animation control out to all of them.
//
// Changing a layout property (count, radius, width, color, bounds) throws
// the current bars away and builds a fresh set. A running group keeps
// running across the rebuild.
type Group struct {
	bounds           Rect
	barsCount        int
	cornerRadius     float64
	relativeBarWidth float64
	color            color.RGBA

	tempo     int
	tempoSet  bool
	animating bool
	dirty     bool
	closed    bool

	rng  RandomSource
	bars []*Bar
}

// Option configures a Group.
type Option func(*Group)

func WithBarsCount(n int) Option {
	return func(g *Group) { g.barsCount = n }
}

func WithCornerRadius(r float64) Option {
	return func(g *Group) { g.cornerRadius = r }
}

func WithRelativeBarWidth(w float64) Option {
	return func(g *Group) { g.relativeBarWidth = w }
}

func WithColor(c color.RGBA) Option {
	return func(g *Group) { g.color = c }
}

func WithBounds(r Rect) Option {
	return func(g *Group) { g.bounds = r }
}

// WithTempo derives every bar's period from bpm instead of drawing random
// periods.
func WithTempo(bpm int) Option {
	return func(g *Group) {
		g.tempo = bpm
		g.tempoSet = true
	}
}

// WithRandom injects the source used for per-bar random periods.
func WithRandom(src RandomSource) Option {
	return func(g *Group) { g.rng = src }
}

// NewGroup lays out and builds the bars for bounds. The group starts
// stopped.
func NewGroup(bounds Rect, opts ...Option) *Group {
	g := &Group{
		bounds:           bounds,
		barsCount:        DefaultBarsCount,
		cornerRadius:     DefaultCornerRadius,
		relativeBarWidth: DefaultRelativeBarWidth,
		color:            DefaultColor,
		tempo:            DefaultTempo,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = defaultRandomSource()
	}
	g.normalize()
	g.dirty = true
	g.LayoutIfNeeded()
	return g
}

// Configure applies opts and rebuilds the bars once.
func (g *Group) Configure(opts ...Option) {
	prev := *g
	for _, opt := range opts {
		opt(g)
	}
	g.normalize()
	if g.layoutChanged(&prev) {
		g.dirty = true
	}
	if g.tempoSet && (g.tempo != prev.tempo || !prev.tempoSet) && !g.dirty {
		g.applyTempo()
	}
	g.LayoutIfNeeded()
}

func (g *Group) SetBarsCount(n int) { g.Configure(WithBarsCount(n)) }
func (g *Group) SetCornerRadius(r float64) { g.Configure(WithCornerRadius(r)) }
func (g *Group) SetRelativeBarWidth(w float64) { g.Configure(WithRelativeBarWidth(w)) }
func (g *Group) SetColor(c color.RGBA) { g.Configure(WithColor(c)) }

// SetBounds is the size-change hook. Hosts may call it every frame; the
// bars are only rebuilt when the rectangle actually changes.
func (g *Group) SetBounds(r Rect) { g.Configure(WithBounds(r)) }

// LayoutIfNeeded rebuilds the bar set if a layout property changed since
// the last build.
func (g *Group) LayoutIfNeeded() {
	if !g.dirty || g.closed {
		return
	}
	g.dirty = false
	g.rebuild()
}

func (g *Group) rebuild() {
	g.release()

	frames := Layout(g.bounds, g.barsCount, g.relativeBarWidth)
	minH, maxH := g.bounds.Height*MinHeightRatio, g.bounds.Height
	g.bars = make([]*Bar, 0, len(frames))
	for _, f := range frames {
		g.bars = append(g.bars, NewBar(f, g.cornerRadius, g.color, minH, maxH, WithBarRandom(g.rng)))
	}

	if g.tempoSet {
		g.applyTempo()
	}
	if g.animating {
		for _, b := range g.bars {
			b.StartAnimation()
		}
	}
}

func (g *Group) release() {
	for _, b := range g.bars {
		b.StopAnimation()
	}
	g.bars = nil
}

// StartAnimation starts every bar and keeps the group animating across
// later rebuilds.
func (g *Group) StartAnimation() {
	if g.closed {
		return
	}
	g.animating = true
	for _, b := range g.bars {
		b.StartAnimation()
	}
}

// StopAnimation stops every bar where it stands.
func (g *Group) StopAnimation() {
	g.animating = false
	for _, b := range g.bars {
		b.StopAnimation()
	}
}

// SetTempo derives staggered periods from bpm: bar i pulses at
// bpm*(0.25+0.125*i) beats per minute, so later bars move faster.
func (g *Group) SetTempo(bpm int) {
	g.Configure(WithTempo(bpm))
}

func (g *Group) applyTempo() {
	for i, b := range g.bars {
		b.SetPeriod(TempoPeriod(g.tempo, i))
	}
}

// TempoPeriod is the period of bar i at bpm.
func TempoPeriod(bpm, i int) time.Duration {
	rate := 0.25 + 0.125*float64(i)
	seconds := 60 / (float64(max(bpm, 1)) * rate)
	return time.Duration(seconds * float64(time.Second))
}

// Tick is the per-frame hook: it advances every bar by dt.
func (g *Group) Tick(dt time.Duration) {
	g.LayoutIfNeeded()
	for _, b := range g.bars {
		b.Tick(dt)
	}
}

// Draw is the render hook: each bar's current rectangle is handed to c in
// parent coordinates.
func (g *Group) Draw(c Canvas) {
	for _, b := range g.bars {
		r := b.RenderedRect()
		if r.Empty() {
			continue
		}
		c.FillRoundedRect(r.Offset(g.bounds.X, g.bounds.Y), b.CornerRadius(), b.Color())
	}
}

// Close stops and drops every bar. The group cannot be restarted.
func (g *Group) Close() {
	if g.closed {
		return
	}
	g.StopAnimation()
	g.release()
	g.closed = true
}

// Bars returns the current bars, left to right.
func (g *Group) Bars() []*Bar {
	out := make([]*Bar, len(g.bars))
	copy(out, g.bars)
	return out
}

func (g *Group) Bounds() Rect { return g.bounds }
func (g *Group) BarsCount() int { return g.barsCount }
func (g *Group) CornerRadius() float64 { return g.cornerRadius }
func (g *Group) RelativeBarWidth() float64 { return g.relativeBarWidth }
func (g *Group) Color() color.RGBA { return g.color }
func (g *Group) Tempo() int { return g.tempo }
func (g *Group) IsAnimating() bool { return g.animating }

func (g *Group) normalize() {
	if g.barsCount < 1 {
		g.barsCount = 1
	}
	if g.cornerRadius < 0 {
		g.cornerRadius = 0
	}
	if g.relativeBarWidth <= 0 {
		g.relativeBarWidth = DefaultRelativeBarWidth
	}
	if g.relativeBarWidth > 1 {
		g.relativeBarWidth = 1
	}
	if g.tempo < 1 {
		g.tempo = 1
	}
}

func (g *Group) layoutChanged(prev *Group) bool {
	return g.bounds != prev.bounds ||
		g.barsCount != prev.barsCount ||
		g.cornerRadius != prev.cornerRadius ||
		g.relativeBarWidth != prev.relativeBarWidth ||
		g.color != prev.color
}

// Layout splits bounds into count equal sections and returns one bar
// frame per section, in the container's own coordinates. Each frame
// keeps relWidth of its section, centered.
func Layout(bounds Rect, count int, relWidth float64) []Rect {
	if count < 1 {
		return nil
	}
	width, height := max(bounds.Width, 0), max(bounds.Height, 0)
	section := width / float64(count)
	inset := section * (1 - relWidth) / 2

	frames := make([]Rect, count)
	for i := range frames {
		frames[i] = Rect{X: section * float64(i), Width: section, Height: height}.Inset(inset, 0)
	}
	return frames
}
