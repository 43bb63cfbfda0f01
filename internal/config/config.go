package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Container size relative to the window
	ContainerWidthRatio  = 0.4
	ContainerHeightRatio = 0.6

	// Keyboard step sizes
	TempoStep         = 5
	RelativeWidthStep = 0.05
	MaxBarsCount      = 32

	// Background tint cycle
	ColorShiftSpeed = 0.002
)

// CornerRadii are cycled through by the demo's radius key.
var CornerRadii = []float64{0, 2, 5, 10}

// Options holds the demo settings that can be set from the command line.
type Options struct {
	BarsCount        int
	CornerRadius     float64
	RelativeBarWidth float64
	Color            string
	Tempo            int
	UseTempo         bool
	Seed             uint64
	Metronome        bool
	ClickSample      string
	Autostart        bool
}

// Defaults mirrors the widget's own defaults.
func Defaults() Options {
	return Options{
		BarsCount:        4,
		RelativeBarWidth: 0.5,
		Color:            "#ffffff",
		Tempo:            120,
		Autostart:        true,
	}
}

// Validate rejects settings the widget would otherwise silently clamp.
func (o Options) Validate() error {
	if o.BarsCount < 1 || o.BarsCount > MaxBarsCount {
		return fmt.Errorf("bars must be between 1 and %d, got %d", MaxBarsCount, o.BarsCount)
	}
	if o.RelativeBarWidth <= 0 || o.RelativeBarWidth > 1 {
		return fmt.Errorf("width must be in (0, 1], got %g", o.RelativeBarWidth)
	}
	if o.CornerRadius < 0 {
		return fmt.Errorf("radius must not be negative, got %g", o.CornerRadius)
	}
	if o.Tempo < 1 {
		return fmt.Errorf("tempo must be positive, got %d", o.Tempo)
	}
	if _, err := ParseColor(o.Color); err != nil {
		return err
	}
	return nil
}

// ParseColor parses a #rrggbb hex color into an opaque RGBA.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ToRGBA flattens any color.Color to an opaque RGBA.
func ToRGBA(c color.Color) color.RGBA {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return color.RGBA{A: 0xff}
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
