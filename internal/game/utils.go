package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-indicator-bars/internal/bars"
	"github.com/iburimskiy/audio-indicator-bars/internal/config"
)

// containerBounds centers the bar container in a window of w x h.
func containerBounds(w, h int) bars.Rect {
	cw := math.Round(float64(w) * config.ContainerWidthRatio)
	ch := math.Round(float64(h) * config.ContainerHeightRatio)
	return bars.Rect{
		X:      math.Round((float64(w) - cw) / 2),
		Y:      math.Round((float64(h) - ch) / 2),
		Width:  cw,
		Height: ch,
	}
}

// backgroundColor slowly drifts through dark hues as phase grows.
func backgroundColor(phase float64) color.RGBA {
	hue := math.Mod(phase*360, 360)
	r, g, b := colorful.Hsv(hue, 0.45, 0.12).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// panelColor is the container fill, a lighter shade of the background.
func panelColor(phase float64) color.RGBA {
	hue := math.Mod(phase*360+180, 360)
	r, g, b := colorful.Hsv(hue, 0.35, 0.22).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// formatPeriods lists each bar's period in seconds, e.g. "2.00 1.33 1.00".
func formatPeriods(bs []*bars.Bar) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprintf("%.2f", b.Period().Seconds())
	}
	return strings.Join(parts, " ")
}

// frameDuration is the time one Update call represents at tps ticks per
// second.
func frameDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}
