// Audio indicator bars: an animated equalizer-style bar widget in an ebiten
// window.
//
// Usage:
//
//	audio-indicator-bars [flags]
//
// Keys: Space start/stop, Up/Down tempo, Left/Right bar count, [ and ]
// bar width, R corner radius, M metronome, T tempo dialog, C color dialog,
// O click sample dialog, Esc/Q quit.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/audio-indicator-bars/internal/config"
	"github.com/iburimskiy/audio-indicator-bars/internal/game"
)

func main() {
	opts := config.Defaults()
	flag.IntVar(&opts.BarsCount, "bars", opts.BarsCount, "Number of bars")
	flag.Float64Var(&opts.CornerRadius, "radius", opts.CornerRadius, "Bar corner radius in pixels")
	flag.Float64Var(&opts.RelativeBarWidth, "width", opts.RelativeBarWidth, "Fraction of each section a bar fills, in (0, 1]")
	flag.StringVar(&opts.Color, "color", opts.Color, "Bar color as #rrggbb")
	flag.IntVar(&opts.Tempo, "tempo", opts.Tempo, "Tempo in beats per minute")
	flag.BoolVar(&opts.UseTempo, "sync", opts.UseTempo, "Derive bar periods from -tempo instead of random periods")
	flag.Uint64Var(&opts.Seed, "seed", opts.Seed, "Seed for random bar periods (0 = time based)")
	flag.BoolVar(&opts.Metronome, "metronome", opts.Metronome, "Play a click on every beat")
	flag.StringVar(&opts.ClickSample, "click", opts.ClickSample, "Click sample (wav, mp3 or flac) for the metronome")
	flag.BoolVar(&opts.Autostart, "autostart", opts.Autostart, "Start animating immediately")
	flag.Parse()

	log.SetPrefix("[bars] ")
	log.SetFlags(log.Ltime)

	if err := opts.Validate(); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	g, err := game.New(opts)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Audio Indicator Bars")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("game exited: %v", err)
	}
}
