package game

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/audio-indicator-bars/internal/config"
)

// runDialog runs show off the game goroutine. zenity dialogs block until
// dismissed; the outcome is applied on the next Update.
func (g *Game) runDialog(show func() (func(*Game), error)) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		apply, err := show()
		g.pending <- func(g *Game) {
			g.dialogOpen = false
			if errors.Is(err, zenity.ErrCanceled) {
				return
			}
			if err != nil {
				log.Printf("dialog: %v", err)
				g.lastErr = err
				return
			}
			g.lastErr = nil
			apply(g)
		}
	}()
}

func (g *Game) openTempoDialog() {
	current := g.group.Tempo()
	g.runDialog(func() (func(*Game), error) {
		text, err := zenity.Entry("Tempo in beats per minute:",
			zenity.Title("Set tempo"),
			zenity.EntryText(strconv.Itoa(current)),
		)
		if err != nil {
			return nil, err
		}
		bpm, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || bpm < 1 {
			return nil, fmt.Errorf("invalid tempo %q", text)
		}
		return func(g *Game) { g.setTempo(bpm) }, nil
	})
}

func (g *Game) openColorDialog() {
	current := g.group.Color()
	g.runDialog(func() (func(*Game), error) {
		c, err := zenity.SelectColor(
			zenity.Title("Bar color"),
			zenity.Color(current),
		)
		if err != nil {
			return nil, err
		}
		rgba := config.ToRGBA(c)
		return func(g *Game) {
			g.group.SetColor(rgba)
			log.Printf("bar color set to %s", config.Hex(rgba))
		}, nil
	})
}

func (g *Game) openClickDialog() {
	if g.player == nil {
		g.lastErr = errors.New("metronome not available (start with -metronome)")
		return
	}
	player := g.player
	g.runDialog(func() (func(*Game), error) {
		filename, err := zenity.SelectFile(
			zenity.Title("Open click sample"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.wav", "*.mp3", "*.flac"},
			}},
		)
		if err != nil {
			return nil, err
		}
		if err := player.LoadClick(filename); err != nil {
			return nil, err
		}
		return func(*Game) {}, nil
	})
}
