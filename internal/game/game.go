package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-indicator-bars/internal/bars"
	"github.com/iburimskiy/audio-indicator-bars/internal/config"
	"github.com/iburimskiy/audio-indicator-bars/internal/metronome"
)

// Game hosts a bars.Group in an ebiten window. Update is the group's frame
// tick, Layout its size-change hook and Draw its render hook.
type Game struct {
	group  *bars.Group
	canvas screenCanvas
	player *metronome.Player

	// results of dialogs running off the game goroutine
	pending    chan func(*Game)
	dialogOpen bool

	width, height int
	colorPhase    float64
	radiusIndex   int
	lastErr       error
}

// New builds the demo from opts. A metronome that fails to open is logged
// and left out; everything else is fatal to the caller.
func New(opts config.Options) (*Game, error) {
	clr, err := config.ParseColor(opts.Color)
	if err != nil {
		return nil, err
	}

	groupOpts := []bars.Option{
		bars.WithBarsCount(opts.BarsCount),
		bars.WithCornerRadius(opts.CornerRadius),
		bars.WithRelativeBarWidth(opts.RelativeBarWidth),
		bars.WithColor(clr),
	}
	if opts.UseTempo {
		groupOpts = append(groupOpts, bars.WithTempo(opts.Tempo))
	}
	if opts.Seed != 0 {
		groupOpts = append(groupOpts, bars.WithRandom(bars.NewRandomSource(opts.Seed)))
	}

	g := &Game{
		group:   bars.NewGroup(containerBounds(config.WindowWidth, config.WindowHeight), groupOpts...),
		pending: make(chan func(*Game), 4),
		width:   config.WindowWidth,
		height:  config.WindowHeight,
	}

	if opts.Metronome {
		p, err := metronome.NewPlayer(opts.Tempo)
		if err != nil {
			log.Printf("metronome disabled: %v", err)
		} else {
			g.player = p
			if opts.ClickSample != "" {
				if err := p.LoadClick(opts.ClickSample); err != nil {
					log.Printf("keeping synthesized click: %v", err)
				}
			}
			p.SetPlaying(true)
		}
	}

	if opts.Autostart {
		g.group.StartAnimation()
	}
	return g, nil
}

func (g *Game) Update() error {
	g.drainPending()

	if !g.dialogOpen {
		if err := g.handleKeys(); err != nil {
			return err
		}
	}

	g.group.SetBounds(containerBounds(g.width, g.height))
	g.group.Tick(frameDuration(ebiten.TPS()))
	g.colorPhase += config.ColorShiftSpeed
	return nil
}

func (g *Game) drainPending() {
	for {
		select {
		case apply := <-g.pending:
			apply(g)
		default:
			return
		}
	}
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.toggleAnimation()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.setTempo(g.group.Tempo() + config.TempoStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.setTempo(g.group.Tempo() - config.TempoStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.setBarsCount(g.group.BarsCount() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.setBarsCount(g.group.BarsCount() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.group.SetRelativeBarWidth(min(g.group.RelativeBarWidth()+config.RelativeWidthStep, 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.group.SetRelativeBarWidth(max(g.group.RelativeBarWidth()-config.RelativeWidthStep, config.RelativeWidthStep))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.radiusIndex = (g.radiusIndex + 1) % len(config.CornerRadii)
		g.group.SetCornerRadius(config.CornerRadii[g.radiusIndex])
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMetronome()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.openTempoDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.openColorDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openClickDialog()
	}
	return nil
}

func (g *Game) toggleAnimation() {
	if g.group.IsAnimating() {
		g.group.StopAnimation()
		return
	}
	g.group.StartAnimation()
}

func (g *Game) setTempo(bpm int) {
	bpm = max(bpm, 1)
	g.group.SetTempo(bpm)
	if g.player != nil {
		g.player.SetTempo(bpm)
	}
	log.Printf("tempo set to %d bpm", bpm)
}

func (g *Game) setBarsCount(n int) {
	n = min(max(n, 1), config.MaxBarsCount)
	g.group.SetBarsCount(n)
}

func (g *Game) toggleMetronome() {
	if g.player == nil {
		g.lastErr = errors.New("metronome not available (start with -metronome)")
		return
	}
	g.player.SetPlaying(!g.player.Playing())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor(g.colorPhase))

	b := g.group.Bounds()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), panelColor(g.colorPhase), false)

	g.canvas.dst = screen
	g.group.Draw(&g.canvas)
	g.canvas.dst = nil

	state := "stopped"
	if g.group.IsAnimating() {
		state = "animating"
	}
	status := fmt.Sprintf("%s | bars %d | width %.2f | radius %.0f | %d bpm | periods %s",
		state, g.group.BarsCount(), g.group.RelativeBarWidth(), g.group.CornerRadius(),
		g.group.Tempo(), formatPeriods(g.group.Bars()))
	if g.player != nil && g.player.Playing() {
		status += " | metronome"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen,
		"Space: start/stop  Up/Down: tempo  Left/Right: bars  [ ]: width  R: radius  M: metronome  T/C/O: dialogs  Esc/Q: quit",
		12, g.height-20)
}

// Layout records the window size; Update hands it to the group so the
// rebuild happens on the game goroutine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the bars and the speaker.
func (g *Game) Close() {
	g.group.Close()
	if g.player != nil {
		g.player.Close()
	}
}
