package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-indicator-bars/internal/bars"
)

var _ bars.Canvas = (*screenCanvas)(nil)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// screenCanvas draws the group's bars onto an ebiten image.
type screenCanvas struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (c *screenCanvas) FillRoundedRect(r bars.Rect, radius float64, clr color.RGBA) {
	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.Width), float32(r.Height)

	rad := float32(math.Min(radius, math.Min(r.Width, r.Height)/2))
	if rad <= 0 {
		vector.DrawFilledRect(c.dst, x, y, w, h, clr, true)
		return
	}

	var p vector.Path
	p.MoveTo(x+rad, y)
	p.LineTo(x+w-rad, y)
	p.Arc(x+w-rad, y+rad, rad, -math.Pi/2, 0, vector.Clockwise)
	p.LineTo(x+w, y+h-rad)
	p.Arc(x+w-rad, y+h-rad, rad, 0, math.Pi/2, vector.Clockwise)
	p.LineTo(x+rad, y+h)
	p.Arc(x+rad, y+h-rad, rad, math.Pi/2, math.Pi, vector.Clockwise)
	p.LineTo(x, y+rad)
	p.Arc(x+rad, y+rad, rad, math.Pi, 3*math.Pi/2, vector.Clockwise)
	p.Close()

	c.vertices, c.indices = p.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])

	cr, cg, cb, ca := clr.RGBA()
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = float32(cr) / 0xffff
		c.vertices[i].ColorG = float32(cg) / 0xffff
		c.vertices[i].ColorB = float32(cb) / 0xffff
		c.vertices[i].ColorA = float32(ca) / 0xffff
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	c.dst.DrawTriangles(c.vertices, c.indices, whiteSubImage, op)
}
