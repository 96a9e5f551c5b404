// seehuhn.de/go/sigpad - a signature capture pad
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package ggcanvas implements a [sigpad.Canvas] on top of the gg 2D
// graphics library.
//
// Use it by passing [New] to [sigpad.WithCanvasFactory].
package ggcanvas

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
)

// Canvas is a sigpad.Canvas which draws using a gg.Context.
type Canvas struct {
	pm  *gg.Pixmap
	dc  *gg.Context
	buf *image.NRGBA
}

var _ sigpad.Canvas = (*Canvas)(nil)

// New returns a transparent canvas of the given size.
func New(width, height int) sigpad.Canvas {
	pm := gg.NewPixmap(width, height)
	dc := gg.NewContext(width, height, gg.WithPixmap(pm))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	// gg keeps straight (not premultiplied) RGBA samples
	buf := &image.NRGBA{
		Pix:    pm.Data(),
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
	return &Canvas{pm: pm, dc: dc, buf: buf}
}

// Bounds implements sigpad.Canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.buf.Rect
}

// Fill implements sigpad.Canvas.
func (c *Canvas) Fill(col color.Color) {
	c.dc.ClearWithColor(straight(col))
}

// StrokePath implements sigpad.Canvas.
func (c *Canvas) StrokePath(p path.Path, pen sigpad.Pen) {
	c.setPen(pen)
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			c.dc.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			c.dc.LineTo(pts[0].X, pts[0].Y)
		case path.CmdQuadTo:
			c.dc.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case path.CmdCubeTo:
			c.dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			c.dc.ClosePath()
		}
	}
	if err := c.dc.Stroke(); err != nil {
		sigpad.Logger().Warn("gg stroke failed", "error", err)
	}
}

// DrawPoint implements sigpad.Canvas.
func (c *Canvas) DrawPoint(at vec.Vec2, pen sigpad.Pen) {
	c.setPen(pen)
	c.dc.DrawCircle(at.X, at.Y, pen.Width/2)
	if err := c.dc.Fill(); err != nil {
		sigpad.Logger().Warn("gg fill failed", "error", err)
	}
}

// DrawImage implements sigpad.Canvas.
func (c *Canvas) DrawImage(src image.Image) {
	draw.Draw(c.buf, c.buf.Rect, src, src.Bounds().Min, draw.Over)
}

// Image implements sigpad.Canvas. The result is a premultiplied copy of
// the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.buf.Rect)
	draw.Draw(img, img.Rect, c.buf, image.Point{}, draw.Src)
	return img
}

// Context gives access to the underlying gg context, for drawing
// decorations which are not covered by sigpad.Canvas.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

func (c *Canvas) setPen(pen sigpad.Pen) {
	col := straight(pen.Color)
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.dc.SetLineWidth(pen.Width)
}

// straight converts col to gg's non-premultiplied colour type.
func straight(col color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
