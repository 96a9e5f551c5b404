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

package sigpad

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sigpad/raster"
)

// Pen describes how strokes are drawn. Caps and joins are always round.
type Pen struct {
	Width float64
	Color color.Color
}

// Canvas is a fixed-size raster image with the drawing operations needed
// by a signature pad. Coordinates are in pixels, with the origin in the
// top-left corner.
type Canvas interface {
	// Bounds returns the pixel rectangle of the canvas. Min is always
	// the origin.
	Bounds() image.Rectangle

	// Fill replaces every pixel with c.
	Fill(c color.Color)

	// StrokePath draws p with the given pen, using round caps and joins.
	StrokePath(p path.Path, pen Pen)

	// DrawPoint draws a disc of diameter pen.Width centred at at.
	DrawPoint(at vec.Vec2, pen Pen)

	// DrawImage composites src over the canvas, with src.Bounds().Min
	// aligned to the canvas origin.
	DrawImage(src image.Image)

	// Image returns the pixels of the canvas. Depending on the
	// implementation this is either a view or a copy, so callers must
	// not modify it.
	Image() *image.RGBA
}

// CanvasFactory allocates a new, fully transparent canvas.
type CanvasFactory func(width, height int) Canvas

// rasterCanvas is the software Canvas, based on package raster.
type rasterCanvas struct {
	img *image.RGBA
	r   *raster.Rasteriser
}

// NewRasterCanvas returns a software canvas of the given size.
func NewRasterCanvas(width, height int) Canvas {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &rasterCanvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		r:   raster.NewRasteriser(clip),
	}
}

func (c *rasterCanvas) Bounds() image.Rectangle {
	return c.img.Rect
}

func (c *rasterCanvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *rasterCanvas) setPen(pen Pen) {
	c.r.Width = pen.Width
	c.r.Cap = graphics.LineCapRound
	c.r.Join = graphics.LineJoinRound
}

func (c *rasterCanvas) StrokePath(p path.Path, pen Pen) {
	c.setPen(pen)
	c.r.Stroke(p, raster.Painter(c.img, pen.Color))
}

func (c *rasterCanvas) DrawPoint(at vec.Vec2, pen Pen) {
	c.setPen(pen)
	c.r.Dot(at, raster.Painter(c.img, pen.Color))
}

func (c *rasterCanvas) DrawImage(src image.Image) {
	draw.Draw(c.img, c.img.Rect, src, src.Bounds().Min, draw.Over)
}

func (c *rasterCanvas) Image() *image.RGBA {
	return c.img
}

// EncodePNG returns the PNG encoding of img.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
