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

// Package testcases holds geometry for testing the rasteriser.
//
// Where the covered area can be computed exactly, a case carries the
// expected total coverage, so that tests do not need reference images.
package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sigpad/pathdata"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name   string     // lowercase a-z and _ only
	Path   *pathdata.Data // the geometry to render
	Width  int        // canvas width in pixels
	Height int        // canvas height in pixels
	Op     Operation  // fill or stroke

	// Area is the exact covered area in square pixels, or 0 if unknown.
	Area float64

	// Tolerance is the allowed relative error of the total coverage.
	Tolerance float64
}

// Operation is the rendering operation to apply to the path.
type Operation interface {
	isOperation()
}

// Fill specifies a nonzero fill.
type Fill struct{}

func (Fill) isOperation() {}

// Stroke specifies a stroke operation.
type Stroke struct {
	Width      float64                // line width (>0)
	Cap        graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join       graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel
	MiterLimit float64                // miter limit
}

func (Stroke) isOperation() {}

// Pen is the stroke used by the signature pad.
func Pen(width float64) Stroke {
	return Stroke{
		Width:      width,
		Cap:        graphics.LineCapRound,
		Join:       graphics.LineJoinRound,
		MiterLimit: 10,
	}
}

// All contains all test cases, grouped by category.
var All = map[string][]TestCase{
	"fill":      fillCases,
	"stroke":    strokeCases,
	"signature": signatureCases,
	"precision": precisionCases,
	"large":     largeCases,
}

var fillCases = []TestCase{
	{
		Name:   "rectangle",
		Path:   rectangle(8, 12, 40, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   40 * 20,
	},
	{
		Name:   "triangle",
		Path:   (&pathdata.Data{}).MoveTo(pt(10, 50)).LineTo(pt(54, 50)).LineTo(pt(32, 10)).Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   44 * 40 / 2,
	},
	{
		Name:      "circle",
		Path:      circle(32, 32, 25),
		Width:     64,
		Height:    64,
		Op:        Fill{},
		Area:      math.Pi * 25 * 25,
		Tolerance: 0.02,
	},
	{
		Name:   "overlapping_rects",
		Path:   rectangles([4]float64{10, 10, 30, 30}, [4]float64{20, 20, 30, 30}),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   2*30*30 - 20*20,
	},
	{
		Name:   "implicit_close",
		Path:   (&pathdata.Data{}).MoveTo(pt(10, 10)).LineTo(pt(50, 10)).LineTo(pt(50, 30)).LineTo(pt(10, 30)),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   40 * 20,
	},
}

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 8, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   44 * 8,
	},
	{
		Name:      "line_round",
		Path:      line(10, 32, 54, 32),
		Width:     64,
		Height:    64,
		Op:        Stroke{Width: 8, Cap: graphics.LineCapRound, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:      44*8 + math.Pi*4*4,
		Tolerance: 0.02,
	},
	{
		Name:   "line_square",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 8, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   52 * 8,
	},
	{
		Name:   "diagonal_butt",
		Path:   line(10, 10, 40, 50),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   50 * 4,
	},
	{
		Name:   "corner_miter",
		Path:   (&pathdata.Data{}).MoveTo(pt(10, 50)).LineTo(pt(32, 14)).LineTo(pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "corner_round",
		Path:   (&pathdata.Data{}).MoveTo(pt(10, 50)).LineTo(pt(32, 14)).LineTo(pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "corner_bevel",
		Path:   (&pathdata.Data{}).MoveTo(pt(10, 50)).LineTo(pt(32, 14)).LineTo(pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel, MiterLimit: 10},
	},
	{
		Name:   "closed_square",
		Path:   rectangle(16, 16, 32, 32),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   36*36 - 28*28,
	},
}

// signatureCases mimic the output of the stroke smoother: quadratic
// segments through midpoints, drawn with a round pen.
var signatureCases = []TestCase{
	{
		Name:   "smoothed_wave",
		Path:   smoothed(pt(6, 40), pt(14, 20), pt(24, 44), pt(34, 18), pt(44, 46), pt(56, 24)),
		Width:  64,
		Height: 64,
		Op:     Pen(4),
	},
	{
		Name:   "smoothed_loop",
		Path:   smoothed(pt(10, 40), pt(30, 10), pt(50, 30), pt(30, 50), pt(20, 20), pt(54, 14)),
		Width:  64,
		Height: 64,
		Op:     Pen(3),
	},
	{
		Name:   "retrace",
		Path:   smoothed(pt(10, 32), pt(50, 32), pt(10, 32), pt(50, 32)),
		Width:  64,
		Height: 64,
		Op:     Pen(4),
	},
	{
		Name:      "tap",
		Path:      (&pathdata.Data{}).MoveTo(pt(32, 32)).LineTo(pt(32, 32)),
		Width:     64,
		Height:    64,
		Op:        Pen(10),
		Area:      math.Pi * 5 * 5,
		Tolerance: 0.02,
	},
	{
		Name:   "cubic_flourish",
		Path:   (&pathdata.Data{}).MoveTo(pt(6, 50)).CubeTo(pt(20, -10), pt(44, 74), pt(58, 14)),
		Width:  64,
		Height: 64,
		Op:     Pen(2),
	},
}

var precisionCases = []TestCase{
	{
		Name:   "subpixel_offset_25",
		Path:   rectangle(10.25, 10.25, 20, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   400,
	},
	{
		Name:   "subpixel_offset_50",
		Path:   rectangle(10.5, 10.5, 20, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{},
		Area:   400,
	},
	{
		Name:   "thin_line_y_half",
		Path:   line(5, 20.5, 59, 20.5),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 1, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   54,
	},
	{
		Name:   "hairline",
		Path:   line(5, 30, 59, 30),
		Width:  64,
		Height: 64,
		Op:     Stroke{Width: 0.25, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
		Area:   54 * 0.25,
	},
}

var largeCases = []TestCase{
	{
		Name:   "large_rectangle",
		Path:   rectangle(20, 20, 400, 300),
		Width:  512,
		Height: 384,
		Op:     Fill{},
		Area:   400 * 300,
	},
	{
		Name:   "large_signature",
		Path:   smoothed(pt(20, 300), pt(120, 60), pt(200, 320), pt(300, 40), pt(380, 300), pt(490, 100)),
		Width:  512,
		Height: 384,
		Op:     Pen(5),
	},
	{
		Name:   "large_clipped",
		Path:   rectangle(-50, -50, 600, 500),
		Width:  512,
		Height: 384,
		Op:     Fill{},
		Area:   512 * 384,
	},
}

// smoothed builds the path the stroke smoother produces for the samples.
func smoothed(samples ...vec.Vec2) *pathdata.Data {
	p := (&pathdata.Data{}).MoveTo(samples[0])
	last := samples[0]
	for _, s := range samples[1:] {
		p.QuadTo(last, last.Add(s).Mul(0.5))
		last = s
	}
	return p.LineTo(last)
}

func line(x1, y1, x2, y2 float64) *pathdata.Data {
	return (&pathdata.Data{}).MoveTo(pt(x1, y1)).LineTo(pt(x2, y2))
}

func rectangle(x, y, w, h float64) *pathdata.Data {
	return rectangles([4]float64{x, y, w, h})
}

// rectangles builds one closed subpath per rectangle, given as x, y, w, h.
func rectangles(rects ...[4]float64) *pathdata.Data {
	p := &pathdata.Data{}
	for _, r := range rects {
		x, y, w, h := r[0], r[1], r[2], r[3]
		p.MoveTo(pt(x, y)).
			LineTo(pt(x+w, y)).
			LineTo(pt(x+w, y+h)).
			LineTo(pt(x, y+h)).
			Close()
	}
	return p
}

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *pathdata.Data {
	k := r * kappa
	return (&pathdata.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
