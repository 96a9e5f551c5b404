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
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ErrEmpty is returned by ExportTrimmed when the pad holds no strokes.
var ErrEmpty = errors.New("signature is empty")

// ExportBitmap returns a copy of the full visible area of the pad, as it
// is currently shown: background, strokes, the stroke in progress and any
// chrome.
func (p *Pad) ExportBitmap() (*image.RGBA, error) {
	frame, err := p.render()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return frame.Image(), nil
}

// ExportPNG returns the PNG encoding of ExportBitmap.
func (p *Pad) ExportPNG() ([]byte, error) {
	img, err := p.ExportBitmap()
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// ExportScaled returns the pad image resampled to width×height pixels.
func (p *Pad) ExportScaled(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: invalid size %dx%d", width, height)
	}
	src, err := p.ExportBitmap()
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst, nil
}

// RenderSize draws the current appearance of the pad at width×height
// pixels. Unlike ExportScaled, the strokes are redrawn from their paths,
// with the pen width scaled along, so that they stay sharp at any
// resolution. Chrome is drawn at the new size.
func (p *Pad) RenderSize(width, height int) (*image.RGBA, error) {
	if !p.surface.Initialized() {
		return nil, fmt.Errorf("export: %w", ErrNotInitialized)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: invalid size %dx%d", width, height)
	}
	b := p.surface.Bounds()
	sx := float64(width) / float64(b.Dx())
	sy := float64(height) / float64(b.Dy())
	M := [6]float64{sx, 0, 0, sy, 0, 0}
	ws := math.Sqrt(sx * sy)

	frame := p.newCanvas(width, height)
	frame.Fill(p.cfg.BackgroundColor)
	stroke := func(st Stroke, pen Pen) {
		pen.Width *= ws
		if st.IsDot() {
			frame.DrawPoint(vec.Vec2{X: st.At.X * sx, Y: st.At.Y * sy}, pen)
			return
		}
		frame.StrokePath(st.Path.Iter().Transform(M), pen)
	}
	for _, cs := range p.strokes {
		stroke(cs.Stroke, cs.Pen)
	}
	if st, ok := p.smoother.Preview(); ok {
		stroke(st, p.cfg.Pen())
	}
	for _, fn := range p.chrome {
		fn(frame)
	}
	return frame.Image(), nil
}

// ExportTrimmed returns the part of the pad image which contains ink,
// extended by padding pixels on every side and clipped to the pad.
func (p *Pad) ExportTrimmed(padding int) (*image.RGBA, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("export: %w", ErrEmpty)
	}
	src, err := p.ExportBitmap()
	if err != nil {
		return nil, err
	}

	box := p.inkBounds().Inset(-padding).Intersect(src.Rect)
	if box.Empty() {
		return nil, fmt.Errorf("export: %w", ErrEmpty)
	}
	dst := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(dst, dst.Rect, src, box.Min, draw.Src)
	return dst, nil
}

// inkBounds returns the pixel rectangle covered by the committed strokes.
// Curve segments lie within the convex hull of their control points, so
// the control points bound the ink.
func (p *Pad) inkBounds() image.Rectangle {
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	add := func(pt vec.Vec2, r float64) {
		xMin = min(xMin, pt.X-r)
		yMin = min(yMin, pt.Y-r)
		xMax = max(xMax, pt.X+r)
		yMax = max(yMax, pt.Y+r)
	}
	for _, st := range p.strokes {
		r := st.Pen.Width / 2
		if st.IsDot() {
			add(st.At, r)
			continue
		}
		for _, pts := range st.Path.Iter() {
			for _, pt := range pts {
				add(pt, r)
			}
		}
	}
	if xMin > xMax {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(xMin)), int(math.Floor(yMin)),
		int(math.Ceil(xMax)), int(math.Ceil(yMax)))
}

// ExportPDF writes a single-page PDF containing the committed strokes as
// vector graphics. One pixel of the pad corresponds to one PDF point.
// The stroke in progress and the chrome are not included.
func (p *Pad) ExportPDF(w io.Writer) error {
	if !p.surface.Initialized() {
		return fmt.Errorf("export: %w", ErrNotInitialized)
	}
	b := p.surface.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	doc.SetCompression(!p.plainPDF)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	bg := p.cfg.BackgroundColor
	if bg.A > 0 {
		setAlpha(doc, bg)
		doc.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		doc.Rect(0, 0, wd, ht, "F")
	}

	doc.SetLineCapStyle("round")
	doc.SetLineJoinStyle("round")
	for _, st := range p.strokes {
		c := color.NRGBAModel.Convert(st.Pen.Color).(color.NRGBA)
		setAlpha(doc, c)
		if st.IsDot() {
			doc.SetFillColor(int(c.R), int(c.G), int(c.B))
			doc.Circle(st.At.X, st.At.Y, st.Pen.Width/2, "F")
			continue
		}
		doc.SetDrawColor(int(c.R), int(c.G), int(c.B))
		doc.SetLineWidth(st.Pen.Width)
		pdfPath(doc, st.Path.Iter())
		doc.DrawPath("D")
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// pdfPath appends p to the current PDF path.
// PDF has no quadratic curves, so these are converted to cubic ones.
func pdfPath(doc *gofpdf.Fpdf, p path.Path) {
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			doc.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			doc.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			doc.CurveBezierCubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			doc.ClosePath()
		}
	}
}

func setAlpha(doc *gofpdf.Fpdf, c color.NRGBA) {
	doc.SetAlpha(float64(c.A)/255, "Normal")
}
