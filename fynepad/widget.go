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

// Package fynepad embeds a signature pad into Fyne applications.
//
// The widget forwards mouse and drag events to a [sigpad.Pad] and shows
// the frames produced by the pad. One pad unit corresponds to one Fyne
// device-independent unit, and frames are drawn at the resolution of the
// output device.
package fynepad

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
)

// Widget is a Fyne widget showing a signature pad.
type Widget struct {
	widget.BaseWidget

	// OnStroke, if set, is called after each stroke has been committed.
	OnStroke func()

	pad *sigpad.Pad
}

var _ fyne.Widget = (*Widget)(nil)
var _ fyne.Draggable = (*Widget)(nil)
var _ desktop.Mouseable = (*Widget)(nil)

// New returns a signature pad widget with the given configuration.
func New(cfg sigpad.Config, opts ...sigpad.Option) *Widget {
	w := &Widget{pad: sigpad.New(cfg, opts...)}
	w.pad.OnInvalidate = w.Refresh
	w.ExtendBaseWidget(w)
	return w
}

// Pad returns the underlying signature pad, for configuration and export.
func (w *Widget) Pad() *sigpad.Pad {
	return w.pad
}

// Resize resizes the widget. The signature pad is resized as well, which
// erases the signature.
func (w *Widget) Resize(size fyne.Size) {
	old := w.pad.Size()
	width, height := int(size.Width), int(size.Height)
	if old.Dx() != width || old.Dy() != height {
		if err := w.pad.Resize(width, height, 0); err != nil {
			sigpad.Logger().Debug("pad not sized", "error", err)
		}
	}
	w.BaseWidget.Resize(size)
}

// MouseDown implements desktop.Mouseable.
func (w *Widget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pad.PointerDown(toVec(e.Position))
}

// MouseUp implements desktop.Mouseable.
func (w *Widget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pointerUp(toVec(e.Position))
}

// Dragged implements fyne.Draggable.
func (w *Widget) Dragged(e *fyne.DragEvent) {
	if w.pad.State() != sigpad.Drawing {
		// touch devices deliver drags without a preceding MouseDown
		w.pad.PointerDown(toVec(e.Position.Subtract(e.Dragged)))
	}
	w.pad.PointerMove(toVec(e.Position))
}

// DragEnd implements fyne.Draggable.
func (w *Widget) DragEnd() {
	if w.pad.State() == sigpad.Drawing {
		w.pointerUp(vec.Vec2{})
	}
}

func (w *Widget) pointerUp(at vec.Vec2) {
	if w.pad.State() != sigpad.Drawing {
		return
	}
	if err := w.pad.PointerUp(at); err != nil {
		sigpad.Logger().Warn("stroke lost", "error", err)
		return
	}
	if w.OnStroke != nil {
		w.OnStroke()
	}
}

// CreateRenderer implements fyne.Widget.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	r := &renderer{w: w}
	r.raster = canvas.NewRaster(r.frame)
	r.raster.ScaleMode = canvas.ImageScaleSmooth
	return r
}

type renderer struct {
	w      *Widget
	raster *canvas.Raster
}

// frame is the generator of the raster. Fyne asks for w×h device
// pixels; on high density screens this is larger than the logical size
// of the pad and the strokes are redrawn at the device resolution.
func (r *renderer) frame(w, h int) image.Image {
	pad := r.w.pad
	var img *image.RGBA
	var err error
	if size := pad.Size(); size.Dx() == w && size.Dy() == h {
		img, err = pad.ExportBitmap()
	} else {
		img, err = pad.RenderSize(w, h)
	}
	if err != nil {
		blank := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		blank.SetNRGBA(0, 0, pad.BackgroundColor())
		return blank
	}
	return img
}

func (r *renderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *renderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 120)
}

func (r *renderer) Refresh() {
	r.raster.Refresh()
}

func (r *renderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *renderer) Destroy() {}

func toVec(p fyne.Position) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// SigningLine returns a chrome function which draws a horizontal line
// across the lower part of the pad, as a guide for the signature.
func SigningLine(c color.Color) func(sigpad.Canvas) {
	return func(cv sigpad.Canvas) {
		b := cv.Bounds()
		y := b.Min.Y + b.Dy()*4/5
		img := image.NewRGBA(b)
		for x := b.Min.X + b.Dx()/10; x < b.Max.X-b.Dx()/10; x++ {
			img.Set(x, y, c)
		}
		cv.DrawImage(img)
	}
}
