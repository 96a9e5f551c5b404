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
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"
)

// State describes whether a gesture is in progress.
type State int

// These are the states of a [Pad].
const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CommittedStroke is a stroke on the surface, together with the pen it
// was drawn with.
type CommittedStroke struct {
	Stroke
	Pen Pen
}

// Pad is a signature pad: it routes pointer events into a Smoother,
// commits finished strokes to a Surface and produces frames and exports.
//
// Before the first call to Resize the pad has no pixels. Pointer events
// are still accepted, but strokes finished in this state are dropped and
// all exports return ErrNotInitialized.
type Pad struct {
	// OnInvalidate, if set, is called whenever the visible appearance of
	// the pad has changed. Hosts use it to schedule a repaint.
	OnInvalidate func()

	cfg       Config
	newCanvas CanvasFactory
	surface   *Surface
	smoother  Smoother
	strokes   []CommittedStroke
	chrome    []func(Canvas)

	// plainPDF disables compression of PDF page content.
	plainPDF bool
}

// Option configures a Pad.
type Option func(*Pad)

// WithCanvasFactory selects the canvas implementation used for the
// surface and for rendered frames.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(p *Pad) {
		if f != nil {
			p.newCanvas = f
		}
	}
}

// New returns an unsized pad using the given configuration.
func New(cfg Config, opts ...Option) *Pad {
	p := &Pad{
		cfg:       cfg,
		newCanvas: NewRasterCanvas,
	}
	for _, opt := range opts {
		opt(p)
	}
	if !(p.cfg.PenWidth > 0) {
		Logger().Warn("invalid pen width, using default", "width", p.cfg.PenWidth)
		p.cfg.PenWidth = DefaultPenWidth
	}
	p.surface = NewSurface(p.newCanvas)
	return p
}

// Config returns the current configuration.
func (p *Pad) Config() Config {
	return p.cfg
}

// State returns Drawing while a gesture is in progress, and Idle
// otherwise.
func (p *Pad) State() State {
	if p.smoother.Active() {
		return Drawing
	}
	return Idle
}

// Size returns the current size of the pad, or the empty rectangle before
// the first successful Resize.
func (p *Pad) Size() image.Rectangle {
	return p.surface.Bounds()
}

// Resize is called by the host when the on-screen size of the pad changes.
// If height is not positive, parentHeight is used. The surface is
// replaced by an empty one, so that the pad shows only the background;
// committed strokes and any stroke in progress are discarded.
func (p *Pad) Resize(width, height, parentHeight int) error {
	p.smoother.Reset()
	p.strokes = nil
	err := p.surface.Resize(width, height, parentHeight)
	p.invalidate()
	return err
}

// PointerDown starts a new gesture at pt.
func (p *Pad) PointerDown(pt vec.Vec2) {
	if !p.cfg.Enabled {
		return
	}
	p.smoother.Start(pt)
	p.invalidate()
}

// PointerMove extends the current gesture.
func (p *Pad) PointerMove(pt vec.Vec2) {
	if !p.cfg.Enabled || !p.smoother.Active() {
		return
	}
	if p.smoother.Extend(pt) {
		p.invalidate()
	}
}

// PointerUp ends the current gesture and commits the stroke to the
// surface. The position of the up event is not used: the stroke ends at
// the last accepted sample.
//
// If the pad has not been sized yet, the stroke is discarded and an error
// wrapping ErrNotInitialized is returned.
func (p *Pad) PointerUp(pt vec.Vec2) error {
	if !p.cfg.Enabled || !p.smoother.Active() {
		return nil
	}
	st := p.smoother.Finish()
	pen := p.cfg.Pen()
	if err := p.surface.Commit(st, pen); err != nil {
		Logger().Warn("stroke dropped", "error", err)
		p.invalidate()
		return err
	}
	p.strokes = append(p.strokes, CommittedStroke{Stroke: st, Pen: pen})
	Logger().Debug("stroke committed", "dot", st.IsDot(), "strokes", len(p.strokes))
	p.invalidate()
	return nil
}

// Cancel abandons the gesture in progress, if any. Hosts call this when
// the platform cancels a pointer sequence.
func (p *Pad) Cancel() {
	if p.smoother.Active() {
		p.smoother.Reset()
		p.invalidate()
	}
}

// Clear erases all committed strokes, so that the pad shows only the
// background colour. A gesture in progress is not affected.
func (p *Pad) Clear() error {
	if err := p.surface.Clear(color.Transparent); err != nil {
		return err
	}
	p.strokes = nil
	p.invalidate()
	return nil
}

// Strokes returns a copy of the strokes committed since the last Clear
// or Resize.
func (p *Pad) Strokes() []CommittedStroke {
	return slices.Clone(p.strokes)
}

// IsEmpty reports whether no stroke has been committed since the last
// Clear or Resize.
func (p *Pad) IsEmpty() bool {
	return len(p.strokes) == 0
}

// Enabled reports whether the pad accepts pointer input.
func (p *Pad) Enabled() bool {
	return p.cfg.Enabled
}

// SetEnabled enables or disables pointer input. Disabling the pad during
// a gesture aborts the gesture: the stroke in progress is discarded.
func (p *Pad) SetEnabled(enabled bool) {
	if p.cfg.Enabled == enabled {
		return
	}
	p.cfg.Enabled = enabled
	if !enabled {
		p.Cancel()
	}
}

// PenWidth returns the current pen width.
func (p *Pad) PenWidth() float64 {
	return p.cfg.PenWidth
}

// SetPenWidth sets the pen width for future strokes. Non-positive widths
// are ignored.
func (p *Pad) SetPenWidth(w float64) {
	if !(w > 0) {
		Logger().Warn("ignoring invalid pen width", "width", w)
		return
	}
	p.cfg.PenWidth = w
	p.invalidateIfDrawing()
}

// PenColor returns the current pen colour.
func (p *Pad) PenColor() color.NRGBA {
	return p.cfg.PenColor
}

// SetPenColor sets the pen colour for future strokes.
func (p *Pad) SetPenColor(c color.Color) {
	p.cfg.PenColor = color.NRGBAModel.Convert(c).(color.NRGBA)
	p.invalidateIfDrawing()
}

// BackgroundColor returns the current background colour.
func (p *Pad) BackgroundColor() color.NRGBA {
	return p.cfg.BackgroundColor
}

// SetBackgroundColor sets the colour shown behind the strokes, including
// strokes which have already been committed.
func (p *Pad) SetBackgroundColor(c color.Color) {
	p.cfg.BackgroundColor = color.NRGBAModel.Convert(c).(color.NRGBA)
	p.invalidate()
}

// AddChrome registers a decoration which is drawn on top of every frame
// and every raster export, for example a signing line.
func (p *Pad) AddChrome(draw func(c Canvas)) {
	p.chrome = append(p.chrome, draw)
	p.invalidate()
}

// Frame paints the current appearance of the pad into dst, aligned with
// dst.Bounds().Min.
func (p *Pad) Frame(dst draw.Image) error {
	frame, err := p.render()
	if err != nil {
		return err
	}
	img := frame.Image()
	draw.Draw(dst, img.Rect.Add(dst.Bounds().Min), img, image.Point{}, draw.Src)
	return nil
}

// render rasterises the full visible area of the pad into a new canvas:
// background, committed strokes, the stroke in progress and the chrome.
func (p *Pad) render() (Canvas, error) {
	if !p.surface.Initialized() {
		return nil, fmt.Errorf("render: %w", ErrNotInitialized)
	}
	b := p.surface.Bounds()
	frame := p.newCanvas(b.Dx(), b.Dy())
	if err := p.surface.Render(frame, p.cfg.BackgroundColor); err != nil {
		return nil, err
	}

	if st, ok := p.smoother.Preview(); ok {
		pen := p.cfg.Pen()
		if st.IsDot() {
			frame.DrawPoint(st.At, pen)
		} else {
			frame.StrokePath(st.Path.Iter(), pen)
		}
	}

	for _, fn := range p.chrome {
		fn(frame)
	}
	return frame, nil
}

func (p *Pad) invalidate() {
	if p.OnInvalidate != nil {
		p.OnInvalidate()
	}
}

func (p *Pad) invalidateIfDrawing() {
	if p.smoother.Active() {
		p.invalidate()
	}
}
