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
)

// ErrNotInitialized is returned by operations which need pixels before the
// surface has been given a size.
var ErrNotInitialized = errors.New("surface not initialized")

// Surface is the persistent backing image of a signature pad. It holds
// all committed strokes, but never a stroke which is still in progress.
// The background is not stored: pixels without ink stay transparent, and
// Render paints the background underneath the surface.
//
// A new Surface has no pixels. All drawing operations return
// ErrNotInitialized until Resize has been called with a valid size.
type Surface struct {
	newCanvas CanvasFactory
	canvas    Canvas
}

// NewSurface returns an unsized surface which allocates its pixels using
// newCanvas. If newCanvas is nil, NewRasterCanvas is used.
func NewSurface(newCanvas CanvasFactory) *Surface {
	if newCanvas == nil {
		newCanvas = NewRasterCanvas
	}
	return &Surface{newCanvas: newCanvas}
}

// Resize replaces the backing image by a new, transparent image of the
// given size. If height is not positive, parentHeight is used instead.
// All previous content is lost.
//
// If the resulting size is empty, the surface becomes uninitialized and
// an error is returned.
func (s *Surface) Resize(width, height, parentHeight int) error {
	if height <= 0 {
		height = parentHeight
	}
	if width <= 0 || height <= 0 {
		s.canvas = nil
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	s.canvas = s.newCanvas(width, height)
	Logger().Debug("surface allocated", "width", width, "height", height)
	return nil
}

// Initialized reports whether the surface has pixels.
func (s *Surface) Initialized() bool {
	return s.canvas != nil
}

// Bounds returns the size of the surface, or the empty rectangle if the
// surface is not initialized.
func (s *Surface) Bounds() image.Rectangle {
	if s.canvas == nil {
		return image.Rectangle{}
	}
	return s.canvas.Bounds()
}

// Commit draws a finished stroke onto the surface.
func (s *Surface) Commit(st Stroke, pen Pen) error {
	if s.canvas == nil {
		return fmt.Errorf("commit: %w", ErrNotInitialized)
	}
	if st.IsDot() {
		s.canvas.DrawPoint(st.At, pen)
	} else {
		s.canvas.StrokePath(st.Path.Iter(), pen)
	}
	return nil
}

// Clear fills the whole surface with c. Use [color.Transparent] to erase
// all ink.
func (s *Surface) Clear(c color.Color) error {
	if s.canvas == nil {
		return fmt.Errorf("clear: %w", ErrNotInitialized)
	}
	s.canvas.Fill(c)
	return nil
}

// Render paints one frame into dst: dst is filled with bg, then the
// surface is composited on top.
func (s *Surface) Render(dst Canvas, bg color.Color) error {
	if s.canvas == nil {
		return fmt.Errorf("render: %w", ErrNotInitialized)
	}
	dst.Fill(bg)
	dst.DrawImage(s.canvas.Image())
	return nil
}

// Image returns the backing image. The result must not be modified.
func (s *Surface) Image() (*image.RGBA, error) {
	if s.canvas == nil {
		return nil, ErrNotInitialized
	}
	return s.canvas.Image(), nil
}
