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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad/pathdata"
)

// Tolerance is the minimal pointer movement, along at least one axis,
// which extends the current stroke. Smaller movements are treated as
// jitter and ignored.
const Tolerance = 4

// Stroke is the result of one finished gesture.
// A gesture without movement results in a dot: Path is nil and At gives
// the location.
type Stroke struct {
	Path *pathdata.Data
	At   vec.Vec2
}

// IsDot reports whether the stroke is a single point.
func (s Stroke) IsDot() bool {
	return s.Path == nil
}

// Smoother turns raw pointer samples into a smooth curve.
//
// Each accepted sample adds a quadratic Bézier segment which uses the
// previous sample as its control point and ends halfway between the
// previous and the new sample.
//
// The zero value is ready to use.
type Smoother struct {
	path     *pathdata.Data
	last     vec.Vec2
	segments int
	active   bool
}

// Start begins a new stroke at p. Any unfinished stroke is discarded.
func (s *Smoother) Start(p vec.Vec2) {
	s.path = (&pathdata.Data{}).MoveTo(p)
	s.last = p
	s.segments = 0
	s.active = true
}

// Extend adds the sample p to the current stroke. The return value
// reports whether the path changed. Samples which are closer than
// Tolerance to the previous accepted sample in both coordinates are
// dropped, as are samples received while no stroke is active.
func (s *Smoother) Extend(p vec.Vec2) bool {
	if !s.active {
		return false
	}
	dx := math.Abs(p.X - s.last.X)
	dy := math.Abs(p.Y - s.last.Y)
	if dx < Tolerance && dy < Tolerance {
		return false
	}

	s.path.QuadTo(s.last, s.last.Add(p).Mul(0.5))
	s.last = p
	s.segments++
	return true
}

// Finish completes the current stroke and resets the smoother.
// If no sample was accepted after Start, a dot at the start point is
// returned.
func (s *Smoother) Finish() Stroke {
	var res Stroke
	if s.segments > 0 {
		s.path.LineTo(s.last)
		res = Stroke{Path: s.path, At: s.last}
	} else {
		res = Stroke{At: s.last}
	}
	s.Reset()
	return res
}

// Reset abandons the current stroke.
func (s *Smoother) Reset() {
	s.path = nil
	s.segments = 0
	s.active = false
}

// Active reports whether a stroke is in progress.
func (s *Smoother) Active() bool {
	return s.active
}

// Last returns the most recent accepted sample.
func (s *Smoother) Last() vec.Vec2 {
	return s.last
}

// Segments returns the number of curve segments in the current stroke.
func (s *Smoother) Segments() int {
	return s.segments
}

// Preview returns the stroke in progress, for drawing on top of the
// surface. Unlike the result of Finish, the path does not yet include
// the closing line to the last sample. The returned path must not be
// modified.
func (s *Smoother) Preview() (Stroke, bool) {
	if !s.active {
		return Stroke{}, false
	}
	if s.segments == 0 {
		return Stroke{At: s.last}, true
	}
	return Stroke{Path: s.path, At: s.last}, true
}
