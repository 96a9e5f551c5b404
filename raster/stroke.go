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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened line segment of a path.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, T rotated by +90°
}

// Stroke renders the outline of p using Width, Cap and Join.
//
// The stroke is built from convex pieces: one quadrilateral per flattened
// segment, plus cap and join shapes. All pieces are oriented the same way
// and filled together with the nonzero rule, so that overlaps are painted
// only once.
func (r *Rasteriser) Stroke(p path.Path, emit EmitFunc) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	d := r.Width / 2
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			r.addDisc(pt, d)
		}
	}
	for i := range r.segsOffsets {
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i], d)
	}

	r.fillStrokeOutlines(emit)
}

// Dot renders a filled disc of diameter Width centred at at.
func (r *Rasteriser) Dot(at vec.Vec2, emit EmitFunc) {
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]
	r.addDisc(at, r.Width/2)
	r.fillStrokeOutlines(emit)
}

// flattenPath converts p into line segments, grouped by subpath.
// Subpaths which contain drawing operations but have no extent are
// recorded in r.degeneratePoints.
func (r *Rasteriser) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, start vec.Vec2
	startIdx := 0
	inSubpath := false
	drawn := false

	endSubpath := func(closed bool) {
		if !inSubpath || (!drawn && len(r.segs) == startIdx) {
			return
		}
		if len(r.segs) == startIdx {
			r.degeneratePoints = append(r.degeneratePoints, start)
		} else {
			r.segsOffsets = append(r.segsOffsets, startIdx)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			endSubpath(false)
			current = pts[0]
			start = current
			startIdx = len(r.segs)
			inSubpath = true
			drawn = false

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			drawn = true
			r.addStrokeSegment(current, pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			drawn = true
			r.flattenQuadratic(current, pts[0], pts[1], r.addStrokeSegment)
			current = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			drawn = true
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addStrokeSegment)
			current = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != start {
				r.addStrokeSegment(current, start)
			}
			drawn = true
			endSubpath(true)
			current = start
			startIdx = len(r.segs)
			inSubpath = false
			drawn = false
		}
	}
	endSubpath(false)
}

// addStrokeSegment appends a flattened segment, skipping zero-length ones.
func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// subpathSegments returns the segments of subpath i.
func (r *Rasteriser) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// strokeSubpath adds the pieces for one subpath. d is half the pen width.
func (r *Rasteriser) strokeSubpath(segs []strokeSegment, closed bool, d float64) {
	n := len(segs)
	if n == 0 {
		return
	}

	for i := range segs {
		seg := &segs[i]
		start := len(r.stroke)
		r.stroke = append(r.stroke,
			seg.A.Sub(seg.N.Mul(d)),
			seg.B.Sub(seg.N.Mul(d)),
			seg.B.Add(seg.N.Mul(d)),
			seg.A.Add(seg.N.Mul(d)),
		)
		r.closePolygon(start)
	}

	for i := 1; i < n; i++ {
		r.addJoin(&segs[i-1], &segs[i], d)
	}
	if closed {
		if n > 1 {
			r.addJoin(&segs[n-1], &segs[0], d)
		}
		return
	}

	r.addCap(segs[0].A, segs[0].T.Mul(-1), d)
	r.addCap(segs[n-1].B, segs[n-1].T, d)
}

// addCap adds the end shape at P. T points away from the stroke.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(P, d)

	case graphics.LineCapSquare:
		N := vec.Vec2{X: -T.Y, Y: T.X}
		ext := P.Add(T.Mul(d))
		start := len(r.stroke)
		r.stroke = append(r.stroke,
			P.Add(N.Mul(d)),
			ext.Add(N.Mul(d)),
			ext.Sub(N.Mul(d)),
			P.Sub(N.Mul(d)),
		)
		r.closePolygon(start)
	}
}

// addJoin fills the gap on the outer side of the corner between a and b.
func (r *Rasteriser) addJoin(a, b *strokeSegment, d float64) {
	P := a.B
	sin := a.T.X*b.T.Y - a.T.Y*b.T.X
	cos := a.T.Dot(b.T)
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(P, d)
		return
	}

	// The path turns towards +N when sin > 0, leaving the gap on the -N side.
	side := 1.0
	if sin > 0 {
		side = -1
	}
	pa := P.Add(a.N.Mul(side * d))
	pb := P.Add(b.N.Mul(side * d))

	start := len(r.stroke)
	r.stroke = append(r.stroke, P, pa)
	if r.Join == graphics.LineJoinMiter {
		// The miter length relative to the pen width is 1/cos(θ/2), where
		// θ is the angle between the tangents.
		cosHalf := math.Sqrt((1 + cos) / 2)
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit {
			bisector := a.N.Add(b.N)
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bisector.Mul(side*d/(l*cosHalf))))
			}
		}
	}
	r.stroke = append(r.stroke, pb)
	r.closePolygon(start)
}

// addDisc adds a polygonal approximation of a disc. The number of vertices
// is chosen so that the polygon stays within Flatness of the circle, and
// the vertices are pushed outwards so that the polygon has the same area
// as the disc.
func (r *Rasteriser) addDisc(center vec.Vec2, radius float64) {
	if radius <= 0 {
		return
	}

	n := minDiscVertices
	if radius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/radius)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}
	inscribed := float64(n) / 2 * math.Sin(2*math.Pi/float64(n))
	rv := radius * math.Sqrt(math.Pi/inscribed)

	start := len(r.stroke)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.stroke = append(r.stroke, vec.Vec2{
			X: center.X + rv*math.Cos(phi),
			Y: center.Y + rv*math.Sin(phi),
		})
	}
	r.closePolygon(start)
}

// closePolygon finishes the polygon which starts at r.stroke[start].
// The polygon is reversed if needed, so that all pieces have positive
// orientation. Polygons without area are dropped.
func (r *Rasteriser) closePolygon(start int) {
	poly := r.stroke[start:]
	if len(poly) < 3 {
		r.stroke = r.stroke[:start]
		return
	}

	var a float64
	prev := poly[len(poly)-1]
	for _, pt := range poly {
		a += prev.X*pt.Y - pt.X*prev.Y
		prev = pt
	}
	switch {
	case math.Abs(a) < minPolygonArea:
		r.stroke = r.stroke[:start]
		return
	case a < 0:
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	r.strokeOffsets = append(r.strokeOffsets, start)
}

// fillStrokeOutlines fills all collected polygons as one compound shape.
func (r *Rasteriser) fillStrokeOutlines(emit EmitFunc) {
	if len(r.strokeOffsets) == 0 {
		return
	}

	r.startEdges()
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		prev := poly[len(poly)-1]
		for _, pt := range poly {
			r.addEdge(prev, pt)
			prev = pt
		}
	}
	r.fillEdges(emit)
}

// minDiscVertices is the smallest number of vertices used for a disc.
const minDiscVertices = 8
