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
	"image"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/sigpad/raster/testcases"
)

func TestCases(t *testing.T) {
	// Each case is rendered twice: once with 2D buffers and once with
	// the active edge list.
	approaches := []struct {
		name      string
		threshold int
	}{
		{"A", 1 << 30},
		{"B", 0},
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				var results [2]*coverageMap
				for i, approach := range approaches {
					results[i] = renderCase(tc, approach.threshold)
					checkCoverage(t, approach.name, tc, results[i])
				}

				a, b := results[0], results[1]
				for i := range a.v {
					if math.Abs(float64(a.v[i]-b.v[i])) > 1e-4 {
						t.Fatalf("pixel (%d,%d): A=%.5f B=%.5f",
							i%a.w, i/a.w, a.v[i], b.v[i])
					}
				}
			})
		}
	}
}

// renderCase renders a test case into a coverage map.
func renderCase(tc testcases.TestCase, threshold int) *coverageMap {
	r := NewRasteriser(clipRect(tc.Width, tc.Height))
	r.smallPathThreshold = threshold
	m := newCoverageMap(tc.Width, tc.Height)

	switch op := tc.Op.(type) {
	case testcases.Fill:
		r.FillNonZero(tc.Path.Iter(), m.emit)
	case testcases.Stroke:
		r.Width = op.Width
		r.Cap = op.Cap
		r.Join = op.Join
		r.MiterLimit = op.MiterLimit
		r.Stroke(tc.Path.Iter(), m.emit)
	}
	return m
}

func checkCoverage(t *testing.T, approach string, tc testcases.TestCase, m *coverageMap) {
	t.Helper()

	const epsilon = 1e-4
	for i, c := range m.v {
		if c < -epsilon || c > 1+epsilon {
			t.Errorf("%s: pixel (%d,%d) has coverage %.5f", approach, i%m.w, i/m.w, c)
			return
		}
	}

	if tc.Area > 0 {
		tol := tc.Tolerance
		if tol == 0 {
			tol = 0.001
		}
		got := m.total()
		if math.Abs(got-tc.Area) > tol*tc.Area {
			t.Errorf("%s: total coverage %.3f, expected %.3f", approach, got, tc.Area)
		}
	}

	ink := m.inkBounds(epsilon)
	if ink.Empty() {
		t.Errorf("%s: nothing drawn", approach)
		return
	}
	if limit := reach(tc); !ink.In(limit) {
		t.Errorf("%s: ink %v outside of %v", approach, ink, limit)
	}
}

// reach returns the pixels a test case may touch: the bounding box of the
// control points, grown by the furthest a stroke can extend beyond its
// path, and clipped to the canvas.
func reach(tc testcases.TestCase) image.Rectangle {
	var xMin, yMin = math.Inf(1), math.Inf(1)
	var xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, pts := range tc.Path.Iter() {
		for _, p := range pts {
			xMin = min(xMin, p.X)
			xMax = max(xMax, p.X)
			yMin = min(yMin, p.Y)
			yMax = max(yMax, p.Y)
		}
	}

	var grow float64
	if op, ok := tc.Op.(testcases.Stroke); ok {
		grow = op.Width / 2 * max(math.Sqrt2, op.MiterLimit)
	}
	grow++

	box := image.Rect(
		int(math.Floor(xMin-grow)), int(math.Floor(yMin-grow)),
		int(math.Ceil(xMax+grow)), int(math.Ceil(yMax+grow)))
	return box.Intersect(image.Rect(0, 0, tc.Width, tc.Height))
}
