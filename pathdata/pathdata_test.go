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

package pathdata

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestIter(t *testing.T) {
	a := vec.Vec2{X: 1, Y: 2}
	b := vec.Vec2{X: 3, Y: 4}
	c := vec.Vec2{X: 5, Y: 6}
	d := (&Data{}).MoveTo(a).LineTo(b).QuadTo(a, c).CubeTo(a, b, c).Close()
	assert.Equal(t, 5, d.Len())

	var cmds []path.Command
	var pts [][]vec.Vec2
	for cmd, p := range d.Iter() {
		cmds = append(cmds, cmd)
		pts = append(pts, slices.Clone(p))
	}
	assert.Equal(t, []path.Command{
		path.CmdMoveTo, path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo, path.CmdClose,
	}, cmds)
	assert.Equal(t, [][]vec.Vec2{{a}, {b}, {a, c}, {a, b, c}, {}}, pts)
}

func TestIterStop(t *testing.T) {
	d := (&Data{}).MoveTo(vec.Vec2{}).LineTo(vec.Vec2{X: 1}).LineTo(vec.Vec2{X: 2})
	n := 0
	for range d.Iter() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestToCubic(t *testing.T) {
	d := (&Data{}).MoveTo(vec.Vec2{}).QuadTo(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 6})
	var last []vec.Vec2
	for cmd, p := range d.Iter().ToCubic() {
		if cmd == path.CmdCubeTo {
			last = slices.Clone(p)
		}
	}
	assert.Equal(t, []vec.Vec2{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 6}}, last)
}

func TestEmpty(t *testing.T) {
	var d Data
	for range d.Iter() {
		t.Fatal("empty path yields segments")
	}
	assert.Zero(t, d.Len())
}
