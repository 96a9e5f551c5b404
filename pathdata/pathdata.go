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

// Package pathdata stores paths which can be replayed as a [path.Path].
package pathdata

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Data is a path held in memory. The zero value is an empty path.
// All construction methods return the receiver, so that calls can be
// chained.
type Data struct {
	Cmds   []path.Command
	Points []vec.Vec2
}

// MoveTo starts a new subpath at p.
func (d *Data) MoveTo(p vec.Vec2) *Data {
	d.Cmds = append(d.Cmds, path.CmdMoveTo)
	d.Points = append(d.Points, p)
	return d
}

// LineTo appends a straight line to p.
func (d *Data) LineTo(p vec.Vec2) *Data {
	d.Cmds = append(d.Cmds, path.CmdLineTo)
	d.Points = append(d.Points, p)
	return d
}

// QuadTo appends a quadratic Bézier curve with control point c, ending at p.
func (d *Data) QuadTo(c, p vec.Vec2) *Data {
	d.Cmds = append(d.Cmds, path.CmdQuadTo)
	d.Points = append(d.Points, c, p)
	return d
}

// CubeTo appends a cubic Bézier curve with control points c1 and c2,
// ending at p.
func (d *Data) CubeTo(c1, c2, p vec.Vec2) *Data {
	d.Cmds = append(d.Cmds, path.CmdCubeTo)
	d.Points = append(d.Points, c1, c2, p)
	return d
}

// Close closes the current subpath.
func (d *Data) Close() *Data {
	d.Cmds = append(d.Cmds, path.CmdClose)
	return d
}

// Len returns the number of commands in the path.
func (d *Data) Len() int {
	return len(d.Cmds)
}

// Iter returns an iterator over the segments of the path.
// The point slices passed to the iterator must not be modified.
func (d *Data) Iter() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		pos := 0
		for _, cmd := range d.Cmds {
			n := numPoints(cmd)
			if !yield(cmd, d.Points[pos:pos+n:pos+n]) {
				return
			}
			pos += n
		}
	}
}

func numPoints(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}
