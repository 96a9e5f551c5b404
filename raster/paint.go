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
	"image/color"
)

// Painter returns an EmitFunc which composites the colour c over dst,
// using the coverage values as an additional alpha mask.
// Rows and columns outside dst.Rect are ignored.
func Painter(dst *image.RGBA, c color.Color) EmitFunc {
	// premultiplied source, scaled to [0, 255]
	sr, sg, sb, sa := c.RGBA()
	r := float32(sr) / 257
	g := float32(sg) / 257
	b := float32(sb) / 257
	a := float32(sa) / 0xffff

	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X || cov <= 0 {
				continue
			}
			k := 1 - a*cov
			off := dst.PixOffset(x, y)
			px := dst.Pix[off : off+4 : off+4]
			px[0] = blend(r*cov, px[0], k)
			px[1] = blend(g*cov, px[1], k)
			px[2] = blend(b*cov, px[2], k)
			px[3] = blend(255*a*cov, px[3], k)
		}
	}
}

// blend computes src + dst*k, rounded and clamped to a byte.
func blend(src float32, dst uint8, k float32) uint8 {
	v := src + float32(dst)*k + 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
