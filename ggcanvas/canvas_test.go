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

package ggcanvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
	"seehuhn.de/go/sigpad/pathdata"
)

func TestFill(t *testing.T) {
	c := New(12, 7)
	assert.Equal(t, image.Rect(0, 0, 12, 7), c.Bounds())
	assert.Zero(t, c.Image().RGBAAt(3, 3))

	c.Fill(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img := c.Image()
	for y := 0; y < 7; y++ {
		for x := 0; x < 12; x++ {
			require.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.RGBAAt(x, y))
		}
	}
}

func TestStrokeAndPoint(t *testing.T) {
	c := New(60, 30)
	pen := sigpad.Pen{Width: 6, Color: color.Black}

	line := (&pathdata.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		QuadTo(vec.Vec2{X: 30, Y: 10}, vec.Vec2{X: 50, Y: 10})
	c.StrokePath(line.Iter(), pen)
	c.DrawPoint(vec.Vec2{X: 30, Y: 22}, pen)

	img := c.Image()
	assert.Greater(t, img.RGBAAt(30, 10).A, uint8(200))
	assert.Greater(t, img.RGBAAt(30, 22).A, uint8(200))
	assert.Zero(t, img.RGBAAt(30, 16).A)
	assert.Zero(t, img.RGBAAt(2, 2).A)
}

func TestDrawImage(t *testing.T) {
	c := New(4, 4)
	c.Fill(color.White)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 2, color.RGBA{R: 255, A: 255})
	src.SetRGBA(2, 2, color.RGBA{R: 128, A: 128})
	c.DrawImage(src)

	img := c.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(0, 0))
	got := img.RGBAAt(2, 2)
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 127, int(got.G), 1)
}

func TestPadWithGG(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	p := sigpad.New(sigpad.DefaultConfig(), sigpad.WithCanvasFactory(New))
	require.NoError(t, p.Resize(80, 40, 0))
	p.SetPenColor(red)

	p.PointerDown(vec.Vec2{X: 10, Y: 20})
	for x := 15.0; x <= 70; x += 5 {
		p.PointerMove(vec.Vec2{X: x, Y: 20})
	}
	require.NoError(t, p.PointerUp(vec.Vec2{X: 70, Y: 20}))

	img, err := p.ExportBitmap()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())

	mid := img.RGBAAt(40, 20)
	assert.Equal(t, uint8(255), mid.R)
	assert.Less(t, mid.G, uint8(40))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(40, 5))

	require.NoError(t, p.Clear())
	img, err = p.ExportBitmap()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(40, 20))
}
