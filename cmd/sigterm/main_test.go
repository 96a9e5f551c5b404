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

package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
)

func newSimTerm(t *testing.T, cols, rows int) (*term, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	out := filepath.Join(t.TempDir(), "sig.png")
	return newTerm(screen, sigpad.DefaultConfig(), out), screen
}

func TestTermSize(t *testing.T) {
	tm, _ := newSimTerm(t, 20, 6)
	assert.Equal(t, image.Rect(0, 0, 20*cellWidth, 5*cellHeight), tm.pad.Size())
}

func TestTermMouseStroke(t *testing.T) {
	tm, screen := newSimTerm(t, 20, 6)

	for col := 2; col <= 15; col++ {
		tm.handleMouse(col, 2, tcell.Button1)
	}
	assert.Equal(t, sigpad.Drawing, tm.pad.State())
	tm.handleMouse(15, 2, tcell.ButtonNone)
	assert.Equal(t, sigpad.Idle, tm.pad.State())
	require.Len(t, tm.pad.Strokes(), 1)

	tm.draw()
	mainc, _, style, _ := screen.GetContent(8, 2)
	assert.Equal(t, '▀', mainc)
	fg, bg, _ := style.Decompose()
	assert.NotEqual(t, tcell.NewRGBColor(255, 255, 255), fg)
	assert.NotEqual(t, tcell.NewRGBColor(255, 255, 255), bg)

	mainc, _, style, _ = screen.GetContent(8, 0)
	assert.Equal(t, '▀', mainc)
	fg, _, _ = style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), fg)
}

func TestTermKeys(t *testing.T) {
	tm, _ := newSimTerm(t, 10, 4)
	tm.handleMouse(3, 1, tcell.Button1)
	tm.handleMouse(3, 1, tcell.ButtonNone)
	require.False(t, tm.pad.IsEmpty())

	assert.True(t, tm.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)))
	data, err := os.ReadFile(tm.output)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, tm.status, "saved")

	assert.True(t, tm.handleKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
	assert.True(t, tm.pad.IsEmpty())

	assert.False(t, tm.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, tm.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestCellCentre(t *testing.T) {
	assert.Equal(t, vec.Vec2{X: 2, Y: 4}, cellCentre(0, 0))
	assert.Equal(t, vec.Vec2{X: 14, Y: 28}, cellCentre(3, 3))
}
