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

// Command sigterm captures a signature with the mouse in a terminal.
//
// Each terminal cell shows a block of pad pixels as two colours, using
// the upper half block character. Keys: c clears the pad, s saves a PNG,
// q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
)

// Size of one terminal cell in pad units. Moving the mouse by one cell
// is enough to extend a stroke.
const (
	cellWidth  = 4
	cellHeight = 8
)

func main() {
	var (
		output   = flag.String("o", "signature.png", "output file for the s key")
		config   = flag.String("config", "", "TOML or YAML file with pad attributes")
		penWidth = flag.Float64("pen-width", 6, "pen width in pad units")
		logFile  = flag.String("log", "", "write debug log to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		sigpad.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := sigpad.DefaultConfig()
	if *config != "" {
		var err error
		cfg, err = sigpad.LoadConfigFile(*config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		cfg.PenWidth = *penWidth
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	t := newTerm(screen, cfg, *output)
	t.run()
	screen.Fini()

	if t.status != "" {
		fmt.Println(t.status)
	}
}

type term struct {
	screen tcell.Screen
	pad    *sigpad.Pad
	output string
	status string
	dirty  bool
}

func newTerm(screen tcell.Screen, cfg sigpad.Config, output string) *term {
	t := &term{
		screen: screen,
		pad:    sigpad.New(cfg),
		output: output,
	}
	t.pad.OnInvalidate = func() { t.dirty = true }
	screen.EnableMouse()
	t.resize()
	return t
}

// resize sizes the pad to the terminal, leaving the last row for status
// messages.
func (t *term) resize() {
	cols, rows := t.screen.Size()
	if err := t.pad.Resize(cols*cellWidth, (rows-1)*cellHeight, 0); err != nil {
		sigpad.Logger().Warn("terminal too small", "cols", cols, "rows", rows)
	}
}

func (t *term) run() {
	t.draw()
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.resize()
			t.screen.Sync()
		case *tcell.EventMouse:
			x, y := ev.Position()
			t.handleMouse(x, y, ev.Buttons())
		case *tcell.EventKey:
			if !t.handleKey(ev) {
				return
			}
		}
		if t.dirty {
			t.draw()
		}
	}
}

func (t *term) handleMouse(col, row int, buttons tcell.ButtonMask) {
	at := cellCentre(col, row)
	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && t.pad.State() == sigpad.Idle:
		t.pad.PointerDown(at)
	case pressed:
		t.pad.PointerMove(at)
	case t.pad.State() == sigpad.Drawing:
		if err := t.pad.PointerUp(at); err != nil {
			t.setStatus(err.Error())
		}
	}
}

// handleKey returns false if the program should exit.
func (t *term) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'c':
		if err := t.pad.Clear(); err != nil {
			t.setStatus(err.Error())
		}
	case 's':
		t.save()
	}
	return true
}

func (t *term) save() {
	data, err := t.pad.ExportPNG()
	if err == nil {
		err = os.WriteFile(t.output, data, 0o644)
	}
	if err != nil {
		t.setStatus("save failed: " + err.Error())
		return
	}
	t.setStatus(fmt.Sprintf("saved %s (%d strokes)", t.output, len(t.pad.Strokes())))
}

func (t *term) setStatus(msg string) {
	t.status = msg
	t.dirty = true
}

func (t *term) draw() {
	t.dirty = false
	t.screen.Clear()

	img, err := t.pad.ExportBitmap()
	if err == nil {
		drawHalfBlocks(t.screen, img)
	}

	_, rows := t.screen.Size()
	msg := t.status
	if msg == "" {
		msg = "drag to sign · c clear · s save · q quit"
	}
	for i, r := range []rune(msg) {
		t.screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

// cellCentre maps a terminal cell to pad coordinates.
func cellCentre(col, row int) vec.Vec2 {
	return vec.Vec2{
		X: float64(col*cellWidth) + cellWidth/2,
		Y: float64(row*cellHeight) + cellHeight/2,
	}
}

// drawHalfBlocks shows img on the screen. Every cell covers a
// cellWidth×cellHeight block of img; the upper and lower halves of the
// block become the foreground and background colour of '▀'.
func drawHalfBlocks(screen tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for row := 0; row*cellHeight < b.Dy(); row++ {
		for col := 0; col*cellWidth < b.Dx(); col++ {
			block := image.Rect(col*cellWidth, row*cellHeight, (col+1)*cellWidth, (row+1)*cellHeight)
			top := block
			top.Max.Y -= cellHeight / 2
			bottom := block
			bottom.Min.Y += cellHeight / 2
			style := tcell.StyleDefault.
				Foreground(average(img, top)).
				Background(average(img, bottom))
			screen.SetContent(col, row, '▀', nil, style)
		}
	}
}

// average returns the mean colour of img inside r.
func average(img *image.RGBA, r image.Rectangle) tcell.Color {
	r = r.Intersect(img.Rect)
	var sr, sg, sb, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			n++
		}
	}
	if n == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(sr/n), int32(sg/n), int32(sb/n))
}
