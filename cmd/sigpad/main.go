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

// Command sigpad shows a signature pad in a desktop window and saves the
// signature as PNG or PDF.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"seehuhn.de/go/sigpad"
	"seehuhn.de/go/sigpad/fynepad"
	"seehuhn.de/go/sigpad/ggcanvas"
)

func main() {
	var (
		config  = flag.String("config", "", "TOML or YAML file with pad attributes")
		backend = flag.String("backend", "raster", "drawing backend: raster or gg")
		output  = flag.String("o", "signature.png", "default output file (.png or .pdf)")
		guide   = flag.Bool("guide", true, "draw a signing line")
		verbose = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	sigpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := sigpad.DefaultConfig()
	if *config != "" {
		var err error
		cfg, err = sigpad.LoadConfigFile(*config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var opts []sigpad.Option
	switch *backend {
	case "raster":
	case "gg":
		opts = append(opts, sigpad.WithCanvasFactory(ggcanvas.New))
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q\n", *backend)
		os.Exit(1)
	}

	a := app.New()
	win := a.NewWindow("Signature")
	win.Resize(fyne.NewSize(640, 280))

	pad := fynepad.New(cfg, opts...)
	if *guide {
		pad.Pad().AddChrome(fynepad.SigningLine(color.NRGBA{R: 160, G: 160, B: 160, A: 255}))
	}

	status := widget.NewLabel("")
	pad.OnStroke = func() {
		status.SetText(fmt.Sprintf("%d strokes", len(pad.Pad().Strokes())))
	}

	outName := widget.NewEntry()
	outName.SetText(*output)

	saveButton := widget.NewButton("Save", func() {
		name := outName.Text
		if err := save(pad.Pad(), name); err != nil {
			dialog.ShowError(err, win)
			return
		}
		status.SetText("saved " + name)
	})
	clearButton := widget.NewButton("Clear", func() {
		if err := pad.Pad().Clear(); err != nil {
			dialog.ShowError(err, win)
			return
		}
		status.SetText("")
	})
	enabled := widget.NewCheck("Enabled", pad.Pad().SetEnabled)
	enabled.SetChecked(pad.Pad().Enabled())
	width := widget.NewSelect([]string{"2", "4", "6", "8"}, func(s string) {
		var w float64
		if _, err := fmt.Sscan(s, &w); err == nil {
			pad.Pad().SetPenWidth(w)
		}
	})
	width.SetSelected(fmt.Sprint(pad.Pad().PenWidth()))

	toolbar := container.NewHBox(clearButton, enabled, width, layout.NewSpacer(), outName, saveButton)
	win.SetContent(container.NewBorder(toolbar, status, nil, nil, pad))
	win.ShowAndRun()
}

// save writes the signature to a file. The format is chosen by the file
// name extension.
func save(p *sigpad.Pad, name string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		data, err = p.ExportPNG()
	case ".pdf":
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := p.ExportPDF(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%s: unsupported format, use .png or .pdf", name)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
