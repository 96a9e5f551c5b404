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

// Package sigpad implements a pad for capturing hand-drawn signatures.
//
// A [Pad] receives pointer events from a host user interface, smooths the
// pointer samples into quadratic curves (see [Smoother]) and accumulates
// finished strokes on a persistent [Surface]. The result can be exported
// as PNG, as a raw [image.RGBA], or as a vector PDF.
//
// The package does not depend on any particular UI toolkit. Drawing goes
// through the [Canvas] interface; [NewRasterCanvas] provides the default
// software implementation. Toolkit adapters forward events into the Pad
// and display the images produced by [Pad.Frame].
//
// A Pad is not safe for concurrent use. All calls must be made from the
// goroutine which handles the user interface events.
package sigpad
