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

package sigpad

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Attribute names recognised by ParseAttributes.
const (
	AttrPenWidth        = "penWidth"
	AttrPenColor        = "penColor"
	AttrBackgroundColor = "backgroundColor"
	AttrEnabled         = "enabled"
)

// DefaultPenWidth is the pen width used when none is configured.
const DefaultPenWidth = 4

// Config holds the user-visible settings of a signature pad.
type Config struct {
	PenWidth        float64
	PenColor        color.NRGBA
	BackgroundColor color.NRGBA
	Enabled         bool
}

// DefaultConfig returns a black 4 pixel pen on a white background.
func DefaultConfig() Config {
	return Config{
		PenWidth:        DefaultPenWidth,
		PenColor:        color.NRGBA{A: 255},
		BackgroundColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Enabled:         true,
	}
}

// Pen returns the pen described by c.
func (c Config) Pen() Pen {
	return Pen{Width: c.PenWidth, Color: c.PenColor}
}

// ParseAttributes builds a Config from string attributes, as found in
// layout files or command line options. Missing attributes take their
// default values. Malformed values are logged and replaced by the
// default; they never cause an error. Unknown attributes are ignored.
func ParseAttributes(attrs map[string]string) Config {
	cfg := DefaultConfig()
	for key, val := range attrs {
		val = strings.TrimSpace(val)
		var err error
		switch key {
		case AttrPenWidth:
			var w float64
			w, err = parseWidth(val)
			if err == nil {
				cfg.PenWidth = w
			}
		case AttrPenColor:
			var c color.NRGBA
			c, err = ParseColor(val)
			if err == nil {
				cfg.PenColor = c
			}
		case AttrBackgroundColor:
			var c color.NRGBA
			c, err = ParseColor(val)
			if err == nil {
				cfg.BackgroundColor = c
			}
		case AttrEnabled:
			var b bool
			b, err = strconv.ParseBool(val)
			if err == nil {
				cfg.Enabled = b
			}
		default:
			Logger().Debug("ignoring unknown attribute", "name", key)
		}
		if err != nil {
			Logger().Warn("invalid attribute, using default",
				"name", key, "value", val, "error", err)
		}
	}
	return cfg
}

// parseWidth parses a pen width. A trailing unit "px" or "dp" is accepted
// and ignored.
func parseWidth(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSuffix(s, "px"), "dp")
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return 0, fmt.Errorf("pen width %g is not positive", w)
	}
	return w, nil
}

// ParseColor parses a colour given as #RGB, #RRGGBB, #AARRGGBB (alpha
// first), or as an SVG colour name like "navy".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "#"); ok {
		return parseHexColor(name)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown colour %q", s)
}

func parseHexColor(hex string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour #%s", hex)
	}
	switch len(hex) {
	case 3:
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.NRGBA{R: r * 0x11, G: g * 0x11, B: b * 0x11, A: 255}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	case 8:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid colour #%s", hex)
}

// LoadConfigFile reads pad attributes from a TOML (.toml) or YAML (.yaml,
// .yml) file and converts them with ParseAttributes. Errors reading or
// decoding the file are returned; invalid attribute values are not.
//
// Example TOML file:
//
//	penWidth = 3
//	penColor = "#1a237e"
//	backgroundColor = "white"
func LoadConfigFile(name string) (Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, err
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format %q", name, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}

	attrs := make(map[string]string, len(raw))
	for key, val := range raw {
		attrs[key] = fmt.Sprint(val)
	}
	return ParseAttributes(attrs), nil
}
