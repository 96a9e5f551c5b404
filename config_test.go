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
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#f00", color.NRGBA{R: 255, A: 255}},
		{"#1a237e", color.NRGBA{R: 0x1a, G: 0x23, B: 0x7e, A: 255}},
		{"#801a237e", color.NRGBA{R: 0x1a, G: 0x23, B: 0x7e, A: 0x80}},
		{"navy", color.NRGBA{B: 0x80, A: 255}},
		{" White ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"transparent", color.NRGBA{}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if assert.NoError(t, err, c.in) {
			assert.Equal(t, c.want, got, c.in)
		}
	}

	for _, bad := range []string{"", "#", "#12", "#12345", "#ggg", "no-such-colour"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAttributes(t *testing.T) {
	cfg := ParseAttributes(map[string]string{
		AttrPenWidth:        "2.5px",
		AttrPenColor:        "#ff0000",
		AttrBackgroundColor: "black",
		AttrEnabled:         "false",
		"unrelated":         "x",
	})
	assert.Equal(t, 2.5, cfg.PenWidth)
	assert.Equal(t, red, cfg.PenColor)
	assert.Equal(t, black, cfg.BackgroundColor)
	assert.False(t, cfg.Enabled)
}

func TestParseAttributesDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ParseAttributes(nil))

	// malformed values fall back to the defaults
	cfg := ParseAttributes(map[string]string{
		AttrPenWidth:        "-3",
		AttrPenColor:        "#xyz",
		AttrBackgroundColor: "",
		AttrEnabled:         "maybe",
	})
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = ParseAttributes(map[string]string{AttrPenWidth: "wide"})
	assert.Equal(t, float64(DefaultPenWidth), cfg.PenWidth)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	tomlFile := filepath.Join(dir, "pad.toml")
	require.NoError(t, os.WriteFile(tomlFile, []byte(
		"penWidth = 3\npenColor = \"#1a237e\"\nenabled = false\n"), 0o644))
	cfg, err := LoadConfigFile(tomlFile)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.PenWidth)
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x23, B: 0x7e, A: 255}, cfg.PenColor)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, white, cfg.BackgroundColor)

	yamlFile := filepath.Join(dir, "pad.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(
		"penWidth: 1.5\nbackgroundColor: \"#eee\"\n"), 0o644))
	cfg, err = LoadConfigFile(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.PenWidth)
	assert.Equal(t, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}, cfg.BackgroundColor)
	assert.True(t, cfg.Enabled)
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ini := filepath.Join(dir, "pad.ini")
	require.NoError(t, os.WriteFile(ini, []byte("penWidth=3\n"), 0o644))
	_, err = LoadConfigFile(ini)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("penWidth = = 3\n"), 0o644))
	_, err = LoadConfigFile(broken)
	assert.Error(t, err)
}
