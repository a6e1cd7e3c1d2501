// Package config loads the StrokePad TOML configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"StrokePad/internal/sketch"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Canvas Canvas `toml:"canvas"`
	Pen    Pen    `toml:"pen"`
	Share  Share  `toml:"share"`
}

type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Pen struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

type Share struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Default is a 600x400 pad with a dark 2px pen, shared on port 8888.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 600, Height: 400},
		Pen:    Pen{Color: "#222222", Width: 2},
		Share:  Share{Enabled: true, Port: 8888, Advertise: true},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults and validates it.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("decoding config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size %vx%v", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Pen.Width <= 0 {
		return fmt.Errorf("%w: pen width %v", ErrInvalid, c.Pen.Width)
	}
	if _, err := ParseColor(c.Pen.Color); err != nil {
		return err
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Share.Port)
	}
	return nil
}

// Style converts the pen section into a sketch style.
func (c Config) Style() sketch.Style {
	col, err := ParseColor(c.Pen.Color)
	if err != nil {
		col = sketch.DefaultStyle.Color
	}
	return sketch.Style{Color: col, Width: c.Pen.Width}
}

// ParseColor accepts #RGB and #RRGGBB.
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
