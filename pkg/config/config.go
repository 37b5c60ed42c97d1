// Package config describes the render surface: frame size, font and margins.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Config is the render configuration. Sizes are in pixels.
type Config struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FontSize    float64 `json:"font_size"`
	FontPath    string  `json:"font_path,omitempty"` // empty: built-in Go Regular
	MarginL     int     `json:"margin_l"`
	MarginR     int     `json:"margin_r"`
	MarginV     int     `json:"margin_v"`
	LineSpacing float64 `json:"line_spacing"` // multiple of the font line height

	// CachePlainText makes every fragment record carry its line's stripped
	// text.
	CachePlainText *bool `json:"cache_plain_text,omitempty"`
}

var ErrInvalid = errors.New("config: invalid value")

// Defaults returns a 1080p configuration.
func Defaults() Config {
	cache := true
	return Config{
		Width:          1920,
		Height:         1080,
		FontSize:       48,
		MarginL:        40,
		MarginR:        40,
		MarginV:        40,
		LineSpacing:    1,
		CachePlainText: &cache,
	}
}

// LoadJSON reads a Config from raw if non-empty, otherwise from the file at
// path. Unknown fields are rejected.
func LoadJSON(path string, raw []byte) (Config, error) {
	var cfg Config
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, errors.New("config: no source provided")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	out := base
	if over.Width != 0 {
		out.Width = over.Width
	}
	if over.Height != 0 {
		out.Height = over.Height
	}
	if over.FontSize != 0 {
		out.FontSize = over.FontSize
	}
	if over.FontPath != "" {
		out.FontPath = over.FontPath
	}
	if over.MarginL != 0 {
		out.MarginL = over.MarginL
	}
	if over.MarginR != 0 {
		out.MarginR = over.MarginR
	}
	if over.MarginV != 0 {
		out.MarginV = over.MarginV
	}
	if over.LineSpacing != 0 {
		out.LineSpacing = over.LineSpacing
	}
	if over.CachePlainText != nil {
		v := *over.CachePlainText
		out.CachePlainText = &v
	}
	return out
}

// Validate checks that the configuration can drive a layout.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size %v", ErrInvalid, c.FontSize)
	case c.MarginL < 0 || c.MarginR < 0 || c.MarginV < 0:
		return fmt.Errorf("%w: negative margin", ErrInvalid)
	case c.LineSpacing <= 0:
		return fmt.Errorf("%w: line spacing %v", ErrInvalid, c.LineSpacing)
	}
	return nil
}

// PlainTextCache reports whether fragment records should carry stripped text.
func (c Config) PlainTextCache() bool {
	return c.CachePlainText == nil || *c.CachePlainText
}
