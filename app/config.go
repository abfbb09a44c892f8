package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cubeviz/quarkgl"

	"github.com/pelletier/go-toml/v2"
)

// ErrConfig reports an invalid configuration value.
var ErrConfig = errors.New("invalid config")

// Config holds the app settings. Zero values are replaced with defaults by
// Normalize.
type Config struct {
	Columns     int     `toml:"columns"`
	Scale       int     `toml:"scale"`
	TPS         int     `toml:"tps"`
	Workers     int     `toml:"workers"`
	Damping     float32 `toml:"damping"`
	RotateSpeed float32 `toml:"rotate_speed"` // radians per pixel dragged
	ZoomStep    float32 `toml:"zoom_step"`    // radius change per wheel notch
	Faces       string  `toml:"faces"`        // off, solid or wire
	Background  string  `toml:"background"`   // #rrggbb
	LogLevel    string  `toml:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Columns:     3,
		Scale:       1,
		TPS:         60,
		Workers:     0,
		Damping:     0.25,
		RotateSpeed: 0.01,
		ZoomStep:    0.5,
		Faces:       "off",
		Background:  "#000000",
		LogLevel:    "info",
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("app: config: %w", err)
	}
	defer f.Close()
	if err := decodeConfig(bufio.NewReader(f), &cfg); err != nil {
		return cfg, fmt.Errorf("app: config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("%w: %s", ErrConfig, strings.TrimSpace(sme.String()))
		}
		return err
	}
	return cfg.Validate()
}

// Validate checks value ranges and the enumerated string settings.
func (c Config) Validate() error {
	switch {
	case c.Columns < 0:
		return fmt.Errorf("%w: columns %d", ErrConfig, c.Columns)
	case c.Scale < 0:
		return fmt.Errorf("%w: scale %d", ErrConfig, c.Scale)
	case c.TPS < 0:
		return fmt.Errorf("%w: tps %d", ErrConfig, c.TPS)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrConfig, c.Workers)
	case c.Damping < 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping %g", ErrConfig, c.Damping)
	}
	if _, err := parseFaces(c.Faces); err != nil {
		return err
	}
	if _, err := parseColor(c.Background); err != nil {
		return err
	}
	return nil
}

// Normalize fills zero values from DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Columns == 0 {
		c.Columns = def.Columns
	}
	if c.Scale == 0 {
		c.Scale = def.Scale
	}
	if c.TPS == 0 {
		c.TPS = def.TPS
	}
	if c.RotateSpeed == 0 {
		c.RotateSpeed = def.RotateSpeed
	}
	if c.ZoomStep == 0 {
		c.ZoomStep = def.ZoomStep
	}
	if c.Faces == "" {
		c.Faces = def.Faces
	}
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}

var faceModes = []struct {
	name string
	mode quarkgl.RenderMode
}{
	{"off", quarkgl.MeshHidden},
	{"solid", quarkgl.RenderSolidFlat},
	{"wire", quarkgl.RenderWireframe},
}

func parseFaces(s string) (quarkgl.RenderMode, error) {
	if s == "" {
		return quarkgl.MeshHidden, nil
	}
	for _, f := range faceModes {
		if strings.EqualFold(s, f.name) {
			return f.mode, nil
		}
	}
	return 0, fmt.Errorf("%w: faces %q", ErrConfig, s)
}

// nextFaces cycles off, solid, wire.
func nextFaces(m quarkgl.RenderMode) quarkgl.RenderMode {
	for i, f := range faceModes {
		if f.mode == m {
			return faceModes[(i+1)%len(faceModes)].mode
		}
	}
	return faceModes[0].mode
}

func facesName(m quarkgl.RenderMode) string {
	for _, f := range faceModes {
		if f.mode == m {
			return f.name
		}
	}
	return strconv.Itoa(int(m))
}

func parseColor(s string) (quarkgl.Color, error) {
	if s == "" {
		return quarkgl.Hex(0), nil
	}
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return quarkgl.Color{}, fmt.Errorf("%w: color %q", ErrConfig, s)
	}
	return quarkgl.Hex(uint32(v)), nil
}
